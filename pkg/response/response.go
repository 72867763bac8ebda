package response

import (
	"context"

	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Response 统一响应信封，HTTP 状态码与 statusCode 一致
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 失败时的信封，errors 始终存在，没有细节时为空列表
type ErrorResponse struct {
	Response
	Errors []string `json:"errors"`
}

// SendResponse pack response
func SendResponse(ctx context.Context, c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	if Err.ErrCode >= errno.ServiceErrCode {
		hlog.CtxErrorf(ctx, "%s %s failed: %+v", c.Method(), c.Path(), err)
	}
	if Err.Success() {
		c.JSON(Err.ErrCode, Response{
			StatusCode: Err.ErrCode,
			Data:       data,
			Message:    Err.ErrMsg,
			Success:    true,
		})
		return
	}
	errs := Err.Errors
	if errs == nil {
		errs = []string{}
	}
	c.JSON(Err.ErrCode, ErrorResponse{
		Response: Response{StatusCode: Err.ErrCode, Message: Err.ErrMsg},
		Errors:   errs,
	})
}

// Abort sends the error envelope and stops the handler chain
func Abort(ctx context.Context, c *app.RequestContext, err error) {
	SendResponse(ctx, c, err, nil)
	c.Abort()
}
