package handlers

import (
	"context"

	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	if err := h.comments.DeleteComment(ctx, user.ID, c.Param("commentId")); err != nil {
		hlog.CtxErrorf(ctx, "service.DeleteComment failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Comment deleted successfully"), struct{}{})
}
