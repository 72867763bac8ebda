package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// PublishVideo multipart: videoFile, thumbnail, title, description
func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	files, err := common.SaveUploads(ctx, c, h.server.TempDir, "videoFile", "thumbnail")
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	video, err := h.svc.PublishVideo(ctx, user.ID, &service.PublishParams{
		Title:         string(c.FormValue("title")),
		Description:   string(c.FormValue("description")),
		VideoPath:     files["videoFile"],
		ThumbnailPath: files["thumbnail"],
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "service.PublishVideo failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Created.WithMessage("Video published successfully"), video)
}
