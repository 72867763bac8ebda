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

// UpdateVideo multipart: title, description, optional thumbnail
func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	thumbnail, err := common.SaveUpload(ctx, c, "thumbnail", h.server.TempDir)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	video, err := h.svc.UpdateVideo(ctx, user.ID, c.Param("videoId"), &service.UpdateParams{
		Title:         string(c.FormValue("title")),
		Description:   string(c.FormValue("description")),
		ThumbnailPath: thumbnail,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "service.UpdateVideo failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Video updated successfully"), video)
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	if err := h.svc.DeleteVideo(ctx, user.ID, c.Param("videoId")); err != nil {
		hlog.CtxErrorf(ctx, "service.DeleteVideo failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Video deleted successfully"), struct{}{})
}

func (h *Handler) TogglePublish(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	video, err := h.svc.TogglePublish(ctx, user.ID, c.Param("videoId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Publish status toggled"), video)
}
