package handlers

import (
	"context"

	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) AddVideo(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	playlist, err := h.svc.AddVideo(ctx, user.ID, c.Param("videoId"), c.Param("playlistId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Video added to playlist"), playlist)
}

func (h *Handler) RemoveVideo(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	playlist, err := h.svc.RemoveVideo(ctx, user.ID, c.Param("videoId"), c.Param("playlistId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Video removed from playlist"), playlist)
}
