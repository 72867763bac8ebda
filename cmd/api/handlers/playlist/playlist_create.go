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

func (h *Handler) CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	req, err := bind(ctx, c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	playlist, err := h.svc.CreatePlaylist(ctx, user.ID, req.Name, req.Description)
	if err != nil {
		hlog.CtxErrorf(ctx, "service.CreatePlaylist failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Created.WithMessage("Playlist created successfully"), playlist)
}

func (h *Handler) UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	req, err := bind(ctx, c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	playlist, err := h.svc.UpdatePlaylist(ctx, user.ID, c.Param("playlistId"), req.Name, req.Description)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Playlist updated successfully"), playlist)
}

func (h *Handler) DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	if err := h.svc.DeletePlaylist(ctx, user.ID, c.Param("playlistId")); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Playlist deleted successfully"), struct{}{})
}
