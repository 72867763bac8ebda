package handlers

import (
	"context"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) GetPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.svc.GetPlaylist(ctx, c.Param("playlistId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Playlist fetched successfully"), playlist)
}

func (h *Handler) UserPlaylists(ctx context.Context, c *app.RequestContext) {
	playlists, err := h.svc.UserPlaylists(ctx, c.Param("userId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("User playlists fetched successfully"), playlists)
}
