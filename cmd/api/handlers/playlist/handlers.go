package handlers

import (
	"context"

	"VideoTube.com/cmd/playlist/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Handler /playlists 路由
type Handler struct {
	svc *service.PlaylistService
}

func New(svc *service.PlaylistService) *Handler {
	return &Handler{svc: svc}
}

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func bind(ctx context.Context, c *app.RequestContext) (*PlaylistParam, error) {
	var req PlaylistParam
	if err := c.Bind(&req); err != nil {
		hlog.CtxInfof(ctx, "bind playlist failed: %v", err)
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid request body")
	}
	return &req, nil
}
