package handlers

import (
	"context"

	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
)

// ToggleLike 只取消点赞，param 为路由中的 id 参数名
func (h *Handler) ToggleLike(kind model.LikeKind, param string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		user, err := authfunc.RequireUser(c)
		if err != nil {
			response.SendResponse(ctx, c, err, nil)
			return
		}
		if err := h.likes.ToggleLike(ctx, user.ID, kind, c.Param(param)); err != nil {
			response.SendResponse(ctx, c, err, nil)
			return
		}
		response.SendResponse(ctx, c, errno.Success.WithMessage("Like removed"), struct{}{})
	}
}

func (h *Handler) AddLike(kind model.LikeKind, param string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		user, err := authfunc.RequireUser(c)
		if err != nil {
			response.SendResponse(ctx, c, err, nil)
			return
		}
		like, err := h.likes.AddLike(ctx, user.ID, kind, c.Param(param))
		if err != nil {
			response.SendResponse(ctx, c, err, nil)
			return
		}
		response.SendResponse(ctx, c, errno.Created.WithMessage("Liked successfully"), like)
	}
}

func (h *Handler) GetLike(ctx context.Context, c *app.RequestContext) {
	like, err := h.likes.GetLike(ctx, c.Param("likeId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Like fetched successfully"), like)
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	videos, err := h.likes.LikedVideos(ctx, user.ID)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Liked videos fetched successfully"), videos)
}
