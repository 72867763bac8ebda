package handlers

import (
	"context"

	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/relation/service"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// Handler /subscriptions 路由
type Handler struct {
	svc *service.RelationService
}

func New(svc *service.RelationService) *Handler {
	return &Handler{svc: svc}
}

// ToggleSubscription 取消订阅，未订阅返回 404
func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	if err := h.svc.Unsubscribe(ctx, user.ID, c.Param("channelId")); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Unsubscribed successfully"), struct{}{})
}

func (h *Handler) Subscribe(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	sub, err := h.svc.Subscribe(ctx, user.ID, c.Param("channelId"))
	if err != nil {
		hlog.CtxInfof(ctx, "service.Subscribe failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Created.WithMessage("Subscribed successfully"), sub)
}

func (h *Handler) ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	subs, err := h.svc.ChannelSubscribers(ctx, c.Param("channelId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Subscribers fetched successfully"), subs)
}

func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	channels, err := h.svc.SubscribedChannels(ctx, c.Param("subscriberId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Subscribed channels fetched successfully"), channels)
}
