package handlers

import (
	"context"

	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/tweet/service"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type Handler struct {
	svc *service.TweetService
}

func New(svc *service.TweetService) *Handler {
	return &Handler{svc: svc}
}

type TweetParam struct {
	Content string `json:"content" form:"content"`
}

func (h *Handler) bind(ctx context.Context, c *app.RequestContext) (string, error) {
	var req TweetParam
	if err := c.Bind(&req); err != nil {
		hlog.CtxInfof(ctx, "bind tweet failed: %v", err)
		return "", errno.InvalidArgumentErr.WithMessage("Invalid request body")
	}
	return req.Content, nil
}

func (h *Handler) CreateTweet(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	content, err := h.bind(ctx, c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	tweet, err := h.svc.CreateTweet(ctx, user.ID, content)
	if err != nil {
		hlog.CtxErrorf(ctx, "service.CreateTweet failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Created.WithMessage("Tweet created successfully"), tweet)
}

func (h *Handler) GetTweet(ctx context.Context, c *app.RequestContext) {
	tweet, err := h.svc.GetTweet(ctx, c.Param("tweetId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Tweet fetched successfully"), tweet)
}

func (h *Handler) UserTweets(ctx context.Context, c *app.RequestContext) {
	tweets, err := h.svc.UserTweets(ctx, c.Param("userId"))
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Tweets fetched successfully"), tweets)
}

func (h *Handler) UpdateTweet(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	content, err := h.bind(ctx, c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	tweet, err := h.svc.UpdateTweet(ctx, user.ID, c.Param("tweetId"), content)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Tweet updated successfully"), tweet)
}

func (h *Handler) DeleteTweet(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	if err := h.svc.DeleteTweet(ctx, user.ID, c.Param("tweetId")); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Tweet deleted successfully"), struct{}{})
}
