package handlers

import (
	"context"

	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// ListVideos GET /videos?page&limit&query&sortBy&sortType&userId
func (h *Handler) ListVideos(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	var q VideoListParam
	if err := c.BindQuery(&q); err != nil {
		hlog.CtxInfof(ctx, "bind video list query failed: %v", err)
		response.SendResponse(ctx, c, errno.InvalidArgumentErr.WithMessage("Invalid query"), nil)
		return
	}
	page, limit := utils.ParsePage(q.Page, q.Limit)
	resp, err := h.svc.ListVideos(ctx, user.ID, &service.ListParams{
		Page:     page,
		Limit:    limit,
		Query:    q.Query,
		SortBy:   q.SortBy,
		SortType: q.SortType,
		UserID:   q.UserID,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "service.ListVideos failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Videos fetched successfully"), resp)
}
