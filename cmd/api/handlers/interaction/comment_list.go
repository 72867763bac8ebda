package handlers

import (
	"context"

	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

func (h *Handler) ListComment(ctx context.Context, c *app.RequestContext) {
	var q ListCommentParam
	if err := c.BindQuery(&q); err != nil {
		hlog.CtxInfof(ctx, "bind comment query failed: %v", err)
	}
	page, limit := utils.ParsePage(q.Page, q.Limit)
	resp, err := h.comments.VideoComments(ctx, c.Param("videoId"), page, limit)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Comments fetched successfully"), resp)
}

func (h *Handler) CreateComment(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	var req CommentParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(ctx, c, errno.InvalidArgumentErr.WithMessage("Invalid request body"), nil)
		return
	}
	comment, err := h.comments.AddComment(ctx, user.ID, c.Param("videoId"), req.Content)
	if err != nil {
		hlog.CtxErrorf(ctx, "service.AddComment failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Created.WithMessage("Comment added successfully"), comment)
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	var req CommentParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(ctx, c, errno.InvalidArgumentErr.WithMessage("Invalid request body"), nil)
		return
	}
	comment, err := h.comments.UpdateComment(ctx, user.ID, c.Param("commentId"), req.Content)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Comment updated successfully"), comment)
}
