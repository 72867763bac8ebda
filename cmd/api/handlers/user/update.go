package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) ChangePassword(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	var req ChangePasswordParam
	if err := bind(ctx, c, &req); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	if err := h.svc.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	h.clearTokenCookies(c)
	response.SendResponse(ctx, c, errno.Success.WithMessage("Password changed successfully"), struct{}{})
}

func (h *Handler) UpdateAccount(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	var req UpdateAccountParam
	if err := bind(ctx, c, &req); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	updated, err := h.svc.UpdateAccount(ctx, user.ID, req.FullName, req.Email)
	if err != nil {
		hlog.CtxErrorf(ctx, "service.UpdateAccount failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage("Account details updated successfully"), updated)
}

func (h *Handler) UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	h.replaceImage(ctx, c, "avatar", "Avatar updated successfully", h.svc.UpdateAvatar)
}

func (h *Handler) UpdateCoverImage(ctx context.Context, c *app.RequestContext) {
	h.replaceImage(ctx, c, "coverImage", "Cover image updated successfully", h.svc.UpdateCoverImage)
}

func (h *Handler) replaceImage(ctx context.Context, c *app.RequestContext, field, msg string,
	update func(context.Context, primitive.ObjectID, string) (*model.User, error)) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	path, err := common.SaveUpload(ctx, c, field, h.server.TempDir)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	updated, err := update(ctx, user.ID, path)
	if err != nil {
		hlog.CtxErrorf(ctx, "replace %s failed,original error:%v", field, errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Success.WithMessage(msg), updated)
}
