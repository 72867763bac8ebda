package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/user/service"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type loginData struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// RegisterUser multipart: fullName, username, email, password, avatar, coverImage
func (h *Handler) RegisterUser(ctx context.Context, c *app.RequestContext) {
	files, err := common.SaveUploads(ctx, c, h.server.TempDir, "avatar", "coverImage")
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	user, err := h.svc.Register(ctx, &service.RegisterParams{
		FullName:       string(c.FormValue("fullName")),
		Username:       string(c.FormValue("username")),
		Email:          string(c.FormValue("email")),
		Password:       string(c.FormValue("password")),
		AvatarPath:     files["avatar"],
		CoverImagePath: files["coverImage"],
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "service.Register failed,original error:%v", errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	response.SendResponse(ctx, c, errno.Created.WithMessage("User registered successfully"), user)
}

func (h *Handler) LoginUser(ctx context.Context, c *app.RequestContext) {
	var req LoginParam
	if err := bind(ctx, c, &req); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	user, pair, err := h.svc.Login(ctx, &service.LoginParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		hlog.CtxInfof(ctx, "login rejected for %q/%q: %v", req.Username, req.Email, errors.Cause(err))
		response.SendResponse(ctx, c, err, nil)
		return
	}
	h.setTokenCookies(c, pair)
	response.SendResponse(ctx, c, errno.Success.WithMessage("User logged in successfully"), &loginData{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) LogoutUser(ctx context.Context, c *app.RequestContext) {
	user, err := authfunc.RequireUser(c)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	if err := h.svc.Logout(ctx, user.ID); err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	h.clearTokenCookies(c)
	response.SendResponse(ctx, c, errno.Success.WithMessage("User logged out"), struct{}{})
}

// RefreshAccessToken 从 cookie 或请求体读取 refresh token
func (h *Handler) RefreshAccessToken(ctx context.Context, c *app.RequestContext) {
	token := string(c.Cookie(constants.RefreshTokenCookie))
	if token == "" {
		var req RefreshParam
		if err := bind(ctx, c, &req); err != nil {
			response.SendResponse(ctx, c, err, nil)
			return
		}
		token = req.RefreshToken
	}
	pair, err := h.svc.RefreshToken(ctx, token)
	if err != nil {
		response.SendResponse(ctx, c, err, nil)
		return
	}
	h.setTokenCookies(c, pair)
	response.SendResponse(ctx, c, errno.Success.WithMessage("Access token refreshed"), pair)
}
