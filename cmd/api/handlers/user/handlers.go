package handlers

import (
	"context"
	"time"

	"VideoTube.com/cmd/user/service"
	"VideoTube.com/config"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/pkg/errors"
)

// Handler /users 路由
type Handler struct {
	svc    *service.UserService
	server config.Server
}

func New(svc *service.UserService, server config.Server) *Handler {
	return &Handler{svc: svc, server: server}
}

type LoginParam struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RefreshParam struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type ChangePasswordParam struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

type UpdateAccountParam struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
}

var errBadBody = errno.InvalidArgumentErr.WithMessage("Invalid request body")

func bind(ctx context.Context, c *app.RequestContext, req interface{}) error {
	if err := c.Bind(req); err != nil {
		hlog.CtxInfof(ctx, "bind request failed: %v", errors.Cause(err))
		return errBadBody
	}
	return nil
}

// setTokenCookies 两个 token 都写 HttpOnly cookie，生产环境加 Secure
func (h *Handler) setTokenCookies(c *app.RequestContext, pair *security.TokenPair) {
	secure := h.server.IsProduction()
	c.SetCookie(constants.AccessTokenCookie, pair.AccessToken, maxAge(pair.AccessTokenExpiresAt),
		"/", "", protocol.CookieSameSiteLaxMode, secure, true)
	c.SetCookie(constants.RefreshTokenCookie, pair.RefreshToken, maxAge(pair.RefreshTokenExpiresAt),
		"/", "", protocol.CookieSameSiteLaxMode, secure, true)
}

func (h *Handler) clearTokenCookies(c *app.RequestContext) {
	secure := h.server.IsProduction()
	c.SetCookie(constants.AccessTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, secure, true)
	c.SetCookie(constants.RefreshTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, secure, true)
}

func maxAge(expires time.Time) int {
	secs := int(time.Until(expires).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}
