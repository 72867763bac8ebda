package authfunc

import (
	"context"
	"strings"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"VideoTube.com/pkg/security"

	"github.com/cloudwego/hertz/pkg/app"
)

func Auth(creds *security.CredentialManager) []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		AccessTokenAuthFunc(creds),
	)
}

// AccessTokenAuthFunc 校验 access token，cookie 优先，其次 Authorization: Bearer
func AccessTokenAuthFunc(creds *security.CredentialManager) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		user, err := creds.Authenticate(ctx, AccessToken(c))
		if err != nil {
			response.Abort(ctx, c, err)
			return
		}
		c.Set(constants.IdentityKey, user)
		c.Next(ctx)
	}
}

func AccessToken(c *app.RequestContext) string {
	if token := string(c.Cookie(constants.AccessTokenCookie)); token != "" {
		return token
	}
	return bearer(c)
}

func bearer(c *app.RequestContext) string {
	header := string(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// CurrentUser the user set by the auth middleware; only call behind Auth
func CurrentUser(c *app.RequestContext) *model.User {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// RequireUser CurrentUser or an Unauthorized error when the chain was built without Auth
func RequireUser(c *app.RequestContext) (*model.User, error) {
	user := CurrentUser(c)
	if user == nil {
		return nil, errno.UnauthorizedErr
	}
	return user, nil
}
