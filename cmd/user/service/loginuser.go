package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/security"
	"VideoTube.com/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoginParams struct {
	Username string
	Email    string
	Password string
}

// Login 用户名或邮箱任一即可登录，成功后签发新的令牌对
func (s *UserService) Login(ctx context.Context, req *LoginParams) (*model.User, *security.TokenPair, error) {
	username := utils.NormalizeIdentity(req.Username)
	email := utils.NormalizeIdentity(req.Email)
	if username == "" && email == "" {
		return nil, nil, errno.InvalidArgumentErr.WithMessage("Username or email is required")
	}
	if utils.IsBlank(req.Password) {
		return nil, nil, errno.MissingFields("password")
	}

	user, err := s.store.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, errno.NotFoundErr.WithMessage("User does not exist")
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, nil, errno.UnauthorizedErr.WithMessage("Invalid user credentials")
	}

	pair, err := s.creds.Issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	return s.creds.Revoke(ctx, userID)
}

// RefreshToken rotates the pair, the presented token stops working
func (s *UserService) RefreshToken(ctx context.Context, token string) (*security.TokenPair, error) {
	pair, _, err := s.creds.Refresh(ctx, token)
	return pair, err
}
