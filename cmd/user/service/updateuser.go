package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *UserService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*model.User, error) {
	if blank := utils.BlankFields(map[string]string{
		"fullName": fullName,
		"email":    email,
	}, "fullName", "email"); len(blank) > 0 {
		return nil, errno.MissingFields(blank...)
	}
	email = utils.NormalizeIdentity(email)
	if !utils.IsValidEmail(email) {
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid email address")
	}

	user, err := s.store.UpdateUserAccount(ctx, userID, fullName, email)
	if errors.Is(err, model.ErrDuplicate) {
		return nil, errno.ConflictErr.WithMessage("Email is already in use")
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateUserAccount failed")
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("User does not exist")
	}
	return user, nil
}
