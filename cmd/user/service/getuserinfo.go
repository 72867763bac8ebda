package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *UserService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("User does not exist")
	}
	return user, nil
}

// ChannelProfile 频道主页，viewer 用于计算 isSubscribed
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*model.ChannelProfile, error) {
	if utils.IsBlank(username) {
		return nil, errno.InvalidArgumentErr.WithMessage("Username is missing")
	}
	profile, err := s.store.GetChannelProfile(ctx, utils.NormalizeIdentity(username), viewer)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errno.NotFoundErr.WithMessage("Channel does not exist")
	}
	return profile, nil
}

func (s *UserService) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]*model.VideoCard, error) {
	return s.store.GetWatchHistory(ctx, userID)
}
