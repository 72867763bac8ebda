package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error) {
	return s.replaceImage(ctx, userID, localPath, "Avatar file is missing",
		func(u *model.User) string { return u.Avatar },
		s.store.UpdateUserAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error) {
	return s.replaceImage(ctx, userID, localPath, "Cover image file is missing",
		func(u *model.User) string { return u.CoverImage },
		s.store.UpdateUserCoverImage)
}

// replaceImage uploads the new image, points the user at it and then drops the previous one
func (s *UserService) replaceImage(ctx context.Context, userID primitive.ObjectID, localPath, missing string,
	current func(*model.User) string,
	update func(context.Context, primitive.ObjectID, string) (*model.User, error),
) (*model.User, error) {
	if localPath == "" {
		return nil, errno.InvalidArgumentErr.WithMessage(missing)
	}
	before, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		removeTemp(ctx, localPath)
		return nil, err
	}
	if before == nil {
		removeTemp(ctx, localPath)
		return nil, errno.NotFoundErr.WithMessage("User does not exist")
	}

	asset, err := s.media.Upload(ctx, localPath)
	if err != nil {
		return nil, errors.WithMessage(err, "upload image failed")
	}
	user, err := update(ctx, userID, asset.URL)
	if err != nil || user == nil {
		oss.Discard(ctx, s.media, s.publisher, "image update failed", asset.URL)
		if err != nil {
			return nil, err
		}
		return nil, errno.NotFoundErr.WithMessage("User does not exist")
	}

	// 旧图片删除失败不影响本次更新
	if old := current(before); old != "" && old != asset.URL {
		oss.Discard(ctx, s.media, s.publisher, "image replaced", old)
	}
	return user, nil
}
