package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore persistence used by the user service, implemented by db.UserDB
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateUserAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*model.User, error)
	UpdateUserAvatar(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error)
	UpdateUserCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error)
	UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	GetChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*model.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, id primitive.ObjectID) ([]*model.VideoCard, error)
}

type UserService struct {
	store     UserStore
	media     oss.Gateway
	publisher mq.AssetEventPublisher
	creds     *security.CredentialManager
}

func NewUserService(store UserStore, media oss.Gateway, publisher mq.AssetEventPublisher, creds *security.CredentialManager) *UserService {
	return &UserService{store: store, media: media, publisher: publisher, creds: creds}
}
