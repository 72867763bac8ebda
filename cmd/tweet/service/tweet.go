package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TweetStore interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) error
	GetTweetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
	GetTweetDetail(ctx context.Context, id primitive.ObjectID) (*model.TweetDetail, error)
	ListUserTweets(ctx context.Context, owner primitive.ObjectID) ([]*model.TweetDetail, error)
	UpdateTweetContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

type LikeCascade interface {
	DeleteLikesByTarget(ctx context.Context, kind model.LikeKind, ids ...primitive.ObjectID) (int64, error)
}

type TweetService struct {
	tweets TweetStore
	users  UserLookup
	likes  LikeCascade
}

func NewTweetService(tweets TweetStore, users UserLookup, likes LikeCascade) *TweetService {
	return &TweetService{tweets: tweets, users: users, likes: likes}
}

var (
	errTweetNotFound = errno.NotFoundErr.WithMessage("Tweet not found")
	errNotTweetOwner = errno.ForbiddenErr.WithMessage("You are not authorized to modify this tweet")
)

func (s *TweetService) CreateTweet(ctx context.Context, owner primitive.ObjectID, content string) (*model.Tweet, error) {
	if utils.IsBlank(content) {
		return nil, errno.MissingFields("content")
	}
	tweet := &model.Tweet{Content: content, Owner: owner}
	if err := s.tweets.CreateTweet(ctx, tweet); err != nil {
		return nil, errors.WithMessage(err, "Error while creating tweet")
	}
	return tweet, nil
}

func (s *TweetService) GetTweet(ctx context.Context, rawID string) (*model.TweetDetail, error) {
	id, err := utils.ParseObjectID(rawID, "tweetId")
	if err != nil {
		return nil, err
	}
	detail, err := s.tweets.GetTweetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, errTweetNotFound
	}
	return detail, nil
}

// UserTweets newest first, an existing user without tweets yields an empty list
func (s *TweetService) UserTweets(ctx context.Context, rawUserID string) ([]*model.TweetDetail, error) {
	owner, err := utils.ParseObjectID(rawUserID, "userId")
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, owner)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("User not found")
	}
	return s.tweets.ListUserTweets(ctx, owner)
}

func (s *TweetService) ownedTweet(ctx context.Context, actor primitive.ObjectID, rawID string) (*model.Tweet, error) {
	id, err := utils.ParseObjectID(rawID, "tweetId")
	if err != nil {
		return nil, err
	}
	tweet, err := s.tweets.GetTweetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, errTweetNotFound
	}
	if tweet.Owner != actor {
		return nil, errNotTweetOwner
	}
	return tweet, nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, actor primitive.ObjectID, rawID, content string) (*model.Tweet, error) {
	if utils.IsBlank(content) {
		return nil, errno.MissingFields("content")
	}
	tweet, err := s.ownedTweet(ctx, actor, rawID)
	if err != nil {
		return nil, err
	}
	updated, err := s.tweets.UpdateTweetContent(ctx, tweet.ID, content)
	if err != nil {
		return nil, errors.WithMessage(err, "Error while updating tweet")
	}
	if updated == nil {
		return nil, errTweetNotFound
	}
	return updated, nil
}

// DeleteTweet 先删点赞再删推文，失败重试不会留下悬挂的点赞
func (s *TweetService) DeleteTweet(ctx context.Context, actor primitive.ObjectID, rawID string) error {
	tweet, err := s.ownedTweet(ctx, actor, rawID)
	if err != nil {
		return err
	}
	if _, err := s.likes.DeleteLikesByTarget(ctx, model.LikeTweet, tweet.ID); err != nil {
		return errors.WithMessage(err, "delete tweet likes failed")
	}
	if _, err := s.tweets.DeleteTweet(ctx, tweet.ID); err != nil {
		return errors.WithMessage(err, "Error while deleting tweet")
	}
	return nil
}
