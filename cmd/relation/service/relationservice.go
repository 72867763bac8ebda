package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriptionStore interface {
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	FindSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (*model.Subscription, error)
	DeleteSubscription(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetChannelSubscribers(ctx context.Context, channel primitive.ObjectID) ([]*model.OwnerSummary, error)
	GetSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]*model.OwnerSummary, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

// RelationService 订阅关系
type RelationService struct {
	subs  SubscriptionStore
	users UserLookup
}

func NewRelationService(subs SubscriptionStore, users UserLookup) *RelationService {
	return &RelationService{subs: subs, users: users}
}

var (
	errSubscriptionNotFound = errno.NotFoundErr.WithMessage("Subscription not found")
	errChannelNotFound      = errno.NotFoundErr.WithMessage("Channel not found")
)

func (s *RelationService) requireUser(ctx context.Context, rawID, field string) (primitive.ObjectID, error) {
	id, err := utils.ParseObjectID(rawID, field)
	if err != nil {
		return id, err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return id, err
	}
	if user == nil {
		return id, errChannelNotFound
	}
	return id, nil
}

// Unsubscribe removes the actor's subscription to the channel, NotFound when there is none
func (s *RelationService) Unsubscribe(ctx context.Context, actor primitive.ObjectID, rawChannelID string) error {
	channel, err := utils.ParseObjectID(rawChannelID, "channelId")
	if err != nil {
		return err
	}
	sub, err := s.subs.FindSubscription(ctx, actor, channel)
	if err != nil {
		return err
	}
	if sub == nil {
		return errSubscriptionNotFound
	}
	deleted, err := s.subs.DeleteSubscription(ctx, sub.ID)
	if err != nil {
		return errors.WithMessage(err, "Error while unsubscribing")
	}
	if !deleted {
		return errSubscriptionNotFound
	}
	return nil
}

func (s *RelationService) Subscribe(ctx context.Context, actor primitive.ObjectID, rawChannelID string) (*model.Subscription, error) {
	channel, err := utils.ParseObjectID(rawChannelID, "channelId")
	if err != nil {
		return nil, err
	}
	// 不允许订阅自己
	if channel == actor {
		return nil, errno.InvalidArgumentErr.WithMessage("You cannot subscribe to your own channel")
	}
	if _, err := s.requireUser(ctx, rawChannelID, "channelId"); err != nil {
		return nil, err
	}
	sub := &model.Subscription{Subscriber: actor, Channel: channel}
	if err := s.subs.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, errno.ConflictErr.WithMessage("Already subscribed")
		}
		return nil, errors.WithMessage(err, "Error while subscribing")
	}
	return sub, nil
}

// ChannelSubscribers users subscribed to the channel, newest first
func (s *RelationService) ChannelSubscribers(ctx context.Context, rawChannelID string) ([]*model.OwnerSummary, error) {
	channel, err := s.requireUser(ctx, rawChannelID, "channelId")
	if err != nil {
		return nil, err
	}
	return s.subs.GetChannelSubscribers(ctx, channel)
}

// SubscribedChannels channels the user follows, newest first
func (s *RelationService) SubscribedChannels(ctx context.Context, rawSubscriberID string) ([]*model.OwnerSummary, error) {
	subscriber, err := s.requireUser(ctx, rawSubscriberID, "subscriberId")
	if err != nil {
		return nil, err
	}
	return s.subs.GetSubscribedChannels(ctx, subscriber)
}
