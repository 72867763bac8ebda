package db

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/aggregate"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/database"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubscriptionDB subscriptions 集合，(subscriber, channel) 唯一
type SubscriptionDB struct {
	subscriptions *mongo.Collection
}

func NewSubscriptionDB(db *mongo.Database) *SubscriptionDB {
	return &SubscriptionDB{subscriptions: db.Collection(constants.SubscriptionCollection)}
}

func (d *SubscriptionDB) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	sub.ID = primitive.NewObjectID()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	if _, err := d.subscriptions.InsertOne(ctx, sub); err != nil {
		if database.IsDuplicate(err) {
			return model.ErrDuplicate
		}
		return errors.Wrapf(err, "CreateSubscription failed,err: %v", err)
	}
	return nil
}

func (d *SubscriptionDB) FindSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (*model.Subscription, error) {
	var sub model.Subscription
	err := d.subscriptions.FindOne(ctx, bson.D{
		{Key: "subscriber", Value: subscriber},
		{Key: "channel", Value: channel},
	}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "查询订阅失败")
	}
	return &sub, nil
}

func (d *SubscriptionDB) DeleteSubscription(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.subscriptions.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, errors.Wrapf(err, "delete subscription %s failed", id.Hex())
	}
	return res.DeletedCount > 0, nil
}

func (d *SubscriptionDB) GetChannelSubscribers(ctx context.Context, channel primitive.ObjectID) ([]*model.OwnerSummary, error) {
	users := make([]*model.OwnerSummary, 0)
	if err := database.Aggregate(ctx, d.subscriptions, aggregate.ChannelSubscribers(channel), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (d *SubscriptionDB) GetSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]*model.OwnerSummary, error) {
	users := make([]*model.OwnerSummary, 0)
	if err := database.Aggregate(ctx, d.subscriptions, aggregate.SubscribedChannels(subscriber), &users); err != nil {
		return nil, err
	}
	return users, nil
}
