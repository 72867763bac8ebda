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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TweetDB struct {
	tweets *mongo.Collection
}

func NewTweetDB(db *mongo.Database) *TweetDB {
	return &TweetDB{tweets: db.Collection(constants.TweetCollection)}
}

func (d *TweetDB) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	now := time.Now().UTC()
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt, tweet.UpdatedAt = now, now
	if _, err := d.tweets.InsertOne(ctx, tweet); err != nil {
		return errors.Wrapf(err, "CreateTweet failed,err: %v", err)
	}
	return nil
}

func (d *TweetDB) GetTweetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	var tweet model.Tweet
	err := d.tweets.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&tweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get tweet %s failed", id.Hex())
	}
	return &tweet, nil
}

func (d *TweetDB) GetTweetDetail(ctx context.Context, id primitive.ObjectID) (*model.TweetDetail, error) {
	var details []*model.TweetDetail
	if err := database.Aggregate(ctx, d.tweets, aggregate.TweetDetail(id), &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	return details[0], nil
}

func (d *TweetDB) ListUserTweets(ctx context.Context, owner primitive.ObjectID) ([]*model.TweetDetail, error) {
	tweets := make([]*model.TweetDetail, 0)
	if err := database.Aggregate(ctx, d.tweets, aggregate.UserTweets(owner), &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (d *TweetDB) UpdateTweetContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error) {
	var tweet model.Tweet
	err := d.tweets.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "update tweet %s failed", id.Hex())
	}
	return &tweet, nil
}

func (d *TweetDB) DeleteTweet(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.tweets.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, errors.Wrapf(err, "delete tweet %s failed", id.Hex())
	}
	return res.DeletedCount > 0, nil
}
