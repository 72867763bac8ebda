package database

import (
	"context"

	"VideoTube.com/config"
	"VideoTube.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect 建立 MongoDB 连接并确认主节点可达
func Connect(ctx context.Context, c config.Mongo) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(c.URI)
	if c.Timeout > 0 {
		opts.SetTimeout(c.Timeout)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect mongo failed")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, errors.Wrap(err, "ping mongo failed")
	}
	hlog.Infof("Connect MongoDB Success, database: %s", c.Database)
	return client, client.Database(c.Database), nil
}

// EnsureIndexes creates the unique constraints the handlers rely on
// for duplicate detection. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}
	// like 只有一个目标字段存在，唯一约束需要 partial filter
	uniqueLike := func(target string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: target, Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: target, Value: bson.D{{Key: "$exists", Value: true}}}}),
		}
	}

	indexes := map[string][]mongo.IndexModel{
		constants.UserCollection: {
			unique(bson.D{{Key: "username", Value: 1}}),
			unique(bson.D{{Key: "email", Value: 1}}),
		},
		constants.LikeCollection: {
			uniqueLike("video"),
			uniqueLike("comment"),
			uniqueLike("tweet"),
		},
		constants.SubscriptionCollection: {
			unique(bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}}),
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s failed", coll)
		}
	}
	return nil
}

// StartSpan child span for one store call
func StartSpan(ctx context.Context, collection, op string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mongo."+op)
	ext.DBType.Set(span, "mongodb")
	span.SetTag("db.collection", collection)
	return span, ctx
}

// Aggregate runs pipeline on coll and decodes every result document into out (a slice pointer)
func Aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out interface{}) error {
	span, ctx := StartSpan(ctx, coll.Name(), "aggregate")
	defer span.Finish()

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		ext.Error.Set(span, true)
		return errors.Wrapf(err, "aggregate %s failed", coll.Name())
	}
	if err := cursor.All(ctx, out); err != nil {
		ext.Error.Set(span, true)
		return errors.Wrapf(err, "decode %s aggregate failed", coll.Name())
	}
	return nil
}

// IsDuplicate reports a unique index violation
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
