package db

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/aggregate"
	"VideoTube.com/pkg/database"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateLike returns model.ErrDuplicate when the user already liked the target
func (d *LikeDB) CreateLike(ctx context.Context, like *model.Like) error {
	like.ID = primitive.NewObjectID()
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}
	if _, err := d.likes.InsertOne(ctx, like); err != nil {
		if database.IsDuplicate(err) {
			return model.ErrDuplicate
		}
		return errors.Wrapf(err, "CreateLike failed,err: %v", err)
	}
	return nil
}

func (d *LikeDB) GetLikeByID(ctx context.Context, id primitive.ObjectID) (*model.Like, error) {
	return d.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (d *LikeDB) FindLike(ctx context.Context, user primitive.ObjectID, target model.LikeTarget) (*model.Like, error) {
	return d.findOne(ctx, bson.D{
		{Key: "likedBy", Value: user},
		{Key: target.Field(), Value: target.ID},
	})
}

func (d *LikeDB) findOne(ctx context.Context, filter bson.D) (*model.Like, error) {
	var like model.Like
	err := d.likes.FindOne(ctx, filter).Decode(&like)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "查询点赞失败")
	}
	return &like, nil
}

func (d *LikeDB) DeleteLike(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.likes.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, errors.Wrapf(err, "delete like %s failed", id.Hex())
	}
	return res.DeletedCount > 0, nil
}

// DeleteLikesByTarget 级联删除指向这些目标的点赞
func (d *LikeDB) DeleteLikesByTarget(ctx context.Context, kind model.LikeKind, ids ...primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := d.likes.DeleteMany(ctx, bson.D{{Key: string(kind), Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return 0, errors.Wrapf(err, "delete %s likes failed", kind)
	}
	return res.DeletedCount, nil
}

func (d *LikeDB) GetLikedVideos(ctx context.Context, user primitive.ObjectID) ([]*model.VideoCard, error) {
	videos := make([]*model.VideoCard, 0)
	if err := database.Aggregate(ctx, d.likes, aggregate.LikedVideos(user), &videos); err != nil {
		return nil, err
	}
	return videos, nil
}
