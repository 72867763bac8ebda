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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (d *CommentDB) CreateComment(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt, comment.UpdatedAt = now, now
	if _, err := d.comments.InsertOne(ctx, comment); err != nil {
		return errors.Wrapf(err, "CreateComment failed,err: %v", err)
	}
	return nil
}

func (d *CommentDB) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := d.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get comment %s failed", id.Hex())
	}
	return &comment, nil
}

// ListVideoComments 分页获取视频评论，最新的在前
func (d *CommentDB) ListVideoComments(ctx context.Context, video primitive.ObjectID, page, limit int64) ([]*model.CommentView, error) {
	comments := make([]*model.CommentView, 0)
	if err := database.Aggregate(ctx, d.comments, aggregate.VideoComments(video, page, limit), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (d *CommentDB) UpdateCommentContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error) {
	var comment model.Comment
	err := d.comments.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "update comment %s failed", id.Hex())
	}
	return &comment, nil
}

func (d *CommentDB) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, errors.Wrapf(err, "delete comment %s failed", id.Hex())
	}
	return res.DeletedCount > 0, nil
}

// DeleteVideoComments removes every comment on video and returns their ids
// so the caller can drop the likes pointing at them.
func (d *CommentDB) DeleteVideoComments(ctx context.Context, video primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.D{{Key: "video", Value: video}}
	cursor, err := d.comments.Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(err, "find comments of video %s failed", video.Hex())
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode comment ids failed")
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := d.comments.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}); err != nil {
		return nil, errors.Wrapf(err, "delete comments of video %s failed", video.Hex())
	}
	return ids, nil
}
