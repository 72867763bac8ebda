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

func (d *VideoDB) CreateVideo(ctx context.Context, video *model.Video) error {
	now := time.Now().UTC()
	video.ID = primitive.NewObjectID()
	video.CreatedAt, video.UpdatedAt = now, now
	if _, err := d.videos.InsertOne(ctx, video); err != nil {
		return errors.Wrapf(err, "CreateVideo failed,err: %v", err)
	}
	return nil
}

// GetVideoByID returns nil, nil when absent
func (d *VideoDB) GetVideoByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	var video model.Video
	err := d.videos.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get video %s failed", id.Hex())
	}
	return &video, nil
}

func (d *VideoDB) GetVideoDetail(ctx context.Context, id primitive.ObjectID) (*model.VideoDetail, error) {
	var details []*model.VideoDetail
	if err := database.Aggregate(ctx, d.videos, aggregate.VideoDetail(id), &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	return details[0], nil
}

func (d *VideoDB) ListVideos(ctx context.Context, q model.VideoQuery) (*model.VideoPage, error) {
	var facets []struct {
		Metadata []struct {
			Total int64 `bson:"total"`
		} `bson:"metadata"`
		Docs []*model.VideoCard `bson:"docs"`
	}
	p := aggregate.VideoList(aggregate.VideoListFilter(q.Search, q.Owner, q.Viewer), q.SortBy, q.SortDesc, q.Page, q.Limit)
	if err := database.Aggregate(ctx, d.videos, p, &facets); err != nil {
		return nil, err
	}
	var total int64
	var docs []*model.VideoCard
	if len(facets) > 0 {
		if len(facets[0].Metadata) > 0 {
			total = facets[0].Metadata[0].Total
		}
		docs = facets[0].Docs
	}
	return model.NewVideoPage(docs, total, q.Page, q.Limit), nil
}

// IncrementVideoViews 原子自增，返回是否命中
func (d *VideoDB) IncrementVideoViews(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.videos.UpdateByID(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	if err != nil {
		return false, errors.Wrapf(err, "increment views of %s failed", id.Hex())
	}
	return res.MatchedCount > 0, nil
}

func (d *VideoDB) UpdateVideo(ctx context.Context, id primitive.ObjectID, title, description, thumbnail string) (*model.Video, error) {
	return d.updateOne(ctx, id, bson.D{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "thumbnail", Value: thumbnail},
	})
}

func (d *VideoDB) SetVideoPublished(ctx context.Context, id primitive.ObjectID, published bool) (*model.Video, error) {
	return d.updateOne(ctx, id, bson.D{{Key: "isPublished", Value: published}})
}

func (d *VideoDB) updateOne(ctx context.Context, id primitive.ObjectID, set bson.D) (*model.Video, error) {
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})
	var video model.Video
	err := d.videos.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "update video %s failed", id.Hex())
	}
	return &video, nil
}

func (d *VideoDB) DeleteVideo(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.videos.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, errors.Wrapf(err, "delete video %s failed", id.Hex())
	}
	return res.DeletedCount > 0, nil
}
