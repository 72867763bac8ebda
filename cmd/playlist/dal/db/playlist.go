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

type PlaylistDB struct {
	playlists *mongo.Collection
}

func NewPlaylistDB(db *mongo.Database) *PlaylistDB {
	return &PlaylistDB{playlists: db.Collection(constants.PlaylistCollection)}
}

func (d *PlaylistDB) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	now := time.Now().UTC()
	playlist.ID = primitive.NewObjectID()
	playlist.CreatedAt, playlist.UpdatedAt = now, now
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}
	if _, err := d.playlists.InsertOne(ctx, playlist); err != nil {
		return errors.Wrapf(err, "CreatePlaylist failed,err: %v", err)
	}
	return nil
}

func (d *PlaylistDB) GetPlaylistByID(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	var playlist model.Playlist
	err := d.playlists.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get playlist %s failed", id.Hex())
	}
	return &playlist, nil
}

func (d *PlaylistDB) GetPlaylistDetail(ctx context.Context, id primitive.ObjectID) (*model.PlaylistDetail, error) {
	var details []*model.PlaylistDetail
	if err := database.Aggregate(ctx, d.playlists, aggregate.PlaylistDetail(id), &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	if details[0].Videos == nil {
		details[0].Videos = []*model.VideoCard{}
	}
	return details[0], nil
}

func (d *PlaylistDB) ListUserPlaylists(ctx context.Context, owner primitive.ObjectID) ([]*model.PlaylistSummary, error) {
	playlists := make([]*model.PlaylistSummary, 0)
	if err := database.Aggregate(ctx, d.playlists, aggregate.UserPlaylists(owner), &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (d *PlaylistDB) UpdatePlaylist(ctx context.Context, id primitive.ObjectID, name, description string) (*model.Playlist, error) {
	return d.updateOne(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "description", Value: description},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}})
}

// AddVideoToPlaylist $addToSet，重复添加不会产生重复项
func (d *PlaylistDB) AddVideoToPlaylist(ctx context.Context, id, video primitive.ObjectID) (*model.Playlist, error) {
	return d.updateOne(ctx, id, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "videos", Value: video}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	})
}

func (d *PlaylistDB) RemoveVideoFromPlaylist(ctx context.Context, id, video primitive.ObjectID) (*model.Playlist, error) {
	return d.updateOne(ctx, id, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "videos", Value: video}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	})
}

func (d *PlaylistDB) updateOne(ctx context.Context, id primitive.ObjectID, update bson.D) (*model.Playlist, error) {
	var playlist model.Playlist
	err := d.playlists.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "update playlist %s failed", id.Hex())
	}
	return &playlist, nil
}

func (d *PlaylistDB) DeletePlaylist(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.playlists.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, errors.Wrapf(err, "delete playlist %s failed", id.Hex())
	}
	return res.DeletedCount > 0, nil
}

// PullVideoFromAll 视频删除后从所有播放列表中移除
func (d *PlaylistDB) PullVideoFromAll(ctx context.Context, video primitive.ObjectID) error {
	_, err := d.playlists.UpdateMany(ctx,
		bson.D{{Key: "videos", Value: video}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "videos", Value: video}}}},
	)
	if err != nil {
		return errors.Wrapf(err, "pull video %s from playlists failed", video.Hex())
	}
	return nil
}
