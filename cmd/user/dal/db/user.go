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

func (d *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.WatchHistory == nil {
		user.WatchHistory = []primitive.ObjectID{}
	}
	if _, err := d.users.InsertOne(ctx, user); err != nil {
		if database.IsDuplicate(err) {
			return model.ErrDuplicate
		}
		return errors.Wrapf(err, "CreateUser failed,err: %v", err)
	}
	return nil
}

// GetUserByID returns nil, nil when the user does not exist
func (d *UserDB) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return d.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// FindUserByUsernameOrEmail matches either identity; blank values are ignored
func (d *UserDB) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return nil, nil
	}
	return d.findOne(ctx, bson.D{{Key: "$or", Value: or}})
}

func (d *UserDB) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	var user model.User
	err := d.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "查询用户失败")
	}
	return &user, nil
}

func (d *UserDB) UpdateUserAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*model.User, error) {
	return d.updateOne(ctx, id, bson.D{{Key: "fullName", Value: fullName}, {Key: "email", Value: email}})
}

func (d *UserDB) UpdateUserAvatar(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	return d.updateOne(ctx, id, bson.D{{Key: "avatar", Value: url}})
}

func (d *UserDB) UpdateUserCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	return d.updateOne(ctx, id, bson.D{{Key: "coverImage", Value: url}})
}

func (d *UserDB) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := d.updateOne(ctx, id, bson.D{{Key: "password", Value: hash}})
	return err
}

// updateOne $set fields and return the updated user, nil when absent
func (d *UserDB) updateOne(ctx context.Context, id primitive.ObjectID, set bson.D) (*model.User, error) {
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})
	var user model.User
	err := d.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		if database.IsDuplicate(err) {
			return nil, model.ErrDuplicate
		}
		return nil, errors.Wrapf(err, "update user %s failed", id.Hex())
	}
	return &user, nil
}

func (d *UserDB) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: token}}}}
	if token == "" {
		update = bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: 1}}}}
	}
	if _, err := d.users.UpdateByID(ctx, id, update); err != nil {
		return errors.Wrapf(err, "set refresh token of %s failed", id.Hex())
	}
	return nil
}

// AppendWatchHistory 允许重复，历史按观看顺序追加
func (d *UserDB) AppendWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	_, err := d.users.UpdateByID(ctx, userID, bson.D{{Key: "$push", Value: bson.D{{Key: "watchHistory", Value: videoID}}}})
	if err != nil {
		return errors.Wrapf(err, "append watch history of %s failed", userID.Hex())
	}
	return nil
}

func (d *UserDB) GetChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*model.ChannelProfile, error) {
	var profiles []*model.ChannelProfile
	if err := database.Aggregate(ctx, d.users, aggregate.ChannelProfile(username, viewer), &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return profiles[0], nil
}

func (d *UserDB) GetWatchHistory(ctx context.Context, id primitive.ObjectID) ([]*model.VideoCard, error) {
	var rows []struct {
		WatchHistory []*model.VideoCard `bson:"watchHistory"`
	}
	if err := database.Aggregate(ctx, d.users, aggregate.WatchHistory(id), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].WatchHistory == nil {
		return []*model.VideoCard{}, nil
	}
	return rows[0].WatchHistory, nil
}
