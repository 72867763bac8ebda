package db

import (
	"context"
	"testing"
	"time"

	"VideoTube.com/cmd/model"
	userdb "VideoTube.com/cmd/user/dal/db"
	videodb "VideoTube.com/cmd/video/dal/db"
	"VideoTube.com/pkg/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLikeUniquePerTarget(t *testing.T) {
	mdb := testsupport.MongoDB(t)
	likes := NewLikeDB(mdb)
	ctx := context.Background()

	user := primitive.NewObjectID()
	video := model.LikeTarget{Kind: model.LikeVideo, ID: primitive.NewObjectID()}
	tweet := model.LikeTarget{Kind: model.LikeTweet, ID: primitive.NewObjectID()}

	require.NoError(t, likes.CreateLike(ctx, model.NewLike(user, video, time.Now().UTC())))
	assert.ErrorIs(t, likes.CreateLike(ctx, model.NewLike(user, video, time.Now().UTC())), model.ErrDuplicate)
	// 不同目标类型互不影响
	require.NoError(t, likes.CreateLike(ctx, model.NewLike(user, tweet, time.Now().UTC())))

	found, err := likes.FindLike(ctx, user, video)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, video, found.Target())

	n, err := likes.DeleteLikesByTarget(ctx, model.LikeVideo, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	found, err = likes.FindLike(ctx, user, video)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDeleteVideoComments(t *testing.T) {
	mdb := testsupport.MongoDB(t)
	comments := NewCommentDB(mdb)
	ctx := context.Background()

	video, other := primitive.NewObjectID(), primitive.NewObjectID()
	owner := primitive.NewObjectID()
	for _, v := range []primitive.ObjectID{video, video, other} {
		require.NoError(t, comments.CreateComment(ctx, &model.Comment{Content: "nice", Video: v, Owner: owner}))
	}

	ids, err := comments.DeleteVideoComments(ctx, video)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	left, err := comments.ListVideoComments(ctx, other, 1, 10)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	gone, err := comments.ListVideoComments(ctx, video, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, gone)
}

func TestGetLikedVideos(t *testing.T) {
	mdb := testsupport.MongoDB(t)
	likes := NewLikeDB(mdb)
	videos := videodb.NewVideoDB(mdb)
	users := userdb.NewUserDB(mdb)
	ctx := context.Background()

	alice := &model.User{Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "hash", Avatar: "a.png"}
	bob := &model.User{Username: "bob", Email: "bob@example.com", FullName: "Bob", Password: "hash"}
	require.NoError(t, users.CreateUser(ctx, alice))
	require.NoError(t, users.CreateUser(ctx, bob))

	older := &model.Video{Title: "older", Owner: alice.ID, IsPublished: true}
	newer := &model.Video{Title: "newer", Owner: alice.ID, IsPublished: true}
	require.NoError(t, videos.CreateVideo(ctx, older))
	require.NoError(t, videos.CreateVideo(ctx, newer))

	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, likes.CreateLike(ctx, model.NewLike(bob.ID, model.LikeTarget{Kind: model.LikeVideo, ID: older.ID}, base)))
	require.NoError(t, likes.CreateLike(ctx, model.NewLike(bob.ID, model.LikeTarget{Kind: model.LikeVideo, ID: newer.ID}, base.Add(time.Minute))))
	// 推文点赞和别人的点赞都不在列表里
	require.NoError(t, likes.CreateLike(ctx, model.NewLike(bob.ID, model.LikeTarget{Kind: model.LikeTweet, ID: primitive.NewObjectID()}, base)))
	require.NoError(t, likes.CreateLike(ctx, model.NewLike(alice.ID, model.LikeTarget{Kind: model.LikeVideo, ID: older.ID}, base)))

	liked, err := likes.GetLikedVideos(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	assert.Equal(t, newer.ID, liked[0].ID)
	assert.Equal(t, older.ID, liked[1].ID)
	require.NotNil(t, liked[0].Owner)
	assert.Equal(t, "alice", liked[0].Owner.Username)
	assert.Equal(t, "a.png", liked[0].Owner.Avatar)

	liked, err = likes.GetLikedVideos(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, liked)
}
