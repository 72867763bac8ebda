package db

import (
	"context"
	"testing"
	"time"

	interactiondb "VideoTube.com/cmd/interaction/dal/db"
	"VideoTube.com/cmd/model"
	userdb "VideoTube.com/cmd/user/dal/db"
	"VideoTube.com/pkg/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTweetDB(t *testing.T) {
	mdb := testsupport.MongoDB(t)
	tweets := NewTweetDB(mdb)
	users := userdb.NewUserDB(mdb)
	likes := interactiondb.NewLikeDB(mdb)
	ctx := context.Background()

	alice := &model.User{Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "hash", CoverImage: "cover.png"}
	require.NoError(t, users.CreateUser(ctx, alice))

	first := &model.Tweet{Content: "first", Owner: alice.ID}
	require.NoError(t, tweets.CreateTweet(ctx, first))
	second := &model.Tweet{Content: "second", Owner: alice.ID}
	require.NoError(t, tweets.CreateTweet(ctx, second))

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, likes.CreateLike(ctx, model.NewLike(primitive.NewObjectID(), model.LikeTarget{Kind: model.LikeTweet, ID: first.ID}, now)))
	}

	t.Run("detail counts likes", func(t *testing.T) {
		d, err := tweets.GetTweetDetail(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.EqualValues(t, 3, d.LikesCount)
		assert.Equal(t, "first", d.Content)
		require.NotNil(t, d.Owner)
		assert.Equal(t, "alice", d.Owner.Username)
		assert.Equal(t, "Alice", d.Owner.FullName)
		assert.Equal(t, "cover.png", d.Owner.CoverImage)

		d, err = tweets.GetTweetDetail(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("user tweets newest first", func(t *testing.T) {
		list, err := tweets.ListUserTweets(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Zero(t, list[0].LikesCount)
		assert.Equal(t, first.ID, list[1].ID)
		assert.EqualValues(t, 3, list[1].LikesCount)

		list, err = tweets.ListUserTweets(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("delete with likes", func(t *testing.T) {
		updated, err := tweets.UpdateTweetContent(ctx, first.ID, "edited")
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "edited", updated.Content)

		ok, err := tweets.DeleteTweet(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		n, err := likes.DeleteLikesByTarget(ctx, model.LikeTweet, first.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		got, err := tweets.GetTweetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		ok, err = tweets.DeleteTweet(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
