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

func seedUser(t *testing.T, users *userdb.UserDB, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", FullName: name, Password: "hash"}
	require.NoError(t, users.CreateUser(context.Background(), u))
	return u
}

func TestVideoDB(t *testing.T) {
	mdb := testsupport.MongoDB(t)
	videos := NewVideoDB(mdb)
	users := userdb.NewUserDB(mdb)
	likes := interactiondb.NewLikeDB(mdb)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	goVideo := &model.Video{Title: "Go basics", Description: "channels", Owner: alice.ID, IsPublished: true, Views: 5}
	rustVideo := &model.Video{Title: "Rust tips", Description: "borrowing", Owner: alice.ID, IsPublished: true, Views: 9}
	draft := &model.Video{Title: "Draft", Description: "wip", Owner: alice.ID}
	for _, v := range []*model.Video{goVideo, rustVideo, draft} {
		require.NoError(t, videos.CreateVideo(ctx, v))
	}
	now := time.Now().UTC()
	for _, u := range []*model.User{alice, bob} {
		require.NoError(t, likes.CreateLike(ctx, model.NewLike(u.ID, model.LikeTarget{Kind: model.LikeVideo, ID: goVideo.ID}, now)))
	}
	// 评论的点赞不计入视频
	require.NoError(t, likes.CreateLike(ctx, model.NewLike(bob.ID, model.LikeTarget{Kind: model.LikeComment, ID: goVideo.ID}, now)))

	t.Run("detail counts likes and embeds owner", func(t *testing.T) {
		d, err := videos.GetVideoDetail(ctx, goVideo.ID)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.EqualValues(t, 2, d.LikesCount)
		require.NotNil(t, d.Owner)
		assert.Equal(t, "alice", d.Owner.Username)
		assert.Equal(t, alice.ID, d.Owner.ID)

		d, err = videos.GetVideoDetail(ctx, rustVideo.ID)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Zero(t, d.LikesCount)

		d, err = videos.GetVideoDetail(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("views increase by exactly one per call", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			hit, err := videos.IncrementVideoViews(ctx, rustVideo.ID)
			require.NoError(t, err)
			assert.True(t, hit)
		}
		v, err := videos.GetVideoByID(ctx, rustVideo.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 12, v.Views)

		hit, err := videos.IncrementVideoViews(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("list totals", func(t *testing.T) {
		page, err := videos.ListVideos(ctx, model.VideoQuery{Page: 1, Limit: 10, Viewer: bob.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.TotalDocs, "drafts are hidden from other users")
		assert.Len(t, page.Docs, 2)

		page, err = videos.ListVideos(ctx, model.VideoQuery{Page: 1, Limit: 10, Viewer: alice.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.TotalDocs)

		page, err = videos.ListVideos(ctx, model.VideoQuery{Page: 1, Limit: 10, Viewer: bob.ID, Search: "CHANNELS"})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.TotalDocs)
		assert.Equal(t, goVideo.ID, page.Docs[0].ID)
		assert.Equal(t, "alice", page.Docs[0].Owner.Username)
	})

	t.Run("list pages and sorts", func(t *testing.T) {
		page, err := videos.ListVideos(ctx, model.VideoQuery{Page: 1, Limit: 2, Viewer: alice.ID, SortBy: "views", SortDesc: true})
		require.NoError(t, err)
		require.Len(t, page.Docs, 2)
		assert.Equal(t, rustVideo.ID, page.Docs[0].ID)
		assert.Equal(t, goVideo.ID, page.Docs[1].ID)
		assert.EqualValues(t, 2, page.TotalPages)
		assert.True(t, page.HasNextPage)

		page, err = videos.ListVideos(ctx, model.VideoQuery{Page: 2, Limit: 2, Viewer: alice.ID, SortBy: "views", SortDesc: true})
		require.NoError(t, err)
		require.Len(t, page.Docs, 1)
		assert.Equal(t, draft.ID, page.Docs[0].ID)
		assert.EqualValues(t, 3, page.TotalDocs)
		assert.True(t, page.HasPrevPage)
		assert.False(t, page.HasNextPage)
	})

	t.Run("owner filter with no match", func(t *testing.T) {
		page, err := videos.ListVideos(ctx, model.VideoQuery{Page: 1, Limit: 10, Viewer: bob.ID, Owner: &bob.ID})
		require.NoError(t, err)
		assert.Zero(t, page.TotalDocs)
		assert.NotNil(t, page.Docs)
		assert.Empty(t, page.Docs)
	})

	t.Run("update publish and delete", func(t *testing.T) {
		v, err := videos.SetVideoPublished(ctx, draft.ID, true)
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.True(t, v.IsPublished)

		v, err = videos.UpdateVideo(ctx, draft.ID, "Final", "done", "thumb.png")
		require.NoError(t, err)
		assert.Equal(t, "Final", v.Title)
		assert.Equal(t, "thumb.png", v.Thumbnail)

		ok, err := videos.DeleteVideo(ctx, draft.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		v, err = videos.GetVideoByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Nil(t, v)

		v, err = videos.UpdateVideo(ctx, draft.ID, "x", "y", "")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
