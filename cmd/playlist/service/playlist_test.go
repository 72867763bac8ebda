package service

import (
	"context"
	"testing"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func code(err error) int {
	return errno.ConvertErr(err).ErrCode
}

type fixture struct {
	store *testsupport.Store
	svc   *PlaylistService
	alice *model.User
	bob   *model.User
	v1    *model.Video
	v2    *model.Video
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := testsupport.NewStore()
	f := &fixture{store: store, svc: NewPlaylistService(store, store, store)}
	f.alice = &model.User{Username: "alice", Email: "alice@example.com"}
	f.bob = &model.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, store.CreateUser(ctx, f.alice))
	require.NoError(t, store.CreateUser(ctx, f.bob))
	f.v1 = &model.Video{Title: "one", Owner: f.bob.ID, IsPublished: true, Views: 3}
	f.v2 = &model.Video{Title: "two", Owner: f.bob.ID, IsPublished: true, Views: 4}
	require.NoError(t, store.CreateVideo(ctx, f.v1))
	require.NoError(t, store.CreateVideo(ctx, f.v2))
	return f
}

func TestPlaylistVideos(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.CreatePlaylist(ctx, f.alice.ID, " ", "")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))

	p, err := f.svc.CreatePlaylist(ctx, f.alice.ID, "favourites", "the good ones")
	require.NoError(t, err)
	assert.Empty(t, p.Videos)
	raw := p.ID.Hex()

	_, err = f.svc.AddVideo(ctx, f.alice.ID, f.v2.ID.Hex(), raw)
	require.NoError(t, err)
	_, err = f.svc.AddVideo(ctx, f.alice.ID, f.v1.ID.Hex(), raw)
	require.NoError(t, err)

	t.Run("adding twice keeps one entry", func(t *testing.T) {
		updated, err := f.svc.AddVideo(ctx, f.alice.ID, f.v2.ID.Hex(), raw)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{f.v2.ID, f.v1.ID}, updated.Videos)
	})

	t.Run("unknown video", func(t *testing.T) {
		_, err := f.svc.AddVideo(ctx, f.alice.ID, primitive.NewObjectID().Hex(), raw)
		assert.Equal(t, errno.NotFoundCode, code(err))
	})

	t.Run("detail keeps playlist order", func(t *testing.T) {
		detail, err := f.svc.GetPlaylist(ctx, raw)
		require.NoError(t, err)
		require.Len(t, detail.Videos, 2)
		assert.Equal(t, "two", detail.Videos[0].Title)
		assert.Equal(t, int64(2), detail.TotalVideos)
		assert.Equal(t, int64(7), detail.TotalViews)
		assert.Equal(t, "alice", detail.Owner.Username)
	})

	t.Run("non owner cannot modify", func(t *testing.T) {
		_, err := f.svc.AddVideo(ctx, f.bob.ID, f.v1.ID.Hex(), raw)
		assert.Equal(t, errno.ForbiddenCode, code(err))
		_, err = f.svc.RemoveVideo(ctx, f.bob.ID, f.v1.ID.Hex(), raw)
		assert.Equal(t, errno.ForbiddenCode, code(err))
		assert.Equal(t, errno.ForbiddenCode, code(f.svc.DeletePlaylist(ctx, f.bob.ID, raw)))
	})

	t.Run("remove", func(t *testing.T) {
		updated, err := f.svc.RemoveVideo(ctx, f.alice.ID, f.v2.ID.Hex(), raw)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{f.v1.ID}, updated.Videos)

		_, err = f.svc.RemoveVideo(ctx, f.alice.ID, f.v2.ID.Hex(), raw)
		assert.Equal(t, errno.NotFoundCode, code(err))
	})
}

func TestUpdateAndDeletePlaylist(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	p, err := f.svc.CreatePlaylist(ctx, f.alice.ID, "watch later", "")
	require.NoError(t, err)

	_, err = f.svc.UpdatePlaylist(ctx, f.alice.ID, p.ID.Hex(), "renamed", "")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))
	_, err = f.svc.UpdatePlaylist(ctx, f.alice.ID, primitive.NewObjectID().Hex(), "renamed", "desc")
	assert.Equal(t, errno.NotFoundCode, code(err))
	_, err = f.svc.UpdatePlaylist(ctx, f.bob.ID, p.ID.Hex(), "renamed", "desc")
	assert.Equal(t, errno.ForbiddenCode, code(err))

	updated, err := f.svc.UpdatePlaylist(ctx, f.alice.ID, p.ID.Hex(), "renamed", "desc")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "desc", updated.Description)

	require.NoError(t, f.svc.DeletePlaylist(ctx, f.alice.ID, p.ID.Hex()))
	_, err = f.svc.GetPlaylist(ctx, p.ID.Hex())
	assert.Equal(t, errno.NotFoundCode, code(err))
	assert.Equal(t, errno.NotFoundCode, code(f.svc.DeletePlaylist(ctx, f.alice.ID, p.ID.Hex())))
}

func TestUserPlaylists(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	for _, name := range []string{"a", "b"} {
		_, err := f.svc.CreatePlaylist(ctx, f.alice.ID, name, "")
		require.NoError(t, err)
	}

	lists, err := f.svc.UserPlaylists(ctx, f.alice.ID.Hex())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "b", lists[0].Name)

	empty, err := f.svc.UserPlaylists(ctx, f.bob.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.svc.UserPlaylists(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, errno.NotFoundCode, code(err))

	before := f.store.TotalCalls()
	_, err = f.svc.UserPlaylists(ctx, "nope")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))
	_, err = f.svc.GetPlaylist(ctx, "nope")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))
	_, err = f.svc.AddVideo(ctx, f.alice.ID, "nope", primitive.NewObjectID().Hex())
	assert.Equal(t, errno.InvalidArgumentCode, code(err))
	assert.Equal(t, before, f.store.TotalCalls())
}
