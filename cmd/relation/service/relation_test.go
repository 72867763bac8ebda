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

func TestSubscriptions(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewStore()
	svc := NewRelationService(store, store)

	users := map[string]*model.User{}
	for _, name := range []string{"alice", "bob", "carol"} {
		u := &model.User{Username: name, Email: name + "@example.com"}
		require.NoError(t, store.CreateUser(ctx, u))
		users[name] = u
	}
	alice, bob, carol := users["alice"], users["bob"], users["carol"]

	t.Run("self subscription rejected", func(t *testing.T) {
		_, err := svc.Subscribe(ctx, alice.ID, alice.ID.Hex())
		assert.Equal(t, errno.InvalidArgumentCode, code(err))
	})

	t.Run("unknown channel", func(t *testing.T) {
		_, err := svc.Subscribe(ctx, alice.ID, primitive.NewObjectID().Hex())
		assert.Equal(t, errno.NotFoundCode, code(err))
	})

	_, err := svc.Subscribe(ctx, bob.ID, alice.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, carol.ID, alice.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, bob.ID, carol.ID.Hex())
	require.NoError(t, err)

	t.Run("duplicate is a conflict", func(t *testing.T) {
		_, err := svc.Subscribe(ctx, bob.ID, alice.ID.Hex())
		assert.Equal(t, errno.ConflictCode, code(err))
	})

	t.Run("lists", func(t *testing.T) {
		subs, err := svc.ChannelSubscribers(ctx, alice.ID.Hex())
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, "carol", subs[0].Username)

		channels, err := svc.SubscribedChannels(ctx, bob.ID.Hex())
		require.NoError(t, err)
		require.Len(t, channels, 2)
		assert.Equal(t, "carol", channels[0].Username)

		none, err := svc.ChannelSubscribers(ctx, bob.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("toggle removes exactly one", func(t *testing.T) {
		require.NoError(t, svc.Unsubscribe(ctx, bob.ID, alice.ID.Hex()))
		subs, err := svc.ChannelSubscribers(ctx, alice.ID.Hex())
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "carol", subs[0].Username)

		assert.Equal(t, errno.NotFoundCode, code(svc.Unsubscribe(ctx, bob.ID, alice.ID.Hex())))
	})

	t.Run("malformed ids", func(t *testing.T) {
		before := store.TotalCalls()
		assert.Equal(t, errno.InvalidArgumentCode, code(svc.Unsubscribe(ctx, bob.ID, "x")))
		_, err := svc.Subscribe(ctx, bob.ID, "x")
		assert.Equal(t, errno.InvalidArgumentCode, code(err))
		_, err = svc.ChannelSubscribers(ctx, "x")
		assert.Equal(t, errno.InvalidArgumentCode, code(err))
		_, err = svc.SubscribedChannels(ctx, "x")
		assert.Equal(t, errno.InvalidArgumentCode, code(err))
		assert.Equal(t, before, store.TotalCalls())
	})
}
