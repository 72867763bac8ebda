package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/config"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/security"
	"VideoTube.com/pkg/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	svc   *UserService
	store *testsupport.Store
	media *testsupport.Gateway
	pub   *testsupport.Publisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testsupport.NewStore()
	media := testsupport.NewGateway()
	pub := &testsupport.Publisher{}
	creds := security.NewCredentialManager(store, config.Auth{
		AccessTokenSecret:  "access-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenTTL:    24 * time.Hour,
		Issuer:             "videotube",
	})
	return &fixture{svc: NewUserService(store, media, pub, creds), store: store, media: media, pub: pub}
}

func (f *fixture) register(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), &RegisterParams{
		FullName:   "Full " + username,
		Username:   username,
		Email:      username + "@example.com",
		Password:   "secret123",
		AvatarPath: "/tmp/" + username + "-avatar.png",
	})
	require.NoError(t, err)
	return u
}

func code(err error) int {
	return errno.ConvertErr(err).ErrCode
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success hides credentials", func(t *testing.T) {
		f := newFixture(t)
		u, err := f.svc.Register(ctx, &RegisterParams{
			FullName: "Alice", Username: " Alice ", Email: "ALICE@example.com", Password: "pw",
			AvatarPath: "/tmp/a.png", CoverImagePath: "/tmp/c.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.NotEmpty(t, u.Avatar)
		assert.NotEmpty(t, u.CoverImage)
		assert.NotEqual(t, "pw", u.Password)

		raw, err := json.Marshal(u)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
		assert.NotContains(t, string(raw), "refreshToken")
	})

	t.Run("missing fields never reach the store", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, &RegisterParams{Username: "bob", AvatarPath: "/tmp/a.png"})
		require.Error(t, err)
		e := errno.ConvertErr(err)
		assert.Equal(t, errno.InvalidArgumentCode, e.ErrCode)
		assert.ElementsMatch(t, []string{"fullName is required", "email is required", "password is required"}, e.Errors)
		assert.Zero(t, f.store.TotalCalls())
		assert.Empty(t, f.media.Uploads())
	})

	t.Run("avatar required", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, &RegisterParams{FullName: "B", Username: "bob", Email: "bob@example.com", Password: "pw"})
		assert.Equal(t, errno.InvalidArgumentCode, code(err))
	})

	t.Run("duplicate identity is a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "carol")
		_, err := f.svc.Register(ctx, &RegisterParams{
			FullName: "C", Username: "carol", Email: "other@example.com", Password: "pw", AvatarPath: "/tmp/x.png",
		})
		assert.Equal(t, errno.ConflictCode, code(err))
		assert.Equal(t, 1, f.media.Objects())
	})

	t.Run("store failure removes uploaded assets", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailOn("CreateUser", errors.New("write concern"))
		_, err := f.svc.Register(ctx, &RegisterParams{
			FullName: "D", Username: "dave", Email: "dave@example.com", Password: "pw",
			AvatarPath: "/tmp/a.png", CoverImagePath: "/tmp/c.png",
		})
		assert.Equal(t, errno.ServiceErrCode, code(err))
		assert.Zero(t, f.media.Objects())
		assert.Len(t, f.media.Deletes(), 2)
	})

	t.Run("failed compensation publishes orphan event", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailOn("CreateUser", errors.New("write concern"))
		f.media.FailDelete("*", errors.New("storage down"))
		_, err := f.svc.Register(ctx, &RegisterParams{
			FullName: "E", Username: "erin", Email: "erin@example.com", Password: "pw", AvatarPath: "/tmp/a.png",
		})
		require.Error(t, err)
		events := f.pub.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "register failed", events[0].Reason)
	})

	t.Run("cover upload failure discards avatar", func(t *testing.T) {
		f := newFixture(t)
		f.media.FailUpload("/tmp/bad.png", errors.New("upload failed"))
		_, err := f.svc.Register(ctx, &RegisterParams{
			FullName: "F", Username: "frank", Email: "frank@example.com", Password: "pw",
			AvatarPath: "/tmp/a.png", CoverImagePath: "/tmp/bad.png",
		})
		require.Error(t, err)
		assert.Zero(t, f.media.Objects())
		assert.Zero(t, f.store.Calls("CreateUser"))
	})
}

func TestLoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "alice")

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := f.svc.Login(ctx, &LoginParams{Username: "ghost", Password: "x"})
		assert.Equal(t, errno.NotFoundCode, code(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := f.svc.Login(ctx, &LoginParams{Email: "alice@example.com", Password: "nope"})
		assert.Equal(t, errno.UnauthorizedCode, code(err))
	})

	t.Run("identity required", func(t *testing.T) {
		_, _, err := f.svc.Login(ctx, &LoginParams{Password: "secret123"})
		assert.Equal(t, errno.InvalidArgumentCode, code(err))
	})

	user, pair, err := f.svc.Login(ctx, &LoginParams{Username: "ALICE", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)

	rotated, err := f.svc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = f.svc.RefreshToken(ctx, pair.RefreshToken)
	assert.Equal(t, errno.UnauthorizedCode, code(err), "rotated token must not be reusable")

	require.NoError(t, f.svc.Logout(ctx, u.ID))
	_, err = f.svc.RefreshToken(ctx, rotated.RefreshToken)
	assert.Equal(t, errno.UnauthorizedCode, code(err))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "alice")
	_, pair, err := f.svc.Login(ctx, &LoginParams{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, u.ID, "wrong", "next456")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))

	err = f.svc.ChangePassword(ctx, u.ID, "", "next456")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))

	require.NoError(t, f.svc.ChangePassword(ctx, u.ID, "secret123", "next456"))
	_, err = f.svc.RefreshToken(ctx, pair.RefreshToken)
	assert.Equal(t, errno.UnauthorizedCode, code(err))

	_, _, err = f.svc.Login(ctx, &LoginParams{Username: "alice", Password: "next456"})
	assert.NoError(t, err)
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	f.register(t, "bob")

	updated, err := f.svc.UpdateAccount(ctx, alice.ID, "Alice Liddell", "Liddell@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", updated.FullName)
	assert.Equal(t, "liddell@example.com", updated.Email)

	_, err = f.svc.UpdateAccount(ctx, alice.ID, "Alice", "bob@example.com")
	assert.Equal(t, errno.ConflictCode, code(err))

	_, err = f.svc.UpdateAccount(ctx, alice.ID, " ", "a@example.com")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))

	_, err = f.svc.UpdateAccount(ctx, alice.ID, "Alice", "not-an-email")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))
}

func TestUpdateAvatarReplacesOldAsset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "alice")
	old := u.Avatar

	updated, err := f.svc.UpdateAvatar(ctx, u.ID, "/tmp/new.png")
	require.NoError(t, err)
	assert.NotEqual(t, old, updated.Avatar)
	assert.False(t, f.media.Stored(old))
	assert.True(t, f.media.Stored(updated.Avatar))

	_, err = f.svc.UpdateCoverImage(ctx, u.ID, "")
	assert.Equal(t, errno.InvalidArgumentCode, code(err))

	_, err = f.svc.UpdateAvatar(ctx, primitive.NewObjectID(), "/tmp/x.png")
	assert.Equal(t, errno.NotFoundCode, code(err))
}

func TestChannelProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	require.NoError(t, f.store.CreateSubscription(ctx, &model.Subscription{Subscriber: bob.ID, Channel: alice.ID}))

	p, err := f.svc.ChannelProfile(ctx, "alice", bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.SubscribersCount)
	assert.True(t, p.IsSubscribed)

	p, err = f.svc.ChannelProfile(ctx, "alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, p.IsSubscribed)

	_, err = f.svc.ChannelProfile(ctx, "ghost", bob.ID)
	assert.Equal(t, errno.NotFoundCode, code(err))

	_, err = f.svc.ChannelProfile(ctx, "  ", bob.ID)
	assert.Equal(t, errno.InvalidArgumentCode, code(err))
}
