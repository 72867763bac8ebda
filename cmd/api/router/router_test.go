package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	interactionsvc "VideoTube.com/cmd/interaction/service"
	"VideoTube.com/cmd/model"
	playlistsvc "VideoTube.com/cmd/playlist/service"
	relationsvc "VideoTube.com/cmd/relation/service"
	tweetsvc "VideoTube.com/cmd/tweet/service"
	usersvc "VideoTube.com/cmd/user/service"
	videosvc "VideoTube.com/cmd/video/service"
	"VideoTube.com/config"
	"VideoTube.com/pkg/security"
	"VideoTube.com/pkg/testsupport"
	"VideoTube.com/pkg/utils"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

type testServer struct {
	h     *server.Hertz
	store *testsupport.Store
}

func newTestServer(t *testing.T) *testServer {
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
	deps := &Deps{
		Services: Services{
			Users: usersvc.NewUserService(store, media, pub, creds),
			Videos: videosvc.NewVideoService(videosvc.Stores{
				Videos: store, History: store, Cascade: store,
			}, media, pub),
			Tweets:    tweetsvc.NewTweetService(store, store, store),
			Comments:  interactionsvc.NewCommentService(store, store, store),
			Likes:     interactionsvc.NewLikeActionService(store, store),
			Relations: relationsvc.NewRelationService(store, store),
			Playlists: playlistsvc.NewPlaylistService(store, store, store),
		},
		Creds:  creds,
		Server: config.Server{Env: "test", TempDir: t.TempDir(), CorsOrigins: []string{"http://localhost:3000"}},
		Health: func(context.Context) error { return nil },
	}
	h := server.New()
	Register(h, deps)
	return &testServer{h: h, store: store}
}

func (s *testServer) do(t *testing.T, method, url, token string, body []byte, headers ...ut.Header) (int, *envelope) {
	t.Helper()
	if token != "" {
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + token})
	}
	var b *ut.Body
	if body != nil {
		b = &ut.Body{Body: bytes.NewReader(body), Len: len(body)}
	}
	w := ut.PerformRequest(s.h.Engine, method, url, b, headers...)
	resp := w.Result()
	env := &envelope{}
	require.NoError(t, json.Unmarshal(resp.Body(), env), string(resp.Body()))
	assert.Equal(t, resp.StatusCode(), env.StatusCode, "http status mirrors statusCode")
	return resp.StatusCode(), env
}

func jsonBody(v interface{}) ([]byte, ut.Header) {
	raw, _ := json.Marshal(v)
	return raw, ut.Header{Key: "Content-Type", Value: "application/json"}
}

func (s *testServer) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	hash, err := utils.Crypt("secret123")
	require.NoError(t, err)
	u := &model.User{Username: username, Email: username + "@example.com", FullName: username, Password: hash}
	require.NoError(t, s.store.CreateUser(context.Background(), u))
	return u
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	body, ct := jsonBody(map[string]string{"username": username, "password": "secret123"})
	status, env := s.do(t, consts.MethodPost, "/api/v1/users/login", "", body, ct)
	require.Equal(t, consts.StatusOK, status, env.Message)
	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestHealthcheckAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, consts.MethodGet, "/api/v1/healthcheck", "", nil)
	assert.Equal(t, consts.StatusOK, status)
	assert.True(t, env.Success)

	status, env = s.do(t, consts.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, consts.StatusNotFound, status)
	assert.False(t, env.Success)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)
	for _, url := range []string{"/api/v1/videos", "/api/v1/users/current-user", "/api/v1/likes/videos"} {
		status, env := s.do(t, consts.MethodGet, url, "", nil)
		assert.Equal(t, consts.StatusUnauthorized, status, url)
		assert.False(t, env.Success)
		assert.Equal(t, "null", string(env.Data))
		assert.NotNil(t, env.Errors, "error envelopes always carry an errors list")
	}
	status, _ := s.do(t, consts.MethodGet, "/api/v1/videos", "garbage", nil)
	assert.Equal(t, consts.StatusUnauthorized, status)
}

func TestLoginSetsCookiesAndRefreshRotates(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "alice")

	body, ct := jsonBody(map[string]string{"email": "alice@example.com", "password": "wrong"})
	status, _ := s.do(t, consts.MethodPost, "/api/v1/users/login", "", body, ct)
	assert.Equal(t, consts.StatusUnauthorized, status)

	body, ct = jsonBody(map[string]string{"username": "alice", "password": "secret123"})
	w := ut.PerformRequest(s.h.Engine, consts.MethodPost, "/api/v1/users/login",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)}, ct)
	resp := w.Result()
	require.Equal(t, consts.StatusOK, resp.StatusCode())
	var cookies []string
	resp.Header.VisitAllCookie(func(key, value []byte) {
		cookies = append(cookies, string(value))
	})
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Contains(t, strings.ToLower(c), "httponly")
	}

	env := &envelope{}
	require.NoError(t, json.Unmarshal(resp.Body(), env))
	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	body, ct = jsonBody(map[string]string{"refreshToken": pair.RefreshToken})
	status, env = s.do(t, consts.MethodPost, "/api/v1/users/refresh-token", "", body, ct)
	require.Equal(t, consts.StatusOK, status, env.Message)

	status, _ = s.do(t, consts.MethodPost, "/api/v1/users/refresh-token", "", body, ct)
	assert.Equal(t, consts.StatusUnauthorized, status, "rotated refresh token is rejected")

	status, _ = s.do(t, consts.MethodGet, "/api/v1/users/current-user", pair.AccessToken, nil)
	assert.Equal(t, consts.StatusOK, status)
}

func TestRegisterMultipart(t *testing.T) {
	s := newTestServer(t)

	form := func(withAvatar bool) ([]byte, ut.Header) {
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		for k, v := range map[string]string{
			"fullName": "Bob", "username": "bob", "email": "bob@example.com", "password": "pw",
		} {
			require.NoError(t, mw.WriteField(k, v))
		}
		if withAvatar {
			fw, err := mw.CreateFormFile("avatar", "me.png")
			require.NoError(t, err)
			_, err = fw.Write([]byte("png"))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())
		return buf.Bytes(), ut.Header{Key: "Content-Type", Value: mw.FormDataContentType()}
	}

	body, ct := form(false)
	status, env := s.do(t, consts.MethodPost, "/api/v1/users/register", "", body, ct)
	assert.Equal(t, consts.StatusBadRequest, status, env.Message)

	body, ct = form(true)
	status, env = s.do(t, consts.MethodPost, "/api/v1/users/register", "", body, ct)
	require.Equal(t, consts.StatusCreated, status, env.Message)
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "password")

	status, _ = s.do(t, consts.MethodPost, "/api/v1/users/register", "", body, ct)
	assert.Equal(t, consts.StatusConflict, status)
}

func TestTweetsLikesAndSubscriptions(t *testing.T) {
	s := newTestServer(t)
	alice := s.seedUser(t, "alice")
	s.seedUser(t, "bob")
	aliceToken := s.login(t, "alice")
	bobToken := s.login(t, "bob")

	body, ct := jsonBody(map[string]string{"content": "hello"})
	status, env := s.do(t, consts.MethodPost, "/api/v1/tweets", aliceToken, body, ct)
	require.Equal(t, consts.StatusCreated, status, env.Message)
	var tweet model.Tweet
	require.NoError(t, json.Unmarshal(env.Data, &tweet))

	status, env = s.do(t, consts.MethodGet, "/api/v1/tweets/not-an-id", aliceToken, nil)
	assert.Equal(t, consts.StatusBadRequest, status)
	assert.NotEmpty(t, env.Errors)

	status, _ = s.do(t, consts.MethodDelete, "/api/v1/tweets/"+tweet.ID.Hex(), bobToken, nil)
	assert.Equal(t, consts.StatusForbidden, status)

	likeURL := "/api/v1/likes/add/t/" + tweet.ID.Hex()
	status, _ = s.do(t, consts.MethodPost, likeURL, bobToken, nil)
	assert.Equal(t, consts.StatusCreated, status)
	status, _ = s.do(t, consts.MethodPost, likeURL, bobToken, nil)
	assert.Equal(t, consts.StatusConflict, status)

	toggleURL := "/api/v1/likes/toggle/t/" + tweet.ID.Hex()
	status, _ = s.do(t, consts.MethodPost, toggleURL, bobToken, nil)
	assert.Equal(t, consts.StatusOK, status)
	status, _ = s.do(t, consts.MethodPost, toggleURL, bobToken, nil)
	assert.Equal(t, consts.StatusNotFound, status)

	status, _ = s.do(t, consts.MethodPost, "/api/v1/subscriptions/add/c/"+alice.ID.Hex(), aliceToken, nil)
	assert.Equal(t, consts.StatusBadRequest, status)
	status, _ = s.do(t, consts.MethodPost, "/api/v1/subscriptions/add/c/"+alice.ID.Hex(), bobToken, nil)
	assert.Equal(t, consts.StatusCreated, status)
	status, env = s.do(t, consts.MethodGet, "/api/v1/subscriptions/c/"+alice.ID.Hex(), bobToken, nil)
	require.Equal(t, consts.StatusOK, status)
	assert.Contains(t, string(env.Data), `"username":"bob"`)
}

func TestPanicBecomesEnvelopeWithoutStack(t *testing.T) {
	s := newTestServer(t)
	s.h.GET("/boom", func(ctx context.Context, c *app.RequestContext) {
		panic("kaboom")
	})
	w := ut.PerformRequest(s.h.Engine, consts.MethodGet, "/boom", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusInternalServerError, resp.StatusCode())
	assert.NotContains(t, string(resp.Body()), "kaboom")
	assert.NotContains(t, string(resp.Body()), "goroutine")
}
