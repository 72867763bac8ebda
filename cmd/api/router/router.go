package router

import (
	"context"
	"time"

	interaction "VideoTube.com/cmd/api/handlers/interaction"
	playlist "VideoTube.com/cmd/api/handlers/playlist"
	relation "VideoTube.com/cmd/api/handlers/relation"
	tweet "VideoTube.com/cmd/api/handlers/tweet"
	user "VideoTube.com/cmd/api/handlers/user"
	video "VideoTube.com/cmd/api/handlers/video"
	"VideoTube.com/cmd/api/router/authfunc"
	interactionsvc "VideoTube.com/cmd/interaction/service"
	"VideoTube.com/cmd/model"
	playlistsvc "VideoTube.com/cmd/playlist/service"
	relationsvc "VideoTube.com/cmd/relation/service"
	tweetsvc "VideoTube.com/cmd/tweet/service"
	usersvc "VideoTube.com/cmd/user/service"
	videosvc "VideoTube.com/cmd/video/service"
	"VideoTube.com/config"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/middleware"
	"VideoTube.com/pkg/response"
	"VideoTube.com/pkg/security"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
)

type Services struct {
	Users     *usersvc.UserService
	Videos    *videosvc.VideoService
	Tweets    *tweetsvc.TweetService
	Comments  *interactionsvc.CommentService
	Likes     *interactionsvc.LikeActionService
	Relations *relationsvc.RelationService
	Playlists *playlistsvc.PlaylistService
}

type Deps struct {
	Services Services
	Creds    *security.CredentialManager
	// Limiter nil disables rate limiting
	Limiter *security.RateLimiter
	Server  config.Server
	// Health reports whether the backing store is reachable
	Health func(ctx context.Context) error
}

// Register installs the global middleware and every /api/v1 route
func Register(h *server.Hertz, d *Deps) {
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			response.Abort(ctx, c, errno.ServiceErr)
		})))
	h.Use(middleware.AccessLog(), middleware.Tracing())

	// 配置 CORS
	h.Use(cors.New(cors.Config{
		AllowOrigins:     d.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h.NoRoute(func(ctx context.Context, c *app.RequestContext) {
		response.SendResponse(ctx, c, errno.NotFoundErr.WithMessage("Route not found"), nil)
	})

	auth := authfunc.Auth(d.Creds)
	v1 := h.Group("/api/v1")
	v1.GET("/healthcheck", healthcheck(d.Health))

	uh := user.New(d.Services.Users, d.Server)
	users := v1.Group("/users")
	users.POST("/register", limit(d.Limiter, "register", uh.RegisterUser)...)
	users.POST("/login", limit(d.Limiter, "login", uh.LoginUser)...)
	users.POST("/refresh-token", limit(d.Limiter, "refresh", uh.RefreshAccessToken)...)
	secured := users.Group("", auth...)
	secured.POST("/logout", uh.LogoutUser)
	secured.POST("/change-password", uh.ChangePassword)
	secured.GET("/current-user", uh.GetCurrentUser)
	secured.PATCH("/update-account", uh.UpdateAccount)
	secured.PATCH("/avatar", uh.UpdateAvatar)
	secured.PATCH("/cover-image", uh.UpdateCoverImage)
	secured.GET("/c/:username", uh.GetChannelProfile)
	secured.GET("/history", uh.GetWatchHistory)

	vh := video.New(d.Services.Videos, d.Server)
	videos := v1.Group("/videos", auth...)
	videos.GET("", vh.ListVideos)
	videos.POST("", vh.PublishVideo)
	videos.GET("/:videoId", vh.VideoVisit)
	videos.PATCH("/:videoId", vh.UpdateVideo)
	videos.DELETE("/:videoId", vh.DeleteVideo)
	videos.PATCH("/toggle/publish/:videoId", vh.TogglePublish)

	th := tweet.New(d.Services.Tweets)
	tweets := v1.Group("/tweets", auth...)
	tweets.POST("", th.CreateTweet)
	tweets.GET("/user/:userId", th.UserTweets)
	tweets.GET("/:tweetId", th.GetTweet)
	tweets.PATCH("/:tweetId", th.UpdateTweet)
	tweets.DELETE("/:tweetId", th.DeleteTweet)

	ih := interaction.New(d.Services.Comments, d.Services.Likes)
	comments := v1.Group("/comments", auth...)
	comments.GET("/:videoId", ih.ListComment)
	comments.POST("/:videoId", ih.CreateComment)
	comments.PATCH("/c/:commentId", ih.UpdateComment)
	comments.DELETE("/c/:commentId", ih.DeleteComment)

	likes := v1.Group("/likes", auth...)
	likes.POST("/toggle/v/:videoId", ih.ToggleLike(model.LikeVideo, "videoId"))
	likes.POST("/toggle/c/:commentId", ih.ToggleLike(model.LikeComment, "commentId"))
	likes.POST("/toggle/t/:tweetId", ih.ToggleLike(model.LikeTweet, "tweetId"))
	likes.POST("/add/v/:videoId", ih.AddLike(model.LikeVideo, "videoId"))
	likes.POST("/add/c/:commentId", ih.AddLike(model.LikeComment, "commentId"))
	likes.POST("/add/t/:tweetId", ih.AddLike(model.LikeTweet, "tweetId"))
	likes.GET("/videos", ih.LikedVideos)
	likes.GET("/l/:likeId", ih.GetLike)

	rh := relation.New(d.Services.Relations)
	subs := v1.Group("/subscriptions", auth...)
	subs.POST("/c/:channelId", rh.ToggleSubscription)
	subs.POST("/add/c/:channelId", rh.Subscribe)
	subs.GET("/c/:channelId", rh.ChannelSubscribers)
	subs.GET("/u/:subscriberId", rh.SubscribedChannels)

	ph := playlist.New(d.Services.Playlists)
	playlists := v1.Group("/playlists", auth...)
	playlists.POST("", ph.CreatePlaylist)
	playlists.GET("/:playlistId", ph.GetPlaylist)
	playlists.PATCH("/:playlistId", ph.UpdatePlaylist)
	playlists.DELETE("/:playlistId", ph.DeletePlaylist)
	playlists.PATCH("/add/:videoId/:playlistId", ph.AddVideo)
	playlists.PATCH("/remove/:videoId/:playlistId", ph.RemoveVideo)
	playlists.GET("/user/:userId", ph.UserPlaylists)
}

func limit(limiter *security.RateLimiter, name string, h app.HandlerFunc) []app.HandlerFunc {
	if limiter == nil {
		return []app.HandlerFunc{h}
	}
	return []app.HandlerFunc{middleware.RateLimit(limiter, name), h}
}

func healthcheck(ping func(ctx context.Context) error) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if ping != nil {
			if err := ping(ctx); err != nil {
				hlog.CtxErrorf(ctx, "healthcheck failed: %v", err)
				response.SendResponse(ctx, c, errno.ServiceErr.WithMessage("Database unreachable"), nil)
				return
			}
		}
		response.SendResponse(ctx, c, errno.Success.WithMessage("Health check passed"), map[string]string{"status": "OK"})
	}
}
