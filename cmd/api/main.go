package main

import (
	"context"
	"io"
	"time"

	"VideoTube.com/cmd/api/router"
	interactiondb "VideoTube.com/cmd/interaction/dal/db"
	interactionsvc "VideoTube.com/cmd/interaction/service"
	playlistdb "VideoTube.com/cmd/playlist/dal/db"
	playlistsvc "VideoTube.com/cmd/playlist/service"
	relationdb "VideoTube.com/cmd/relation/dal/db"
	relationsvc "VideoTube.com/cmd/relation/service"
	tweetdb "VideoTube.com/cmd/tweet/dal/db"
	tweetsvc "VideoTube.com/cmd/tweet/service"
	userdb "VideoTube.com/cmd/user/dal/db"
	usersvc "VideoTube.com/cmd/user/service"
	videodb "VideoTube.com/cmd/video/dal/db"
	videosvc "VideoTube.com/cmd/video/service"
	"VideoTube.com/config"
	"VideoTube.com/pkg/database"
	"VideoTube.com/pkg/logger"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/security"
	"VideoTube.com/pkg/tracer"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// resources 进程退出时按注册的逆序关闭
type resources struct {
	closers []func()
}

func (r *resources) add(f func()) { r.closers = append(r.closers, f) }

func (r *resources) closeAll() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func closeWith(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			hlog.Warnf("close %s failed: %v", name, err)
		}
	}
}

func Init(ctx context.Context, cfg *config.Config, res *resources) *router.Deps {
	closer, err := tracer.InitJaeger(cfg.Jaeger)
	if err != nil {
		logrus.Fatalf("init jaeger failed: %v", err)
	}
	res.add(closeWith("tracer", closer))

	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}
	res.add(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			hlog.Warnf("disconnect mongo failed: %v", err)
		}
	})
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.Fatalf("%+v", err)
	}

	storage, err := oss.NewMinioStorage(cfg.Minio)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		logrus.Fatalf("%+v", err)
	}

	var publisher mq.AssetEventPublisher = mq.NopPublisher{}
	if url := cfg.RabbitMq.URL(); url != "" {
		producer, err := mq.NewProducer(url)
		if err != nil {
			hlog.Warnf("RabbitMQ unavailable, orphaned assets will only be logged: %v", err)
		} else {
			publisher = producer
			res.add(closeWith("rabbitmq producer", producer))
		}
	}

	var limiter *security.RateLimiter
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		res.add(closeWith("redis", rdb))
		limiter = security.NewRateLimiter(rdb, "videotube:ratelimit:", cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	}

	users := userdb.NewUserDB(db)
	videos := videodb.NewVideoDB(db)
	tweets := tweetdb.NewTweetDB(db)
	comments := interactiondb.NewCommentDB(db)
	likes := interactiondb.NewLikeDB(db)
	subs := relationdb.NewSubscriptionDB(db)
	playlists := playlistdb.NewPlaylistDB(db)
	cascade := &videoCascade{CommentDB: comments, LikeDB: likes, PlaylistDB: playlists}

	creds := security.NewCredentialManager(users, cfg.Auth)
	return &router.Deps{
		Services: router.Services{
			Users: usersvc.NewUserService(users, storage, publisher, creds),
			Videos: videosvc.NewVideoService(videosvc.Stores{
				Videos:  videos,
				History: users,
				Cascade: cascade,
			}, storage, publisher),
			Tweets:    tweetsvc.NewTweetService(tweets, users, likes),
			Comments:  interactionsvc.NewCommentService(comments, videos, likes),
			Likes:     interactionsvc.NewLikeActionService(likes, &likeTargets{videos, comments, tweets}),
			Relations: relationsvc.NewRelationService(subs, users),
			Playlists: playlistsvc.NewPlaylistService(playlists, videos, users),
		},
		Creds:   creds,
		Limiter: limiter,
		Server:  cfg.Server,
		Health:  pinger(client),
	}
}

func pinger(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return client.Ping(ctx, readpref.Primary())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config failed: %+v", err)
	}
	res := &resources{}
	res.add(closeWith("log file", logger.Init(cfg.Log)))

	deps := Init(context.Background(), cfg, res)

	h := server.New(
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodyMB*1024*1024),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
	)
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		res.closeAll()
	})

	// 注册路由
	router.Register(h, deps)

	hlog.Infof("VideoTube API listening on %s (%s)", cfg.Server.Addr, cfg.Server.Env)
	h.Spin()
}
