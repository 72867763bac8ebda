package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VideoTube.com/config"
	"VideoTube.com/pkg/logger"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "videotube-worker",
		Usage: "Background jobs for the VideoTube API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Directory containing config.yml",
			},
		},
		Commands: []*cli.Command{
			cleanupCommand(),
			deleteCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, os.Args); err != nil {
		logrus.Fatalf("worker error: %+v", err)
	}
}

func cleanupCommand() *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "Consume asset.orphaned events and delete the objects from storage",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "prefetch",
				Usage: "Unacknowledged messages held at once",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, storage, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			url := cfg.RabbitMq.URL()
			if url == "" {
				return errors.New("rabbitmq.addr is required for cleanup")
			}
			consumer, err := mq.NewConsumer(url, int(cmd.Int("prefetch")))
			if err != nil {
				return err
			}
			defer consumer.Close()

			hlog.Infof("asset cleanup worker started, queue %s", mq.AssetCleanupQueue)
			return consumer.ConsumeAssetEvents(ctx, NewAssetCleaner(storage))
		},
	}
}

// deleteCommand 手动清理单个对象，用于处理被丢弃的消息
func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete one stored object by its public URL",
		ArgsUsage: "<url>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			url := cmd.Args().First()
			if url == "" {
				return errors.New("url argument is required")
			}
			_, storage, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			return NewAssetCleaner(storage).HandleAssetEvent(ctx, mq.NewAssetOrphanedEvent(url, "manual delete"))
		},
	}
}

func setup(ctx context.Context, cmd *cli.Command) (*config.Config, *oss.MinioStorage, error) {
	var paths []string
	if dir := cmd.String("config"); dir != "" {
		paths = append(paths, dir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Log)
	storage, err := oss.NewMinioStorage(cfg.Minio)
	if err != nil {
		return nil, nil, err
	}
	return cfg, storage, nil
}
