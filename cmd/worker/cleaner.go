package main

import (
	"context"

	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// AssetCleaner 删除补偿失败后遗留在对象存储里的文件
type AssetCleaner struct {
	media oss.Gateway
}

func NewAssetCleaner(media oss.Gateway) *AssetCleaner {
	return &AssetCleaner{media: media}
}

func (c *AssetCleaner) HandleAssetEvent(ctx context.Context, event *mq.AssetEvent) error {
	if event.URL == "" {
		return errors.Errorf("asset event %s has no url", event.EventID)
	}
	if err := c.media.Delete(ctx, event.URL); err != nil {
		return errors.WithMessagef(err, "delete orphaned asset %s", event.URL)
	}
	hlog.CtxInfof(ctx, "removed orphaned asset %s (%s)", event.URL, event.Reason)
	return nil
}

var _ mq.AssetEventHandler = (*AssetCleaner)(nil)
