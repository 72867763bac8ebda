package mq

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// AssetEventPublisher 资源事件生产者接口
type AssetEventPublisher interface {
	PublishAssetOrphaned(ctx context.Context, event *AssetEvent) error
}

// AssetEventHandler 资源事件消费者回调
type AssetEventHandler interface {
	HandleAssetEvent(ctx context.Context, event *AssetEvent) error
}

// NopPublisher used when RabbitMQ is not configured, events only reach the log
type NopPublisher struct{}

func (NopPublisher) PublishAssetOrphaned(ctx context.Context, event *AssetEvent) error {
	hlog.CtxWarnf(ctx, "RabbitMQ disabled, orphaned asset left for manual cleanup: %s (%s)", event.URL, event.Reason)
	return nil
}

// 确保Producer实现AssetEventPublisher接口
var (
	_ AssetEventPublisher = (*Producer)(nil)
	_ AssetEventPublisher = NopPublisher{}
)
