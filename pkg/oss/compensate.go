package oss

import (
	"context"

	"VideoTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Discard best-effort removal of assets uploaded by a request that failed later.
// A failed delete is logged and handed to the cleanup worker, never retried here.
func Discard(ctx context.Context, gw Gateway, pub mq.AssetEventPublisher, reason string, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := gw.Delete(ctx, url); err != nil {
			hlog.CtxErrorf(ctx, "compensating delete of %s failed: %v", url, err)
			if perr := pub.PublishAssetOrphaned(ctx, mq.NewAssetOrphanedEvent(url, reason)); perr != nil {
				hlog.CtxErrorf(ctx, "publish orphaned asset %s failed: %v", url, perr)
			}
		}
	}
}
