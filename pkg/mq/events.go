package mq

import (
	"time"

	"github.com/google/uuid"
)

// AssetEvent 远端媒体对象事件，目前只有孤儿资源清理
type AssetEvent struct {
	EventID   string `json:"event_id"`  // 事件ID
	URL       string `json:"url"`       // 资源地址
	Reason    string `json:"reason"`    // 产生原因
	Timestamp int64  `json:"timestamp"` // 时间戳
}

func NewAssetOrphanedEvent(url, reason string) *AssetEvent {
	return &AssetEvent{
		EventID:   uuid.NewString(),
		URL:       url,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	}
}

// 常量定义
const (
	// 交换机名称
	AssetEventExchange = "asset_events"

	// 队列名称
	AssetCleanupQueue = "asset_cleanup_queue"

	// 路由键
	AssetOrphanedKey = "asset.orphaned"
)
