package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string, prefetch int) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		prefetch, // prefetch count
		0,        // prefetch size
		false,    // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: ch,
	}, nil
}

// ConsumeAssetEvents blocks until ctx is cancelled or the delivery channel closes
func (c *Consumer) ConsumeAssetEvents(ctx context.Context, handler AssetEventHandler) error {
	msgs, err := c.channel.Consume(
		AssetCleanupQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			hlog.Info("Asset event consumer context cancelled")
			return nil
		case d, ok := <-msgs:
			if !ok {
				hlog.Info("Asset event consumer channel closed")
				return nil
			}
			HandleDelivery(ctx, d.Body, handler, d)
		}
	}
}

// Acknowledger subset of amqp091.Delivery used for settling a message
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// HandleDelivery decodes one message and settles it. Failed cleanups are
// dropped rather than requeued so a permanently broken object cannot spin the worker.
func HandleDelivery(ctx context.Context, body []byte, handler AssetEventHandler, ack Acknowledger) {
	var event AssetEvent
	if err := json.Unmarshal(body, &event); err != nil {
		hlog.Errorf("Failed to unmarshal asset event: %v", err)
		ack.Nack(false, false) // 拒绝消息，不重新入队
		return
	}

	if err := handler.HandleAssetEvent(ctx, &event); err != nil {
		hlog.CtxErrorf(ctx, "Failed to handle asset event %s (%s): %v", event.EventID, event.URL, err)
		ack.Nack(false, false)
		return
	}

	ack.Ack(false) // 确认消息
	hlog.CtxInfof(ctx, "Successfully processed asset event: %+v", event)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
