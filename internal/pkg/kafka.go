package pkg

import (
	"context"
	"strconv"

	"softdesk/internal/model"

	"github.com/segmentio/kafka-go"
)

// ActivityPublisher 把 outbox 落库的活动事件投到 kafka，
// 以项目 ID 作分区键，同一项目的事件保序
type ActivityPublisher struct {
	writer *kafka.Writer
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewActivityPublisher(cfg KafkaConfig) *ActivityPublisher {
	return &ActivityPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}}
}

func (p *ActivityPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Publish 事件类型放 header，消费端不解包即可按类型路由
func (p *ActivityPublisher) Publish(ctx context.Context, ob *model.ActivityOutbox) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(ob.ProjectID, 10)),
		Value: []byte(ob.Payload),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ob.EventType)},
		},
	})
}
