package service

import (
	"context"
	"log"
	"time"

	"softdesk/internal/model"
	"softdesk/internal/pkg"
)

type Sender func(ctx context.Context, ob *model.ActivityOutbox) error

// OutboxRelayer 轮询 outbox 表并把活动事件投递出去
type OutboxRelayer struct {
	repo      OutboxRepo
	batchSize int
	interval  time.Duration
	maxRetry  int
	sender    Sender
}

func NewOutboxRelayer(repo OutboxRepo, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		maxRetry:  5,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkRetry(ctx, ob.ID, r.maxRetry)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// LogSender 未配置 kafka 时的兜底投递
func LogSender(ctx context.Context, ob *model.ActivityOutbox) error {
	log.Printf("OUTBOX SEND type=%s project=%d actor=%d payload=%s", ob.EventType, ob.ProjectID, ob.ActorID, ob.Payload)
	return nil
}

// KafkaSender 经由 kafka 投递
func KafkaSender(pub *pkg.ActivityPublisher) Sender {
	return pub.Publish
}
