package service

import (
	"context"
	"log"
	"time"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
)

type Sender func(ctx context.Context, ob *model.BookingOutbox) error

// OutboxRelayer 定时把 pending 的预订事件投递到 kafka
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo *mysql.OutboxRepository, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
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
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender 投递走类型化的预订事件生产者
func KafkaSender(p *pkg.BookingEventProducer) Sender {
	return p.SendBookingEvent
}

// LogSender 未配置 kafka 时的占位投递
func LogSender(ctx context.Context, ob *model.BookingOutbox) error {
	log.Printf("OUTBOX SEND type=%s booking=%d payload=%s", ob.EventType, ob.BookingID, ob.Payload)
	return nil
}
