package pkg

import (
	"context"
	"errors"
	"strconv"

	"github.com/segmentio/kafka-go"

	"Neighbor_Share/internal/model"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// BookingEventProducer 预订生命周期事件的下游出口。
// 以 booking id 作 key 哈希分区，同一笔预订的事件在分区内有序。
type BookingEventProducer struct {
	writer *kafka.Writer
}

func NewBookingEventProducer(cfg KafkaConfig) (*BookingEventProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &BookingEventProducer{writer: w}, nil
}

func (p *BookingEventProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SendBookingEvent payload 原样透传 outbox 行里的 JSON，
// 事件种类放 header，消费端不用解包就能路由
func (p *BookingEventProducer) SendBookingEvent(ctx context.Context, ob *model.BookingOutbox) error {
	return p.writer.WriteMessages(ctx, bookingMessage(ob))
}

func bookingMessage(ob *model.BookingOutbox) kafka.Message {
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(ob.BookingID, 10)),
		Value: []byte(ob.Payload),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ob.EventType)},
		},
	}
}
