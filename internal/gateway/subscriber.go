package gateway

import (
	"context"

	"go.uber.org/zap"

	"Neighbor_Share/internal/repository/redis"
)

// Subscriber 进程级唯一的 Pub/Sub 订阅循环。
// 订阅状态不持久化，进程每次启动重新订阅；停机期间的事件直接丢失，
// 可靠历史由 REST 消息列表兜底。
type Subscriber struct {
	bus *redis.EventBus
	hub *Hub
	log *zap.Logger
}

func NewSubscriber(bus *redis.EventBus, hub *Hub, log *zap.Logger) *Subscriber {
	return &Subscriber{bus: bus, hub: hub, log: log}
}

func (s *Subscriber) Run(ctx context.Context) {
	pubsub := s.bus.Subscribe(ctx)
	defer pubsub.Close()

	s.log.Info("subscribed to event channel", zap.String("channel", redis.EventChannel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.dispatch([]byte(msg.Payload))
		}
	}
}

func (s *Subscriber) dispatch(data []byte) {
	ev, err := redis.DecodeEvent(data)
	if err != nil {
		s.log.Warn("undecodable event", zap.Error(err))
		return
	}

	switch ev.Type {
	case redis.EventNotificationMessage:
		m, err := ev.DecodeMessage()
		if err != nil || m == nil {
			s.log.Warn("bad message payload", zap.Error(err))
			return
		}
		s.hub.Broadcast(m.NotificationID, Frame{
			Event:   EventNotificationMessage,
			Payload: map[string]any{"message": m},
		})
	default:
		// 预留类型当前不消费
	}
}
