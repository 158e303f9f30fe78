package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"Neighbor_Share/internal/model"
)

// EventChannel 固定的跨进程事件通道，listener 每次启动重新订阅
const EventChannel = "share:notification:events"

type EventType string

const (
	EventNotificationMessage EventType = "NOTIFICATION_MESSAGE"
	// EventBookingUpdate 预留类型，当前版本不在通道上消费
	EventBookingUpdate EventType = "BOOKING_UPDATE"
)

// Event 通道上的统一信封，payload 形状由 type 决定
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type MessagePayload struct {
	Message *model.Message `json:"message"`
}

// EventBus 基于 Redis Pub/Sub 的最多一次投递，无回放。
// 聊天实时送达是尽力而为，可靠历史走 REST 消息列表。
type EventBus struct {
	rdb *redis.Client
}

func NewEventBus(rdb *redis.Client) *EventBus {
	return &EventBus{rdb: rdb}
}

func (b *EventBus) PublishMessageCreated(ctx context.Context, msg *model.Message) error {
	payload, err := json.Marshal(MessagePayload{Message: msg})
	if err != nil {
		return err
	}
	ev, err := json.Marshal(Event{Type: EventNotificationMessage, Payload: payload})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, EventChannel, ev).Err()
}

func (b *EventBus) Subscribe(ctx context.Context) *redis.PubSub {
	return b.rdb.Subscribe(ctx, EventChannel)
}

func DecodeEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (e *Event) DecodeMessage() (*model.Message, error) {
	var p MessagePayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return nil, err
	}
	return p.Message, nil
}
