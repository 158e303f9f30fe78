package gateway

import (
	"sync"

	"go.uber.org/zap"
)

// Frame 下行帧；event 名是与前端的线上契约
type Frame struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	EventNotificationMessage = "notification_message"
	EventError               = "error"
)

// Hub 按通知 id 分组的广播组。组员资格在 join 时校验过，
// 之后的广播不再鉴权。
type Hub struct {
	mu       sync.RWMutex
	channels map[uint64]map[*Client]struct{}
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		channels: make(map[uint64]map[*Client]struct{}),
		log:      log,
	}
}

func (h *Hub) Join(notificationID uint64, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[notificationID] == nil {
		h.channels[notificationID] = make(map[*Client]struct{})
	}
	h.channels[notificationID][c] = struct{}{}
	c.joined[notificationID] = struct{}{}
}

// Remove 连接断开时把该连接从所有组里摘掉
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range c.joined {
		if group, ok := h.channels[id]; ok {
			delete(group, c)
			if len(group) == 0 {
				delete(h.channels, id)
			}
		}
	}
	c.joined = make(map[uint64]struct{})
}

// Broadcast 发往组内每个连接；慢连接丢帧不阻塞
func (h *Hub) Broadcast(notificationID uint64, frame Frame) {
	h.mu.RLock()
	group := h.channels[notificationID]
	clients := make([]*Client, 0, len(group))
	for c := range group {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		// send 不会被 close，对着快照里已断开的连接发送也不会 panic
		select {
		case <-c.done:
			continue
		default:
		}
		select {
		case c.send <- frame:
		default:
			h.log.Warn("dropped frame for slow client",
				zap.Uint64("notification_id", notificationID),
				zap.Uint64("user_id", c.userID))
		}
	}
}
