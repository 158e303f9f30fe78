package gateway

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type stubLoader struct {
	notifications map[uint64]*model.Notification
}

func (s *stubLoader) FindByID(ctx context.Context, id uint64) (*model.Notification, error) {
	if n, ok := s.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestClient(userID uint64) *Client {
	return &Client{
		send:   make(chan Frame, sendBufferSize),
		done:   make(chan struct{}),
		userID: userID,
		joined: make(map[uint64]struct{}),
	}
}

func newTestServer(loader *stubLoader) (*Server, *Hub) {
	hub := NewHub(zap.NewNop())
	return NewServer(hub, loader, zap.NewNop()), hub
}

func recvFrame(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case f := <-c.send:
		return f
	default:
		t.Fatal("expected a frame on the send channel")
		return Frame{}
	}
}

func TestBroadcastReachesJoinedClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newTestClient(1)
	b := newTestClient(2)
	other := newTestClient(3)

	hub.Join(10, a)
	hub.Join(10, b)
	hub.Join(11, other)

	hub.Broadcast(10, Frame{Event: EventNotificationMessage})

	assert.Equal(t, EventNotificationMessage, recvFrame(t, a).Event)
	assert.Equal(t, EventNotificationMessage, recvFrame(t, b).Event)
	assert.Empty(t, other.send)
}

func TestBroadcastDropsFrameForSlowClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	slow := newTestClient(1)
	for i := 0; i < sendBufferSize; i++ {
		slow.send <- Frame{Event: EventNotificationMessage}
	}
	hub.Join(10, slow)

	// 缓冲已满，不能阻塞
	hub.Broadcast(10, Frame{Event: EventNotificationMessage})
	assert.Len(t, slow.send, sendBufferSize)
}

func TestBroadcastDuringDisconnectDoesNotPanic(t *testing.T) {
	// 广播拿到组快照后连接才断开：发送必须照常完成，不能 panic
	hub := NewHub(zap.NewNop())

	for i := 0; i < 50; i++ {
		c := newTestClient(1)
		for j := 0; j < sendBufferSize; j++ {
			c.send <- Frame{Event: EventNotificationMessage}
		}
		hub.Join(10, c)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Broadcast(10, Frame{Event: EventNotificationMessage})
		}()
		go func() {
			defer wg.Done()
			// 读泵的断开路径
			hub.Remove(c)
			close(c.done)
		}()
		wg.Wait()
	}

	// 断开后的广播也不能 panic
	hub.Broadcast(10, Frame{Event: EventNotificationMessage})
}

func TestBroadcastSkipsDisconnectedClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	gone := newTestClient(1)
	hub.Join(10, gone)
	close(gone.done)

	hub.Broadcast(10, Frame{Event: EventNotificationMessage})
	assert.Empty(t, gone.send)
}

func TestRemoveDetachesFromAllChannels(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := newTestClient(1)
	hub.Join(10, c)
	hub.Join(11, c)

	hub.Remove(c)

	hub.Broadcast(10, Frame{Event: EventNotificationMessage})
	hub.Broadcast(11, Frame{Event: EventNotificationMessage})
	assert.Empty(t, c.send)
	assert.Empty(t, c.joined)
}

func TestJoinUnauthenticatedGetsErrorFrame(t *testing.T) {
	srv, hub := newTestServer(&stubLoader{})
	c := newTestClient(0)

	srv.handleJoin(c, "10")

	f := recvFrame(t, c)
	assert.Equal(t, EventError, f.Event)
	assert.Equal(t, "authentication required", f.Message)
	assert.Empty(t, hub.channels)
}

func TestJoinInvalidID(t *testing.T) {
	srv, _ := newTestServer(&stubLoader{})
	c := newTestClient(1)

	srv.handleJoin(c, "not-a-number")
	assert.Equal(t, EventError, recvFrame(t, c).Event)

	srv.handleJoin(c, "0")
	assert.Equal(t, EventError, recvFrame(t, c).Event)
}

func TestJoinUnknownNotification(t *testing.T) {
	srv, _ := newTestServer(&stubLoader{notifications: map[uint64]*model.Notification{}})
	c := newTestClient(1)

	srv.handleJoin(c, "99")

	f := recvFrame(t, c)
	assert.Equal(t, EventError, f.Event)
	assert.Equal(t, "notification not found", f.Message)
}

func TestJoinNonParticipantRejected(t *testing.T) {
	loader := &stubLoader{notifications: map[uint64]*model.Notification{
		10: {ID: 10, CreatorID: 1, RecipientID: 2, CommunityID: 100},
	}}
	srv, hub := newTestServer(loader)
	c := newTestClient(3)

	srv.handleJoin(c, "10")

	f := recvFrame(t, c)
	assert.Equal(t, EventError, f.Event)
	assert.Empty(t, hub.channels)
}

func TestJoinParticipantReceivesBroadcast(t *testing.T) {
	loader := &stubLoader{notifications: map[uint64]*model.Notification{
		10: {ID: 10, CreatorID: 1, RecipientID: 2, CommunityID: 100},
	}}
	srv, hub := newTestServer(loader)
	c := newTestClient(2)

	srv.handleJoin(c, "10")
	require.Empty(t, c.send)

	hub.Broadcast(10, Frame{Event: EventNotificationMessage, Payload: map[string]any{"message": "hi"}})
	assert.Equal(t, EventNotificationMessage, recvFrame(t, c).Event)
}
