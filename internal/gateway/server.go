package gateway

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 16
)

// NotificationLoader 入组鉴权需要查通知的参与双方
type NotificationLoader interface {
	FindByID(ctx context.Context, id uint64) (*model.Notification, error)
}

type Client struct {
	conn *websocket.Conn
	// send 永不 close：广播方随时可能持有快照正在发送，
	// 关闭它会让整个订阅循环 panic。写泵退出靠 done。
	send   chan Frame
	done   chan struct{}
	userID uint64 // 0 表示未认证连接
	joined map[uint64]struct{}
}

// clientEvent 上行帧：当前协议只有 join_channel
type clientEvent struct {
	Event          string `json:"event"`
	NotificationID string `json:"notification_id"`
}

type Server struct {
	hub           *Hub
	notifications NotificationLoader
	log           *zap.Logger
	upgrader      websocket.Upgrader
}

func NewServer(hub *Hub, notifications NotificationLoader, log *zap.Logger) *Server {
	return &Server{
		hub:           hub,
		notifications: notifications,
		log:           log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 跨域由前置代理把关
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS 握手时带 token 则解出身份；没带或无效照样建立连接，
// 只是之后的 join_channel 都会被拒
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan Frame, sendBufferSize),
		done:   make(chan struct{}),
		joined: make(map[uint64]struct{}),
	}

	if tokenStr := extractToken(r); tokenStr != "" {
		if claims, err := pkg.ParseAccess(tokenStr); err == nil {
			client.userID = claims.UserID
		} else {
			s.log.Debug("handshake token rejected", zap.Error(err))
		}
	}

	go s.writePump(client)
	s.readPump(client)
}

func extractToken(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func (s *Server) readPump(c *Client) {
	defer func() {
		s.hub.Remove(c)
		c.conn.Close()
		close(c.done)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var ev clientEvent
		if err := c.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		if ev.Event == "join_channel" {
			s.handleJoin(c, ev.NotificationID)
		}
	}
}

// handleJoin 只有通知的参与双方可以入组；失败明确回 error 帧，
// 不再静默丢弃
func (s *Server) handleJoin(c *Client, rawID string) {
	if c.userID == 0 {
		c.trySend(Frame{Event: EventError, Message: "authentication required"})
		return
	}

	notificationID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || notificationID == 0 {
		c.trySend(Frame{Event: EventError, Message: "invalid notification id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		c.trySend(Frame{Event: EventError, Message: "notification not found"})
		return
	}
	if !n.HasParticipant(c.userID) {
		c.trySend(Frame{Event: EventError, Message: "not a participant of this channel"})
		return
	}

	s.hub.Join(notificationID, c)
}

func (c *Client) trySend(frame Frame) {
	select {
	case c.send <- frame:
	default:
	}
}

func (s *Server) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
