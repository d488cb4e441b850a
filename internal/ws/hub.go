package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	// EventOnlineUsers carries the online-user ID list, sent to every
	// connected client on each connect and disconnect.
	EventOnlineUsers = "getOnlineUsers"

	// EventNewMessage carries a persisted message, sent only to the
	// recipient's connection.
	EventNewMessage = "newMessage"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Conn is the narrow transport capability the hub needs from a socket, so
// delivery and presence can be exercised in tests without a real connection.
type Conn interface {
	WriteEvent(ctx context.Context, ev Event) error
	Ping(ctx context.Context) error
	Close(code websocket.StatusCode, reason string) error
}

type Client struct {
	// UserID is empty when the handshake carried no user identifier; such a
	// client still receives broadcasts but is invisible to presence.
	UserID string
	// ID identifies this connection in the presence registry.
	ID string

	conn Conn
	send chan Event

	ctx    context.Context
	cancel context.CancelFunc
}

// Hub owns every open connection and keeps the presence registry in step
// with connect and disconnect events.
type Hub struct {
	presence *Registry
	log      *zap.Logger

	mu      sync.RWMutex
	clients map[string]*Client // keyed by connection ID
}

func NewHub(presence *Registry, log *zap.Logger) *Hub {
	return &Hub{
		presence: presence,
		log:      log,
		clients:  map[string]*Client{},
	}
}

// Attach accepts a freshly opened connection, registers it for presence when
// userID is non-empty, and broadcasts the updated online-user set to every
// connected client, the new one included.
func (h *Hub) Attach(userID string, conn Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		UserID: userID,
		ID:     uuid.NewString(),
		conn:   conn,
		send:   make(chan Event, 64),
		ctx:    ctx,
		cancel: cancel,
	}

	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	if userID != "" {
		h.presence.Register(userID, c.ID)
	}
	h.log.Info("client connected",
		zap.String("connId", c.ID), zap.String("userId", userID))

	go c.writeLoop()
	go c.keepAliveLoop()

	h.Broadcast(Event{Type: EventOnlineUsers, Data: h.presence.OnlineUserIDs()})

	return c
}

// Detach tears the connection down and broadcasts the shrunk online-user set
// to the remaining clients. The registry entry is only removed when it still
// points at this connection, so a stale disconnect never evicts a session
// established by a fast reconnect.
func (h *Hub) Detach(c *Client) {
	c.cancel()

	h.mu.Lock()
	delete(h.clients, c.ID)
	h.mu.Unlock()

	if c.UserID != "" {
		h.presence.Unregister(c.UserID, c.ID)
	}
	h.log.Info("client disconnected",
		zap.String("connId", c.ID), zap.String("userId", c.UserID))

	_ = c.conn.Close(websocket.StatusNormalClosure, "bye")

	h.Broadcast(Event{Type: EventOnlineUsers, Data: h.presence.OnlineUserIDs()})
}

// Push sends ev to one specific connection. Fire-and-forget: a missing
// client or a full send buffer drops the event, and the caller is not told.
func (h *Hub) Push(connID string, ev Event) bool {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case c.send <- ev:
		return true
	default:
		// buffer full → drop, delivery is best-effort
		return false
	}
}

// Broadcast queues ev for every connected client, registered or not.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.send <- ev:
		default:
		}
	}
}

// Shutdown detaches every remaining client.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.Detach(c)
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.send:
			writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			_ = c.conn.WriteEvent(writeCtx, ev)
			cancel()
		}
	}
}

func (c *Client) keepAliveLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = c.conn.Ping(pingCtx)
			cancel()
		}
	}
}

// wsConn adapts *websocket.Conn to the Conn interface.
type wsConn struct {
	conn *websocket.Conn
}

func NewConn(conn *websocket.Conn) Conn {
	return &wsConn{conn: conn}
}

func (w *wsConn) WriteEvent(ctx context.Context, ev Event) error {
	return wsjson.Write(ctx, w.conn, ev)
}

func (w *wsConn) Ping(ctx context.Context) error {
	return w.conn.Ping(ctx)
}

func (w *wsConn) Close(code websocket.StatusCode, reason string) error {
	return w.conn.Close(code, reason)
}
