package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 25 * time.Second
	sendBuffer   = 16
)

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
	send   chan []byte
}

func NewWSClient(userID uint, conn *websocket.Conn) *WSClient {
	return &WSClient{UserID: userID, Conn: conn, send: make(chan []byte, sendBuffer)}
}

// WritePump is the connection's single writer: it drains queued broadcasts
// and emits keepalive pings. Nothing else may write to the connection.
// Exits when the hub closes the send channel or a write fails.
func (c *WSClient) WritePump() {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	defer c.Conn.Close()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-t.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// RealtimeHub tracks open websocket connections per user and pushes
// reading/alert events to them.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast queues the payload for each of the user's connections. Queuing
// is non-blocking: a client whose writer has fallen behind loses the event
// rather than stalling the submitting request.
func (h *RealtimeHub) Broadcast(userID uint, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- msg:
		default:
		}
	}
}
