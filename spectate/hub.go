// Package spectate streams committed snapshots to websocket viewers.
package spectate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/shatter/components"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 8
)

// Frame is the message sent to viewers for every broadcast snapshot.
type Frame struct {
	Type  string              `json:"type"` // "state"
	Seed  int64               `json:"seed"`
	State components.Snapshot `json:"state"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans snapshots out to connected viewers. Viewers are read-only: any
// message they send is discarded. A viewer that cannot keep up misses
// frames instead of slowing the simulation.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	dropped int
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and streams frames until the viewer leaves.
// The latest frame, if any, is sent first.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("spectator upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	count := len(h.clients)
	h.mu.Unlock()

	slog.Info("spectator joined", "remote", r.RemoteAddr, "viewers", count)

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards viewer messages and keeps the read deadline alive.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(1 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
		slog.Info("spectator left", "viewers", count)
	}
}

// Broadcast encodes snap and queues it for every viewer.
func (h *Hub) Broadcast(seed int64, snap components.Snapshot) error {
	data, err := json.Marshal(Frame{Type: "state", Seed: seed, State: snap})
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
	return nil
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many frames were skipped for slow viewers.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}
