package photo

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)


// Event is pushed to the page when background work for its session ends.
type Event struct {
	Type    string     `json:"type"`
	Payload *ViewModel `json:"payload,omitempty"`
}

const (
	EventCompressionReady  = "compression_ready"
	EventCompressionFailed = "compression_failed"
)

type connection struct {
	sessionID string
	conn      *websocket.Conn
	send      chan []byte
}

// Hub tracks the websocket connections of every session. A session may have
// several (one per open tab).
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]struct{}
	upgrader    websocket.Upgrader
	allowOrigin func(origin string) bool
}

// NewHub returns a hub whose sockets accept same-origin pages and any
// origin allowOrigin approves. allowOrigin may be nil.
func NewHub(allowOrigin func(origin string) bool) *Hub {
	h := &Hub{
		connections: make(map[string]map[*connection]struct{}),
		allowOrigin: allowOrigin,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Upgrade switches the request to a websocket. A rejected origin gets 403.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return h.upgrader.Upgrade(w, r, nil)
}

// checkOrigin rejects cross-site pages: events carry the visitor's photo
// and the socket is authenticated by cookie alone.
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return h.allowOrigin != nil && h.allowOrigin(origin)
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.sessionID]
	if !ok {
		set = make(map[*connection]struct{})
		h.connections[c.sessionID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.sessionID]
	if !ok {
		return
	}
	if _, ok := set[c]; ok {
		delete(set, c)
		close(c.send)
	}
	if len(set) == 0 {
		delete(h.connections, c.sessionID)
	}
}

// Notify sends event to every connection of sessionID. Slow clients are
// skipped rather than blocking the caller.
func (h *Hub) Notify(sessionID string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections[sessionID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Connections reports how many sockets sessionID has open.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[sessionID])
}

// ServeWS registers conn and blocks until it closes.
func (h *Hub) ServeWS(conn *websocket.Conn, sessionID string) {
	c := &connection{
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, 16),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump only drains control frames; the page never sends data.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("photo_ws_error session=%s error=%v", c.sessionID, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
