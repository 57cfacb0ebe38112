package system

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event is one message pushed to connected dashboard clients.
type Event struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id,omitempty"`
	Time   time.Time `json:"time"`
}

// Hub tracks websocket connections per user and pushes dashboard events to
// them. It implements homedash.Notifier.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]map[*websocket.Conn]bool // userID -> connections
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]map[*websocket.Conn]bool),
		logger: logger,
	}
}

func (h *Hub) register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][conn] = true
}

func (h *Hub) unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], conn)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// DashboardSaved notifies every connection of the given user that their
// dashboard changed. Slow or dead connections just miss the event.
func (h *Hub) DashboardSaved(userID string) {
	h.send(userID, Event{Type: "dashboard-saved", UserID: userID, Time: time.Now()})
}

func (h *Hub) send(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns[userID]))
	for conn := range h.conns[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug("websocket write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
}

// Serve keeps one connection open until the client goes away. Incoming
// messages are ignored; the socket is push-only.
func (h *Hub) Serve(userID string, conn *websocket.Conn) {
	h.register(userID, conn)
	defer h.unregister(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
