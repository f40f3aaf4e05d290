// Package notify fans level-up events out to subscribed browser
// clients over websockets. Delivery is fire-and-forget: a failed or
// slow subscriber is dropped, never retried, and never blocks the
// progress tracker.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/eduflow-app/eduflow/internal/progress"
)

const writeTimeout = 5 * time.Second

// Hub tracks websocket subscribers per user and implements
// progress.Notifier.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*websocket.Conn]struct{})}
}

// LevelUp broadcasts the event to every connection the user has open.
func (h *Hub) LevelUp(ctx context.Context, userID string, newLevel int, prize string) {
	event := progress.LevelUpEvent{UserID: userID, NewLevel: newLevel, Prize: prize}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("encoding level-up event", "error", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subs[userID]))
	for conn := range h.subs[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := conn.Write(writeCtx, websocket.MessageText, data)
		cancel()
		if err != nil {
			slog.Debug("dropping unreachable subscriber", "user_id", userID, "error", err)
			h.remove(userID, conn)
			conn.CloseNow()
		}
	}
}

// Subscribers reports how many connections a user has open.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

// Subscribe upgrades the request to a websocket and keeps the
// connection registered until the client disconnects.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // cross-origin checks happen in the CORS layer
	})
	if err != nil {
		slog.Warn("websocket accept failed", "user_id", userID, "error", err)
		return
	}

	h.add(userID, conn)
	slog.Info("event subscriber connected", "user_id", userID)

	defer func() {
		h.remove(userID, conn)
		conn.CloseNow()
		slog.Info("event subscriber disconnected", "user_id", userID)
	}()

	// Clients only listen; reading here just detects disconnects.
	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

func (h *Hub) add(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[userID][conn] = struct{}{}
}

func (h *Hub) remove(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[userID], conn)
	if len(h.subs[userID]) == 0 {
		delete(h.subs, userID)
	}
}
