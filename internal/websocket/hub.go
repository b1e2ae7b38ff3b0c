package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event is a feed notification pushed to every connected client. Type is
// "<entity>_<action>", e.g. "memory_created" or "family_member_linked".
type Event struct {
	Type       string `json:"type"`
	ID         int64  `json:"id,omitempty"`
	CategoryID int64  `json:"categoryId,omitempty"`
}

// Hub tracks connected clients and fans feed events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// NotifyMemory announces a change to a memory. categoryID may be zero when
// the category is not known, e.g. on deletion.
func (h *Hub) NotifyMemory(action string, id, categoryID int64) {
	h.broadcast(Event{Type: "memory_" + action, ID: id, CategoryID: categoryID})
}

// NotifyFamilyMember announces a change to a family tree node.
func (h *Hub) NotifyFamilyMember(action string, id int64) {
	h.broadcast(Event{Type: "family_member_" + action, ID: id})
}

func (h *Hub) broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow client, drop rather than block the feed
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
