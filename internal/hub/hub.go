package hub

import (
	"encoding/json"
	"sync"
)

// Change types carried by Event.Type. Refresh means "something may have
// changed, re-fetch everything".
const (
	TypeInsert  = "INSERT"
	TypeUpdate  = "UPDATE"
	TypeDelete  = "DELETE"
	TypeRefresh = "REFRESH"
)

// Event is a change notification for one table row.
type Event struct {
	Table string `json:"table"`
	Type  string `json:"type"`
	ID    uint   `json:"id,omitempty"`
}

// Client represents a single subscriber.
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub manages subscribers per table.
type Hub struct {
	tables map[string]map[Client]bool
	mu     sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		tables: make(map[string]map[Client]bool),
	}
}

// Subscribe adds a new client to a table's feed.
func (h *Hub) Subscribe(table string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.tables[table]; !ok {
		h.tables[table] = make(map[Client]bool)
	}
	h.tables[table][client] = true
}

// Unsubscribe removes a client from a table's feed and closes it.
func (h *Hub) Unsubscribe(table string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.tables[table]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.tables, table)
			}
		}
	}
}

// Subscribers returns the number of clients listening on table.
func (h *Hub) Subscribers(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tables[table])
}

// Publish broadcasts a change of kind typ for row id of table.
func (h *Hub) Publish(table, typ string, id uint) {
	h.Broadcast(Event{Table: table, Type: typ, ID: id})
}

// Broadcast sends an event to all clients of event.Table.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.tables[event.Table]
	if !ok {
		return
	}
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return
	}

	for client := range clients {
		// Use a non-blocking send to prevent a slow client from blocking the hub.
		select {
		case client <- messageBytes:
		default:
			// Full buffer. Events are re-fetch hints, so dropping one is harmless.
		}
	}
}

// Refresh tells every subscriber of tables to re-fetch.
func (h *Hub) Refresh(tables ...string) {
	for _, t := range tables {
		h.Broadcast(Event{Table: t, Type: TypeRefresh})
	}
}
