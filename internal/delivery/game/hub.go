package game

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yutnori/internal/domain/game"
)

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(msg game.TableMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Hub tracks the websocket clients watching each game.
type Hub struct {
	log *zap.SugaredLogger

	mu     sync.RWMutex
	tables map[string]map[*client]struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:    log,
		tables: make(map[string]map[*client]struct{}),
	}
}

func (h *Hub) register(gameID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	watchers, ok := h.tables[gameID]
	if !ok {
		watchers = make(map[*client]struct{})
		h.tables[gameID] = watchers
	}
	watchers[c] = struct{}{}
}

func (h *Hub) unregister(gameID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	watchers := h.tables[gameID]
	delete(watchers, c)
	if len(watchers) == 0 {
		delete(h.tables, gameID)
	}
}

// Watchers returns the number of clients connected to gameID.
func (h *Hub) Watchers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tables[gameID])
}

// Broadcast sends state to every client of its game. Clients that fail to
// receive it are dropped.
func (h *Hub) Broadcast(state game.GameState) {
	h.mu.RLock()
	watchers := make([]*client, 0, len(h.tables[state.ID]))
	for c := range h.tables[state.ID] {
		watchers = append(watchers, c)
	}
	h.mu.RUnlock()

	msg := game.TableMessage{Type: game.MessageState, State: &state}
	for _, c := range watchers {
		if err := c.send(msg); err != nil {
			h.log.Errorf("write to watcher of %s: %v", state.PublicKey, err)
			c.conn.Close()
			h.unregister(state.ID, c)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, watchers := range h.tables {
		for c := range watchers {
			c.conn.Close()
		}
		delete(h.tables, id)
	}
}
