package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans feed messages out to WebSocket subscribers
type Hub struct {
	// all subscribers; identified players are also indexed by ID
	conns   map[*Connection]struct{}
	players map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	logger *slog.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	PlayerID string // Empty for anonymous subscribers
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	ToPlayer string // Empty means every subscriber
	Message  *Message
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		players:    make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.conns {
				close(conn.Send)
			}
			clear(h.conns)
			clear(h.players)
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			if conn.PlayerID != "" {
				if h.players[conn.PlayerID] == nil {
					h.players[conn.PlayerID] = make(map[*Connection]struct{})
				}
				h.players[conn.PlayerID][conn] = struct{}{}
			}
			h.mu.Unlock()
			h.logger.Debug("feed subscriber connected", "playerId", conn.PlayerID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				if set := h.players[conn.PlayerID]; set != nil {
					delete(set, conn)
					if len(set) == 0 {
						delete(h.players, conn.PlayerID)
					}
				}
				close(conn.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("feed subscriber disconnected", "playerId", conn.PlayerID)

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Error("encode feed message", "type", msg.Message.Type, "error", err)
				continue
			}
			h.mu.RLock()
			if msg.ToPlayer != "" {
				for conn := range h.players[msg.ToPlayer] {
					deliver(conn, data)
				}
			} else {
				for conn := range h.conns {
					deliver(conn, data)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func deliver(conn *Connection, data []byte) {
	select {
	case conn.Send <- data:
	default:
		// Drop message if buffer full
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close disconnects every subscriber and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// BroadcastToPlayer sends a message to every connection of one player (implements service.Broadcaster)
func (h *Hub) BroadcastToPlayer(playerID string, msgType string, payload interface{}) {
	h.enqueue(&BroadcastMessage{ToPlayer: playerID}, msgType, payload)
}

// BroadcastToAll sends a message to every subscriber (implements service.Broadcaster)
func (h *Hub) BroadcastToAll(msgType string, payload interface{}) {
	h.enqueue(&BroadcastMessage{}, msgType, payload)
}

func (h *Hub) enqueue(msg *BroadcastMessage, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode feed payload", "type", msgType, "error", err)
		return
	}
	msg.Message = &Message{Type: MessageType(msgType), Payload: data}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("feed backlog full, dropping message", "type", msgType)
	}
}
