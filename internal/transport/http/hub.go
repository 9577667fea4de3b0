package http

import (
	"sync"
)

// outboundMessage is the envelope for every event sent to a client.
type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type client struct {
	send chan outboundMessage
}

// Hub tracks connections and their session rooms, and implements app.Gateway.
// Sends never block: a slow client has stale messages dropped instead of
// stalling the game loop.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*client
	rooms      map[string]map[string]struct{}
	roomByConn map[string]string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*client),
		rooms:      make(map[string]map[string]struct{}),
		roomByConn: make(map[string]string),
	}
}

// Register adds a connection and returns the channel its writer goroutine
// must drain. The channel is closed by Unregister.
func (h *Hub) Register(connectionID string) <-chan outboundMessage {
	c := &client{
		send: make(chan outboundMessage, 16),
	}
	h.mu.Lock()
	h.clients[connectionID] = c
	h.mu.Unlock()
	return c.send
}

// Unregister removes a connection from its room and closes its send channel.
func (h *Hub) Unregister(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connectionID]
	if !ok {
		return
	}
	delete(h.clients, connectionID)
	if room, ok := h.roomByConn[connectionID]; ok {
		delete(h.roomByConn, connectionID)
		if members := h.rooms[room]; members != nil {
			delete(members, connectionID)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	close(c.send)
}

// JoinRoom subscribes a connection to a session's broadcasts.
func (h *Hub) JoinRoom(sessionCode, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.roomByConn[connectionID]; ok && prev != sessionCode {
		if members := h.rooms[prev]; members != nil {
			delete(members, connectionID)
		}
	}
	members := h.rooms[sessionCode]
	if members == nil {
		members = make(map[string]struct{})
		h.rooms[sessionCode] = members
	}
	members[connectionID] = struct{}{}
	h.roomByConn[connectionID] = sessionCode
}

// SendTo implements app.Gateway.
func (h *Hub) SendTo(connectionID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[connectionID]; ok {
		h.push(c, event, payload)
	}
}

// Broadcast implements app.Gateway.
func (h *Hub) Broadcast(sessionCode, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for connectionID := range h.rooms[sessionCode] {
		if c, ok := h.clients[connectionID]; ok {
			h.push(c, event, payload)
		}
	}
}

// BroadcastExcept implements app.Gateway.
func (h *Hub) BroadcastExcept(sessionCode, exceptID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for connectionID := range h.rooms[sessionCode] {
		if connectionID == exceptID {
			continue
		}
		if c, ok := h.clients[connectionID]; ok {
			h.push(c, event, payload)
		}
	}
}

// push enqueues without ever blocking: when the buffer is full the oldest
// queued message is dropped to make room.
func (h *Hub) push(c *client, event string, payload any) {
	msg := outboundMessage{Type: event, Payload: payload}
	select {
	case c.send <- msg:
	default:
		select {
		case <-c.send:
		default:
		}
		select {
		case c.send <- msg:
		default:
		}
	}
}
