package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go-inventory-dashboard/internal/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrHubStopped is returned by Publish once Run has returned.
var ErrHubStopped = errors.New("hub stopped")

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Subscription attaches a connection to a room. Rooms are dashboard session IDs.
type Subscription struct {
	Room string
	Conn Conn
}

type Message struct {
	Room string
	Data []byte
}

// Event is the JSON envelope pushed to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type Hub struct {
	Register   chan Subscription
	Unregister chan Subscription
	Broadcast  chan Message
	Evict      chan string

	mutex sync.Mutex
	rooms map[string]map[Conn]bool
	done  chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan Subscription),
		Unregister: make(chan Subscription),
		Broadcast:  make(chan Message, 64),
		Evict:      make(chan string),
		rooms:      make(map[string]map[Conn]bool),
		done:       make(chan struct{}),
	}
}

// Run serves the channels until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mutex.Lock()
		for room, conns := range h.rooms {
			for conn := range conns {
				conn.Close()
			}
			delete(h.rooms, room)
		}
		h.mutex.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.Register:
			h.mutex.Lock()
			conns, ok := h.rooms[sub.Room]
			if !ok {
				conns = make(map[Conn]bool)
				h.rooms[sub.Room] = conns
			}
			conns[sub.Conn] = true
			h.mutex.Unlock()
			logger.Debug("ws client connected", zap.String("room", sub.Room))

		case sub := <-h.Unregister:
			h.mutex.Lock()
			if conns, ok := h.rooms[sub.Room]; ok && conns[sub.Conn] {
				delete(conns, sub.Conn)
				sub.Conn.Close()
				if len(conns) == 0 {
					delete(h.rooms, sub.Room)
				}
			}
			h.mutex.Unlock()

		case room := <-h.Evict:
			h.mutex.Lock()
			for conn := range h.rooms[room] {
				conn.Close()
			}
			delete(h.rooms, room)
			h.mutex.Unlock()

		case msg := <-h.Broadcast:
			h.mutex.Lock()
			conns := h.rooms[msg.Room]
			for conn := range conns {
				if err := conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
					logger.Debug("dropping ws client", zap.String("room", msg.Room), zap.Error(err))
					conn.Close()
					delete(conns, conn)
				}
			}
			if conns != nil && len(conns) == 0 {
				delete(h.rooms, msg.Room)
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for every connection in room.
func (h *Hub) Publish(room, eventType string, payload any) error {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		return errors.Wrapf(err, "encode %s event", eventType)
	}
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case h.Broadcast <- Message{Room: room, Data: data}:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// CloseRoom disconnects every client of room.
func (h *Hub) CloseRoom(room string) {
	select {
	case h.Evict <- room:
	case <-h.done:
	}
}

// Clients returns the number of connections in room.
func (h *Hub) Clients(room string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.rooms[room])
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Join registers c in room. It reports false when the hub has stopped.
func (h *Hub) Join(room string, c Conn) bool {
	select {
	case h.Register <- Subscription{Room: room, Conn: c}:
		return true
	case <-h.done:
		return false
	}
}

// Leave removes c from room and closes it.
func (h *Hub) Leave(room string, c Conn) {
	select {
	case h.Unregister <- Subscription{Room: room, Conn: c}:
	case <-h.done:
	}
}
