package ws

import (
	"errors"

	"github.com/puzpuzpuz/xsync"
)

// Hub tracks active clients by connection id and the room each one is
// subscribed to. A client subscribes to at most one room at a time;
// resubscribing replaces the previous room.
type Hub struct {
	clients *xsync.MapOf[string, *Client]
	rooms   *xsync.MapOf[string, string]
}

func NewHub() *Hub {
	return &Hub{
		clients: xsync.NewMapOf[*Client](),
		rooms:   xsync.NewMapOf[string](),
	}
}

func (h *Hub) Register(id string, client *Client) error {
	if _, existed := h.clients.LoadOrStore(id, client); existed {
		return errors.New("the client has already registered")
	}

	return nil
}

func (h *Hub) Unregister(id string) error {
	client, existed := h.clients.LoadAndDelete(id)
	if !existed {
		return errors.New("the client has not registered yet")
	}

	h.rooms.Delete(id)
	client.Close()
	return nil
}

func (h *Hub) Subscribe(id, room string) {
	h.rooms.Store(id, room)
}

func (h *Hub) Unsubscribe(id string) {
	h.rooms.Delete(id)
}

func (h *Hub) Room(id string) string {
	room, _ := h.rooms.Load(id)
	return room
}

func (h *Hub) SendTo(id string, msg []byte) error {
	client, ok := h.clients.Load(id)
	if !ok {
		return errors.New("not found client")
	}

	return client.Write(msg)
}

func (h *Hub) SendRoom(room string, msg []byte) {
	h.clients.Range(func(id string, client *Client) bool {
		if r, ok := h.rooms.Load(id); ok && r == room {
			_ = client.Write(msg)
		}
		return true
	})
}

func (h *Hub) SendAll(msg []byte) {
	h.clients.Range(func(id string, client *Client) bool {
		_ = client.Write(msg)
		return true
	})
}
