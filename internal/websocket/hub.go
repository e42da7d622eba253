package websocket

import (
	"sync"

	"groupchat-be/internal/pkg/logger"
)

// Hub is the process-local registry of live connections, keyed by room.
// It knows nothing about other processes; the relay feeds it frames from
// the shared broadcast channel and it fans out to its own sockets only.
type Hub struct {
	// rooms: room id -> set of locally subscribed clients
	rooms map[uint64]map[*Client]struct{}

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		rooms:  make(map[uint64]map[*Client]struct{}),
		logger: log,
	}
}

// Subscribe records the connection under the room's topic.
func (h *Hub) Subscribe(roomId uint64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomId] == nil {
		h.rooms[roomId] = make(map[*Client]struct{})
	}
	h.rooms[roomId][client] = struct{}{}
	client.rooms[roomId] = struct{}{}

	h.logger.Info("Hub", "Client subscribed", map[string]interface{}{
		"user_id": client.UserId,
		"room_id": roomId,
	})
}

// Unsubscribe removes the connection from one room's topic.
func (h *Hub) Unsubscribe(roomId uint64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(roomId, client)
}

// DropClient removes the connection from every room it was subscribed
// to. Called on disconnect; it never touches membership rows, a dropped
// socket is not a group departure.
func (h *Hub) DropClient(client *Client) []uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomIds := make([]uint64, 0, len(client.rooms))
	for roomId := range client.rooms {
		roomIds = append(roomIds, roomId)
		h.removeLocked(roomId, client)
	}

	h.logger.Info("Hub", "Client dropped", map[string]interface{}{
		"user_id": client.UserId,
		"rooms":   len(roomIds),
	})
	return roomIds
}

func (h *Hub) removeLocked(roomId uint64, client *Client) {
	if set, ok := h.rooms[roomId]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.rooms, roomId)
		}
	}
	delete(client.rooms, roomId)
}

// IsSubscribed reports whether the connection holds the room's topic.
func (h *Hub) IsSubscribed(roomId uint64, client *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[roomId][client]
	return ok
}

// CountLocal returns how many local connections hold the room's topic.
func (h *Hub) CountLocal(roomId uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomId])
}

// DeliverLocal pushes a raw frame to every local connection subscribed
// to the room. Slow consumers are dropped rather than allowed to stall
// the fan-out.
func (h *Hub) DeliverLocal(roomId uint64, frame []byte) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.rooms[roomId] {
		if !client.trySend(frame) {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
			"user_id": client.UserId,
			"room_id": roomId,
		})
		h.DropClient(client)
		client.CloseSend()
	}
}
