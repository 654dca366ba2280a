package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"study-stream-be/internal/dto"
	"study-stream-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MessageSink persists an inbound chat message. Implemented by the chat
// service; the hub never talks to storage directly.
type MessageSink interface {
	AppendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
}

// Envelope is the wire format for every websocket event, in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func NewEnvelope(event string, data interface{}) []byte {
	raw, _ := json.Marshal(data)
	payload, _ := json.Marshal(Envelope{Event: event, Data: raw})
	return payload
}

type Hub struct {
	// All connected clients on this instance
	clients map[*Client]struct{}

	// Room membership: RoomID -> connected clients
	rooms map[uuid.UUID]map[*Client]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Identifies this process in the redis channel so it can skip its own
	// publishes; local delivery already happened.
	instanceID string

	sink MessageSink

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, sink MessageSink, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		sink:       sink,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client connected", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; !ok {
				h.mu.Unlock()
				continue
			}
			delete(h.clients, client)
			for roomID, members := range h.rooms {
				if _, ok := members[client]; ok {
					delete(members, client)
					if len(members) == 0 {
						delete(h.rooms, roomID)
					}
				}
			}
			// Closing under the lock keeps deliverToRoom from sending on a
			// closed channel.
			close(client.Send)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client disconnected", map[string]interface{}{"user_id": client.UserID})
		}
	}
}

// Join adds a client to a room. Joining twice is a no-op.
func (h *Hub) Join(client *Client, roomID uuid.UUID) {
	h.mu.Lock()
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[roomID] = members
	}
	members[client] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("Hub", "Client joined room", map[string]interface{}{
		"user_id": client.UserID,
		"room_id": roomID,
	})
}

// BroadcastToRoom delivers a payload to every client in the room on this
// instance and relays it through redis for the others.
func (h *Hub) BroadcastToRoom(roomID uuid.UUID, payload []byte) {
	h.deliverToRoom(roomID, payload)

	if h.rdb != nil {
		wrapped, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceID,
			"room_id": roomID.String(),
			"message": json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), "chat_room_events", wrapped)
	}
}

func (h *Hub) deliverToRoom(roomID uuid.UUID, payload []byte) {
	var dropped []*Client

	// Sends stay under the read lock so the unregister path cannot close a
	// channel mid-send. The sends never block: Send is buffered and full
	// buffers fall through to the drop list.
	h.mu.RLock()
	for client := range h.rooms[roomID] {
		select {
		case client.Send <- payload:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
			"user_id": client.UserID,
		})
		h.unregister <- client
	}
}

// CloseRoom notifies the room's members that it has ended and forgets the
// membership on this instance.
func (h *Hub) CloseRoom(roomID uuid.UUID, roomTitle string) {
	payload := NewEnvelope("roomClosed", map[string]interface{}{
		"room_id":    roomID.String(),
		"room_title": roomTitle,
	})
	h.BroadcastToRoom(roomID, payload)

	h.mu.Lock()
	delete(h.rooms, roomID)
	h.mu.Unlock()
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "chat_room_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			Origin  string          `json:"origin"`
			RoomID  string          `json:"room_id"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		// Our own publish, already delivered locally.
		if payload.Origin == h.instanceID {
			continue
		}

		roomID, err := uuid.Parse(payload.RoomID)
		if err != nil {
			continue
		}

		h.deliverToRoom(roomID, payload.Message)
	}
}
