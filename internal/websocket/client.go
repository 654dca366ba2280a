package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"study-stream-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Messages can carry attachment URLs and metadata.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// UserID associated with this connection
	UserID uuid.UUID

	// Display name from the JWT, used in log lines only
	Name string

	// Buffered channel of outbound messages.
	Send chan []byte
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for user %s: %v", c.UserID, err)
			}
			break
		}
		c.handleEvent(raw)
	}
}

// handleEvent dispatches one inbound frame. Unknown events are dropped.
func (c *Client) handleEvent(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.Hub.logger.Warn("Client", "Malformed frame", map[string]interface{}{
			"user_id": c.UserID,
			"error":   err.Error(),
		})
		return
	}

	switch env.Event {
	case "joinRoom":
		c.handleJoinRoom(env.Data)
	case "sendMessage":
		c.handleSendMessage(env.Data)
	default:
		c.Hub.logger.Warn("Client", "Unknown event", map[string]interface{}{
			"user_id": c.UserID,
			"event":   env.Event,
		})
	}
}

func (c *Client) handleJoinRoom(data json.RawMessage) {
	var roomIDStr string
	if err := json.Unmarshal(data, &roomIDStr); err != nil {
		c.sendFailed("invalid room id")
		return
	}
	roomID, err := uuid.Parse(roomIDStr)
	if err != nil {
		c.sendFailed("invalid room id")
		return
	}
	c.Hub.Join(c, roomID)
}

func (c *Client) handleSendMessage(data json.RawMessage) {
	var req dto.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendFailed("invalid message payload")
		return
	}

	resp, err := c.Hub.sink.AppendMessage(context.Background(), c.UserID, &req)
	if err != nil {
		// Only the sender learns about the failure; the room stays quiet.
		c.sendFailed(err.Error())
		return
	}

	c.Hub.BroadcastToRoom(req.RoomId, NewEnvelope("message", resp))
}

func (c *Client) sendFailed(reason string) {
	payload := NewEnvelope("sendFailed", map[string]interface{}{
		"reason": reason,
	})
	select {
	case c.Send <- payload:
	default:
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued chat messages to the current websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
