package events

import (
	"time"

	"github.com/google/uuid"
)

const RoomEndedType = "CHAT_ROOM_ENDED"

// RoomEnded is published after a chat room has been closed and its summary
// persisted.
type RoomEnded struct {
	RoomID     uuid.UUID
	RoomTitle  string
	EndedBy    uuid.UUID
	OccurredAt time.Time
}

func NewRoomEnded(roomID uuid.UUID, roomTitle string, endedBy uuid.UUID) RoomEnded {
	return RoomEnded{
		RoomID:     roomID,
		RoomTitle:  roomTitle,
		EndedBy:    endedBy,
		OccurredAt: time.Now(),
	}
}

func (e RoomEnded) EventType() string {
	return RoomEndedType
}

func (e RoomEnded) Payload() map[string]interface{} {
	return map[string]interface{}{
		"room_id":    e.RoomID.String(),
		"room_title": e.RoomTitle,
		"ended_by":   e.EndedBy.String(),
	}
}

func (e RoomEnded) Timestamp() time.Time {
	return e.OccurredAt
}
