package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSummary is written exactly once per ended room and never re-derived.
// ChatRoomId and Room may be nil when the room was deleted afterwards.
type ChatSummary struct {
	Id         uuid.UUID
	ChatRoomId *uuid.UUID
	Summary    string
	CreatedAt  time.Time

	Room *ChatRoom
}
