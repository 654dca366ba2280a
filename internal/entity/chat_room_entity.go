package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom is a bounded chat session. IsActive flips to false exactly once,
// when the room is ended; there is no way back to active.
type ChatRoom struct {
	Id        uuid.UUID
	Title     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
