package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. Transcript order is ascending CreatedAt.
type Message struct {
	Id        uuid.UUID
	Content   string
	SenderId  uuid.UUID
	RoomId    uuid.UUID
	CreatedAt time.Time

	Sender      *User
	Attachments []Attachment
}

type Attachment struct {
	Id        uuid.UUID
	MessageId uuid.UUID
	Url       string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
