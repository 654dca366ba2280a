package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Rooms ---

type CreateRoomRequest struct {
	Title string `json:"title" validate:"required"`
}

type RoomResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Messages ---

type AttachmentRequest struct {
	Url      string                 `json:"url" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type SendMessageRequest struct {
	RoomId      uuid.UUID           `json:"room_id" validate:"required"`
	Content     string              `json:"content" validate:"required"`
	Attachments []AttachmentRequest `json:"attachments,omitempty"`
}

type AttachmentResponse struct {
	Id       uuid.UUID              `json:"id"`
	Url      string                 `json:"url"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type MessageResponse struct {
	Id          uuid.UUID            `json:"id"`
	RoomId      uuid.UUID            `json:"room_id"`
	Content     string               `json:"content"`
	Sender      UserResponse         `json:"sender"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"created_at"`
}

// --- Lifecycle ---

type EndRoomResponse struct {
	Message string `json:"message"`
	Summary string `json:"summary"`
}

// PublishRoomEndedMessage is the payload sent through the pubsub channel when
// a room is closed.
type PublishRoomEndedMessage struct {
	RoomId    uuid.UUID `json:"room_id"`
	RoomTitle string    `json:"room_title"`
}

// --- Summaries ---

type ChatSummaryResponse struct {
	Id               uuid.UUID `json:"id"`
	RoomTitle        string    `json:"room_title"`
	Summary          string    `json:"summary"`
	ParticipantCount int       `json:"participant_count"`
	MessageCount     int       `json:"message_count"`
	Date             time.Time `json:"date"`
}

// --- Uploads ---

type UploadResponse struct {
	FileUrls []string `json:"file_urls"`
}
