package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatSummary keeps a nullable room reference: rooms can be deleted after the
// summary is written, and the summary must survive that.
type ChatSummary struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChatRoomId *uuid.UUID `gorm:"type:uuid;index"`
	Summary    string     `gorm:"type:text;not null"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index"`

	ChatRoom *ChatRoom `gorm:"foreignKey:ChatRoomId;constraint:OnDelete:SET NULL"`
}

func (ChatSummary) TableName() string {
	return "chat_summaries"
}
