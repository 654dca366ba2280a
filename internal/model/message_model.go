package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	SenderId  uuid.UUID `gorm:"type:uuid;not null;index"`
	RoomId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	Sender      *User        `gorm:"foreignKey:SenderId"`
	Attachments []Attachment `gorm:"foreignKey:MessageId"`
}

func (Message) TableName() string {
	return "messages"
}

type Attachment struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	MessageId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Url       string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}
