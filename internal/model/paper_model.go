package model

import (
	"time"

	"github.com/google/uuid"
)

type Paper struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title      string    `gorm:"type:varchar(255);not null"`
	Subject    string    `gorm:"type:varchar(255);not null"`
	Semester   int       `gorm:"not null;index"`
	FileUrl    string    `gorm:"type:text;not null"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadDate time.Time `gorm:"autoCreateTime;index"`

	UploadedBy *User `gorm:"foreignKey:UserId"`
}

func (Paper) TableName() string {
	return "papers"
}
