package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRoomID struct {
	RoomID uuid.UUID
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type BySemester struct {
	Semester int
}

func (s BySemester) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("semester = ?", s.Semester)
}
