package entity

import (
	"time"

	"github.com/google/uuid"
)

type Paper struct {
	Id         uuid.UUID
	Title      string
	Subject    string
	Semester   int
	FileUrl    string
	UserId     uuid.UUID
	UploadDate time.Time

	UploadedBy *User
}
