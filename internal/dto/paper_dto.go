package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaperRequest struct {
	Title    string `form:"title" validate:"required"`
	Subject  string `form:"subject" validate:"required"`
	Semester string `form:"semester" validate:"required"`
}

type PaperResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`
	Semester   int       `json:"semester"`
	FileUrl    string    `json:"file_url"`
	UploadedBy string    `json:"uploaded_by"`
	UploadDate time.Time `json:"upload_date"`
}
