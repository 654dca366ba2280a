package mapper

import (
	"study-stream-be/internal/entity"
	"study-stream-be/internal/model"
)

type PaperMapper struct {
	users *UserMapper
}

func NewPaperMapper() *PaperMapper {
	return &PaperMapper{users: NewUserMapper()}
}

func (m *PaperMapper) ToEntity(p *model.Paper) *entity.Paper {
	if p == nil {
		return nil
	}
	return &entity.Paper{
		Id:         p.Id,
		Title:      p.Title,
		Subject:    p.Subject,
		Semester:   p.Semester,
		FileUrl:    p.FileUrl,
		UserId:     p.UserId,
		UploadDate: p.UploadDate,
		UploadedBy: m.users.ToEntity(p.UploadedBy),
	}
}

func (m *PaperMapper) ToModel(p *entity.Paper) *model.Paper {
	if p == nil {
		return nil
	}
	return &model.Paper{
		Id:         p.Id,
		Title:      p.Title,
		Subject:    p.Subject,
		Semester:   p.Semester,
		FileUrl:    p.FileUrl,
		UserId:     p.UserId,
		UploadDate: p.UploadDate,
	}
}
