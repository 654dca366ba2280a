package mapper

import (
	"encoding/json"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct {
	users *UserMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{users: NewUserMapper()}
}

// Room Mappers

func (m *ChatMapper) RoomToEntity(r *model.ChatRoom) *entity.ChatRoom {
	if r == nil {
		return nil
	}
	return &entity.ChatRoom{
		Id:        r.Id,
		Title:     r.Title,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *ChatMapper) RoomToModel(r *entity.ChatRoom) *model.ChatRoom {
	if r == nil {
		return nil
	}
	return &model.ChatRoom{
		Id:        r.Id,
		Title:     r.Title,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	attachments := make([]entity.Attachment, len(msg.Attachments))
	for i, a := range msg.Attachments {
		attachments[i] = *m.AttachmentToEntity(&a)
	}
	return &entity.Message{
		Id:          msg.Id,
		Content:     msg.Content,
		SenderId:    msg.SenderId,
		RoomId:      msg.RoomId,
		CreatedAt:   msg.CreatedAt,
		Sender:      m.users.ToEntity(msg.Sender),
		Attachments: attachments,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	attachments := make([]model.Attachment, len(msg.Attachments))
	for i, a := range msg.Attachments {
		attachments[i] = *m.AttachmentToModel(&a)
	}
	return &model.Message{
		Id:          msg.Id,
		Content:     msg.Content,
		SenderId:    msg.SenderId,
		RoomId:      msg.RoomId,
		CreatedAt:   msg.CreatedAt,
		Attachments: attachments,
	}
}

func (m *ChatMapper) AttachmentToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		// Malformed metadata is tolerated: the attachment URL is what matters.
		_ = json.Unmarshal(a.Metadata, &metadata)
	}
	return &entity.Attachment{
		Id:        a.Id,
		MessageId: a.MessageId,
		Url:       a.Url,
		Metadata:  metadata,
		CreatedAt: a.CreatedAt,
	}
}

func (m *ChatMapper) AttachmentToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}
	var metadata datatypes.JSON
	if a.Metadata != nil {
		raw, err := json.Marshal(a.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}
	return &model.Attachment{
		Id:        a.Id,
		MessageId: a.MessageId,
		Url:       a.Url,
		Metadata:  metadata,
		CreatedAt: a.CreatedAt,
	}
}

// Summary Mappers

func (m *ChatMapper) SummaryToEntity(s *model.ChatSummary) *entity.ChatSummary {
	if s == nil {
		return nil
	}
	return &entity.ChatSummary{
		Id:         s.Id,
		ChatRoomId: s.ChatRoomId,
		Summary:    s.Summary,
		CreatedAt:  s.CreatedAt,
		Room:       m.RoomToEntity(s.ChatRoom),
	}
}

func (m *ChatMapper) SummaryToModel(s *entity.ChatSummary) *model.ChatSummary {
	if s == nil {
		return nil
	}
	return &model.ChatSummary{
		Id:         s.Id,
		ChatRoomId: s.ChatRoomId,
		Summary:    s.Summary,
		CreatedAt:  s.CreatedAt,
	}
}
