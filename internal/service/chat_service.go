package service

import (
	"context"
	"time"

	"study-stream-be/internal/dto"
	"study-stream-be/internal/entity"
	"study-stream-be/internal/pkg/logger"
	"study-stream-be/internal/pkg/serverutils"
	"study-stream-be/internal/repository/specification"
	"study-stream-be/internal/repository/unitofwork"
	"study-stream-be/pkg/events"
	"study-stream-be/pkg/summarizer"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	ListActiveRooms(ctx context.Context) ([]*dto.RoomResponse, error)
	ListMessages(ctx context.Context, roomId uuid.UUID) ([]*dto.MessageResponse, error)
	AppendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	EndRoom(ctx context.Context, roomId, endedBy uuid.UUID) (*dto.EndRoomResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	engine           *summarizer.Engine
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	engine *summarizer.Engine,
	publisherService IPublisherService,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		engine:           engine,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (c *chatService) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room := &entity.ChatRoom{
		Id:        uuid.New(),
		Title:     req.Title,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.ChatRoomRepository().Create(ctx, room); err != nil {
		c.logger.Error("ChatService", "Failed to create room", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		})
		return nil, serverutils.NewInternalError("failed to create chat room")
	}

	return roomToResponse(room), nil
}

func (c *chatService) ListActiveRooms(ctx context.Context) ([]*dto.RoomResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	rooms, err := uow.ChatRoomRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch chat rooms")
	}

	result := make([]*dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, roomToResponse(room))
	}
	return result, nil
}

func (c *chatService) ListMessages(ctx context.Context, roomId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch chat room")
	}
	if room == nil {
		return nil, serverutils.NewNotFoundError("chat room not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.Preload{Relation: "Sender"},
		specification.Preload{Relation: "Attachments"},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch messages")
	}

	result := make([]*dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		result = append(result, messageToResponse(msg))
	}
	return result, nil
}

func (c *chatService) AppendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByID{ID: req.RoomId})
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch chat room")
	}
	if room == nil {
		return nil, serverutils.NewNotFoundError("chat room not found")
	}
	if !room.IsActive {
		return nil, serverutils.NewValidationError("chat room is no longer active")
	}

	sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: senderId})
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch sender")
	}
	if sender == nil {
		return nil, serverutils.NewNotFoundError("sender not found")
	}

	msg := &entity.Message{
		Id:        uuid.New(),
		Content:   req.Content,
		SenderId:  senderId,
		RoomId:    req.RoomId,
		CreatedAt: time.Now(),
		Sender:    sender,
	}
	for _, att := range req.Attachments {
		msg.Attachments = append(msg.Attachments, entity.Attachment{
			Id:        uuid.New(),
			MessageId: msg.Id,
			Url:       att.Url,
			Metadata:  att.Metadata,
			CreatedAt: time.Now(),
		})
	}

	// Message and attachments are inserted together; a failure persists neither.
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		c.logger.Error("ChatService", "Failed to append message", map[string]interface{}{
			"room_id": req.RoomId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewInternalError("failed to create message")
	}

	return messageToResponse(msg), nil
}

func (c *chatService) EndRoom(ctx context.Context, roomId, endedBy uuid.UUID) (*dto.EndRoomResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch chat room")
	}
	if room == nil {
		return nil, serverutils.NewNotFoundError("chat room not found")
	}
	if !room.IsActive {
		return nil, serverutils.NewValidationError("chat room already ended")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.Preload{Relation: "Sender"},
		specification.Preload{Relation: "Attachments"},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch messages")
	}

	history := derefMessages(messages)

	// Summarization happens before the transaction so a slow or failing
	// provider never holds a database transaction open.
	summaryText, _ := c.engine.Summarize(ctx, history)

	summary := &entity.ChatSummary{
		Id:         uuid.New(),
		ChatRoomId: &room.Id,
		Summary:    summaryText,
		CreatedAt:  time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.NewInternalError("failed to begin transaction")
	}
	defer uow.Rollback()

	// The flip is conditional on the active flag; a concurrent closer that
	// also passed the guard above loses here and writes no second summary.
	flipped, err := uow.ChatRoomRepository().Deactivate(ctx, roomId)
	if err != nil {
		c.logger.Error("ChatService", "Failed to deactivate room", map[string]interface{}{
			"room_id": roomId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewInternalError("failed to end chat")
	}
	if !flipped {
		return nil, serverutils.NewValidationError("chat room already ended")
	}

	if err := uow.ChatSummaryRepository().Create(ctx, summary); err != nil {
		c.logger.Error("ChatService", "Failed to persist summary", map[string]interface{}{
			"room_id": roomId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewInternalError("failed to end chat")
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.NewInternalError("failed to end chat")
	}

	if c.publisherService != nil {
		evt := events.NewRoomEnded(room.Id, room.Title, endedBy)
		if err := c.publisherService.Publish(ctx, evt); err != nil {
			c.logger.Warn("ChatService", "Failed to publish room ended event", map[string]interface{}{
				"room_id": roomId,
				"error":   err.Error(),
			})
		}
	}

	return &dto.EndRoomResponse{
		Message: "Chat ended successfully",
		Summary: summaryText,
	}, nil
}

func roomToResponse(room *entity.ChatRoom) *dto.RoomResponse {
	return &dto.RoomResponse{
		Id:        room.Id,
		Title:     room.Title,
		IsActive:  room.IsActive,
		CreatedAt: room.CreatedAt,
	}
}

func messageToResponse(msg *entity.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		Id:          msg.Id,
		RoomId:      msg.RoomId,
		Content:     msg.Content,
		Attachments: make([]dto.AttachmentResponse, 0, len(msg.Attachments)),
		CreatedAt:   msg.CreatedAt,
	}
	if msg.Sender != nil {
		resp.Sender = dto.UserResponse{
			Id:    msg.Sender.Id,
			Name:  msg.Sender.Name,
			Email: msg.Sender.Email,
		}
	}
	for _, att := range msg.Attachments {
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			Id:       att.Id,
			Url:      att.Url,
			Metadata: att.Metadata,
		})
	}
	return resp
}
