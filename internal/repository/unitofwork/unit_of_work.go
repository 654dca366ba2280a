package unitofwork

import (
	"context"

	"study-stream-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatRoomRepository() contract.ChatRoomRepository
	MessageRepository() contract.MessageRepository
	ChatSummaryRepository() contract.ChatSummaryRepository
	PaperRepository() contract.PaperRepository
}
