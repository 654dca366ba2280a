package service

import (
	"context"
	"testing"
	"time"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/model"
	"study-stream-be/internal/repository/unitofwork"
	"study-stream-be/pkg/events"
	"study-stream-be/pkg/llm"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Shared fixtures for the service tests in this package.

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and shared.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.ChatRoom{},
		&model.Message{},
		&model.Attachment{},
		&model.ChatSummary{},
		&model.Paper{},
	))

	return db
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(setupTestDB(t))
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (p *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	return p.response, p.err
}

func (p *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.calls++
	return p.response, p.err
}

type capturePublisher struct {
	published []events.Event
	err       error
}

func (p *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, name, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		Id:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	return user
}

func seedRoom(t *testing.T, factory unitofwork.RepositoryFactory, title string, active bool) *entity.ChatRoom {
	t.Helper()
	room := &entity.ChatRoom{
		Id:        uuid.New(),
		Title:     title,
		IsActive:  active,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatRoomRepository().Create(context.Background(), room))
	return room
}

func seedMessage(t *testing.T, factory unitofwork.RepositoryFactory, room *entity.ChatRoom, sender *entity.User, content string, at time.Time, attachments int) *entity.Message {
	t.Helper()
	msg := &entity.Message{
		Id:        uuid.New(),
		Content:   content,
		SenderId:  sender.Id,
		RoomId:    room.Id,
		CreatedAt: at,
		Sender:    sender,
	}
	for i := 0; i < attachments; i++ {
		msg.Attachments = append(msg.Attachments, entity.Attachment{
			Id:        uuid.New(),
			MessageId: msg.Id,
			Url:       "https://files.example.com/doc.pdf",
			CreatedAt: at,
		})
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.MessageRepository().Create(context.Background(), msg))
	return msg
}
