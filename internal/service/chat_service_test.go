package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"study-stream-be/internal/dto"
	"study-stream-be/internal/pkg/serverutils"
	"study-stream-be/internal/repository/specification"
	"study-stream-be/internal/repository/unitofwork"
	"study-stream-be/pkg/events"
	"study-stream-be/pkg/summarizer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T, llmStub *stubLLM) (IChatService, *capturePublisher, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := newTestFactory(t)
	publisher := &capturePublisher{}
	engine := summarizer.NewEngine(llmStub, nopLogger{})
	svc := NewChatService(factory, engine, publisher, nopLogger{})
	return svc, publisher, factory
}

func TestChatServiceCreateRoom(t *testing.T) {
	svc, _, factory := newChatFixture(t, &stubLLM{response: "ok"})

	res, err := svc.CreateRoom(context.Background(), &dto.CreateRoomRequest{Title: "Algorithms study group"})
	require.NoError(t, err)

	assert.Equal(t, "Algorithms study group", res.Title)
	assert.True(t, res.IsActive)

	uow := factory.NewUnitOfWork(context.Background())
	room, err := uow.ChatRoomRepository().FindOne(context.Background(), specification.ByID{ID: res.Id})
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.True(t, room.IsActive)
}

func TestChatServiceListActiveRooms(t *testing.T) {
	svc, _, factory := newChatFixture(t, &stubLLM{response: "ok"})

	seedRoom(t, factory, "Open room", true)
	seedRoom(t, factory, "Closed room", false)

	rooms, err := svc.ListActiveRooms(context.Background())
	require.NoError(t, err)

	require.Len(t, rooms, 1)
	assert.Equal(t, "Open room", rooms[0].Title)
}

func TestChatServiceListMessagesAscending(t *testing.T) {
	svc, _, factory := newChatFixture(t, &stubLLM{response: "ok"})

	alice := seedUser(t, factory, "Alice", "alice@example.com")
	room := seedRoom(t, factory, "Ordering", true)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// Inserted out of order on purpose.
	seedMessage(t, factory, room, alice, "B", base.Add(time.Minute), 0)
	seedMessage(t, factory, room, alice, "C", base.Add(2*time.Minute), 0)
	seedMessage(t, factory, room, alice, "A", base, 0)

	messages, err := svc.ListMessages(context.Background(), room.Id)
	require.NoError(t, err)

	require.Len(t, messages, 3)
	assert.Equal(t, "A", messages[0].Content)
	assert.Equal(t, "B", messages[1].Content)
	assert.Equal(t, "C", messages[2].Content)
	assert.Equal(t, "Alice", messages[0].Sender.Name)
}

func TestChatServiceListMessagesUnknownRoom(t *testing.T) {
	svc, _, _ := newChatFixture(t, &stubLLM{response: "ok"})

	_, err := svc.ListMessages(context.Background(), uuid.New())

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestChatServiceAppendMessage(t *testing.T) {
	svc, _, factory := newChatFixture(t, &stubLLM{response: "ok"})

	alice := seedUser(t, factory, "Alice", "alice@example.com")
	room := seedRoom(t, factory, "General", true)

	t.Run("persists message with attachments", func(t *testing.T) {
		res, err := svc.AppendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{
			RoomId:  room.Id,
			Content: "check this out",
			Attachments: []dto.AttachmentRequest{
				{Url: "https://files.example.com/sheet.pdf", Metadata: map[string]interface{}{"size": float64(1024)}},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "check this out", res.Content)
		assert.Equal(t, "Alice", res.Sender.Name)
		require.Len(t, res.Attachments, 1)
		assert.Equal(t, "https://files.example.com/sheet.pdf", res.Attachments[0].Url)

		messages, err := svc.ListMessages(context.Background(), room.Id)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		require.Len(t, messages[0].Attachments, 1)
		assert.Equal(t, float64(1024), messages[0].Attachments[0].Metadata["size"])
	})

	t.Run("rejects unknown room", func(t *testing.T) {
		_, err := svc.AppendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{
			RoomId:  uuid.New(),
			Content: "hello",
		})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("rejects ended room", func(t *testing.T) {
		closed := seedRoom(t, factory, "Closed", false)

		_, err := svc.AppendMessage(context.Background(), alice.Id, &dto.SendMessageRequest{
			RoomId:  closed.Id,
			Content: "too late",
		})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}

func TestChatServiceEndRoom(t *testing.T) {
	t.Run("writes summary and deactivates room", func(t *testing.T) {
		svc, publisher, factory := newChatFixture(t, &stubLLM{response: "They discussed sorting."})

		alice := seedUser(t, factory, "Alice", "alice@example.com")
		bob := seedUser(t, factory, "Bob", "bob@example.com")
		room := seedRoom(t, factory, "Sorting", true)

		base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		seedMessage(t, factory, room, alice, "quicksort or mergesort?", base, 0)
		seedMessage(t, factory, room, bob, "depends on the data", base.Add(10*time.Minute), 1)

		res, err := svc.EndRoom(context.Background(), room.Id, alice.Id)
		require.NoError(t, err)

		assert.Equal(t, "Chat ended successfully", res.Message)
		assert.Contains(t, res.Summary, "- Duration: 10 minutes")
		assert.Contains(t, res.Summary, "- Participants (2): Alice, Bob")
		assert.Contains(t, res.Summary, "- Total Messages: 2")
		assert.Contains(t, res.Summary, "- Attachments Shared: 1")
		assert.Contains(t, res.Summary, "AI-Generated Summary:\nThey discussed sorting.")

		uow := factory.NewUnitOfWork(context.Background())
		updated, err := uow.ChatRoomRepository().FindOne(context.Background(), specification.ByID{ID: room.Id})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)

		count, err := uow.ChatSummaryRepository().Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		require.Len(t, publisher.published, 1)
		evt, ok := publisher.published[0].(events.RoomEnded)
		require.True(t, ok)
		assert.Equal(t, events.RoomEndedType, evt.EventType())
		assert.Equal(t, room.Id, evt.RoomID)
		assert.Equal(t, "Sorting", evt.RoomTitle)
		assert.Equal(t, alice.Id, evt.EndedBy)
	})

	t.Run("summary is stored even when the llm fails", func(t *testing.T) {
		svc, _, factory := newChatFixture(t, &stubLLM{err: errors.New("provider down")})

		alice := seedUser(t, factory, "Alice", "alice@example.com")
		room := seedRoom(t, factory, "Flaky AI", true)
		seedMessage(t, factory, room, alice, "hello", time.Now(), 0)

		res, err := svc.EndRoom(context.Background(), room.Id, alice.Id)
		require.NoError(t, err)

		assert.Contains(t, res.Summary, "AI summary generation failed. Please review the chat history manually.")

		uow := factory.NewUnitOfWork(context.Background())
		updated, err := uow.ChatRoomRepository().FindOne(context.Background(), specification.ByID{ID: room.Id})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)

		count, err := uow.ChatSummaryRepository().Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ending twice is rejected and writes no second summary", func(t *testing.T) {
		svc, _, factory := newChatFixture(t, &stubLLM{response: "ok"})

		alice := seedUser(t, factory, "Alice", "alice@example.com")
		room := seedRoom(t, factory, "Once only", true)

		_, err := svc.EndRoom(context.Background(), room.Id, alice.Id)
		require.NoError(t, err)

		_, err = svc.EndRoom(context.Background(), room.Id, alice.Id)
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)

		uow := factory.NewUnitOfWork(context.Background())
		count, err := uow.ChatSummaryRepository().Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("deactivation only succeeds for the active flag holder", func(t *testing.T) {
		_, _, factory := newChatFixture(t, &stubLLM{response: "ok"})

		room := seedRoom(t, factory, "Contended", true)
		uow := factory.NewUnitOfWork(context.Background())

		// A second closer that slipped past the active-room guard must see
		// zero affected rows instead of flipping the room again.
		flipped, err := uow.ChatRoomRepository().Deactivate(context.Background(), room.Id)
		require.NoError(t, err)
		assert.True(t, flipped)

		flipped, err = uow.ChatRoomRepository().Deactivate(context.Background(), room.Id)
		require.NoError(t, err)
		assert.False(t, flipped)
	})

	t.Run("unknown room yields not found", func(t *testing.T) {
		svc, _, _ := newChatFixture(t, &stubLLM{response: "ok"})

		_, err := svc.EndRoom(context.Background(), uuid.New(), uuid.New())

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("empty room summary has zero statistics", func(t *testing.T) {
		svc, _, factory := newChatFixture(t, &stubLLM{response: "Nothing happened."})

		alice := seedUser(t, factory, "Alice", "alice@example.com")
		room := seedRoom(t, factory, "Silent", true)

		res, err := svc.EndRoom(context.Background(), room.Id, alice.Id)
		require.NoError(t, err)

		assert.Contains(t, res.Summary, "- Duration: 0 minutes")
		assert.Contains(t, res.Summary, "- Total Messages: 0")
		assert.Contains(t, res.Summary, "- Participants (0):")
	})
}
