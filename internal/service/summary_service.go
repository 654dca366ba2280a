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
	"study-stream-be/pkg/summarizer"

	"github.com/patrickmn/go-cache"
)

const summaryListCacheKey = "chat_summaries"

type ISummaryService interface {
	List(ctx context.Context) ([]*dto.ChatSummaryResponse, error)
	InvalidateCache()
}

type summaryService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewSummaryService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ISummaryService {
	// Short TTL: summaries change rarely but must show up soon after a room ends.
	c := cache.New(30*time.Second, 5*time.Minute)
	return &summaryService{
		uowFactory: uowFactory,
		cache:      c,
		logger:     logger,
	}
}

func (s *summaryService) List(ctx context.Context) ([]*dto.ChatSummaryResponse, error) {
	if x, found := s.cache.Get(summaryListCacheKey); found {
		return x.([]*dto.ChatSummaryResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	summaries, err := uow.ChatSummaryRepository().FindAll(ctx,
		specification.Preload{Relation: "ChatRoom"},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch chat summaries")
	}

	result := make([]*dto.ChatSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		resp := &dto.ChatSummaryResponse{
			Id:        summary.Id,
			RoomTitle: "Deleted Room",
			Summary:   summary.Summary,
			Date:      summary.CreatedAt,
		}

		// Rooms can be deleted after summarization. The summary survives with
		// a placeholder title and zeroed counts.
		if summary.Room != nil {
			resp.RoomTitle = summary.Room.Title

			messages, err := uow.MessageRepository().FindAll(ctx,
				specification.ByRoomID{RoomID: summary.Room.Id},
				specification.Preload{Relation: "Sender"},
				specification.OrderBy{Field: "created_at"},
			)
			if err != nil {
				return nil, serverutils.NewInternalError("failed to fetch chat summaries")
			}

			stats := summarizer.ComputeStatistics(derefMessages(messages))
			resp.ParticipantCount = len(stats.Participants)
			resp.MessageCount = stats.MessageCount
		}

		result = append(result, resp)
	}

	s.cache.Set(summaryListCacheKey, result, cache.DefaultExpiration)
	return result, nil
}

func (s *summaryService) InvalidateCache() {
	s.cache.Delete(summaryListCacheKey)
}

func derefMessages(messages []*entity.Message) []entity.Message {
	out := make([]entity.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, *msg)
	}
	return out
}
