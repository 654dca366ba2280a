package service

import (
	"context"
	"mime/multipart"
	"strconv"
	"time"

	"study-stream-be/internal/dto"
	"study-stream-be/internal/entity"
	"study-stream-be/internal/pkg/logger"
	"study-stream-be/internal/pkg/serverutils"
	"study-stream-be/internal/repository/specification"
	"study-stream-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPaperService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePaperRequest, file *multipart.FileHeader) (*dto.PaperResponse, error)
	ListAll(ctx context.Context) ([]*dto.PaperResponse, error)
	ListBySemester(ctx context.Context, semester string) ([]*dto.PaperResponse, error)
}

type paperService struct {
	uowFactory    unitofwork.RepositoryFactory
	uploadService IUploadService
	logger        logger.ILogger
}

func NewPaperService(
	uowFactory unitofwork.RepositoryFactory,
	uploadService IUploadService,
	logger logger.ILogger,
) IPaperService {
	return &paperService{
		uowFactory:    uowFactory,
		uploadService: uploadService,
		logger:        logger,
	}
}

func (s *paperService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePaperRequest, file *multipart.FileHeader) (*dto.PaperResponse, error) {
	semester, err := strconv.Atoi(req.Semester)
	if err != nil || semester < 1 {
		return nil, serverutils.NewValidationError("semester must be a positive number")
	}

	if file == nil {
		return nil, serverutils.NewValidationError("no file uploaded")
	}

	fileUrl, err := s.uploadService.UploadFile(ctx, file)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	uploader, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch uploader")
	}
	if uploader == nil {
		return nil, serverutils.NewNotFoundError("uploader not found")
	}

	paper := &entity.Paper{
		Id:         uuid.New(),
		Title:      req.Title,
		Subject:    req.Subject,
		Semester:   semester,
		FileUrl:    fileUrl,
		UserId:     userId,
		UploadDate: time.Now(),
		UploadedBy: uploader,
	}

	if err := uow.PaperRepository().Create(ctx, paper); err != nil {
		s.logger.Error("PaperService", "Failed to create paper", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		})
		return nil, serverutils.NewInternalError("failed to upload paper")
	}

	return paperToResponse(paper), nil
}

func (s *paperService) ListAll(ctx context.Context) ([]*dto.PaperResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	papers, err := uow.PaperRepository().FindAll(ctx,
		specification.Preload{Relation: "UploadedBy"},
		specification.OrderBy{Field: "upload_date", Desc: true},
	)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch papers")
	}

	return papersToResponses(papers), nil
}

func (s *paperService) ListBySemester(ctx context.Context, semesterParam string) ([]*dto.PaperResponse, error) {
	semester, err := strconv.Atoi(semesterParam)
	if err != nil {
		return nil, serverutils.NewValidationError("semester must be a number")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	papers, err := uow.PaperRepository().FindAll(ctx,
		specification.BySemester{Semester: semester},
		specification.Preload{Relation: "UploadedBy"},
		specification.OrderBy{Field: "upload_date", Desc: true},
	)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch papers")
	}

	return papersToResponses(papers), nil
}

func paperToResponse(paper *entity.Paper) *dto.PaperResponse {
	resp := &dto.PaperResponse{
		Id:         paper.Id,
		Title:      paper.Title,
		Subject:    paper.Subject,
		Semester:   paper.Semester,
		FileUrl:    paper.FileUrl,
		UploadDate: paper.UploadDate,
	}
	if paper.UploadedBy != nil {
		resp.UploadedBy = paper.UploadedBy.Name
	}
	return resp
}

func papersToResponses(papers []*entity.Paper) []*dto.PaperResponse {
	result := make([]*dto.PaperResponse, 0, len(papers))
	for _, paper := range papers {
		result = append(result, paperToResponse(paper))
	}
	return result
}
