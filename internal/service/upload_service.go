package service

import (
	"context"
	"fmt"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"time"

	"study-stream-be/internal/pkg/logger"
	"study-stream-be/internal/pkg/serverutils"
	"study-stream-be/pkg/storage"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg":         {},
	"image/png":          {},
	"image/gif":          {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

type IUploadService interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader) (string, error)
	UploadFiles(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

type uploadService struct {
	store  storage.ObjectStore
	logger logger.ILogger
}

func NewUploadService(store storage.ObjectStore, logger logger.ILogger) IUploadService {
	return &uploadService{
		store:  store,
		logger: logger,
	}
}

func (s *uploadService) UploadFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSize {
		return "", serverutils.NewValidationError("file exceeds the 5MB size limit")
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedUploadTypes[contentType]; !ok {
		return "", serverutils.NewValidationError("invalid file type")
	}

	src, err := file.Open()
	if err != nil {
		return "", serverutils.NewInternalError("failed to read uploaded file")
	}
	defer src.Close()

	key := fmt.Sprintf("%s-%d-%d%s",
		fileKeyPrefix(contentType),
		time.Now().UnixMilli(),
		rand.Int63n(1e9),
		filepath.Ext(file.Filename),
	)

	url, err := s.store.Put(ctx, key, src, file.Size, contentType)
	if err != nil {
		s.logger.Error("UploadService", "Failed to store file", map[string]interface{}{
			"filename": file.Filename,
			"error":    err.Error(),
		})
		return "", serverutils.NewInternalError("failed to store file")
	}

	return url, nil
}

func (s *uploadService) UploadFiles(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, serverutils.NewValidationError("no files uploaded")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.UploadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func fileKeyPrefix(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif":
		return "images/file"
	default:
		return "documents/file"
	}
}
