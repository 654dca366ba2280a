package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"study-stream-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	keys []string
	err  error
}

func (s *stubStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func (s *stubStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func (s *stubStore) Delete(ctx context.Context, key string) error {
	return nil
}

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(body, w.Boundary())
	form, err := reader.ReadForm(10 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func TestUploadService(t *testing.T) {
	t.Run("stores an allowed file and returns its url", func(t *testing.T) {
		store := &stubStore{}
		svc := NewUploadService(store, nopLogger{})

		file := makeFileHeader(t, "notes.pdf", "application/pdf", []byte("%PDF-1.4 fake"))

		url, err := svc.UploadFile(context.Background(), file)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/documents/"))
		require.Len(t, store.keys, 1)
		assert.True(t, strings.HasSuffix(store.keys[0], ".pdf"))
	})

	t.Run("rejects files over the size limit", func(t *testing.T) {
		svc := NewUploadService(&stubStore{}, nopLogger{})

		file := &multipart.FileHeader{
			Filename: "big.pdf",
			Size:     maxUploadSize + 1,
			Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
		}

		_, err := svc.UploadFile(context.Background(), file)

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("rejects disallowed content types", func(t *testing.T) {
		svc := NewUploadService(&stubStore{}, nopLogger{})

		file := &multipart.FileHeader{
			Filename: "malware.exe",
			Size:     128,
			Header:   textproto.MIMEHeader{"Content-Type": []string{"application/octet-stream"}},
		}

		_, err := svc.UploadFile(context.Background(), file)

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("uploads several files at once", func(t *testing.T) {
		store := &stubStore{}
		svc := NewUploadService(store, nopLogger{})

		files := []*multipart.FileHeader{
			makeFileHeader(t, "a.png", "image/png", []byte("png-bytes")),
			makeFileHeader(t, "b.pdf", "application/pdf", []byte("pdf-bytes")),
		}

		urls, err := svc.UploadFiles(context.Background(), files)
		require.NoError(t, err)
		assert.Len(t, urls, 2)
		assert.Len(t, store.keys, 2)
	})

	t.Run("empty batch is a validation error", func(t *testing.T) {
		svc := NewUploadService(&stubStore{}, nopLogger{})

		_, err := svc.UploadFiles(context.Background(), nil)

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}
