package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService stores images for questions, answers and replies
type UploadService interface {
	Enabled() bool
	UploadImage(ctx context.Context, actor Actor, filename, contentType string, size int64, body io.Reader) (*storage.UploadResult, error)
}

type uploadService struct {
	store    storage.BlobStore
	maxBytes int64
}

// NewUploadService creates a new UploadService. store may be nil, which disables uploads.
func NewUploadService(store storage.BlobStore, maxUploadMB int) UploadService {
	if maxUploadMB <= 0 {
		maxUploadMB = 5
	}
	return &uploadService{store: store, maxBytes: int64(maxUploadMB) << 20}
}

func (s *uploadService) Enabled() bool {
	return s.store != nil
}

// ErrUploadTooLarge is returned for files above the configured limit
var ErrUploadTooLarge = fmt.Errorf("%w: file is too large", common.ErrInvalidInput)

func (s *uploadService) UploadImage(ctx context.Context, actor Actor, filename, contentType string, size int64, body io.Reader) (*storage.UploadResult, error) {
	if actor.ID == 0 {
		return nil, common.ErrUnauthorized
	}
	if s.store == nil {
		return nil, fmt.Errorf("%w: image uploads are disabled", common.ErrInvalidInput)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty file", common.ErrInvalidInput)
	}
	if size > s.maxBytes {
		return nil, ErrUploadTooLarge
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: only jpeg, png, gif and webp images are allowed", common.ErrInvalidInput)
	}
	if filename == "" || !strings.Contains(filename, ".") {
		filename = "image" + ext
	}

	key := storage.GenerateKey(imagePrefix(actor.ID), filename)
	return s.store.Upload(ctx, key, io.LimitReader(body, s.maxBytes), contentType, size)
}
