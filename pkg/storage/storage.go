package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the image store used for question, answer and reply attachments
type BlobStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*UploadResult, error)
	PublicURL(key string) string
	Remove(ctx context.Context, keys ...string) error
}

// UploadResult contains the result of a file upload
type UploadResult struct {
	Key         string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// GenerateKey creates a unique object key under prefix/yyyy/mm/dd
func GenerateKey(prefix, filename string) string {
	now := time.Now()
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s",
		prefix, now.Year(), now.Month(), now.Day(),
		uuid.New().String(), ext)
}
