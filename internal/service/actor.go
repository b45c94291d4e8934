package service

import (
	"fmt"
	"strings"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
)

// Actor is the authenticated user performing an operation.
// A zero ID means an anonymous visitor.
type Actor struct {
	ID   uint64
	Role domain.Role
}

// IsStaff reports whether the actor is admin or superadmin
func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// ImageInput references a previously uploaded image by its storage path
type ImageInput struct {
	Path string `json:"image_path"`
}

// imagePrefix is the storage prefix for images uploaded by a user
func imagePrefix(userID uint64) string {
	return fmt.Sprintf("images/%d", userID)
}

// resolveImage validates that the path belongs to the user and returns
// the (url, path) pair to persist. An empty path clears the image.
func resolveImage(urlFor func(string) string, userID uint64, path string) (*string, *string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, nil
	}
	if urlFor == nil {
		return nil, nil, fmt.Errorf("%w: image uploads are disabled", common.ErrInvalidInput)
	}
	if !strings.HasPrefix(path, imagePrefix(userID)+"/") || strings.Contains(path, "..") {
		return nil, nil, fmt.Errorf("%w: unknown image", common.ErrInvalidInput)
	}
	url := urlFor(path)
	return &url, &path, nil
}

func requireText(s string, err error) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", err
	}
	return s, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
