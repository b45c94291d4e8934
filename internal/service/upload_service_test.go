package service

import (
	"context"
	"strings"
	"testing"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadImage_Disabled(t *testing.T) {
	svc := NewUploadService(nil, 5)

	assert.False(t, svc.Enabled())
	_, err := svc.UploadImage(context.Background(), studentActor, "a.png", "image/png", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUploadImage_Validation(t *testing.T) {
	store := new(mockBlobStore)
	svc := NewUploadService(store, 1)
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, Actor{}, "a.png", "image/png", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.UploadImage(ctx, studentActor, "a.png", "image/png", 2<<20, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadTooLarge)

	_, err = svc.UploadImage(ctx, studentActor, "a.pdf", "application/pdf", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.UploadImage(ctx, studentActor, "a.png", "image/png", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImage_KeyUnderUserPrefix(t *testing.T) {
	store := new(mockBlobStore)
	svc := NewUploadService(store, 5)
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "images/7/") && strings.HasSuffix(key, ".png")
	}), mock.Anything, "image/png", int64(3)).
		Return(&storage.UploadResult{Key: "images/7/k.png", URL: "https://cdn.example.com/images/7/k.png"}, nil)

	res, err := svc.UploadImage(context.Background(), studentActor, "", "image/png; charset=binary", 3, strings.NewReader("png"))

	require.NoError(t, err)
	assert.Equal(t, "images/7/k.png", res.Key)
	store.AssertExpectations(t)
}
