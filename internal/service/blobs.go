package service

import (
	"context"
	"time"

	"github.com/gyansetu/gyansetu-backend/pkg/logger"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
)

const blobRemoveTimeout = 10 * time.Second

// removeBlobs deletes stored images after their rows are gone. Best effort.
func removeBlobs(store storage.BlobStore, paths []string) {
	if store == nil || len(paths) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), blobRemoveTimeout)
	defer cancel()
	if err := store.Remove(ctx, paths...); err != nil {
		logger.Warn("blob cleanup failed for %d object(s): %v", len(paths), err)
	}
}

func publicURLFunc(store storage.BlobStore) func(string) string {
	if store == nil {
		return nil
	}
	return store.PublicURL
}

// replacedImage returns the old path when an update dropped or changed it
func replacedImage(oldPath, newPath *string) []string {
	if oldPath == nil || *oldPath == "" {
		return nil
	}
	if newPath != nil && *newPath == *oldPath {
		return nil
	}
	return []string{*oldPath}
}
