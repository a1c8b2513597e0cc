// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package media

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// Storage writes blobs to a public GCS bucket.
type Storage struct {
	storage *storage.Client
	bucket  string
}

// NewStorage returns a Storage writing to bucket.
func NewStorage(client *storage.Client, bucket string) *Storage {
	return &Storage{
		storage: client,
		bucket:  bucket,
	}
}

func (s *Storage) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := s.storage.Bucket(s.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("media: writing file: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("media: closing writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path), nil
}
