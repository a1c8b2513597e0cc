// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package media

import (
	"context"
	"fmt"
	"mime"
	"strings"
)

// BlobWriter writes a blob and returns its public URL. *Writer's storage
// backend satisfies it.
type BlobWriter interface {
	WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// Writer offloads data URI media to blob storage.
type Writer struct {
	blobs BlobWriter
}

// NewWriter returns a Writer storing media through blobs.
func NewWriter(blobs BlobWriter) *Writer {
	return &Writer{blobs: blobs}
}

// WriteDataURI decodes a data URI and writes its payload under
// pathNoExt, deriving the file extension from the MIME type. It returns
// the public URL of the written file.
func (w *Writer) WriteDataURI(ctx context.Context, pathNoExt string, dataURI string) (string, error) {
	contentType, data, err := ParseDataURI(dataURI)
	if err != nil {
		return "", err
	}

	url, err := w.blobs.WriteFile(ctx, pathNoExt+extension(contentType), contentType, data)
	if err != nil {
		return "", fmt.Errorf("media: writing media file: %w", err)
	}
	return url, nil
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "audio/wav":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "video/mp4":
		return ".mp4"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok {
		return "." + sub
	}
	return ""
}
