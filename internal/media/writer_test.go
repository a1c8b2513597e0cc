// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blobWriterFunc func(ctx context.Context, path string, contentType string, data []byte) (string, error)

func (f blobWriterFunc) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	return f(ctx, path, contentType, data)
}

func TestWriteDataURI(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		wantPath string
	}{
		{name: "jpeg", mimeType: "image/jpeg", wantPath: "recipes/r1/step-001.jpg"},
		{name: "wav", mimeType: "audio/wav", wantPath: "recipes/r1/step-001.wav"},
		{name: "mp3", mimeType: "audio/mpeg", wantPath: "recipes/r1/step-001.mp3"},
		{name: "mp4", mimeType: "video/mp4", wantPath: "recipes/r1/step-001.mp4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotPath, gotType string
			var gotData []byte
			blobs := blobWriterFunc(func(_ context.Context, path string, contentType string, data []byte) (string, error) {
				gotPath, gotType, gotData = path, contentType, data
				return "https://storage.googleapis.com/bucket/" + path, nil
			})

			url, err := NewWriter(blobs).WriteDataURI(context.Background(), "recipes/r1/step-001", DataURI(tc.mimeType, []byte("payload")))
			require.NoError(t, err)

			assert.Equal(t, tc.wantPath, gotPath)
			assert.Equal(t, tc.mimeType, gotType)
			assert.Equal(t, []byte("payload"), gotData)
			assert.Equal(t, "https://storage.googleapis.com/bucket/"+tc.wantPath, url)
		})
	}
}

func TestWriteDataURIInvalid(t *testing.T) {
	blobs := blobWriterFunc(func(_ context.Context, _ string, _ string, _ []byte) (string, error) {
		t.Fatal("unexpected write")
		return "", nil
	})

	_, err := NewWriter(blobs).WriteDataURI(context.Background(), "recipes/r1/foo", "not a data uri")
	assert.Error(t, err)
}
