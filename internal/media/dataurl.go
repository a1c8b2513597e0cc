// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package media handles the exchange format for generated media: media
// moves between components as self-describing data URIs, and is decoded
// and offloaded to cloud storage when a recipe is persisted.
package media

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURI encodes data as a base64 data URI with the given MIME type.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI decodes a base64 data URI into its MIME type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("media: invalid data URI %q", truncate(uri))
	}
	mimeType, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return "", nil, fmt.Errorf("media: invalid data URI %q", truncate(uri))
	}
	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return "", nil, fmt.Errorf("media: only base64 data URIs supported, got %q", truncate(uri))
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, fmt.Errorf("media: decoding base64 data URI: %w", err)
	}
	return mimeType, data, nil
}

func truncate(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
