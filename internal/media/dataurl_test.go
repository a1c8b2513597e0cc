// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURI(t *testing.T) {
	uri := DataURI("image/png", []byte("hello"))
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", uri)

	mimeType, data, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte("hello"), data)
}

func TestParseDataURIInvalid(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "not a data uri", uri: "https://example.com/image.png"},
		{name: "missing mime type", uri: "data:aGVsbG8="},
		{name: "not base64 encoded", uri: "data:text/plain;charset=utf-8,hello"},
		{name: "corrupt base64", uri: "data:image/png;base64,???"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseDataURI(tc.uri)
			assert.Error(t, err)
		})
	}
}
