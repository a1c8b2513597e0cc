// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package enrich

import (
	"context"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/pantrychat/internal/genclient"
	"github.com/curioswitch/pantrychat/internal/media"
)

type speechGenFunc func(ctx context.Context, text string) (*genclient.Payload, error)

func (f speechGenFunc) GenerateSpeech(ctx context.Context, text string) (*genclient.Payload, error) {
	return f(ctx, text)
}

type synthFunc func(ctx context.Context, text string) (*genclient.Payload, error)

func (f synthFunc) Synthesize(ctx context.Context, text string) (*genclient.Payload, error) {
	return f(ctx, text)
}

func TestWavContainer(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	wav := wavContainer(pcm, 24000, 1, 16)

	require.Len(t, wav, 44+len(pcm))
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])
}

func TestNarrate(t *testing.T) {
	var gotText string
	gen := speechGenFunc(func(_ context.Context, text string) (*genclient.Payload, error) {
		gotText = text
		return &genclient.Payload{MIMEType: "audio/pcm", Data: []byte{0, 1, 0, 1}}, nil
	})

	uri, note := NewNarrator(gen, nil, NarratorConfig{}).Narrate(context.Background(), testSteps)

	assert.Equal(t, "Dice the onion.\nBrown the beef.\nSimmer with tomatoes.", gotText)
	assert.Empty(t, note)
	require.True(t, strings.HasPrefix(uri, "data:audio/wav;base64,"))

	mimeType, data, err := media.ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", mimeType)
	assert.Equal(t, "RIFF", string(data[0:4]))
}

func TestNarratePassthroughContainer(t *testing.T) {
	gen := speechGenFunc(func(_ context.Context, _ string) (*genclient.Payload, error) {
		return &genclient.Payload{MIMEType: "audio/mpeg", Data: []byte("mp3")}, nil
	})

	uri, note := NewNarrator(gen, nil, NarratorConfig{}).Narrate(context.Background(), testSteps)

	assert.Empty(t, note)
	assert.True(t, strings.HasPrefix(uri, "data:audio/mpeg;base64,"))
}

func TestNarrateFallback(t *testing.T) {
	gen := speechGenFunc(func(_ context.Context, _ string) (*genclient.Payload, error) {
		return nil, &genclient.ModelError{Kind: genclient.KindQuotaExceeded, Op: "generate speech"}
	})
	fallback := synthFunc(func(_ context.Context, _ string) (*genclient.Payload, error) {
		return &genclient.Payload{MIMEType: "audio/mpeg", Data: []byte("mp3")}, nil
	})

	uri, note := NewNarrator(gen, fallback, NarratorConfig{}).Narrate(context.Background(), testSteps)

	assert.Empty(t, note)
	assert.True(t, strings.HasPrefix(uri, "data:audio/mpeg;base64,"))
}

func TestNarrateFailure(t *testing.T) {
	modelErr := &genclient.ModelError{Kind: genclient.KindQuotaExceeded, Op: "generate speech"}
	gen := speechGenFunc(func(_ context.Context, _ string) (*genclient.Payload, error) {
		return nil, modelErr
	})
	fallback := synthFunc(func(_ context.Context, _ string) (*genclient.Payload, error) {
		return nil, &genclient.ModelError{Kind: genclient.KindServiceOverloaded, Op: "synthesize fallback speech"}
	})

	uri, note := NewNarrator(gen, fallback, NarratorConfig{}).Narrate(context.Background(), testSteps)

	assert.Empty(t, uri)
	// The note reflects the primary failure, not the fallback's.
	assert.Equal(t, modelErr.Advisory(), note)
}
