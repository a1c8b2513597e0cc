// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package genclient

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go/v3"
)

// FallbackVoice synthesizes narration through the OpenAI speech API. It
// is used when the primary speech model fails, e.g. on quota exhaustion,
// and returns self-contained MP3 audio.
type FallbackVoice struct {
	client openai.Client
	voice  openai.AudioSpeechNewParamsVoice
}

// NewFallbackVoice returns a FallbackVoice using client.
func NewFallbackVoice(client openai.Client) *FallbackVoice {
	return &FallbackVoice{
		client: client,
		voice:  openai.AudioSpeechNewParamsVoiceAlloy,
	}
}

// Synthesize generates speech for text.
func (v *FallbackVoice) Synthesize(ctx context.Context, text string) (*Payload, error) {
	res, err := v.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelGPT4oMiniTTS,
		Input:          text,
		Voice:          v.voice,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, classify("synthesize fallback speech", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("genclient: reading fallback speech: %w", err)
	}
	if len(data) == 0 {
		return nil, invalidResponse("synthesize fallback speech")
	}
	return &Payload{MIMEType: "audio/mpeg", Data: data}, nil
}
