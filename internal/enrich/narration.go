// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package enrich

import (
	"context"
	"log/slog"
	"strings"

	"github.com/curioswitch/pantrychat/internal/media"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

// NarratorConfig configures audio framing for narration.
type NarratorConfig struct {
	// SampleRate is the PCM sample rate the speech model produces.
	SampleRate int

	// Channels is the PCM channel count.
	Channels int

	// BitsPerSample is the PCM bit depth.
	BitsPerSample int
}

func (c NarratorConfig) withDefaults() NarratorConfig {
	if c.SampleRate == 0 {
		c.SampleRate = 24000
	}
	if c.Channels == 0 {
		c.Channels = 1
	}
	if c.BitsPerSample == 0 {
		c.BitsPerSample = 16
	}
	return c
}

// Narrator generates a narrated-audio track for a recipe's instructions.
type Narrator struct {
	client   SpeechGenerator
	fallback SpeechSynthesizer
	cfg      NarratorConfig
}

// NewNarrator returns a Narrator using client. fallback may be nil; when
// set, it is tried once after a failed primary call before the narration
// is given up on.
func NewNarrator(client SpeechGenerator, fallback SpeechSynthesizer, cfg NarratorConfig) *Narrator {
	return &Narrator{
		client:   client,
		fallback: fallback,
		cfg:      cfg.withDefaults(),
	}
}

// Narrate synthesizes speech for the full instruction text of steps and
// returns it as an audio data URI. On failure it returns an empty URI and
// an advisory message - it never returns an error.
func (n *Narrator) Narrate(ctx context.Context, steps []pantrydb.InstructionStep) (string, string) {
	texts := make([]string, len(steps))
	for i, step := range steps {
		texts[i] = step.Text
	}
	text := strings.Join(texts, "\n")

	audio, err := n.client.GenerateSpeech(ctx, text)
	if err == nil {
		return n.audioDataURI(audio.MIMEType, audio.Data), ""
	}
	slog.WarnContext(ctx, "enrich: generating narration", "error", err)

	if n.fallback != nil {
		fbAudio, fbErr := n.fallback.Synthesize(ctx, text)
		if fbErr == nil {
			return media.DataURI(fbAudio.MIMEType, fbAudio.Data), ""
		}
		slog.WarnContext(ctx, "enrich: generating fallback narration", "error", fbErr)
	}

	return "", advisory(err)
}

// audioDataURI packages audio into a self-describing data URI. The speech
// model returns raw PCM, which is framed into a WAV container; audio that
// already carries a container MIME type passes through unchanged.
func (n *Narrator) audioDataURI(mimeType string, data []byte) string {
	switch mimeType {
	case "audio/wav", "audio/mpeg", "audio/mp3", "audio/ogg":
		return media.DataURI(mimeType, data)
	}
	return media.DataURI("audio/wav", wavContainer(data, n.cfg.SampleRate, n.cfg.Channels, n.cfg.BitsPerSample))
}
