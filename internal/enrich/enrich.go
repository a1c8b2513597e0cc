// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package enrich augments a generated recipe with media: a photo per
// instruction step, a narrated-audio track, and a short teaser video.
// Step images are produced inline; narration and video run in the
// background behind a MediaHandle. A failed enrichment never fails the
// recipe - the corresponding field is simply left absent.
package enrich

import (
	"context"
	"errors"

	"github.com/curioswitch/pantrychat/internal/genclient"
)

// ImageGenerator generates a single image for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*genclient.Payload, error)
}

// SpeechGenerator generates raw PCM narration audio for text.
type SpeechGenerator interface {
	GenerateSpeech(ctx context.Context, text string) (*genclient.Payload, error)
}

// SpeechSynthesizer is an alternative voice provider returning
// self-contained audio, used as a fallback when the primary narrator
// fails.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (*genclient.Payload, error)
}

// VideoGenerator submits and polls long-running video generation jobs.
type VideoGenerator interface {
	StartVideoJob(ctx context.Context, prompt string) (*genclient.VideoJob, error)
	PollVideoJob(ctx context.Context, job *genclient.VideoJob) (*genclient.VideoJobStatus, error)
}

// MediaClient is the full content generation surface the orchestrator
// needs. *genclient.Client satisfies it.
type MediaClient interface {
	ImageGenerator
	SpeechGenerator
	VideoGenerator
}

// MediaResult is the settled outcome of the background enrichment unit.
// Empty fields mean the corresponding enrichment failed or was abandoned;
// the note fields carry an advisory message for user display in that
// case.
type MediaResult struct {
	// AudioDataURI is the narration audio as a data URI, empty on failure.
	AudioDataURI string

	// AudioNote is an advisory message when AudioDataURI is empty.
	AudioNote string

	// VideoDataURI is the teaser video as a data URI, empty on failure.
	VideoDataURI string

	// VideoNote is an advisory message when VideoDataURI is empty.
	VideoNote string
}

// advisory converts a generation error into a user-displayable message,
// preserving the classification from the content generation client.
func advisory(err error) string {
	var modelErr *genclient.ModelError
	if errors.As(err, &modelErr) {
		return modelErr.Advisory()
	}
	return "Generation failed unexpectedly. Please try again."
}
