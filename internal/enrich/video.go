// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/curioswitch/pantrychat/internal/genclient"
	"github.com/curioswitch/pantrychat/internal/media"
)

const videoTeaserPrompt = `A short appetizing cinematic clip of the finished dish "%s" being presented, realistic style, no text.`

// errVideoPending signals the poll loop to keep waiting.
var errVideoPending = errors.New("enrich: video job still pending")

// VideoConfig configures the video enricher's poll loop.
type VideoConfig struct {
	// PollInterval is the fixed delay between job polls.
	PollInterval time.Duration

	// Timeout bounds the whole submit-and-poll sequence so an unfinished
	// job cannot block the media handle forever.
	Timeout time.Duration
}

func (c VideoConfig) withDefaults() VideoConfig {
	if c.PollInterval == 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.Timeout == 0 {
		c.Timeout = 2 * time.Minute
	}
	return c
}

// VideoEnricher generates a short teaser video for a recipe.
type VideoEnricher struct {
	client VideoGenerator
	cfg    VideoConfig
}

// NewVideoEnricher returns a VideoEnricher using client.
func NewVideoEnricher(client VideoGenerator, cfg VideoConfig) *VideoEnricher {
	return &VideoEnricher{
		client: client,
		cfg:    cfg.withDefaults(),
	}
}

// Teaser submits a video job for recipeName and polls it to completion,
// returning the video as a data URI. On submission failure, poll failure,
// or timeout it returns an empty URI and an advisory message - it never
// returns an error.
func (e *VideoEnricher) Teaser(ctx context.Context, recipeName string) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	job, err := e.client.StartVideoJob(ctx, fmt.Sprintf(videoTeaserPrompt, recipeName))
	if err != nil {
		slog.WarnContext(ctx, "enrich: submitting video job", "recipe", recipeName, "error", err)
		return "", advisory(err)
	}

	status, err := backoff.Retry(ctx, func() (*genclient.VideoJobStatus, error) {
		st, err := e.client.PollVideoJob(ctx, job)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if !st.Done {
			return nil, errVideoPending
		}
		return st, nil
	}, backoff.WithBackOff(backoff.NewConstantBackOff(e.cfg.PollInterval)), backoff.WithMaxElapsedTime(e.cfg.Timeout))
	if err != nil {
		slog.WarnContext(ctx, "enrich: polling video job", "recipe", recipeName, "error", err)
		return "", advisory(err)
	}

	return media.DataURI(status.Payload.MIMEType, status.Payload.Data), ""
}
