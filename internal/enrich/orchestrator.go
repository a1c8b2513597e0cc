// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package enrich

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

// OrchestratorConfig configures the enrichers composed by an
// Orchestrator.
type OrchestratorConfig struct {
	// Narrator configures audio framing.
	Narrator NarratorConfig

	// Video configures the video poll loop.
	Video VideoConfig

	// FallbackVoice is an optional fallback narration provider.
	FallbackVoice SpeechSynthesizer
}

// Orchestrator runs the media enrichment pipeline for a recipe: step
// images inline, narration and video deferred.
type Orchestrator struct {
	images   *ImageEnricher
	narrator *Narrator
	video    *VideoEnricher
}

// NewOrchestrator returns an Orchestrator using client for all
// modalities.
func NewOrchestrator(client MediaClient, cfg OrchestratorConfig) *Orchestrator {
	return &Orchestrator{
		images:   NewImageEnricher(client),
		narrator: NewNarrator(client, cfg.FallbackVoice, cfg.Narrator),
		video:    NewVideoEnricher(client, cfg.Video),
	}
}

// EnrichRecipeMedia returns a copy of recipe with step images merged in,
// together with a MediaHandle for the narration and video still being
// generated. The recipe is returned as soon as the image stage completes;
// the handle settles later, with independent-failure semantics: one
// enrichment failing never discards the other's success.
//
// The background work runs on a context detached from ctx's
// cancellation, so returning from the enclosing request does not abort
// it; only MediaHandle.Abandon cancels it.
func (o *Orchestrator) EnrichRecipeMedia(ctx context.Context, recipe *pantrydb.Recipe) (*pantrydb.Recipe, *MediaHandle) {
	enriched := *recipe
	enriched.Steps = o.images.EnrichSteps(ctx, recipe.Name, recipe.Steps)

	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	handle := newMediaHandle(cancel)

	go func() {
		defer cancel()

		var result MediaResult
		var grp errgroup.Group
		grp.Go(func() error {
			result.AudioDataURI, result.AudioNote = o.narrator.Narrate(bgCtx, enriched.Steps)
			return nil
		})
		grp.Go(func() error {
			result.VideoDataURI, result.VideoNote = o.video.Teaser(bgCtx, enriched.Name)
			return nil
		})
		// Enrichers absorb their own failures; Wait only synchronizes the
		// two outcomes before the handle settles.
		_ = grp.Wait()

		handle.settle(result)
	}()

	return &enriched, handle
}
