// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package recipegen is the shared core of the recipe generation flows:
// prompt in, persisted media-enriched recipes out. Flows differ only in
// prompt shaping and recipe count; everything after the prompt is here.
package recipegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/pantrychat/internal/enrich"
	"github.com/curioswitch/pantrychat/internal/genclient"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

// ErrGenerationFailed indicates the text model produced no usable recipe
// skeleton. Unlike media enrichment failures, this aborts the whole
// request: a recipe without a video is still useful, a recipe that does
// not exist is not.
var ErrGenerationFailed = errors.New("recipe generation failed")

// TextGenerator generates structured recipe text.
type TextGenerator interface {
	GenerateText(ctx context.Context, req genclient.TextRequest) (string, error)
}

// MediaOrchestrator enriches a recipe with media.
type MediaOrchestrator interface {
	EnrichRecipeMedia(ctx context.Context, recipe *pantrydb.Recipe) (*pantrydb.Recipe, *enrich.MediaHandle)
}

// RecipeStore persists recipes and later media updates.
type RecipeStore interface {
	// CreateRecipe stores recipe, assigning recipe.ID.
	CreateRecipe(ctx context.Context, recipe *pantrydb.Recipe) error

	// UpdateRecipeMedia applies settled media fields to a stored recipe.
	// Empty values are not applied.
	UpdateRecipeMedia(ctx context.Context, recipeID string, audio string, video string) error
}

// MediaOffloader moves a data URI into blob storage, returning its URL.
type MediaOffloader interface {
	WriteDataURI(ctx context.Context, pathNoExt string, dataURI string) (string, error)
}

// Params describes one generation request.
type Params struct {
	// UserID is the requesting user.
	UserID string

	// System is the system instruction for the text model.
	System string

	// Prompt is the flow-shaped user prompt.
	Prompt string

	// Image is an optional image input, e.g. a photographed meal.
	Image *genclient.Payload

	// Count is the number of recipes to keep from the response.
	Count int

	// Inventory, when set, prices recipe ingredients against the user's
	// pantry before media enrichment.
	Inventory []pantrydb.PantryItem
}

// Result is one generated recipe together with the handle to its pending
// audio/video enrichment. The recipe already carries step images.
type Result struct {
	Recipe *pantrydb.Recipe
	Media  *enrich.MediaHandle
}

// Generator generates, enriches, and persists recipes.
type Generator struct {
	text    TextGenerator
	orch    MediaOrchestrator
	store   RecipeStore
	offload MediaOffloader
}

// New returns a Generator. offload may be nil, in which case media stays
// inline in the stored documents.
func New(text TextGenerator, orch MediaOrchestrator, store RecipeStore, offload MediaOffloader) *Generator {
	return &Generator{
		text:    text,
		orch:    orch,
		store:   store,
		offload: offload,
	}
}

type recipeList struct {
	Recipes []pantrydb.RecipeContent `json:"recipes"`
}

// Generate runs the full flow for p. The returned recipes carry step
// images; audio and video settle later through each Result's handle, and
// are persisted to the store by a background apply when they do.
//
// Text-stage failures return ErrGenerationFailed; no enrichment is
// attempted. Media failures never surface here.
func (g *Generator) Generate(ctx context.Context, p Params) ([]Result, error) {
	text, err := g.text.GenerateText(ctx, genclient.TextRequest{
		System: p.System,
		Prompt: p.Prompt,
		Image:  p.Image,
		Schema: pantrydb.RecipeListSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("recipegen: generating recipe skeleton: %w", errors.Join(ErrGenerationFailed, err))
	}

	var list recipeList
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("recipegen: unmarshalling recipe skeleton: %w", errors.Join(ErrGenerationFailed, err))
	}
	if len(list.Recipes) == 0 {
		return nil, fmt.Errorf("recipegen: model returned no recipes: %w", ErrGenerationFailed)
	}
	count := p.Count
	if count <= 0 {
		count = 1
	}
	if len(list.Recipes) > count {
		list.Recipes = list.Recipes[:count]
	}

	results := make([]Result, len(list.Recipes))
	var grp errgroup.Group
	for i, content := range list.Recipes {
		grp.Go(func() error {
			recipe := &pantrydb.Recipe{
				Source:      pantrydb.RecipeSourceGenerated,
				UserID:      p.UserID,
				Name:        content.Name,
				Ingredients: content.Ingredients,
				Steps:       content.Steps,
				Nutrition:   content.Nutrition,
				CreatedAt:   time.Now(),
			}
			// Cost is priced on the skeleton so it can never trigger media
			// regeneration.
			if p.Inventory != nil {
				recipe.EstimatedCost = EstimateCost(recipe.Ingredients, p.Inventory)
			}

			enriched, handle := g.orch.EnrichRecipeMedia(ctx, recipe)
			if err := g.persist(ctx, enriched); err != nil {
				return err
			}
			go g.applyDeferred(enriched.ID, handle)

			results[i] = Result{Recipe: enriched, Media: handle}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// persist stores a copy of recipe with step images offloaded to blob
// storage, and assigns recipe.ID. The caller's copy keeps its inline
// data URIs for immediate rendering.
func (g *Generator) persist(ctx context.Context, recipe *pantrydb.Recipe) error {
	stored := *recipe
	if err := g.store.CreateRecipe(ctx, &stored); err != nil {
		return fmt.Errorf("recipegen: storing recipe: %w", err)
	}
	recipe.ID = stored.ID

	if g.offload == nil {
		return nil
	}
	stored.Steps = make([]pantrydb.InstructionStep, len(recipe.Steps))
	copy(stored.Steps, recipe.Steps)
	offloaded := false
	for i, step := range stored.Steps {
		if step.ImageDataURI == "" {
			continue
		}
		url, err := g.offload.WriteDataURI(ctx, fmt.Sprintf("recipes/%s/step-%03d", stored.ID, step.Step), step.ImageDataURI)
		if err != nil {
			slog.WarnContext(ctx, "recipegen: offloading step image", "recipe", stored.ID, "step", step.Step, "error", err)
			continue
		}
		stored.Steps[i].ImageURL = url
		stored.Steps[i].ImageDataURI = ""
		offloaded = true
	}
	if offloaded {
		if err := g.store.CreateRecipe(ctx, &stored); err != nil {
			return fmt.Errorf("recipegen: storing recipe with offloaded media: %w", err)
		}
	}
	return nil
}

// applyDeferred waits for the media handle to settle and partial-updates
// the stored recipe. When both enrichments failed nothing is written, so
// the recipe stays eligible for a later enrichment pass.
func (g *Generator) applyDeferred(recipeID string, handle *enrich.MediaHandle) {
	ctx := context.Background()
	result, err := handle.Wait(ctx)
	if err != nil {
		return
	}
	if result.AudioDataURI == "" && result.VideoDataURI == "" {
		slog.InfoContext(ctx, "recipegen: no deferred media to apply",
			"recipe", recipeID, "audioNote", result.AudioNote, "videoNote", result.VideoNote)
		return
	}

	audio := result.AudioDataURI
	video := result.VideoDataURI
	if g.offload != nil {
		if audio != "" {
			if url, err := g.offload.WriteDataURI(ctx, fmt.Sprintf("recipes/%s/narration", recipeID), audio); err == nil {
				audio = url
			} else {
				slog.WarnContext(ctx, "recipegen: offloading narration", "recipe", recipeID, "error", err)
			}
		}
		if video != "" {
			if url, err := g.offload.WriteDataURI(ctx, fmt.Sprintf("recipes/%s/teaser", recipeID), video); err == nil {
				video = url
			} else {
				slog.WarnContext(ctx, "recipegen: offloading teaser video", "recipe", recipeID, "error", err)
			}
		}
	}

	if err := g.store.UpdateRecipeMedia(ctx, recipeID, audio, video); err != nil {
		slog.ErrorContext(ctx, "recipegen: applying deferred media", "recipe", recipeID, "error", err)
	}
}
