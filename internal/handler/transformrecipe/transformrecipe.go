// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package transformrecipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/curioswitch/pantrychat/internal/httpapi"
	"github.com/curioswitch/pantrychat/internal/llm"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
	"github.com/curioswitch/pantrychat/internal/recipegen"
)

func NewHandler(generator *recipegen.Generator, store *firestore.Client) *Handler {
	return &Handler{
		generator: generator,
		store:     store,
	}
}

type Handler struct {
	generator *recipegen.Generator
	store     *firestore.Client
}

type Request struct {
	RecipeID string `json:"recipeId"`
	// Instruction describes the transformation, e.g. "make it vegan"
	// or "halve the servings".
	Instruction string `json:"instruction"`
}

type Response struct {
	Recipe *pantrydb.Recipe `json:"recipe"`
	// AudioNote and VideoNote describe why narration or teaser video is
	// missing, when it is.
	AudioNote string `json:"audioNote,omitempty"`
	VideoNote string `json:"videoNote,omitempty"`
}

// TransformRecipe rewrites an existing recipe per the user's
// instruction. Unlike the other flows it waits for narration and video
// before responding, so the returned recipe is fully enriched.
func (h *Handler) TransformRecipe(ctx context.Context, req *Request) (*Response, error) {
	if req.RecipeID == "" {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("transformrecipe: recipeId is required"))
	}
	if req.Instruction == "" {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("transformrecipe: instruction is required"))
	}

	userID := firebaseauth.TokenFromContext(ctx).UID

	doc, err := h.store.Collection("recipes").Doc(req.RecipeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, httpapi.NewError(http.StatusNotFound, fmt.Errorf("transformrecipe: recipe not found: %w", err))
		}
		return nil, fmt.Errorf("transformrecipe: getting recipe: %w", err)
	}
	var recipe pantrydb.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("transformrecipe: parsing recipe: %w", err)
	}

	content := pantrydb.RecipeContent{
		Name:        recipe.Name,
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
		Nutrition:   recipe.Nutrition,
	}
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("transformrecipe: marshaling recipe: %w", err)
	}

	results, err := h.generator.Generate(ctx, recipegen.Params{
		UserID: userID,
		System: llm.GenerateRecipesPrompt(),
		Prompt: llm.Transform(string(contentJSON), req.Instruction),
		Count:  1,
	})
	if err != nil {
		if errors.Is(err, recipegen.ErrGenerationFailed) {
			return nil, httpapi.NewError(http.StatusBadGateway, err)
		}
		return nil, err
	}

	result := results[0]
	media, err := result.Media.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("transformrecipe: waiting for media: %w", err)
	}
	result.Recipe.AudioDataURI = media.AudioDataURI
	result.Recipe.VideoDataURI = media.VideoDataURI

	return &Response{
		Recipe:    result.Recipe,
		AudioNote: media.AudioNote,
		VideoNote: media.VideoNote,
	}, nil
}
