// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package moodrecipe

import (
	"context"
	"errors"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/pantrychat/internal/httpapi"
	"github.com/curioswitch/pantrychat/internal/llm"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
	"github.com/curioswitch/pantrychat/internal/recipegen"
)

func NewHandler(generator *recipegen.Generator) *Handler {
	return &Handler{generator: generator}
}

type Handler struct {
	generator *recipegen.Generator
}

type Request struct {
	// Mood is a free-form description of how the user feels, e.g.
	// "tired and want something warm".
	Mood string `json:"mood"`
}

type Response struct {
	Recipe *pantrydb.Recipe `json:"recipe"`
}

// MoodRecipe generates a single recipe matched to the user's mood.
func (h *Handler) MoodRecipe(ctx context.Context, req *Request) (*Response, error) {
	if req.Mood == "" {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("moodrecipe: mood is required"))
	}

	userID := firebaseauth.TokenFromContext(ctx).UID

	results, err := h.generator.Generate(ctx, recipegen.Params{
		UserID: userID,
		System: llm.GenerateRecipesPrompt(),
		Prompt: llm.FromMood(req.Mood),
		Count:  1,
	})
	if err != nil {
		if errors.Is(err, recipegen.ErrGenerationFailed) {
			return nil, httpapi.NewError(http.StatusBadGateway, err)
		}
		return nil, err
	}

	return &Response{Recipe: results[0].Recipe}, nil
}
