// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package scrapsrecipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

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
	// Scraps are leftover ingredients that would otherwise be thrown
	// out, e.g. "half an onion" or "stale bread".
	Scraps []string `json:"scraps"`
}

type Response struct {
	Recipe *pantrydb.Recipe `json:"recipe"`
}

// ScrapsRecipe invents a recipe that uses up leftover scraps, priced
// against the user's pantry.
func (h *Handler) ScrapsRecipe(ctx context.Context, req *Request) (*Response, error) {
	if len(req.Scraps) == 0 {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("scrapsrecipe: scraps are required"))
	}

	userID := firebaseauth.TokenFromContext(ctx).UID

	pantryDocs, err := h.store.Collection("users").Doc(userID).Collection("pantry").Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("scrapsrecipe: getting pantry items: %w", err)
	}
	pantry := make([]pantrydb.PantryItem, len(pantryDocs))
	for i, doc := range pantryDocs {
		if err := doc.DataTo(&pantry[i]); err != nil {
			return nil, fmt.Errorf("scrapsrecipe: parsing pantry item: %w", err)
		}
	}

	results, err := h.generator.Generate(ctx, recipegen.Params{
		UserID:    userID,
		System:    llm.GenerateRecipesPrompt(),
		Prompt:    llm.FromScraps(req.Scraps),
		Count:     1,
		Inventory: pantry,
	})
	if err != nil {
		if errors.Is(err, recipegen.ErrGenerationFailed) {
			return nil, httpapi.NewError(http.StatusBadGateway, err)
		}
		return nil, err
	}

	return &Response{Recipe: results[0].Recipe}, nil
}
