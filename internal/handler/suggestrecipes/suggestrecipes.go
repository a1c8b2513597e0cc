// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package suggestrecipes

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

const numRecipes = 4

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
	// Ingredients to cook with. When empty, the user's pantry is used.
	Ingredients []string `json:"ingredients"`
}

type Response struct {
	Recipes []*pantrydb.Recipe `json:"recipes"`
}

// SuggestRecipes generates recipes from available ingredients, priced
// against the user's pantry. The returned recipes carry step images;
// narration and video are applied to the stored recipes when they
// settle.
func (h *Handler) SuggestRecipes(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	pantryDocs, err := h.store.Collection("users").Doc(userID).Collection("pantry").Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("suggestrecipes: getting pantry items: %w", err)
	}
	pantry := make([]pantrydb.PantryItem, len(pantryDocs))
	for i, doc := range pantryDocs {
		if err := doc.DataTo(&pantry[i]); err != nil {
			return nil, fmt.Errorf("suggestrecipes: parsing pantry item: %w", err)
		}
	}

	ingredients := req.Ingredients
	if len(ingredients) == 0 {
		for _, item := range pantry {
			ingredients = append(ingredients, item.Name)
		}
	}
	if len(ingredients) == 0 {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("suggestrecipes: no ingredients provided and pantry is empty"))
	}

	results, err := h.generator.Generate(ctx, recipegen.Params{
		UserID:    userID,
		System:    llm.GenerateRecipesPrompt(),
		Prompt:    llm.FromIngredients(ingredients, numRecipes),
		Count:     numRecipes,
		Inventory: pantry,
	})
	if err != nil {
		if errors.Is(err, recipegen.ErrGenerationFailed) {
			return nil, httpapi.NewError(http.StatusBadGateway, err)
		}
		return nil, err
	}

	res := &Response{Recipes: make([]*pantrydb.Recipe, len(results))}
	for i, result := range results {
		res.Recipes[i] = result.Recipe
	}
	return res, nil
}
