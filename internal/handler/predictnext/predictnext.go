// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package predictnext

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

const (
	numRecipes     = 4
	cookLogEntries = 10
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

type Request struct{}

type Response struct {
	Recipes []*pantrydb.Recipe `json:"recipes"`
}

// PredictNext generates recipes the user is likely to want next based
// on their recent cooking history.
func (h *Handler) PredictNext(ctx context.Context, _ *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	logDocs, err := h.store.Collection("users").Doc(userID).Collection("cooklog").
		OrderBy("cookedAt", firestore.Desc).
		Limit(cookLogEntries).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("predictnext: getting cook log: %w", err)
	}

	recent := make([]string, 0, len(logDocs))
	for _, doc := range logDocs {
		var entry pantrydb.CookLogEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("predictnext: parsing cook log entry: %w", err)
		}
		recent = append(recent, entry.RecipeName)
	}

	results, err := h.generator.Generate(ctx, recipegen.Params{
		UserID: userID,
		System: llm.GenerateRecipesPrompt(),
		Prompt: llm.Predictive(recent, numRecipes),
		Count:  numRecipes,
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
