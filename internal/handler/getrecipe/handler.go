// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/curioswitch/pantrychat/internal/httpapi"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

var errRecipeNotFound = errors.New("recipe not found")

func NewHandler(store *firestore.Client) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *firestore.Client
}

type Request struct {
	RecipeID string `json:"recipeId"`
}

type Response struct {
	Recipe *pantrydb.Recipe `json:"recipe"`
}

func (h *Handler) GetRecipe(ctx context.Context, req *Request) (*Response, error) {
	doc, err := h.store.Collection("recipes").Doc(req.RecipeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, httpapi.NewError(http.StatusNotFound, errRecipeNotFound)
		}
		return nil, fmt.Errorf("getrecipe: getting recipe from firestore: %w", err)
	}

	var recipe pantrydb.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("getrecipe: unmarshalling recipe: %w", err)
	}

	return &Response{Recipe: &recipe}, nil
}
