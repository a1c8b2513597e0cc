// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package logcook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/curioswitch/pantrychat/internal/httpapi"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

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

type Response struct{}

// LogCook records that the user cooked a recipe. The cook log feeds
// the prediction flow.
func (h *Handler) LogCook(ctx context.Context, req *Request) (*Response, error) {
	if req.RecipeID == "" {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("logcook: recipeId is required"))
	}

	doc, err := h.store.Collection("recipes").Doc(req.RecipeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, httpapi.NewError(http.StatusNotFound, errors.New("logcook: recipe not found"))
		}
		return nil, fmt.Errorf("logcook: getting recipe: %w", err)
	}
	var recipe pantrydb.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("logcook: unmarshalling recipe: %w", err)
	}

	entry := pantrydb.CookLogEntry{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		CookedAt:   time.Now(),
	}
	ref := h.store.Collection("users").Doc(firebaseauth.TokenFromContext(ctx).UID).Collection("cooklog").NewDoc()
	if _, err := ref.Set(ctx, entry); err != nil {
		return nil, fmt.Errorf("logcook: saving cook log entry: %w", err)
	}
	return &Response{}, nil
}
