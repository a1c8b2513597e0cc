// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package searchrecipes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	discoveryengine "cloud.google.com/go/discoveryengine/apiv1"
	"cloud.google.com/go/discoveryengine/apiv1/discoveryenginepb"
	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/curioswitch/pantrychat/internal/httpapi"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

const pageSize = 10

func NewHandler(search *discoveryengine.SearchClient, store *firestore.Client, servingConfig string) *Handler {
	return &Handler{
		search:        search,
		store:         store,
		servingConfig: servingConfig,
	}
}

type Handler struct {
	search        *discoveryengine.SearchClient
	store         *firestore.Client
	servingConfig string
}

type Request struct {
	Query string `json:"query"`
}

type Response struct {
	Recipes []*pantrydb.Recipe `json:"recipes"`
}

// SearchRecipes searches the recipe index and returns matching recipes
// from firestore.
func (h *Handler) SearchRecipes(ctx context.Context, req *Request) (*Response, error) {
	if req.Query == "" {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("searchrecipes: query is required"))
	}

	it := h.search.Search(ctx, &discoveryenginepb.SearchRequest{
		ServingConfig: h.servingConfig,
		Query:         req.Query,
		PageSize:      pageSize,
	})

	var recipes []*pantrydb.Recipe
	for {
		result, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("searchrecipes: searching recipes: %w", err)
		}
		if len(recipes) >= pageSize {
			break
		}

		doc, err := h.store.Collection("recipes").Doc(result.GetDocument().GetId()).Get(ctx)
		if err != nil {
			// Index can lag firestore, skip documents that no longer
			// exist.
			continue
		}
		var recipe pantrydb.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, fmt.Errorf("searchrecipes: unmarshalling recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}

	return &Response{Recipes: recipes}, nil
}
