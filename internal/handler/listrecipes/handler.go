package listrecipes

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

const pageSize = 20

func NewHandler(store *firestore.Client) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *firestore.Client
}

type Request struct {
	// LastID is the ID of the last recipe from the previous page, empty
	// for the first page.
	LastID string `json:"lastId"`
}

type RecipeSnippet struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Summary       string  `json:"summary"`
	EstimatedCost float64 `json:"estimatedCost,omitempty"`
}

type Response struct {
	Recipes []*RecipeSnippet `json:"recipes"`
	LastID  string           `json:"lastId,omitempty"`
}

func (h *Handler) ListRecipes(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	q := h.store.Collection("recipes").Query.Where("userId", "==", userID)
	if req.LastID != "" {
		q = q.Where("id", ">", req.LastID)
	}
	q = q.OrderBy("id", firestore.Asc).Limit(pageSize)
	recipeDocs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listrecipes: getting recipes from firestore: %w", err)
	}
	if len(recipeDocs) == 0 {
		return &Response{}, nil
	}

	snippets := make([]*RecipeSnippet, len(recipeDocs))
	for i, doc := range recipeDocs {
		var recipe pantrydb.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, fmt.Errorf("listrecipes: unmarshalling recipe: %w", err)
		}

		names := make([]string, len(recipe.Ingredients))
		for j, ingredient := range recipe.Ingredients {
			names[j] = ingredient.Name
		}

		snippets[i] = &RecipeSnippet{
			ID:            recipe.ID,
			Name:          recipe.Name,
			Summary:       strings.Join(names, ", "),
			EstimatedCost: recipe.EstimatedCost,
		}
	}

	return &Response{
		Recipes: snippets,
		LastID:  snippets[len(snippets)-1].ID,
	}, nil
}
