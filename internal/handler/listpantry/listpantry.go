// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listpantry

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

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

type Request struct{}

type Response struct {
	Items []pantrydb.PantryItem `json:"items"`
}

func (h *Handler) ListPantry(ctx context.Context, _ *Request) (*Response, error) {
	docs, err := h.store.Collection("users").
		Doc(firebaseauth.TokenFromContext(ctx).UID).
		Collection("pantry").
		OrderBy("name", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listpantry: getting pantry items: %w", err)
	}

	items := make([]pantrydb.PantryItem, len(docs))
	for i, doc := range docs {
		if err := doc.DataTo(&items[i]); err != nil {
			return nil, fmt.Errorf("listpantry: unmarshalling pantry item: %w", err)
		}
	}

	return &Response{Items: items}, nil
}
