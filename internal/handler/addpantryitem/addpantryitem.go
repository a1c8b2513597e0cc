// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package addpantryitem

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

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
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
}

type Response struct{}

func (h *Handler) AddPantryItem(ctx context.Context, req *Request) (*Response, error) {
	if req.Name == "" {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("addpantryitem: name is required"))
	}

	item := pantrydb.PantryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		AddedAt:  time.Now(),
	}

	doc := h.store.Collection("users").Doc(firebaseauth.TokenFromContext(ctx).UID).Collection("pantry").Doc(strings.ToLower(req.Name))
	if _, err := doc.Set(ctx, item); err != nil {
		return nil, fmt.Errorf("addpantryitem: saving pantry item: %w", err)
	}
	return &Response{}, nil
}
