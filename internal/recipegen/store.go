// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipegen

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

// FirestoreStore persists recipes in the recipes collection.
type FirestoreStore struct {
	store *firestore.Client
}

// NewFirestoreStore returns a FirestoreStore using store.
func NewFirestoreStore(store *firestore.Client) *FirestoreStore {
	return &FirestoreStore{store: store}
}

func (s *FirestoreStore) CreateRecipe(ctx context.Context, recipe *pantrydb.Recipe) error {
	doc := s.store.Collection("recipes").Doc(recipe.ID)
	if recipe.ID == "" {
		doc = s.store.Collection("recipes").NewDoc()
		recipe.ID = doc.ID
	}
	if _, err := doc.Set(ctx, recipe); err != nil {
		return fmt.Errorf("recipegen: writing recipe doc: %w", err)
	}
	return nil
}

func (s *FirestoreStore) UpdateRecipeMedia(ctx context.Context, recipeID string, audio string, video string) error {
	var updates []firestore.Update
	if audio != "" {
		updates = append(updates, firestore.Update{Path: mediaField("audio", audio), Value: audio})
	}
	if video != "" {
		updates = append(updates, firestore.Update{Path: mediaField("video", video), Value: video})
	}
	if len(updates) == 0 {
		return nil
	}
	if _, err := s.store.Collection("recipes").Doc(recipeID).Update(ctx, updates); err != nil {
		return fmt.Errorf("recipegen: updating recipe media: %w", err)
	}
	return nil
}

// mediaField picks the document field for a media value: offloaded media
// arrives as a public URL, inline media as a data URI.
func mediaField(modality string, value string) string {
	if strings.HasPrefix(value, "data:") {
		return modality + "DataUri"
	}
	return modality + "Url"
}
