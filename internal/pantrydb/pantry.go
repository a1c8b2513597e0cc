// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package pantrydb

import "time"

// PantryItem is an item in a user's pantry inventory, stored under
// users/{uid}/pantry.
type PantryItem struct {
	// Name is the name of the item.
	Name string `firestore:"name" json:"name"`

	// Quantity is the quantity of the item as free-form text.
	Quantity string `firestore:"quantity" json:"quantity"`

	// Price is the purchase price of the item, when known.
	Price float64 `firestore:"price,omitempty" json:"price,omitempty"`

	// AddedAt is the time the item was added to the pantry.
	AddedAt time.Time `firestore:"addedAt" json:"addedAt"`
}

// CookLogEntry records that a user cooked a recipe, stored under
// users/{uid}/cooklog.
type CookLogEntry struct {
	// RecipeID is the ID of the cooked recipe.
	RecipeID string `firestore:"recipeId" json:"recipeId"`

	// RecipeName is the name of the cooked recipe.
	RecipeName string `firestore:"recipeName" json:"recipeName"`

	// CookedAt is the time the recipe was cooked.
	CookedAt time.Time `firestore:"cookedAt" json:"cookedAt"`
}
