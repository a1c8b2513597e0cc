// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipegen

import (
	"strings"

	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

// EstimateCost prices a recipe's ingredients against pantry items: the
// full price of every pantry item whose name matches an ingredient name
// case-insensitively is added. This is a rough estimate, not a unit-cost
// computation - a partially used item still contributes its whole price.
func EstimateCost(ingredients []pantrydb.RecipeIngredient, pantry []pantrydb.PantryItem) float64 {
	var cost float64
	for _, item := range pantry {
		for _, ingredient := range ingredients {
			if strings.EqualFold(item.Name, ingredient.Name) {
				cost += item.Price
				break
			}
		}
	}
	return cost
}
