// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"fmt"
	"strings"
)

func GenerateRecipesPrompt() string {
	return generateRecipesPrompt
}

const generateRecipesPrompt = `You support users of a pantry application by generating recipes they will actually cook.
Respond with recipes in the requested JSON structure.

- Every recipe must have a concise, appealing name.
- List every ingredient with a quantity as a magnitude plus unit, e.g. "200 g", "2 tbsp".
- Write instruction steps in cooking order and number them starting from 1.
- Each step must be a single action a home cook can follow without referring to other steps.
- Estimate per-serving nutrition (calories, protein, carbs, fat) as realistic non-negative numbers.
- Do not invent ingredients the user clearly cannot have.
- Generate the recipe content in the language of the user's query.
`

// FromIngredients prompts for count recipes cookable from the given
// available ingredients.
func FromIngredients(ingredients []string, count int) string {
	return fmt.Sprintf(`Generate %d different recipes using these available ingredients: %s.
Prefer recipes that need few additional ingredients.`, count, strings.Join(ingredients, ", "))
}

// FromMood prompts for a recipe matching the user's described mood.
func FromMood(mood string) string {
	return fmt.Sprintf("Generate one recipe matching this mood or craving: %s.", mood)
}

// FromPlatePhoto prompts for recreating a photographed meal. The photo
// itself is attached as image input.
func FromPlatePhoto() string {
	return fromPlatePhotoPrompt
}

const fromPlatePhotoPrompt = `The attached photo shows a prepared meal. Identify the dish and generate one recipe to recreate it at home.`

// FromScraps prompts for an invented recipe that uses up leftovers.
func FromScraps(scraps []string) string {
	return fmt.Sprintf(`Invent one creative recipe that uses up these leftover scraps before they spoil: %s.
It is fine to combine them in unusual but tasty ways.`, strings.Join(scraps, ", "))
}

// Predictive prompts for count recipes based on what the user cooked
// recently.
func Predictive(recentRecipes []string, count int) string {
	if len(recentRecipes) == 0 {
		return fmt.Sprintf("Generate %d varied recipes a home cook would enjoy on a weeknight.", count)
	}
	return fmt.Sprintf(`The user recently cooked: %s.
Generate %d recipes they are likely to want next. Vary cuisine and effort, and do not repeat recent dishes.`,
		strings.Join(recentRecipes, ", "), count)
}

// Transform prompts for transforming an existing recipe per the user's
// instruction, e.g. "make it vegan" or "halve the servings".
func Transform(recipeJSON string, instruction string) string {
	return fmt.Sprintf(`Transform the following recipe according to this instruction: %s.
Keep everything not affected by the instruction unchanged.

The recipe in structured JSON format is as follows:
%s`, instruction, recipeJSON)
}
