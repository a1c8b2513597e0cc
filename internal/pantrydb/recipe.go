// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package pantrydb

import (
	"time"

	"google.golang.org/genai"
)

type RecipeSource string

const (
	// RecipeSourceGenerated is the source for AI-generated recipes.
	RecipeSourceGenerated RecipeSource = "generated"
	// RecipeSourceUser is the source for user-submitted recipes.
	RecipeSourceUser RecipeSource = "user"
)

// RecipeIngredient represents an ingredient in a recipe.
type RecipeIngredient struct {
	// Name is the name of the ingredient.
	Name string `firestore:"name" json:"name"`

	// Quantity is the quantity of the ingredient as free-form text.
	Quantity string `firestore:"quantity" json:"quantity"`
}

// InstructionStep represents a step in a recipe. Step numbers are assigned
// by the model when the recipe is generated and are never renumbered by
// enrichment.
type InstructionStep struct {
	// Step is the 1-based sequence number of the step.
	Step int `firestore:"step" json:"step"`

	// Text is the instruction text of the step.
	Text string `firestore:"text" json:"text"`

	// ImageDataURI is a data URI of an image of the step, when one was
	// generated. Empty when image generation failed or has not run.
	ImageDataURI string `firestore:"imageDataUri,omitempty" json:"imageDataUri,omitempty"`

	// ImageURL is the public URL of the step image once persisted.
	ImageURL string `firestore:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Nutrition is the per-serving nutrition estimate of a recipe.
type Nutrition struct {
	// Calories is the estimated calories per serving.
	Calories float64 `firestore:"calories" json:"calories"`

	// Protein is the estimated protein in grams per serving.
	Protein float64 `firestore:"protein" json:"protein"`

	// Carbs is the estimated carbohydrates in grams per serving.
	Carbs float64 `firestore:"carbs" json:"carbs"`

	// Fat is the estimated fat in grams per serving.
	Fat float64 `firestore:"fat" json:"fat"`
}

// RecipeContent is the text content of a recipe as returned by the
// generative model, before any media enrichment.
type RecipeContent struct {
	// Name is the name of the recipe.
	Name string `firestore:"name" json:"name"`

	// Ingredients are the ingredients of the recipe.
	Ingredients []RecipeIngredient `firestore:"ingredients" json:"ingredients"`

	// Steps are the steps to prepare the recipe, in cooking order.
	Steps []InstructionStep `firestore:"steps" json:"steps"`

	// Nutrition is the per-serving nutrition estimate.
	Nutrition Nutrition `firestore:"nutrition" json:"nutrition"`
}

// Recipe represents a recipe stored in Firestore.
type Recipe struct {
	// ID is the unique identifier of the recipe within pantrychat.
	ID string `firestore:"id" json:"id"`

	// Source is the source of the recipe.
	Source RecipeSource `firestore:"source" json:"source"`

	// UserID is the ID of the user the recipe was generated for.
	UserID string `firestore:"userId" json:"userId"`

	// Name is the name of the recipe.
	Name string `firestore:"name" json:"name"`

	// Ingredients are the ingredients of the recipe.
	Ingredients []RecipeIngredient `firestore:"ingredients" json:"ingredients"`

	// Steps are the steps to prepare the recipe, in cooking order.
	Steps []InstructionStep `firestore:"steps" json:"steps"`

	// Nutrition is the per-serving nutrition estimate.
	Nutrition Nutrition `firestore:"nutrition" json:"nutrition"`

	// EstimatedCost is the estimated cost of the recipe priced against the
	// user's pantry. Zero when the flow does not price ingredients.
	EstimatedCost float64 `firestore:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`

	// AudioDataURI is a data URI of the narrated-audio track. Empty until
	// narration settles, or forever if narration failed.
	AudioDataURI string `firestore:"audioDataUri,omitempty" json:"audioDataUri,omitempty"`

	// AudioURL is the public URL of the narration audio once persisted.
	AudioURL string `firestore:"audioUrl,omitempty" json:"audioUrl,omitempty"`

	// VideoDataURI is a data URI of the teaser video. Empty until the video
	// job settles, or forever if video generation failed.
	VideoDataURI string `firestore:"videoDataUri,omitempty" json:"videoDataUri,omitempty"`

	// VideoURL is the public URL of the teaser video once persisted.
	VideoURL string `firestore:"videoUrl,omitempty" json:"videoUrl,omitempty"`

	// CreatedAt is the time the recipe was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

var ingredientsSchema = &genai.Schema{
	Type:        "array",
	Description: "A list of ingredients",
	Items: &genai.Schema{
		Type:        "object",
		Description: "An ingredient in the recipe.",
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        "string",
				Description: "The name of the ingredient.",
			},
			"quantity": {
				Type:        "string",
				Description: "The quantity of the ingredient, as a magnitude with unit.",
			},
		},
		Required: []string{"name", "quantity"},
	},
}

var RecipeContentSchema = &genai.Schema{
	Type:        "object",
	Description: "The text content of a recipe.",
	Required:    []string{"name", "ingredients", "steps", "nutrition"},
	Properties: map[string]*genai.Schema{
		"name": {
			Type:        "string",
			Description: "The name of the recipe.",
		},
		"ingredients": ingredientsSchema,
		"steps": {
			Type:        "array",
			Description: "The steps of the recipe, in cooking order.",
			Items: &genai.Schema{
				Type:        "object",
				Description: "A step in the recipe.",
				Properties: map[string]*genai.Schema{
					"step": {
						Type:        "integer",
						Description: "The 1-based sequence number of the step.",
					},
					"text": {
						Type:        "string",
						Description: "The instruction text of the step.",
					},
				},
				Required: []string{"step", "text"},
			},
		},
		"nutrition": {
			Type:        "object",
			Description: "The per-serving nutrition estimate of the recipe.",
			Properties: map[string]*genai.Schema{
				"calories": {
					Type:        "number",
					Description: "Estimated calories per serving.",
				},
				"protein": {
					Type:        "number",
					Description: "Estimated protein in grams per serving.",
				},
				"carbs": {
					Type:        "number",
					Description: "Estimated carbohydrates in grams per serving.",
				},
				"fat": {
					Type:        "number",
					Description: "Estimated fat in grams per serving.",
				},
			},
			Required: []string{"calories", "protein", "carbs", "fat"},
		},
	},
}

var RecipeListSchema = &genai.Schema{
	Type:        "object",
	Description: "A list of generated recipes.",
	Required:    []string{"recipes"},
	Properties: map[string]*genai.Schema{
		"recipes": {
			Type:        "array",
			Description: "The generated recipes.",
			Items:       RecipeContentSchema,
		},
	},
}
