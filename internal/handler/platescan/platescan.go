// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package platescan

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/pantrychat/internal/genclient"
	"github.com/curioswitch/pantrychat/internal/httpapi"
	"github.com/curioswitch/pantrychat/internal/llm"
	"github.com/curioswitch/pantrychat/internal/media"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
	"github.com/curioswitch/pantrychat/internal/recipegen"
)

func NewHandler(generator *recipegen.Generator) *Handler {
	return &Handler{generator: generator}
}

type Handler struct {
	generator *recipegen.Generator
}

type Request struct {
	// PhotoDataUrl is a data URL of a photo of a plated meal.
	PhotoDataUrl string `json:"photoDataUrl"`
}

type Response struct {
	Recipe *pantrydb.Recipe `json:"recipe"`
}

// PlateScan reconstructs a recipe from a photo of a finished dish.
func (h *Handler) PlateScan(ctx context.Context, req *Request) (*Response, error) {
	if req.PhotoDataUrl == "" {
		return nil, httpapi.NewError(http.StatusBadRequest, errors.New("platescan: photoDataUrl is required"))
	}
	mimeType, data, err := media.ParseDataURI(req.PhotoDataUrl)
	if err != nil {
		return nil, httpapi.NewError(http.StatusBadRequest, fmt.Errorf("platescan: parsing photo: %w", err))
	}

	userID := firebaseauth.TokenFromContext(ctx).UID

	results, err := h.generator.Generate(ctx, recipegen.Params{
		UserID: userID,
		System: llm.GenerateRecipesPrompt(),
		Prompt: llm.FromPlatePhoto(),
		Image: &genclient.Payload{
			MIMEType: mimeType,
			Data:     data,
		},
		Count: 1,
	})
	if err != nil {
		if errors.Is(err, recipegen.ErrGenerationFailed) {
			return nil, httpapi.NewError(http.StatusBadGateway, err)
		}
		return nil, err
	}

	return &Response{Recipe: results[0].Recipe}, nil
}
