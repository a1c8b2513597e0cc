// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/pantrychat/internal/media"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

const stepImagePrompt = `Generate a realistic photographic image of the following step in preparing the recipe "%s".
The image must not include any text.

Step: %s`

// ImageEnricher generates one photo per instruction step.
type ImageEnricher struct {
	client ImageGenerator
}

// NewImageEnricher returns an ImageEnricher using client.
func NewImageEnricher(client ImageGenerator) *ImageEnricher {
	return &ImageEnricher{client: client}
}

// EnrichSteps issues one image generation per step concurrently and
// merges results back by index. The returned slice always has the same
// length and step order as steps; a step whose image call failed keeps an
// empty image field.
func (e *ImageEnricher) EnrichSteps(ctx context.Context, recipeName string, steps []pantrydb.InstructionStep) []pantrydb.InstructionStep {
	out := make([]pantrydb.InstructionStep, len(steps))
	copy(out, steps)

	var grp errgroup.Group
	for i, step := range steps {
		grp.Go(func() error {
			img, err := e.client.GenerateImage(ctx, fmt.Sprintf(stepImagePrompt, recipeName, step.Text))
			if err != nil {
				slog.WarnContext(ctx, "enrich: generating step image", "recipe", recipeName, "step", step.Step, "error", err)
				return nil
			}
			out[i].ImageDataURI = media.DataURI(img.MIMEType, img.Data)
			return nil
		})
	}
	// Goroutines absorb their own failures, so Wait only synchronizes.
	_ = grp.Wait()

	return out
}
