// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package enrich

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/pantrychat/internal/genclient"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

type imageGenFunc func(ctx context.Context, prompt string) (*genclient.Payload, error)

func (f imageGenFunc) GenerateImage(ctx context.Context, prompt string) (*genclient.Payload, error) {
	return f(ctx, prompt)
}

var testSteps = []pantrydb.InstructionStep{
	{Step: 1, Text: "Dice the onion."},
	{Step: 2, Text: "Brown the beef."},
	{Step: 3, Text: "Simmer with tomatoes."},
}

func TestEnrichSteps(t *testing.T) {
	gen := imageGenFunc(func(_ context.Context, _ string) (*genclient.Payload, error) {
		return &genclient.Payload{MIMEType: "image/png", Data: []byte("img")}, nil
	})

	out := NewImageEnricher(gen).EnrichSteps(context.Background(), "Beef Stew", testSteps)

	require.Len(t, out, len(testSteps))
	for i, step := range out {
		assert.Equal(t, testSteps[i].Step, step.Step)
		assert.Equal(t, testSteps[i].Text, step.Text)
		assert.True(t, strings.HasPrefix(step.ImageDataURI, "data:image/png;base64,"))
	}
	// Input must not be mutated.
	for _, step := range testSteps {
		assert.Empty(t, step.ImageDataURI)
	}
}

func TestEnrichStepsPartialFailure(t *testing.T) {
	gen := imageGenFunc(func(_ context.Context, prompt string) (*genclient.Payload, error) {
		if strings.Contains(prompt, "Brown the beef.") {
			return nil, &genclient.ModelError{Kind: genclient.KindQuotaExceeded, Op: "generate image"}
		}
		return &genclient.Payload{MIMEType: "image/jpeg", Data: []byte("img")}, nil
	})

	out := NewImageEnricher(gen).EnrichSteps(context.Background(), "Beef Stew", testSteps)

	require.Len(t, out, len(testSteps))
	assert.NotEmpty(t, out[0].ImageDataURI)
	assert.Empty(t, out[1].ImageDataURI)
	assert.NotEmpty(t, out[2].ImageDataURI)
	assert.Equal(t, "Brown the beef.", out[1].Text)
}

func TestEnrichStepsEmpty(t *testing.T) {
	gen := imageGenFunc(func(_ context.Context, _ string) (*genclient.Payload, error) {
		t.Fatal("unexpected image generation")
		return nil, nil
	})

	out := NewImageEnricher(gen).EnrichSteps(context.Background(), "Beef Stew", nil)
	assert.Empty(t, out)
}
