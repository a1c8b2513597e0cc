// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipegen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/pantrychat/internal/enrich"
	"github.com/curioswitch/pantrychat/internal/genclient"
	"github.com/curioswitch/pantrychat/internal/pantrydb"
)

type textGenFunc func(ctx context.Context, req genclient.TextRequest) (string, error)

func (f textGenFunc) GenerateText(ctx context.Context, req genclient.TextRequest) (string, error) {
	return f(ctx, req)
}

type fakeMediaClient struct {
	speechErr error
	videoErr  error

	imageCalls atomic.Int32
}

func (f *fakeMediaClient) GenerateImage(_ context.Context, _ string) (*genclient.Payload, error) {
	f.imageCalls.Add(1)
	return &genclient.Payload{MIMEType: "image/png", Data: []byte("img")}, nil
}

func (f *fakeMediaClient) GenerateSpeech(_ context.Context, _ string) (*genclient.Payload, error) {
	if f.speechErr != nil {
		return nil, f.speechErr
	}
	return &genclient.Payload{MIMEType: "audio/pcm", Data: []byte{0, 1}}, nil
}

func (f *fakeMediaClient) StartVideoJob(_ context.Context, _ string) (*genclient.VideoJob, error) {
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return &genclient.VideoJob{}, nil
}

func (f *fakeMediaClient) PollVideoJob(_ context.Context, _ *genclient.VideoJob) (*genclient.VideoJobStatus, error) {
	return &genclient.VideoJobStatus{
		Done:    true,
		Payload: &genclient.Payload{MIMEType: "video/mp4", Data: []byte("mp4")},
	}, nil
}

type mediaUpdate struct {
	recipeID string
	audio    string
	video    string
}

type fakeStore struct {
	mu      sync.Mutex
	created []pantrydb.Recipe
	updates []mediaUpdate
}

func (s *fakeStore) CreateRecipe(_ context.Context, recipe *pantrydb.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if recipe.ID == "" {
		recipe.ID = fmt.Sprintf("recipe-%d", len(s.created))
	}
	s.created = append(s.created, *recipe)
	return nil
}

func (s *fakeStore) UpdateRecipeMedia(_ context.Context, recipeID string, audio string, video string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, mediaUpdate{recipeID: recipeID, audio: audio, video: video})
	return nil
}

func (s *fakeStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

type offloadFunc func(ctx context.Context, pathNoExt string, dataURI string) (string, error)

func (f offloadFunc) WriteDataURI(ctx context.Context, pathNoExt string, dataURI string) (string, error) {
	return f(ctx, pathNoExt, dataURI)
}

func testOrchestrator(client enrich.MediaClient) *enrich.Orchestrator {
	return enrich.NewOrchestrator(client, enrich.OrchestratorConfig{
		Video: enrich.VideoConfig{PollInterval: time.Millisecond, Timeout: time.Second},
	})
}

func recipesJSON(t *testing.T, names ...string) string {
	t.Helper()
	var list recipeList
	for _, name := range names {
		list.Recipes = append(list.Recipes, pantrydb.RecipeContent{
			Name: name,
			Ingredients: []pantrydb.RecipeIngredient{
				{Name: "Onion", Quantity: "1"},
				{Name: "Beef", Quantity: "300g"},
			},
			Steps: []pantrydb.InstructionStep{
				{Step: 1, Text: "Dice the onion."},
				{Step: 2, Text: "Brown the beef."},
			},
		})
	}
	data, err := json.Marshal(list)
	require.NoError(t, err)
	return string(data)
}

func TestGenerate(t *testing.T) {
	client := &fakeMediaClient{}
	store := &fakeStore{}
	text := textGenFunc(func(_ context.Context, req genclient.TextRequest) (string, error) {
		require.NotNil(t, req.Schema)
		return recipesJSON(t, "Beef Stew", "Onion Soup"), nil
	})
	gen := New(text, testOrchestrator(client), store, nil)

	results, err := gen.Generate(context.Background(), Params{
		UserID: "user1",
		System: "system",
		Prompt: "prompt",
		Count:  2,
		Inventory: []pantrydb.PantryItem{
			{Name: "onion", Price: 0.8},
			{Name: "beef", Price: 6.5},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		recipe := result.Recipe
		assert.NotEmpty(t, recipe.ID)
		assert.Equal(t, "user1", recipe.UserID)
		assert.Equal(t, pantrydb.RecipeSourceGenerated, recipe.Source)
		assert.InDelta(t, 7.3, recipe.EstimatedCost, 1e-9)
		require.Len(t, recipe.Steps, 2)
		for _, step := range recipe.Steps {
			assert.True(t, strings.HasPrefix(step.ImageDataURI, "data:image/png;base64,"))
		}
	}

	assert.Len(t, store.created, 2)

	for _, result := range results {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		media, err := result.Media.Wait(ctx)
		cancel()
		require.NoError(t, err)
		assert.NotEmpty(t, media.AudioDataURI)
		assert.NotEmpty(t, media.VideoDataURI)
	}

	// The background apply persists settled media.
	assert.Eventually(t, func() bool {
		return store.updateCount() == 2
	}, 5*time.Second, 5*time.Millisecond)
}

func TestGenerateTrimsToCount(t *testing.T) {
	client := &fakeMediaClient{}
	store := &fakeStore{}
	text := textGenFunc(func(_ context.Context, _ genclient.TextRequest) (string, error) {
		return recipesJSON(t, "Beef Stew", "Onion Soup", "Beef Curry"), nil
	})
	gen := New(text, testOrchestrator(client), store, nil)

	results, err := gen.Generate(context.Background(), Params{UserID: "user1", Count: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Beef Stew", results[0].Recipe.Name)
}

func TestGenerateTextFailure(t *testing.T) {
	client := &fakeMediaClient{}
	store := &fakeStore{}
	modelErr := &genclient.ModelError{Kind: genclient.KindQuotaExceeded, Op: "generate text"}
	text := textGenFunc(func(_ context.Context, _ genclient.TextRequest) (string, error) {
		return "", modelErr
	})
	gen := New(text, testOrchestrator(client), store, nil)

	_, err := gen.Generate(context.Background(), Params{UserID: "user1", Count: 1})
	require.ErrorIs(t, err, ErrGenerationFailed)
	require.ErrorIs(t, err, modelErr)

	// No enrichment or persistence happens when the skeleton is missing.
	assert.Zero(t, client.imageCalls.Load())
	assert.Empty(t, store.created)
}

func TestGenerateEmptyList(t *testing.T) {
	client := &fakeMediaClient{}
	store := &fakeStore{}
	text := textGenFunc(func(_ context.Context, _ genclient.TextRequest) (string, error) {
		return `{"recipes": []}`, nil
	})
	gen := New(text, testOrchestrator(client), store, nil)

	_, err := gen.Generate(context.Background(), Params{UserID: "user1", Count: 1})
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Zero(t, client.imageCalls.Load())
}

func TestGenerateInvalidJSON(t *testing.T) {
	client := &fakeMediaClient{}
	store := &fakeStore{}
	text := textGenFunc(func(_ context.Context, _ genclient.TextRequest) (string, error) {
		return "a lovely stew", nil
	})
	gen := New(text, testOrchestrator(client), store, nil)

	_, err := gen.Generate(context.Background(), Params{UserID: "user1", Count: 1})
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateOffload(t *testing.T) {
	client := &fakeMediaClient{}
	store := &fakeStore{}
	text := textGenFunc(func(_ context.Context, _ genclient.TextRequest) (string, error) {
		return recipesJSON(t, "Beef Stew"), nil
	})
	offload := offloadFunc(func(_ context.Context, pathNoExt string, _ string) (string, error) {
		return "https://storage.example.com/" + pathNoExt, nil
	})
	gen := New(text, testOrchestrator(client), store, offload)

	results, err := gen.Generate(context.Background(), Params{UserID: "user1", Count: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// The caller's copy keeps inline data URIs for immediate rendering.
	assert.NotEmpty(t, results[0].Recipe.Steps[0].ImageDataURI)

	// The store receives the initial write plus the offloaded rewrite.
	require.Len(t, store.created, 2)
	stored := store.created[1]
	for _, step := range stored.Steps {
		assert.Empty(t, step.ImageDataURI)
		assert.True(t, strings.HasPrefix(step.ImageURL, "https://storage.example.com/recipes/"))
	}

	assert.Eventually(t, func() bool {
		return store.updateCount() == 1
	}, 5*time.Second, 5*time.Millisecond)
	update := store.updates[0]
	assert.Equal(t, stored.ID, update.recipeID)
	assert.True(t, strings.HasPrefix(update.audio, "https://storage.example.com/recipes/"))
	assert.True(t, strings.HasPrefix(update.video, "https://storage.example.com/recipes/"))
}
