// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	discoveryengine "cloud.google.com/go/discoveryengine/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/curioswitch/pantrychat/internal/config"
	"github.com/curioswitch/pantrychat/internal/enrich"
	"github.com/curioswitch/pantrychat/internal/genclient"
	"github.com/curioswitch/pantrychat/internal/handler/addpantryitem"
	"github.com/curioswitch/pantrychat/internal/handler/getrecipe"
	"github.com/curioswitch/pantrychat/internal/handler/listpantry"
	"github.com/curioswitch/pantrychat/internal/handler/listrecipes"
	"github.com/curioswitch/pantrychat/internal/handler/logcook"
	"github.com/curioswitch/pantrychat/internal/handler/moodrecipe"
	"github.com/curioswitch/pantrychat/internal/handler/platescan"
	"github.com/curioswitch/pantrychat/internal/handler/predictnext"
	"github.com/curioswitch/pantrychat/internal/handler/scrapsrecipe"
	"github.com/curioswitch/pantrychat/internal/handler/searchrecipes"
	"github.com/curioswitch/pantrychat/internal/handler/suggestrecipes"
	"github.com/curioswitch/pantrychat/internal/handler/transformrecipe"
	"github.com/curioswitch/pantrychat/internal/httpapi"
	"github.com/curioswitch/pantrychat/internal/media"
	"github.com/curioswitch/pantrychat/internal/recipegen"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	search, err := discoveryengine.NewSearchClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create discovery engine search client: %w", err)
	}
	defer func() {
		if err := search.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close discovery engine search client", "error", err)
		}
	}()

	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		Project: conf.Google.Project,
	})
	if err != nil {
		return fmt.Errorf("main: creating genai client: %w", err)
	}

	oai := openai.NewClient()

	gen := genclient.New(genAI, genclient.Config{
		TextModel:          conf.Generation.TextModel,
		ImageModel:         conf.Generation.ImageModel,
		SpeechModel:        conf.Generation.SpeechModel,
		VideoModel:         conf.Generation.VideoModel,
		NarratorVoice:      conf.Generation.NarratorVoice,
		MaxConcurrentCalls: conf.Generation.MaxConcurrentCalls,
	})

	orch := enrich.NewOrchestrator(gen, enrich.OrchestratorConfig{
		Video: enrich.VideoConfig{
			PollInterval: time.Duration(conf.Generation.VideoPollSeconds) * time.Second,
			Timeout:      time.Duration(conf.Generation.VideoTimeoutSeconds) * time.Second,
		},
		FallbackVoice: genclient.NewFallbackVoice(oai),
	})

	offload := media.NewWriter(media.NewStorage(storage, publicBucket))
	generator := recipegen.New(gen, orch, recipegen.NewFirestoreStore(firestore), offload)

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, "/internal/")
	}))

	mux.Post("/api/suggest-recipes", httpapi.Handler(suggestrecipes.NewHandler(generator, firestore).SuggestRecipes))
	mux.Post("/api/mood-recipe", httpapi.Handler(moodrecipe.NewHandler(generator).MoodRecipe))
	mux.Post("/api/plate-scan", httpapi.Handler(platescan.NewHandler(generator).PlateScan))
	mux.Post("/api/scraps-recipe", httpapi.Handler(scrapsrecipe.NewHandler(generator, firestore).ScrapsRecipe))
	mux.Post("/api/predict-next", httpapi.Handler(predictnext.NewHandler(generator, firestore).PredictNext))
	mux.Post("/api/transform-recipe", httpapi.Handler(transformrecipe.NewHandler(generator, firestore).TransformRecipe))

	mux.Post("/api/get-recipe", httpapi.Handler(getrecipe.NewHandler(firestore).GetRecipe))
	mux.Post("/api/list-recipes", httpapi.Handler(listrecipes.NewHandler(firestore).ListRecipes))
	mux.Post("/api/search-recipes", httpapi.Handler(searchrecipes.NewHandler(search, firestore, conf.Search.Engine).SearchRecipes))

	mux.Post("/api/add-pantry-item", httpapi.Handler(addpantryitem.NewHandler(firestore).AddPantryItem))
	mux.Post("/api/list-pantry", httpapi.Handler(listpantry.NewHandler(firestore).ListPantry))
	mux.Post("/api/log-cook", httpapi.Handler(logcook.NewHandler(firestore).LogCook))

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
