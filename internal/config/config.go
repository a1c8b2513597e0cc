// Copyright (c) Choko (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Search struct {
	// Engine is the name of the search engine to use, e.g. projects/408496405753/locations/global/collections/default_collection/engines/pantrychat-recipes.
	Engine string `koanf:"engine"`
}

type Generation struct {
	// TextModel is the model used to generate recipe content.
	TextModel string `koanf:"textmodel"`

	// ImageModel is the model used to generate step images.
	ImageModel string `koanf:"imagemodel"`

	// SpeechModel is the model used to narrate recipes.
	SpeechModel string `koanf:"speechmodel"`

	// VideoModel is the model used to generate teaser videos.
	VideoModel string `koanf:"videomodel"`

	// NarratorVoice is the prebuilt voice used for narration.
	NarratorVoice string `koanf:"narratorvoice"`

	// MaxConcurrentCalls caps in-flight model calls.
	MaxConcurrentCalls int `koanf:"maxconcurrentcalls"`

	// VideoPollSeconds is the interval between polls of a video job.
	VideoPollSeconds int `koanf:"videopollseconds"`

	// VideoTimeoutSeconds bounds the total time spent waiting for a
	// video job.
	VideoTimeoutSeconds int `koanf:"videotimeoutseconds"`
}

type Config struct {
	config.Common

	// Search is the configuration for search.
	Search Search `koanf:"search"`

	// Generation is the configuration for recipe and media generation.
	Generation Generation `koanf:"generation"`
}
