// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package genclient adapts the external generative service behind a
// uniform interface for four modalities: structured text, image, speech,
// and long-running video. Failures are classified here, never retried;
// retry policy belongs to callers.
package genclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
	"google.golang.org/genai"
)

// Config configures the models and media parameters of the adapter.
type Config struct {
	// TextModel generates recipe skeletons, e.g. gemini-2.5-pro.
	TextModel string

	// ImageModel generates step photos, e.g. gemini-3-pro-image-preview.
	ImageModel string

	// SpeechModel generates narration audio, e.g. gemini-2.5-pro-preview-tts.
	SpeechModel string

	// VideoModel generates teaser videos, e.g. veo-3.0-generate-001.
	VideoModel string

	// NarratorVoice is the prebuilt voice used for narration, e.g. Zephyr.
	NarratorVoice string

	// VideoDurationSeconds is the requested video length.
	VideoDurationSeconds int

	// VideoAspectRatio is the requested video aspect ratio, e.g. 16:9.
	VideoAspectRatio string

	// MaxConcurrentCalls bounds in-flight calls to the generative service
	// to avoid self-inflicted quota exhaustion from bursts of step-image
	// requests.
	MaxConcurrentCalls int
}

func (c Config) withDefaults() Config {
	if c.TextModel == "" {
		c.TextModel = "gemini-2.5-pro"
	}
	if c.ImageModel == "" {
		c.ImageModel = "gemini-3-pro-image-preview"
	}
	if c.SpeechModel == "" {
		c.SpeechModel = "gemini-2.5-pro-preview-tts"
	}
	if c.VideoModel == "" {
		c.VideoModel = "veo-3.0-generate-001"
	}
	if c.NarratorVoice == "" {
		c.NarratorVoice = "Zephyr"
	}
	if c.VideoDurationSeconds == 0 {
		c.VideoDurationSeconds = 5
	}
	if c.VideoAspectRatio == "" {
		c.VideoAspectRatio = "16:9"
	}
	if c.MaxConcurrentCalls == 0 {
		c.MaxConcurrentCalls = 4
	}
	return c
}

// Payload is a generated media payload.
type Payload struct {
	// MIMEType is the media type of the payload, e.g. image/jpeg.
	MIMEType string

	// Data is the raw payload bytes.
	Data []byte
}

// TextRequest is a request for structured text generation.
type TextRequest struct {
	// System is the system instruction for the model.
	System string

	// Prompt is the user prompt.
	Prompt string

	// Image is an optional image input, e.g. a photographed meal.
	Image *Payload

	// Schema describes the shape of the JSON response.
	Schema *genai.Schema
}

// Client is the adapter to the generative service.
type Client struct {
	genAI *genai.Client
	http  *http.Client
	cfg   Config
	sem   *semaphore.Weighted
}

// New returns a Client using genAI for all modalities.
func New(genAI *genai.Client, cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		genAI: genAI,
		http:  &http.Client{Timeout: time.Minute},
		cfg:   cfg,
		sem:   semaphore.NewWeighted(int64(cfg.MaxConcurrentCalls)),
	}
}

// GenerateText generates structured JSON text matching req.Schema.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", classify("generate text", err)
	}
	defer c.sem.Release(1)

	var contents []*genai.Content
	if req.Image != nil {
		contents = []*genai.Content{genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType),
			genai.NewPartFromText(req.Prompt),
		}, genai.RoleUser)}
	} else {
		contents = []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	}

	res, err := c.genAI.Models.GenerateContent(ctx, c.cfg.TextModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleModel),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    req.Schema,
	})
	if err != nil {
		return "", classify("generate text", err)
	}
	text := res.Text()
	if text == "" {
		return "", invalidResponse("generate text")
	}
	return text, nil
}

// GenerateImage generates a single image for prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*Payload, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, classify("generate image", err)
	}
	defer c.sem.Release(1)

	res, err := c.genAI.Models.GenerateContent(ctx, c.cfg.ImageModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, classify("generate image", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Content == nil {
		return nil, invalidResponse("generate image")
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if b := part.InlineData; b != nil && (b.MIMEType == "image/jpeg" || b.MIMEType == "image/png") {
			return &Payload{MIMEType: b.MIMEType, Data: b.Data}, nil
		}
	}
	return nil, invalidResponse("generate image")
}

// GenerateSpeech generates raw PCM narration audio for text using the
// configured narrator voice. Callers are responsible for framing the PCM
// into a container.
func (c *Client) GenerateSpeech(ctx context.Context, text string) (*Payload, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, classify("generate speech", err)
	}
	defer c.sem.Release(1)

	res, err := c.genAI.Models.GenerateContent(ctx, c.cfg.SpeechModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: c.cfg.NarratorVoice,
				},
			},
		},
	})
	if err != nil {
		return nil, classify("generate speech", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Content == nil {
		return nil, invalidResponse("generate speech")
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if b := part.InlineData; b != nil && len(b.Data) > 0 {
			return &Payload{MIMEType: b.MIMEType, Data: b.Data}, nil
		}
	}
	return nil, invalidResponse("generate speech")
}

// VideoJob is a handle to a long-running video generation job.
type VideoJob struct {
	op *genai.GenerateVideosOperation
}

// VideoJobStatus is the observed state of a video job.
type VideoJobStatus struct {
	// Done reports whether the job has completed.
	Done bool

	// Payload is the generated video, set when Done.
	Payload *Payload
}

// StartVideoJob submits a video generation job for prompt with the
// configured duration and aspect ratio.
func (c *Client) StartVideoJob(ctx context.Context, prompt string) (*VideoJob, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, classify("start video job", err)
	}
	defer c.sem.Release(1)

	op, err := c.genAI.Models.GenerateVideos(ctx, c.cfg.VideoModel, prompt, nil, &genai.GenerateVideosConfig{
		AspectRatio:     c.cfg.VideoAspectRatio,
		DurationSeconds: genai.Ptr(int32(c.cfg.VideoDurationSeconds)),
		NumberOfVideos:  1,
	})
	if err != nil {
		return nil, classify("start video job", err)
	}
	if op == nil {
		return nil, invalidResponse("start video job")
	}
	return &VideoJob{op: op}, nil
}

// PollVideoJob polls job once. When the job is done, the video payload is
// downloaded before returning.
func (c *Client) PollVideoJob(ctx context.Context, job *VideoJob) (*VideoJobStatus, error) {
	op, err := c.genAI.Operations.GetVideosOperation(ctx, job.op, nil)
	if err != nil {
		return nil, classify("poll video job", err)
	}
	job.op = op
	if !op.Done {
		return &VideoJobStatus{}, nil
	}
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, invalidResponse("poll video job")
	}

	video := op.Response.GeneratedVideos[0].Video
	data := video.VideoBytes
	if len(data) == 0 && video.URI != "" {
		data, err = c.downloadVideo(ctx, video.URI)
		if err != nil {
			return nil, classify("download video", err)
		}
	}
	if len(data) == 0 {
		return nil, invalidResponse("poll video job")
	}

	mime := video.MIMEType
	if mime == "" {
		mime = "video/mp4"
	}
	return &VideoJobStatus{Done: true, Payload: &Payload{MIMEType: mime, Data: data}}, nil
}

func (c *Client) downloadVideo(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("genclient: creating video download request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genclient: downloading video: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genclient: downloading video: status %s", res.Status)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("genclient: reading video download: %w", err)
	}
	return data, nil
}
