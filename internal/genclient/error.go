// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package genclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrorKind classifies a failed generative call.
type ErrorKind string

const (
	// KindQuotaExceeded is a rejection for exceeding a rate or daily limit.
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	// KindServiceOverloaded is a transient capacity error from the service.
	KindServiceOverloaded ErrorKind = "service_overloaded"
	// KindInvalidResponse is a successful call that returned no usable payload.
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindUnknown is any other failure.
	KindUnknown ErrorKind = "unknown"
)

// ModelError is a classified failure of a generative call.
type ModelError struct {
	// Kind is the classification of the failure.
	Kind ErrorKind

	// Op is the call that failed, e.g. "generate image".
	Op string

	// Err is the underlying error, nil for invalid responses.
	Err error
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("genclient: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("genclient: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// Advisory returns a message suitable for displaying to a user when the
// result of the call is missing.
func (e *ModelError) Advisory() string {
	switch e.Kind {
	case KindQuotaExceeded:
		return "Generation quota exceeded (Too Many Requests). Please try again later."
	case KindServiceOverloaded:
		return "The generation service is overloaded. Please try again in a moment."
	case KindInvalidResponse:
		return "The generation service returned no content. Please try again."
	default:
		return "Generation failed unexpectedly. Please try again."
	}
}

var quotaPhrases = []string{
	"429",
	"RESOURCE_EXHAUSTED",
	"rate limit",
	"quota",
	"Too Many Requests",
}

var overloadPhrases = []string{
	"503",
	"UNAVAILABLE",
	"overloaded",
	"try again later",
}

// classify wraps err as a ModelError. The genai API error code is
// preferred; substring matching on the error text is the fallback for
// errors that reach us unstructured.
func classify(op string, err error) *ModelError {
	var modelErr *ModelError
	if errors.As(err, &modelErr) {
		return modelErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return &ModelError{Kind: KindQuotaExceeded, Op: op, Err: err}
		case http.StatusServiceUnavailable:
			return &ModelError{Kind: KindServiceOverloaded, Op: op, Err: err}
		}
	}

	msg := err.Error()
	for _, p := range quotaPhrases {
		if containsFold(msg, p) {
			return &ModelError{Kind: KindQuotaExceeded, Op: op, Err: err}
		}
	}
	for _, p := range overloadPhrases {
		if containsFold(msg, p) {
			return &ModelError{Kind: KindServiceOverloaded, Op: op, Err: err}
		}
	}
	return &ModelError{Kind: KindUnknown, Op: op, Err: err}
}

func invalidResponse(op string) *ModelError {
	return &ModelError{Kind: KindInvalidResponse, Op: op}
}

func containsFold(s string, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
