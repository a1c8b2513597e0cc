// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpapi adapts unary request/response handlers to JSON over
// HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Error is an error with an associated HTTP status code.
type Error struct {
	Status int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("httpapi: status %d: %v", e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with an HTTP status code.
func NewError(status int, err error) *Error {
	return &Error{Status: status, Err: err}
}

// Handler adapts fn to an HTTP handler exchanging JSON bodies. An empty
// request body decodes to the zero request.
func Handler[Req any, Resp any](fn func(ctx context.Context, req *Req) (*Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req Req
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "reading request body", http.StatusBadRequest)
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "invalid JSON request", http.StatusBadRequest)
				return
			}
		}

		res, err := fn(ctx, &req)
		if err != nil {
			status := http.StatusInternalServerError
			var httpErr *Error
			if errors.As(err, &httpErr) {
				status = httpErr.Status
			}
			if status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "httpapi: handler failed", "path", r.URL.Path, "error", err)
			}
			http.Error(w, http.StatusText(status), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			slog.ErrorContext(ctx, "httpapi: encoding response", "path", r.URL.Path, "error", err)
		}
	}
}
