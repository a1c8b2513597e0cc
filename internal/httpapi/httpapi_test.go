// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `json:"name"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
}

func echo(_ context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Greeting: "hello " + req.Name}, nil
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(echo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(`{"name": "chef"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"greeting": "hello chef"}`, rec.Body.String())
}

func TestHandlerEmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(echo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/echo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"greeting": "hello "}`, rec.Body.String())
}

func TestHandlerInvalidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(echo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerError(t *testing.T) {
	fn := func(_ context.Context, _ *echoRequest) (*echoResponse, error) {
		return nil, NewError(http.StatusNotFound, errors.New("no such chef"))
	}

	rec := httptest.NewRecorder()
	Handler(fn).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/echo", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerUnclassifiedError(t *testing.T) {
	fn := func(_ context.Context, _ *echoRequest) (*echoResponse, error) {
		return nil, errors.New("kitchen on fire")
	}

	rec := httptest.NewRecorder()
	Handler(fn).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/echo", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal details never leak to the client.
	assert.NotContains(t, rec.Body.String(), "kitchen on fire")
}
