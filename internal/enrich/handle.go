// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package enrich

import "context"

// MediaHandle is the caller's view of the in-flight background
// enrichment unit. It settles exactly once with a MediaResult; a caller
// that never observes it simply never receives audio or video.
type MediaHandle struct {
	done   chan struct{}
	cancel context.CancelFunc
	result MediaResult
}

func newMediaHandle(cancel context.CancelFunc) *MediaHandle {
	return &MediaHandle{
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

func (h *MediaHandle) settle(result MediaResult) {
	h.result = result
	close(h.done)
}

// Done returns a channel that is closed when the handle has settled.
func (h *MediaHandle) Done() <-chan struct{} {
	return h.done
}

// Result returns the settled result. It must only be called after Done
// is closed.
func (h *MediaHandle) Result() MediaResult {
	return h.result
}

// Wait blocks until the handle settles or ctx is done.
func (h *MediaHandle) Wait(ctx context.Context) (MediaResult, error) {
	select {
	case <-h.done:
		return h.result, nil
	case <-ctx.Done():
		return MediaResult{}, ctx.Err()
	}
}

// Abandon cancels outstanding generation calls. The handle still settles,
// with empty fields for any enrichment that was cut short.
func (h *MediaHandle) Abandon() {
	h.cancel()
}
