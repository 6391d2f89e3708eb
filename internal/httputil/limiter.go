// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces outgoing requests at least one interval apart. It never
// retries: a failed or rate-limited response is returned to the caller as is.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter returns a Limiter that allows one request per interval. A
// non-positive interval disables spacing.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		return &Limiter{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{lim: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request slot is free. If the context ends
// first, Wait returns an error and does not consume the slot.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.lim == nil {
		return ctx.Err()
	}
	return l.lim.Wait(ctx)
}

// Do waits for a request slot and then sends req with client. A nil
// Limiter sends immediately.
func (l *Limiter) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if err := l.Wait(ctx); err != nil {
		return nil, err
	}
	return client.Do(req.WithContext(ctx))
}
