// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate wraps external machine-translation providers behind one
// interface. Provider failures are ordinary errors; callers doing fan-out
// treat them as per-locale partial failures.
package translate

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Translator translates a single text between two locales.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// ProviderError wraps a failure from an external provider with enough
// context to report which locale failed.
type ProviderError struct {
	Provider string
	Target   string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: translating to %q: %v", e.Provider, e.Target, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// limited decorates a Translator with a client-side rate limiter. The
// provider has its own external limit; this just keeps bursts polite.
type limited struct {
	inner   Translator
	limiter *rate.Limiter
}

// Limited wraps t so calls are throttled to rps requests per second.
func Limited(t Translator, rps float64) Translator {
	return &limited{
		inner:   t,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (l *limited) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.inner.Translate(ctx, text, source, target)
}
