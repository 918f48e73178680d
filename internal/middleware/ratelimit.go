// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for request logging and
// per-client rate limiting on the API routes.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	_ = json.NewEncoder(w).Encode(apiErr)
}

// limiterCache is a keyed rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds resets the cache when it grows past maxSize, which bounds
// memory against clients that never repeat an address.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

const maxTrackedClients = 10000

// RateLimiter limits requests per client address on API routes.
type RateLimiter struct {
	cache *limiterCache[string]
}

// NewRateLimiter creates a per-client rate limiter. rps is requests per
// second, burst the maximum burst size.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{cache: newLimiterCache[string](rps, burst)}
}

// Middleware returns the rate limiting middleware; over-limit requests get a
// JSON 429.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.cache.get(ip).Allow() {
				slog.Warn("api rate limit exceeded", "ip", ip, "path", r.URL.Path)
				WriteAPIError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
					"Rate limit exceeded. Please slow down.")
				return
			}
			rl.cache.clearIfExceeds(maxTrackedClients)
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the client address, trusting reverse-proxy headers first.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
