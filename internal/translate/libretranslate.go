// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request/transport limits for the LibreTranslate client.
const (
	requestTimeout = 30 * time.Second
	maxResponseLen = 64 * 1024 // LibreTranslate returns small JSON bodies
	userAgent      = "msgdepot/1.0"
)

// httpClient is the shared HTTP client with appropriate timeouts.
var httpClient = &http.Client{
	Timeout: requestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// LibreTranslate is a Translator backed by a LibreTranslate server.
type LibreTranslate struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLibreTranslate creates a client for the given server. apiKey may be
// empty for unauthenticated servers.
func NewLibreTranslate(baseURL, apiKey string) *LibreTranslate {
	return &LibreTranslate{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  httpClient,
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate implements Translator via POST /translate.
func (lt *LibreTranslate) Translate(ctx context.Context, text, source, target string) (string, error) {
	payload, err := json.Marshal(libreRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: lt.apiKey,
	})
	if err != nil {
		return "", &ProviderError{Provider: "libretranslate", Target: target, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: "libretranslate", Target: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := lt.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "libretranslate", Target: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	if err != nil {
		return "", &ProviderError{Provider: "libretranslate", Target: target, Err: err}
	}

	var decoded libreResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &ProviderError{
			Provider: "libretranslate",
			Target:   target,
			Err:      fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		msg := decoded.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &ProviderError{
			Provider: "libretranslate",
			Target:   target,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, msg),
		}
	}

	return decoded.TranslatedText, nil
}
