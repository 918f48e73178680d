// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msgdepot/msgdepot-go/internal/keypath"
	"github.com/msgdepot/msgdepot-go/internal/model"
	"github.com/msgdepot/msgdepot-go/internal/store"
	"github.com/msgdepot/msgdepot-go/internal/translate"
)

// TranslateFailure records one target locale the provider could not serve.
type TranslateFailure struct {
	Locale string `json:"locale"`
	Error  string `json:"error"`
}

// TranslateResult summarizes an auto-translate fan-out. Translated counts the
// locales actually written; Requested is the full target count.
type TranslateResult struct {
	Key        string             `json:"key"`
	Source     string             `json:"source"`
	Translated int                `json:"translated"`
	Requested  int                `json:"requested"`
	Failures   []TranslateFailure `json:"failures,omitempty"`
}

// Summary renders the result as "translated N of M".
func (r *TranslateResult) Summary() string {
	return fmt.Sprintf("translated %d of %d", r.Translated, r.Requested)
}

// AutoTranslate machine-translates the message at key from the source locale
// into every target locale and stores the results. A provider failure for one
// locale is recorded and the fan-out continues; only a missing source message
// or an invalid input aborts the whole call.
func (s *MessageService) AutoTranslate(ctx context.Context, translator translate.Translator, key, source string, targets []string) (*TranslateResult, error) {
	sourceLocale, err := NormalizeLocale(source)
	if err != nil {
		return nil, err
	}

	keyID, err := keypath.ResolveExisting(ctx, s.store, key)
	if err != nil {
		return nil, err
	}
	sourceMsg, err := s.store.GetTranslationByKeyAndLanguage(ctx, store.GetTranslationByKeyAndLanguageParams{
		KeyID:        keyID,
		LanguageCode: sourceLocale,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrMessageNotFound, key, sourceLocale)
	}
	if err != nil {
		return nil, fmt.Errorf("loading source message: %w", err)
	}

	result := &TranslateResult{Key: key, Source: sourceLocale, Requested: len(targets)}

	for _, target := range targets {
		targetLocale, err := NormalizeLocale(target)
		if err != nil {
			result.Failures = append(result.Failures, TranslateFailure{Locale: target, Error: err.Error()})
			continue
		}
		if targetLocale == sourceLocale {
			result.Failures = append(result.Failures, TranslateFailure{
				Locale: targetLocale,
				Error:  "target equals source locale",
			})
			continue
		}

		translated, err := translator.Translate(ctx, sourceMsg.Value, sourceLocale, targetLocale)
		if err != nil {
			s.logger.Warn("auto-translate provider failure",
				"key", key, "target", targetLocale, "error", err)
			result.Failures = append(result.Failures, TranslateFailure{Locale: targetLocale, Error: err.Error()})
			continue
		}

		if err := s.storeTranslated(ctx, keyID, targetLocale, translated); err != nil {
			result.Failures = append(result.Failures, TranslateFailure{Locale: targetLocale, Error: err.Error()})
			continue
		}
		result.Translated++
	}

	s.logger.Info("auto-translate complete",
		"key", key,
		"source", sourceLocale,
		"summary", result.Summary(),
	)
	if result.Translated > 0 {
		s.invalidateExports(ctx)
	}
	return result, nil
}

// storeTranslated upserts one machine-translated value, overwriting any
// existing translation for the target locale.
func (s *MessageService) storeTranslated(ctx context.Context, keyID int64, locale, value string) error {
	now := time.Now()
	if err := s.store.EnsureLanguage(ctx, store.CreateLanguageParams{
		Code:      locale,
		Name:      model.CommonLanguageName(locale),
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("ensuring language %q: %w", locale, err)
	}

	existing, err := s.store.GetTranslationByKeyAndLanguage(ctx, store.GetTranslationByKeyAndLanguageParams{
		KeyID:        keyID,
		LanguageCode: locale,
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.store.CreateTranslation(ctx, store.CreateTranslationParams{
			KeyID:        keyID,
			LanguageCode: locale,
			Value:        value,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	case err == nil:
		_, err = s.store.UpdateTranslationValue(ctx, store.UpdateTranslationValueParams{
			Value:     value,
			UpdatedAt: now,
			ID:        existing.ID,
		})
	}
	if err != nil {
		return fmt.Errorf("storing translation for %q: %w", locale, err)
	}
	return nil
}
