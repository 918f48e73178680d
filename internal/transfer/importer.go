// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/msgdepot/msgdepot-go/internal/keypath"
	"github.com/msgdepot/msgdepot-go/internal/model"
	"github.com/msgdepot/msgdepot-go/internal/store"
)

// Importer performs idempotent bulk upserts of translations for one locale.
type Importer struct {
	store  *store.Queries
	db     *sql.DB
	logger *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(queries *store.Queries, db *sql.DB, logger *slog.Logger) *Importer {
	return &Importer{
		store:  queries,
		db:     db,
		logger: logger,
	}
}

// ImportResult reports what one bulk import actually wrote.
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
}

// BulkUpsert writes all entries for the locale inside one transaction: a
// mid-batch failure rolls everything back. With overwrite set, existing
// (key, locale) values are replaced; otherwise they are left untouched and
// counted as skipped. An empty entry list is a no-op success.
func (i *Importer) BulkUpsert(ctx context.Context, locale string, entries []Entry, overwrite bool) (*ImportResult, error) {
	result := &ImportResult{BatchID: uuid.NewString()}
	if len(entries) == 0 {
		return result, nil
	}

	// Validate every path before touching the store, and reject batches that
	// are internally inconsistent (a key that is also another key's prefix).
	for _, e := range entries {
		if _, err := keypath.SplitPath(e.Key); err != nil {
			return nil, err
		}
	}
	if _, err := Unflatten(dedupe(entries)); err != nil {
		return nil, err
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := i.store.WithTx(tx)
	now := time.Now()

	if err := queries.EnsureLanguage(ctx, store.CreateLanguageParams{
		Code:      locale,
		Name:      model.CommonLanguageName(locale),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("ensuring language %q: %w", locale, err)
	}

	for _, e := range dedupe(entries) {
		keyID, err := keypath.ResolveOrCreate(ctx, queries, e.Key)
		if err != nil {
			return nil, err
		}
		if err := keypath.CheckLeafConflict(ctx, queries, keyID); err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}

		existing, err := queries.GetTranslationByKeyAndLanguage(ctx, store.GetTranslationByKeyAndLanguageParams{
			KeyID:        keyID,
			LanguageCode: locale,
		})
		switch {
		case err == sql.ErrNoRows:
			if _, err := queries.CreateTranslation(ctx, store.CreateTranslationParams{
				KeyID:        keyID,
				LanguageCode: locale,
				Value:        e.Message,
				CreatedAt:    now,
				UpdatedAt:    now,
			}); err != nil {
				return nil, fmt.Errorf("inserting %q: %w", e.Key, err)
			}
			result.Inserted++
		case err != nil:
			return nil, fmt.Errorf("checking %q: %w", e.Key, err)
		case overwrite:
			if _, err := queries.UpdateTranslationValue(ctx, store.UpdateTranslationValueParams{
				Value:     e.Message,
				UpdatedAt: now,
				ID:        existing.ID,
			}); err != nil {
				return nil, fmt.Errorf("updating %q: %w", e.Key, err)
			}
			result.Updated++
		default:
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	i.logger.Info("bulk import complete",
		"batch_id", result.BatchID,
		"locale", locale,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result, nil
}

// dedupe collapses duplicate keys in one batch, last occurrence wins.
func dedupe(entries []Entry) []Entry {
	seen := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if idx, ok := seen[e.Key]; ok {
			out[idx] = e
			continue
		}
		seen[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}
