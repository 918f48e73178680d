// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"fmt"

	"github.com/msgdepot/msgdepot-go/internal/store"
)

// Exporter builds nested JSON message trees for client applications.
type Exporter struct {
	store *store.Queries
}

// NewExporter creates a new Exporter instance.
func NewExporter(queries *store.Queries) *Exporter {
	return &Exporter{store: queries}
}

// ExportLocale returns the nested message tree for one locale. A locale with
// no translations yields an empty tree.
func (e *Exporter) ExportLocale(ctx context.Context, locale string) (map[string]any, error) {
	triples, err := e.store.ListTranslationTriples(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading translations: %w", err)
	}

	var entries []Entry
	for _, t := range triples {
		if t.LanguageCode == locale {
			entries = append(entries, Entry{Key: t.KeyPath, Message: t.Value})
		}
	}

	tree, err := Unflatten(entries)
	if err != nil {
		return nil, fmt.Errorf("building tree for %q: %w", locale, err)
	}
	return tree, nil
}

// ExportAll returns one nested message tree per locale, keyed by locale code.
func (e *Exporter) ExportAll(ctx context.Context) (map[string]map[string]any, error) {
	triples, err := e.store.ListTranslationTriples(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading translations: %w", err)
	}

	byLocale := make(map[string][]Entry)
	for _, t := range triples {
		byLocale[t.LanguageCode] = append(byLocale[t.LanguageCode], Entry{Key: t.KeyPath, Message: t.Value})
	}

	out := make(map[string]map[string]any, len(byLocale))
	for locale, entries := range byLocale {
		tree, err := Unflatten(entries)
		if err != nil {
			return nil, fmt.Errorf("building tree for %q: %w", locale, err)
		}
		out[locale] = tree
	}
	return out, nil
}
