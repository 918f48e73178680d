// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/msgdepot/msgdepot-go/internal/cache"
	"github.com/msgdepot/msgdepot-go/internal/keypath"
	"github.com/msgdepot/msgdepot-go/internal/model"
	"github.com/msgdepot/msgdepot-go/internal/stats"
	"github.com/msgdepot/msgdepot-go/internal/store"
	"github.com/msgdepot/msgdepot-go/internal/transfer"
)

// MessageService coordinates all message-management operations.
type MessageService struct {
	db       *sql.DB
	store    *store.Queries
	importer *transfer.Importer
	exporter *transfer.Exporter
	exports  *cache.ExportCache
	logger   *slog.Logger
}

// NewMessageService creates a MessageService. The export cache is required;
// wire a memory cache when Redis is not configured.
func NewMessageService(db *sql.DB, exports *cache.ExportCache, logger *slog.Logger) *MessageService {
	queries := store.New(db)
	return &MessageService{
		db:       db,
		store:    queries,
		importer: transfer.NewImporter(queries, db, logger),
		exporter: transfer.NewExporter(queries),
		exports:  exports,
		logger:   logger,
	}
}

// ListFilter narrows ListMessages results. A key filter matches the exact
// path and everything below it; a locale filter matches one locale.
type ListFilter struct {
	Key    string
	Locale string
}

// ListMessages returns translations with resolved key paths, optionally
// filtered by key subtree and locale.
func (s *MessageService) ListMessages(ctx context.Context, filter ListFilter) ([]model.Message, error) {
	locale := filter.Locale
	if locale != "" {
		normalized, err := NormalizeLocale(locale)
		if err != nil {
			return nil, err
		}
		locale = normalized
	}

	rows, err := s.store.ListMessages(ctx, store.ListMessagesParams{LanguageCode: locale})
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	messages := make([]model.Message, 0, len(rows))
	for _, row := range rows {
		if filter.Key != "" && !matchesSubtree(row.KeyPath, filter.Key) {
			continue
		}
		messages = append(messages, model.Message{
			ID:      row.ID,
			Key:     row.KeyPath,
			Locale:  row.LanguageCode,
			Message: row.Value,
		})
	}
	return messages, nil
}

// CreateMessage stores a new translation for (key, locale). The key path is
// created on demand; a second value for the same pair is ErrDuplicateTranslation.
func (s *MessageService) CreateMessage(ctx context.Context, key, locale, message string) (model.Message, error) {
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return model.Message{}, err
	}
	if _, err := keypath.SplitPath(key); err != nil {
		return model.Message{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Message{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := s.store.WithTx(tx)
	now := time.Now()

	if err := queries.EnsureLanguage(ctx, store.CreateLanguageParams{
		Code:      normalized,
		Name:      model.CommonLanguageName(normalized),
		CreatedAt: now,
	}); err != nil {
		return model.Message{}, fmt.Errorf("ensuring language %q: %w", normalized, err)
	}

	keyID, err := keypath.ResolveOrCreate(ctx, queries, key)
	if err != nil {
		return model.Message{}, err
	}
	if err := keypath.CheckLeafConflict(ctx, queries, keyID); err != nil {
		return model.Message{}, fmt.Errorf("key %q: %w", key, err)
	}

	created, err := queries.CreateTranslation(ctx, store.CreateTranslationParams{
		KeyID:        keyID,
		LanguageCode: normalized,
		Value:        message,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if store.IsUniqueViolation(err) {
		return model.Message{}, fmt.Errorf("%w: %s/%s", ErrDuplicateTranslation, key, normalized)
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("creating message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Message{}, fmt.Errorf("committing message: %w", err)
	}

	s.invalidateExports(ctx)
	return model.Message{
		ID:      created.ID,
		Key:     key,
		Locale:  normalized,
		Message: message,
	}, nil
}

// UpdateMessage overwrites the value of an existing translation.
func (s *MessageService) UpdateMessage(ctx context.Context, id int64, message string) (model.Message, error) {
	updated, err := s.store.UpdateTranslationValue(ctx, store.UpdateTranslationValueParams{
		Value:     message,
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Message{}, fmt.Errorf("%w: id %d", ErrMessageNotFound, id)
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("updating message %d: %w", id, err)
	}

	path, err := keypath.FullPath(ctx, s.store, updated.KeyID)
	if err != nil {
		return model.Message{}, err
	}

	s.invalidateExports(ctx)
	return model.Message{
		ID:      updated.ID,
		Key:     path,
		Locale:  updated.LanguageCode,
		Message: updated.Value,
	}, nil
}

// DeleteMessage removes one translation by id. Key nodes stay in place; only
// cascade delete by key removes tree structure.
func (s *MessageService) DeleteMessage(ctx context.Context, id int64) error {
	affected, err := s.store.DeleteTranslation(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting message %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrMessageNotFound, id)
	}
	s.invalidateExports(ctx)
	return nil
}

// DeleteResult reports what a cascade delete removed.
type DeleteResult struct {
	DeletedKeys         int64 `json:"deleted_keys"`
	DeletedTranslations int64 `json:"deleted_translations"`
}

// DeleteByKey removes the key node at path together with its whole subtree
// and every translation attached to it, in one transaction. A path that does
// not resolve is a no-op success with zero counts.
func (s *MessageService) DeleteByKey(ctx context.Context, path string) (DeleteResult, error) {
	var result DeleteResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := s.store.WithTx(tx)

	keyID, err := keypath.ResolveExisting(ctx, queries, path)
	if errors.Is(err, keypath.ErrKeyNotFound) {
		return result, nil
	}
	if err != nil {
		return result, err
	}

	ids, err := keypath.CollectSubtree(ctx, queries, keyID)
	if err != nil {
		return result, err
	}

	result.DeletedTranslations, err = queries.DeleteTranslationsByKeyIDs(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("deleting translations under %q: %w", path, err)
	}
	result.DeletedKeys, err = queries.DeleteKeysByIDs(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("deleting keys under %q: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("committing cascade delete: %w", err)
	}

	s.logger.Info("cascade delete",
		"key", path,
		"deleted_keys", result.DeletedKeys,
		"deleted_translations", result.DeletedTranslations,
	)
	s.invalidateExports(ctx)
	return result, nil
}

// BulkImport upserts a batch of flat entries for one locale.
func (s *MessageService) BulkImport(ctx context.Context, locale string, entries []transfer.Entry, overwrite bool) (*transfer.ImportResult, error) {
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return nil, err
	}
	result, err := s.importer.BulkUpsert(ctx, normalized, entries, overwrite)
	if err != nil {
		return nil, err
	}
	s.invalidateExports(ctx)
	return result, nil
}

// MissingKeys builds the completeness report for one locale.
func (s *MessageService) MissingKeys(ctx context.Context, locale string) (stats.Report, error) {
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return stats.Report{}, err
	}
	triples, err := s.store.ListTranslationTriples(ctx)
	if err != nil {
		return stats.Report{}, fmt.Errorf("reading translations: %w", err)
	}
	return stats.NewCalculator(triples).BuildReport(normalized), nil
}

// Export returns the nested message tree for one locale, served from the
// export cache when possible.
func (s *MessageService) Export(ctx context.Context, locale string) (map[string]any, error) {
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return nil, err
	}

	if tree, err := s.exports.GetLocale(ctx, normalized); err == nil {
		return tree, nil
	}

	tree, err := s.exporter.ExportLocale(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if err := s.exports.SetLocale(ctx, normalized, tree); err != nil {
		s.logger.Warn("caching export tree failed", "locale", normalized, "error", err)
	}
	return tree, nil
}

// ExportAll returns one nested message tree per locale, keyed by locale code.
func (s *MessageService) ExportAll(ctx context.Context) (map[string]any, error) {
	if tree, err := s.exports.GetAll(ctx); err == nil {
		return tree, nil
	}

	byLocale, err := s.exporter.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	tree := make(map[string]any, len(byLocale))
	for locale, localeTree := range byLocale {
		tree[locale] = localeTree
	}
	if err := s.exports.SetAll(ctx, tree); err != nil {
		s.logger.Warn("caching export tree failed", "locale", "all", "error", err)
	}
	return tree, nil
}

// ListKeys returns every key path with its description.
func (s *MessageService) ListKeys(ctx context.Context) ([]model.KeyInfo, error) {
	rows, err := s.store.ListKeyInfos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	keys := make([]model.KeyInfo, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, model.KeyInfo{
			ID:          row.ID,
			Key:         row.FullPath,
			Description: row.Description.String,
		})
	}
	return keys, nil
}

// SetKeyDescription attaches a description to an existing key path.
func (s *MessageService) SetKeyDescription(ctx context.Context, path, description string) error {
	keyID, err := keypath.ResolveExisting(ctx, s.store, path)
	if err != nil {
		return err
	}
	desc := sql.NullString{String: description, Valid: description != ""}
	if err := s.store.UpdateKeyDescription(ctx, store.UpdateKeyDescriptionParams{
		Description: desc,
		ID:          keyID,
	}); err != nil {
		return fmt.Errorf("updating description of %q: %w", path, err)
	}
	return nil
}

// ListLanguages returns all registered languages.
func (s *MessageService) ListLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := s.store.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	languages := make([]model.Language, 0, len(rows))
	for _, row := range rows {
		languages = append(languages, model.Language{
			ID:        row.ID,
			Code:      row.Code,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
		})
	}
	return languages, nil
}

// AddLanguage registers a new language. The name falls back to the common
// display name when empty.
func (s *MessageService) AddLanguage(ctx context.Context, code, name string) (model.Language, error) {
	normalized, err := NormalizeLocale(code)
	if err != nil {
		return model.Language{}, err
	}
	if name == "" {
		name = model.CommonLanguageName(normalized)
	}

	created, err := s.store.CreateLanguage(ctx, store.CreateLanguageParams{
		Code:      normalized,
		Name:      name,
		CreatedAt: time.Now(),
	})
	if store.IsUniqueViolation(err) {
		return model.Language{}, fmt.Errorf("%w: %s", ErrDuplicateLanguage, normalized)
	}
	if err != nil {
		return model.Language{}, fmt.Errorf("creating language %q: %w", normalized, err)
	}

	return model.Language{
		ID:        created.ID,
		Code:      created.Code,
		Name:      created.Name,
		CreatedAt: created.CreatedAt,
	}, nil
}

// Triples exposes the raw translation triple set, used by the completeness
// snapshot job.
func (s *MessageService) Triples(ctx context.Context) ([]store.TranslationTriple, error) {
	return s.store.ListTranslationTriples(ctx)
}

func (s *MessageService) invalidateExports(ctx context.Context) {
	if err := s.exports.Invalidate(ctx); err != nil {
		s.logger.Warn("export cache invalidation failed", "error", err)
	}
}

// matchesSubtree reports whether path equals key or lies below it.
func matchesSubtree(path, key string) bool {
	return path == key || strings.HasPrefix(path, key+".")
}
