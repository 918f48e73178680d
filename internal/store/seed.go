package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Default language created on first start so the service is usable
// immediately.
const (
	DefaultLanguageCode = "en"
	DefaultLanguageName = "English"
)

// Seed creates initial data in the database.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetLanguageByCode(ctx, DefaultLanguageCode)
	if err == nil {
		slog.Info("default language already exists, skipping seed")
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for default language: %w", err)
	}

	lang, err := queries.CreateLanguage(ctx, CreateLanguageParams{
		Code:      DefaultLanguageCode,
		Name:      DefaultLanguageName,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating default language: %w", err)
	}

	slog.Info("created default language", "id", lang.ID, "code", lang.Code)
	return nil
}
