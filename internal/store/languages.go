package store

import (
	"context"
	"time"
)

// Language is a row in the languages table.
type Language struct {
	ID        int64
	Code      string
	Name      string
	CreatedAt time.Time
}

// CreateLanguageParams holds parameters for CreateLanguage.
type CreateLanguageParams struct {
	Code      string
	Name      string
	CreatedAt time.Time
}

const createLanguage = `
INSERT INTO languages (code, name, created_at)
VALUES (?, ?, ?)
RETURNING id, code, name, created_at
`

// CreateLanguage inserts a new language. Fails with a unique-constraint
// violation if the code already exists.
func (q *Queries) CreateLanguage(ctx context.Context, arg CreateLanguageParams) (Language, error) {
	row := q.db.QueryRowContext(ctx, createLanguage, arg.Code, arg.Name, arg.CreatedAt)
	var l Language
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt)
	return l, err
}

const ensureLanguage = `
INSERT INTO languages (code, name, created_at)
VALUES (?, ?, ?)
ON CONFLICT (code) DO NOTHING
`

// EnsureLanguage inserts a language if its code is not yet known. Used by
// create/import paths that register locales implicitly.
func (q *Queries) EnsureLanguage(ctx context.Context, arg CreateLanguageParams) error {
	_, err := q.db.ExecContext(ctx, ensureLanguage, arg.Code, arg.Name, arg.CreatedAt)
	return err
}

const getLanguageByCode = `
SELECT id, code, name, created_at FROM languages WHERE code = ?
`

// GetLanguageByCode fetches a language by its code.
func (q *Queries) GetLanguageByCode(ctx context.Context, code string) (Language, error) {
	row := q.db.QueryRowContext(ctx, getLanguageByCode, code)
	var l Language
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt)
	return l, err
}

const listLanguages = `
SELECT id, code, name, created_at FROM languages ORDER BY code
`

// ListLanguages returns all languages ordered by code.
func (q *Queries) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, listLanguages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Language
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

const countLanguages = `
SELECT COUNT(*) FROM languages
`

// CountLanguages returns the number of known languages.
func (q *Queries) CountLanguages(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countLanguages)
	var count int64
	err := row.Scan(&count)
	return count, err
}
