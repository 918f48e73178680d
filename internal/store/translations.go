package store

import (
	"context"
	"time"
)

// Translation is a row in the translations table.
type Translation struct {
	ID           int64
	KeyID        int64
	LanguageCode string
	Value        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TranslationTriple is one (key path, locale, value) tuple from joining
// translations with the key-path view. Input to the completeness math and
// the exporter.
type TranslationTriple struct {
	KeyID        int64
	KeyPath      string
	LanguageCode string
	Value        string
}

// CreateTranslationParams holds parameters for CreateTranslation.
type CreateTranslationParams struct {
	KeyID        int64
	LanguageCode string
	Value        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createTranslation = `
INSERT INTO translations (key_id, language_code, value, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, key_id, language_code, value, created_at, updated_at
`

// CreateTranslation inserts a translation row. The (key_id, language_code)
// unique index rejects duplicates.
func (q *Queries) CreateTranslation(ctx context.Context, arg CreateTranslationParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, createTranslation,
		arg.KeyID, arg.LanguageCode, arg.Value, arg.CreatedAt, arg.UpdatedAt)
	var t Translation
	err := row.Scan(&t.ID, &t.KeyID, &t.LanguageCode, &t.Value, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const getTranslationByID = `
SELECT id, key_id, language_code, value, created_at, updated_at
FROM translations WHERE id = ?
`

// GetTranslationByID fetches a translation by id.
func (q *Queries) GetTranslationByID(ctx context.Context, id int64) (Translation, error) {
	row := q.db.QueryRowContext(ctx, getTranslationByID, id)
	var t Translation
	err := row.Scan(&t.ID, &t.KeyID, &t.LanguageCode, &t.Value, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// GetTranslationByKeyAndLanguageParams holds parameters for GetTranslationByKeyAndLanguage.
type GetTranslationByKeyAndLanguageParams struct {
	KeyID        int64
	LanguageCode string
}

const getTranslationByKeyAndLanguage = `
SELECT id, key_id, language_code, value, created_at, updated_at
FROM translations WHERE key_id = ? AND language_code = ?
`

// GetTranslationByKeyAndLanguage fetches the translation for one (key, locale) pair.
func (q *Queries) GetTranslationByKeyAndLanguage(ctx context.Context, arg GetTranslationByKeyAndLanguageParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, getTranslationByKeyAndLanguage, arg.KeyID, arg.LanguageCode)
	var t Translation
	err := row.Scan(&t.ID, &t.KeyID, &t.LanguageCode, &t.Value, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// UpdateTranslationValueParams holds parameters for UpdateTranslationValue.
type UpdateTranslationValueParams struct {
	Value     string
	UpdatedAt time.Time
	ID        int64
}

const updateTranslationValue = `
UPDATE translations SET value = ?, updated_at = ?
WHERE id = ?
RETURNING id, key_id, language_code, value, created_at, updated_at
`

// UpdateTranslationValue overwrites a translation's value.
func (q *Queries) UpdateTranslationValue(ctx context.Context, arg UpdateTranslationValueParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, updateTranslationValue, arg.Value, arg.UpdatedAt, arg.ID)
	var t Translation
	err := row.Scan(&t.ID, &t.KeyID, &t.LanguageCode, &t.Value, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const deleteTranslation = `
DELETE FROM translations WHERE id = ?
`

// DeleteTranslation removes one translation row and reports how many rows
// were affected.
func (q *Queries) DeleteTranslation(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTranslation, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteTranslationsByKeyIDs removes all translations attached to the given
// key nodes.
func (q *Queries) DeleteTranslationsByKeyIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM translations WHERE key_id IN (` + placeholders(len(ids)) + `)`
	res, err := q.db.ExecContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountTranslationsForKeys returns how many translation rows reference any
// of the given key nodes.
func (q *Queries) CountTranslationsForKeys(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `SELECT COUNT(*) FROM translations WHERE key_id IN (` + placeholders(len(ids)) + `)`
	row := q.db.QueryRowContext(ctx, query, int64Args(ids)...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listTranslationTriples = `
SELECT t.key_id, kp.full_path, t.language_code, t.value
FROM translations t
INNER JOIN translation_key_paths kp ON t.key_id = kp.id
ORDER BY kp.full_path, t.language_code
`

// ListTranslationTriples returns every translation joined with its
// materialized key path, ordered by path then locale.
func (q *Queries) ListTranslationTriples(ctx context.Context) ([]TranslationTriple, error) {
	rows, err := q.db.QueryContext(ctx, listTranslationTriples)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TranslationTriple
	for rows.Next() {
		var tt TranslationTriple
		if err := rows.Scan(&tt.KeyID, &tt.KeyPath, &tt.LanguageCode, &tt.Value); err != nil {
			return nil, err
		}
		items = append(items, tt)
	}
	return items, rows.Err()
}

// ListMessagesParams holds optional filters for ListMessages.
type ListMessagesParams struct {
	LanguageCode string // empty means all locales
}

const listMessagesAll = `
SELECT t.id, t.key_id, kp.full_path, t.language_code, t.value
FROM translations t
INNER JOIN translation_key_paths kp ON t.key_id = kp.id
ORDER BY kp.full_path, t.language_code
`

const listMessagesByLocale = `
SELECT t.id, t.key_id, kp.full_path, t.language_code, t.value
FROM translations t
INNER JOIN translation_key_paths kp ON t.key_id = kp.id
WHERE t.language_code = ?
ORDER BY kp.full_path, t.language_code
`

// MessageRow is one translation with its resolved key path.
type MessageRow struct {
	ID           int64
	KeyID        int64
	KeyPath      string
	LanguageCode string
	Value        string
}

// ListMessages returns translations with resolved key paths, optionally
// filtered by locale. Key filtering happens in the service layer since the
// view join already materializes every path.
func (q *Queries) ListMessages(ctx context.Context, arg ListMessagesParams) ([]MessageRow, error) {
	var (
		query = listMessagesAll
		args  []any
	)
	if arg.LanguageCode != "" {
		query = listMessagesByLocale
		args = append(args, arg.LanguageCode)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ID, &m.KeyID, &m.KeyPath, &m.LanguageCode, &m.Value); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
