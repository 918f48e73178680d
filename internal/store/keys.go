package store

import (
	"context"
	"database/sql"
	"strings"
)

// TranslationKey is a row in the translation_keys table. Each row holds one
// dot-path segment; the full path is the chain of segments from a root.
type TranslationKey struct {
	ID          int64
	ParentID    sql.NullInt64
	Key         string
	Description sql.NullString
}

// KeyPath is a row of the translation_key_paths view: a key id together
// with its materialized dotted path.
type KeyPath struct {
	ID       int64
	FullPath string
}

const getKeyByID = `
SELECT id, parent_id, key, description FROM translation_keys WHERE id = ?
`

// GetKeyByID fetches a key node by id.
func (q *Queries) GetKeyByID(ctx context.Context, id int64) (TranslationKey, error) {
	row := q.db.QueryRowContext(ctx, getKeyByID, id)
	var k TranslationKey
	err := row.Scan(&k.ID, &k.ParentID, &k.Key, &k.Description)
	return k, err
}

const getRootKeyBySegment = `
SELECT id, parent_id, key, description FROM translation_keys
WHERE parent_id IS NULL AND key = ?
`

// GetRootKeyBySegment fetches the root-level node with the given segment.
func (q *Queries) GetRootKeyBySegment(ctx context.Context, segment string) (TranslationKey, error) {
	row := q.db.QueryRowContext(ctx, getRootKeyBySegment, segment)
	var k TranslationKey
	err := row.Scan(&k.ID, &k.ParentID, &k.Key, &k.Description)
	return k, err
}

// GetChildKeyBySegmentParams holds parameters for GetChildKeyBySegment.
type GetChildKeyBySegmentParams struct {
	ParentID int64
	Segment  string
}

const getChildKeyBySegment = `
SELECT id, parent_id, key, description FROM translation_keys
WHERE parent_id = ? AND key = ?
`

// GetChildKeyBySegment fetches the child of a node with the given segment.
func (q *Queries) GetChildKeyBySegment(ctx context.Context, arg GetChildKeyBySegmentParams) (TranslationKey, error) {
	row := q.db.QueryRowContext(ctx, getChildKeyBySegment, arg.ParentID, arg.Segment)
	var k TranslationKey
	err := row.Scan(&k.ID, &k.ParentID, &k.Key, &k.Description)
	return k, err
}

// CreateKeyParams holds parameters for CreateKey.
type CreateKeyParams struct {
	ParentID    sql.NullInt64
	Key         string
	Description sql.NullString
}

const createKey = `
INSERT INTO translation_keys (parent_id, key, description)
VALUES (?, ?, ?)
RETURNING id, parent_id, key, description
`

// CreateKey inserts a new key node. Sibling-segment uniqueness is enforced
// by partial unique indexes; callers handle the conflict error.
func (q *Queries) CreateKey(ctx context.Context, arg CreateKeyParams) (TranslationKey, error) {
	row := q.db.QueryRowContext(ctx, createKey, arg.ParentID, arg.Key, arg.Description)
	var k TranslationKey
	err := row.Scan(&k.ID, &k.ParentID, &k.Key, &k.Description)
	return k, err
}

// UpdateKeyDescriptionParams holds parameters for UpdateKeyDescription.
type UpdateKeyDescriptionParams struct {
	Description sql.NullString
	ID          int64
}

const updateKeyDescription = `
UPDATE translation_keys SET description = ? WHERE id = ?
`

// UpdateKeyDescription sets the description of a key node.
func (q *Queries) UpdateKeyDescription(ctx context.Context, arg UpdateKeyDescriptionParams) error {
	_, err := q.db.ExecContext(ctx, updateKeyDescription, arg.Description, arg.ID)
	return err
}

const listChildKeys = `
SELECT id, parent_id, key, description FROM translation_keys
WHERE parent_id = ? ORDER BY key
`

// ListChildKeys returns the direct children of a node.
func (q *Queries) ListChildKeys(ctx context.Context, parentID int64) ([]TranslationKey, error) {
	rows, err := q.db.QueryContext(ctx, listChildKeys, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TranslationKey
	for rows.Next() {
		var k TranslationKey
		if err := rows.Scan(&k.ID, &k.ParentID, &k.Key, &k.Description); err != nil {
			return nil, err
		}
		items = append(items, k)
	}
	return items, rows.Err()
}

const listKeyPaths = `
SELECT id, full_path FROM translation_key_paths
`

// ListKeyPaths returns the materialized full path of every key node.
func (q *Queries) ListKeyPaths(ctx context.Context) ([]KeyPath, error) {
	rows, err := q.db.QueryContext(ctx, listKeyPaths)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []KeyPath
	for rows.Next() {
		var kp KeyPath
		if err := rows.Scan(&kp.ID, &kp.FullPath); err != nil {
			return nil, err
		}
		items = append(items, kp)
	}
	return items, rows.Err()
}

// KeyInfo is a key node joined with its materialized path.
type KeyInfo struct {
	ID          int64
	FullPath    string
	Description sql.NullString
}

const listKeyInfos = `
SELECT kp.id, kp.full_path, k.description
FROM translation_key_paths kp
INNER JOIN translation_keys k ON kp.id = k.id
ORDER BY kp.full_path
`

// ListKeyInfos returns every key node with its full path and description,
// ordered by path.
func (q *Queries) ListKeyInfos(ctx context.Context) ([]KeyInfo, error) {
	rows, err := q.db.QueryContext(ctx, listKeyInfos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []KeyInfo
	for rows.Next() {
		var ki KeyInfo
		if err := rows.Scan(&ki.ID, &ki.FullPath, &ki.Description); err != nil {
			return nil, err
		}
		items = append(items, ki)
	}
	return items, rows.Err()
}

const getKeyFullPath = `
SELECT full_path FROM translation_key_paths WHERE id = ?
`

// GetKeyFullPath reads a key's materialized dotted path from the view.
func (q *Queries) GetKeyFullPath(ctx context.Context, id int64) (string, error) {
	row := q.db.QueryRowContext(ctx, getKeyFullPath, id)
	var path string
	err := row.Scan(&path)
	return path, err
}

// DeleteKeysByIDs removes the given key nodes and returns the number of rows
// deleted. The id list is expanded into placeholders since database/sql has
// no native slice binding.
func (q *Queries) DeleteKeysByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM translation_keys WHERE id IN (` + placeholders(len(ids)) + `)`
	res, err := q.db.ExecContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
