// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package keypath maps between dot-separated key paths and persisted key
// tree nodes. All state lives in the store; every function operates through
// a *store.Queries, which may be bound to a transaction.
package keypath

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msgdepot/msgdepot-go/internal/store"
)

var (
	// ErrInvalidPath indicates an empty path or a path with empty segments
	// (leading/trailing/double dots).
	ErrInvalidPath = errors.New("invalid key path")

	// ErrKeyNotFound indicates the path does not resolve to an existing node.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCycleDetected indicates a corrupt parent chain that revisits a node.
	// This is a data-integrity failure, never worked around silently.
	ErrCycleDetected = errors.New("cycle detected in key hierarchy")

	// ErrPathConflict indicates a key path that is simultaneously a leaf and
	// a prefix of another translated key. Such writes are rejected up front
	// so export can never hit an ambiguous tree.
	ErrPathConflict = errors.New("key path conflicts with existing translations")
)

// SplitPath validates a dotted path and returns its segments.
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

// ResolveOrCreate walks the path from the root, creating missing nodes, and
// returns the id of the leaf node. A concurrent caller may create the same
// node between our lookup and insert; the unique sibling index turns that
// race into a conflict error, which is resolved by re-reading once.
func ResolveOrCreate(ctx context.Context, q *store.Queries, path string) (int64, error) {
	segments, err := SplitPath(path)
	if err != nil {
		return 0, err
	}

	var parentID sql.NullInt64
	for _, segment := range segments {
		node, err := findChild(ctx, q, parentID, segment)
		if err == sql.ErrNoRows {
			node, err = q.CreateKey(ctx, store.CreateKeyParams{ParentID: parentID, Key: segment})
			if store.IsUniqueViolation(err) {
				// Lost the race; the sibling now exists.
				node, err = findChild(ctx, q, parentID, segment)
			}
		}
		if err != nil {
			return 0, fmt.Errorf("resolving segment %q of %q: %w", segment, path, err)
		}
		parentID = sql.NullInt64{Int64: node.ID, Valid: true}
	}

	return parentID.Int64, nil
}

// ResolveExisting walks the path without creating anything. Returns
// ErrKeyNotFound at the first missing segment, so a typo'd delete can never
// materialize nodes.
func ResolveExisting(ctx context.Context, q *store.Queries, path string) (int64, error) {
	segments, err := SplitPath(path)
	if err != nil {
		return 0, err
	}

	var parentID sql.NullInt64
	for _, segment := range segments {
		node, err := findChild(ctx, q, parentID, segment)
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		if err != nil {
			return 0, fmt.Errorf("resolving segment %q of %q: %w", segment, path, err)
		}
		parentID = sql.NullInt64{Int64: node.ID, Valid: true}
	}

	return parentID.Int64, nil
}

// FullPath reconstructs the dotted path of a node by walking parent
// references up to the root. The data model disallows cycles, but a corrupt
// parent chain must fail rather than loop forever.
func FullPath(ctx context.Context, q *store.Queries, keyID int64) (string, error) {
	var segments []string
	visited := make(map[int64]bool)

	currentID := sql.NullInt64{Int64: keyID, Valid: true}
	for currentID.Valid {
		if visited[currentID.Int64] {
			return "", fmt.Errorf("%w: key id %d", ErrCycleDetected, currentID.Int64)
		}
		visited[currentID.Int64] = true

		node, err := q.GetKeyByID(ctx, currentID.Int64)
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%w: key id %d", ErrKeyNotFound, currentID.Int64)
		}
		if err != nil {
			return "", fmt.Errorf("walking parent chain of key %d: %w", keyID, err)
		}

		segments = append(segments, node.Key)
		currentID = node.ParentID
	}

	// Collected leaf-first, reverse to root-first.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "."), nil
}

// CollectSubtree returns the id of the given node plus every transitive
// descendant, breadth-first. A revisited node means the tree is corrupt.
func CollectSubtree(ctx context.Context, q *store.Queries, keyID int64) ([]int64, error) {
	visited := make(map[int64]bool)
	ids := []int64{}
	queue := []int64{keyID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			return nil, fmt.Errorf("%w: key id %d", ErrCycleDetected, id)
		}
		visited[id] = true
		ids = append(ids, id)

		children, err := q.ListChildKeys(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("listing children of key %d: %w", id, err)
		}
		for _, child := range children {
			queue = append(queue, child.ID)
		}
	}

	return ids, nil
}

// CheckLeafConflict verifies that writing a translation at keyID would not
// make one path both a value and an object prefix: no ancestor of the node
// may hold a translation, and no descendant may either.
func CheckLeafConflict(ctx context.Context, q *store.Queries, keyID int64) error {
	var ancestors []int64
	visited := map[int64]bool{keyID: true}

	node, err := q.GetKeyByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("loading key %d: %w", keyID, err)
	}
	for node.ParentID.Valid {
		id := node.ParentID.Int64
		if visited[id] {
			return fmt.Errorf("%w: key id %d", ErrCycleDetected, id)
		}
		visited[id] = true
		ancestors = append(ancestors, id)
		if node, err = q.GetKeyByID(ctx, id); err != nil {
			return fmt.Errorf("walking ancestors of key %d: %w", keyID, err)
		}
	}

	if len(ancestors) > 0 {
		count, err := q.CountTranslationsForKeys(ctx, ancestors)
		if err != nil {
			return fmt.Errorf("counting ancestor translations: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: an ancestor key already holds a value", ErrPathConflict)
		}
	}

	subtree, err := q.ListChildKeys(ctx, keyID)
	if err != nil {
		return fmt.Errorf("listing children of key %d: %w", keyID, err)
	}
	if len(subtree) > 0 {
		ids, err := CollectSubtree(ctx, q, keyID)
		if err != nil {
			return err
		}
		descendants := ids[1:] // CollectSubtree returns the node itself first
		count, err := q.CountTranslationsForKeys(ctx, descendants)
		if err != nil {
			return fmt.Errorf("counting descendant translations: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: a nested key already holds a value", ErrPathConflict)
		}
	}

	return nil
}

func findChild(ctx context.Context, q *store.Queries, parentID sql.NullInt64, segment string) (store.TranslationKey, error) {
	if !parentID.Valid {
		return q.GetRootKeyBySegment(ctx, segment)
	}
	return q.GetChildKeyBySegment(ctx, store.GetChildKeyBySegmentParams{
		ParentID: parentID.Int64,
		Segment:  segment,
	})
}
