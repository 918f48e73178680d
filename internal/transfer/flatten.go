// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer converts between nested JSON message trees and flat
// key-path entries, and performs bulk import/export against the store.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxDepth bounds tree traversal so hostile input cannot blow the stack.
const MaxDepth = 128

var (
	// ErrTooDeep indicates input nested beyond MaxDepth.
	ErrTooDeep = errors.New("tree nested too deeply")

	// ErrPathConflict indicates one path is both a leaf value and an object
	// prefix (e.g. entries for both "a" and "a.b"). The conflict is reported
	// instead of letting the last write win.
	ErrPathConflict = errors.New("conflicting key paths")
)

// Entry is one flat (key path, message) pair.
type Entry struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Flatten converts a nested message tree into flat entries, depth-first with
// keys sorted at each level. A leaf is anything that is not a JSON object;
// non-string leaves (numbers, booleans, arrays) are stringified.
func Flatten(tree map[string]any) ([]Entry, error) {
	entries := []Entry{}
	if err := flattenInto(&entries, "", tree, 0); err != nil {
		return nil, err
	}
	return entries, nil
}

func flattenInto(entries *[]Entry, prefix string, tree map[string]any, depth int) error {
	if depth >= MaxDepth {
		return fmt.Errorf("%w: more than %d levels", ErrTooDeep, MaxDepth)
	}

	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch v := tree[k].(type) {
		case map[string]any:
			if err := flattenInto(entries, path, v, depth+1); err != nil {
				return err
			}
		case string:
			*entries = append(*entries, Entry{Key: path, Message: v})
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("stringifying leaf at %q: %w", path, err)
			}
			*entries = append(*entries, Entry{Key: path, Message: string(raw)})
		}
	}
	return nil
}

// Unflatten is the inverse of Flatten: it builds a nested tree from flat
// entries. A path that is both a leaf and a prefix of another path is a
// defined error, never a silent overwrite.
func Unflatten(entries []Entry) (map[string]any, error) {
	tree := make(map[string]any)

	for _, e := range entries {
		segments := strings.Split(e.Key, ".")
		if len(segments) > MaxDepth {
			return nil, fmt.Errorf("%w: key %q", ErrTooDeep, e.Key)
		}

		node := tree
		for i, segment := range segments[:len(segments)-1] {
			child, ok := node[segment]
			if !ok {
				next := make(map[string]any)
				node[segment] = next
				node = next
				continue
			}
			branch, ok := child.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q is a value but %q needs it as a prefix",
					ErrPathConflict, strings.Join(segments[:i+1], "."), e.Key)
			}
			node = branch
		}

		leaf := segments[len(segments)-1]
		if existing, ok := node[leaf]; ok {
			if _, isBranch := existing.(map[string]any); isBranch {
				return nil, fmt.Errorf("%w: %q is a prefix of another key", ErrPathConflict, e.Key)
			}
			return nil, fmt.Errorf("%w: duplicate key %q", ErrPathConflict, e.Key)
		}
		node[leaf] = e.Message
	}

	return tree, nil
}
