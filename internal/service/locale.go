// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLocale validates a locale code as a BCP-47 tag and returns its
// canonical lowercase form. "EN" and "en" are the same locale everywhere in
// the system; normalization happens once, at every write boundary.
func NormalizeLocale(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty code", ErrInvalidLocale)
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, code)
	}
	return strings.ToLower(tag.String()), nil
}
