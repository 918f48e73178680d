// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the message-management operations on top of the
// store, key resolver, transfer, stats and translate packages. Handlers call
// into this package only; they never touch the store directly.
package service

import "errors"

var (
	// ErrInvalidLocale indicates a locale code that is not a valid BCP-47 tag.
	ErrInvalidLocale = errors.New("invalid locale code")

	// ErrDuplicateTranslation indicates a (key, locale) pair that already
	// holds a value.
	ErrDuplicateTranslation = errors.New("translation already exists for this key and locale")

	// ErrDuplicateLanguage indicates a language code that is already registered.
	ErrDuplicateLanguage = errors.New("language already exists")

	// ErrMessageNotFound indicates a translation id that does not exist.
	ErrMessageNotFound = errors.New("message not found")
)
