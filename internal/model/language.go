// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Language represents a target language for translations.
type Language struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"` // ISO 639-1, canonical lowercase: en, es, de
	Name      string    `json:"name"` // English, Spanish, German
	CreatedAt time.Time `json:"created_at"`
}

// CommonLanguages provides a list of commonly used languages for selection UI.
var CommonLanguages = []struct {
	Code string
	Name string
}{
	{"en", "English"},
	{"es", "Spanish"},
	{"de", "German"},
	{"fr", "French"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"ru", "Russian"},
	{"uk", "Ukrainian"},
	{"zh", "Chinese"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"ar", "Arabic"},
	{"he", "Hebrew"},
	{"tr", "Turkish"},
	{"vi", "Vietnamese"},
	{"th", "Thai"},
	{"hi", "Hindi"},
}

// CommonLanguageName returns the display name for a known language code,
// or the code itself when unknown. Used when a locale is registered
// implicitly by an import.
func CommonLanguageName(code string) string {
	for _, l := range CommonLanguages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
