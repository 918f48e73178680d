// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package stats computes translation-completeness statistics from the full
// set of (key path, locale, value) triples. Everything here is a pure
// function of the input; the single bulk read happens in the caller.
package stats

import (
	"fmt"
	"sort"

	"github.com/msgdepot/msgdepot-go/internal/store"
)

// KeyCoverage reports which locales hold a value for one key path.
type KeyCoverage struct {
	Key         string   `json:"key"`
	Locales     []string `json:"locales"`
	LocaleCount int      `json:"locale_count"`
}

// Report is the completeness summary for one locale.
type Report struct {
	Locale          string        `json:"locale"`
	MissingKeys     []string      `json:"missing_keys"`
	MissingCount    int           `json:"missing_count"`
	TotalKeys       int           `json:"total_keys"`
	CompleteKeys    int           `json:"complete_keys"`
	Completeness    string        `json:"completeness"`
	AllLocales      []string      `json:"all_locales"`
	KeyCompleteness []KeyCoverage `json:"key_completeness"`
}

// Calculator holds the deduplicated triple set. Join fan-out can hand us the
// same (key, locale) pair twice; duplicates are collapsed on construction.
type Calculator struct {
	keyLocales map[string]map[string]bool // keyPath -> set of locales
	allLocales map[string]bool
}

// NewCalculator builds a Calculator from translation triples.
func NewCalculator(triples []store.TranslationTriple) *Calculator {
	c := &Calculator{
		keyLocales: make(map[string]map[string]bool),
		allLocales: make(map[string]bool),
	}
	for _, t := range triples {
		if c.keyLocales[t.KeyPath] == nil {
			c.keyLocales[t.KeyPath] = make(map[string]bool)
		}
		c.keyLocales[t.KeyPath][t.LanguageCode] = true
		c.allLocales[t.LanguageCode] = true
	}
	return c
}

// AllKeys returns every distinct key path, sorted.
func (c *Calculator) AllKeys() []string {
	keys := make([]string, 0, len(c.keyLocales))
	for k := range c.keyLocales {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllLocales returns every locale present in the triple set, sorted.
func (c *Calculator) AllLocales() []string {
	locales := make([]string, 0, len(c.allLocales))
	for l := range c.allLocales {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// PresentKeys returns the key paths that have a value for the locale, sorted.
func (c *Calculator) PresentKeys(locale string) []string {
	var keys []string
	for k, locales := range c.keyLocales {
		if locales[locale] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// MissingKeys returns the key paths with no value for the locale, sorted.
func (c *Calculator) MissingKeys(locale string) []string {
	missing := []string{}
	for k, locales := range c.keyLocales {
		if !locales[locale] {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// CompletenessRatio returns |present| / |all| as a percentage with two
// decimal places. An empty key set is 0.00% by definition.
func (c *Calculator) CompletenessRatio(locale string) string {
	total := len(c.keyLocales)
	if total == 0 {
		return "0.00%"
	}
	present := 0
	for _, locales := range c.keyLocales {
		if locales[locale] {
			present++
		}
	}
	return fmt.Sprintf("%.2f%%", float64(present)/float64(total)*100)
}

// PerKeyCoverage returns, for every key path, the locales holding a value.
func (c *Calculator) PerKeyCoverage() []KeyCoverage {
	coverage := make([]KeyCoverage, 0, len(c.keyLocales))
	for _, key := range c.AllKeys() {
		locales := make([]string, 0, len(c.keyLocales[key]))
		for l := range c.keyLocales[key] {
			locales = append(locales, l)
		}
		sort.Strings(locales)
		coverage = append(coverage, KeyCoverage{
			Key:         key,
			Locales:     locales,
			LocaleCount: len(locales),
		})
	}
	return coverage
}

// BuildReport assembles the full completeness report for one locale.
func (c *Calculator) BuildReport(locale string) Report {
	missing := c.MissingKeys(locale)
	present := c.PresentKeys(locale)
	return Report{
		Locale:          locale,
		MissingKeys:     missing,
		MissingCount:    len(missing),
		TotalKeys:       len(c.keyLocales),
		CompleteKeys:    len(present),
		Completeness:    c.CompletenessRatio(locale),
		AllLocales:      c.AllLocales(),
		KeyCompleteness: c.PerKeyCoverage(),
	}
}
