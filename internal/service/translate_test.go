// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"
)

// stubTranslator returns canned values per target locale and fails the
// locales listed in fail.
type stubTranslator struct {
	fail  map[string]bool
	calls int
}

func (s *stubTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	s.calls++
	if s.fail[target] {
		return "", errors.New("provider unavailable")
	}
	return "[" + target + "] " + text, nil
}

func TestAutoTranslateFanOut(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	stub := &stubTranslator{}
	result, err := svc.AutoTranslate(ctx, stub, "home.title", "en", []string{"de", "fr"})
	if err != nil {
		t.Fatalf("AutoTranslate: %v", err)
	}
	if result.Translated != 2 || result.Requested != 2 {
		t.Errorf("result = %+v, want 2 of 2", result)
	}
	if result.Summary() != "translated 2 of 2" {
		t.Errorf("Summary = %q", result.Summary())
	}

	de, err := svc.ListMessages(ctx, ListFilter{Locale: "de"})
	if err != nil {
		t.Fatalf("ListMessages(de): %v", err)
	}
	if len(de) != 1 || de[0].Message != "[de] Welcome" {
		t.Errorf("de messages = %+v", de)
	}
}

func TestAutoTranslatePartialFailure(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	stub := &stubTranslator{fail: map[string]bool{"fr": true}}
	result, err := svc.AutoTranslate(ctx, stub, "home.title", "en", []string{"de", "fr", "es"})
	if err != nil {
		t.Fatalf("AutoTranslate: %v", err)
	}
	if result.Translated != 2 || result.Requested != 3 {
		t.Errorf("result = %+v, want 2 of 3", result)
	}
	if len(result.Failures) != 1 || result.Failures[0].Locale != "fr" {
		t.Errorf("Failures = %+v", result.Failures)
	}

	// The failed locale wrote nothing; the others did.
	fr, _ := svc.ListMessages(ctx, ListFilter{Locale: "fr"})
	if len(fr) != 0 {
		t.Errorf("fr messages = %+v, want none", fr)
	}
	es, _ := svc.ListMessages(ctx, ListFilter{Locale: "es"})
	if len(es) != 1 {
		t.Errorf("es messages = %+v, want one", es)
	}
}

func TestAutoTranslateOverwritesExisting(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := svc.CreateMessage(ctx, "home.title", "de", "old"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	stub := &stubTranslator{}
	result, err := svc.AutoTranslate(ctx, stub, "home.title", "en", []string{"de"})
	if err != nil {
		t.Fatalf("AutoTranslate: %v", err)
	}
	if result.Translated != 1 {
		t.Errorf("Translated = %d, want 1", result.Translated)
	}

	de, _ := svc.ListMessages(ctx, ListFilter{Locale: "de"})
	if len(de) != 1 || de[0].Message != "[de] Welcome" {
		t.Errorf("de messages = %+v", de)
	}
}

func TestAutoTranslateMissingSource(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	stub := &stubTranslator{}
	if _, err := svc.AutoTranslate(ctx, stub, "home.title", "de", []string{"fr"}); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("AutoTranslate(missing source) = %v, want ErrMessageNotFound", err)
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times, want 0", stub.calls)
	}
}

func TestAutoTranslateSkipsSourceLocale(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	stub := &stubTranslator{}
	result, err := svc.AutoTranslate(ctx, stub, "home.title", "en", []string{"en", "de"})
	if err != nil {
		t.Fatalf("AutoTranslate: %v", err)
	}
	if result.Translated != 1 || len(result.Failures) != 1 {
		t.Errorf("result = %+v, want 1 translated, 1 failure", result)
	}
}
