// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/msgdepot/msgdepot-go/internal/cache"
	"github.com/msgdepot/msgdepot-go/internal/keypath"
	"github.com/msgdepot/msgdepot-go/internal/store"
	"github.com/msgdepot/msgdepot-go/internal/transfer"
)

func testService(t *testing.T) *MessageService {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	backend := cache.NewMemoryCache(time.Minute, 0)
	t.Cleanup(func() { _ = backend.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMessageService(db, cache.NewExportCache(backend, time.Minute), logger)
}

func TestCreateAndListMessages(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, "menu.file.save", "en", "Save")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if created.Key != "menu.file.save" || created.Locale != "en" || created.Message != "Save" {
		t.Errorf("unexpected created message: %+v", created)
	}

	if _, err := svc.CreateMessage(ctx, "menu.file.open", "en", "Open"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := svc.CreateMessage(ctx, "menu.file.save", "de", "Speichern"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	all, err := svc.ListMessages(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListMessages returned %d messages, want 3", len(all))
	}

	de, err := svc.ListMessages(ctx, ListFilter{Locale: "de"})
	if err != nil {
		t.Fatalf("ListMessages(de): %v", err)
	}
	if len(de) != 1 || de[0].Message != "Speichern" {
		t.Errorf("ListMessages(de) = %+v, want one Speichern", de)
	}

	subtree, err := svc.ListMessages(ctx, ListFilter{Key: "menu.file"})
	if err != nil {
		t.Fatalf("ListMessages(menu.file): %v", err)
	}
	if len(subtree) != 3 {
		t.Errorf("ListMessages(menu.file) returned %d messages, want 3", len(subtree))
	}
}

func TestCreateMessageDuplicate(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	_, err := svc.CreateMessage(ctx, "home.title", "en", "Hello")
	if !errors.Is(err, ErrDuplicateTranslation) {
		t.Errorf("duplicate CreateMessage = %v, want ErrDuplicateTranslation", err)
	}
}

func TestCreateMessageNormalizesLocale(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, "home.title", "EN", "Welcome")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if created.Locale != "en" {
		t.Errorf("locale = %q, want en", created.Locale)
	}

	// The uppercase spelling collides with the lowercase one.
	if _, err := svc.CreateMessage(ctx, "home.title", "en", "x"); !errors.Is(err, ErrDuplicateTranslation) {
		t.Errorf("expected ErrDuplicateTranslation across case variants, got %v", err)
	}
}

func TestCreateMessageInvalidLocale(t *testing.T) {
	svc := testService(t)

	_, err := svc.CreateMessage(context.Background(), "home.title", "not a locale!", "x")
	if !errors.Is(err, ErrInvalidLocale) {
		t.Errorf("CreateMessage(bad locale) = %v, want ErrInvalidLocale", err)
	}
}

func TestCreateMessageLeafConflict(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "menu.file", "en", "File"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	_, err := svc.CreateMessage(ctx, "menu.file.save", "en", "Save")
	if !errors.Is(err, keypath.ErrPathConflict) {
		t.Errorf("nested write under a leaf = %v, want ErrPathConflict", err)
	}
}

func TestUpdateMessage(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	updated, err := svc.UpdateMessage(ctx, created.ID, "Hello")
	if err != nil {
		t.Fatalf("UpdateMessage: %v", err)
	}
	if updated.Message != "Hello" || updated.Key != "home.title" {
		t.Errorf("UpdateMessage = %+v", updated)
	}

	_, err = svc.UpdateMessage(ctx, 9999, "x")
	if !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("UpdateMessage(absent) = %v, want ErrMessageNotFound", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	if err := svc.DeleteMessage(ctx, created.ID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if err := svc.DeleteMessage(ctx, created.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("second DeleteMessage = %v, want ErrMessageNotFound", err)
	}
}

func TestDeleteByKeyCascade(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	seed := map[string]string{
		"menu.file.save": "Save",
		"menu.file.open": "Open",
		"menu.edit.undo": "Undo",
		"home.title":     "Welcome",
	}
	for key, msg := range seed {
		if _, err := svc.CreateMessage(ctx, key, "en", msg); err != nil {
			t.Fatalf("CreateMessage(%s): %v", key, err)
		}
	}

	result, err := svc.DeleteByKey(ctx, "menu.file")
	if err != nil {
		t.Fatalf("DeleteByKey: %v", err)
	}
	if result.DeletedTranslations != 2 {
		t.Errorf("DeletedTranslations = %d, want 2", result.DeletedTranslations)
	}
	// menu.file plus its two children; menu itself and menu.edit survive.
	if result.DeletedKeys != 3 {
		t.Errorf("DeletedKeys = %d, want 3", result.DeletedKeys)
	}

	remaining, err := svc.ListMessages(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("%d messages remain, want 2", len(remaining))
	}
	for _, m := range remaining {
		if m.Key != "menu.edit.undo" && m.Key != "home.title" {
			t.Errorf("unexpected survivor %q", m.Key)
		}
	}
}

func TestDeleteByKeyCountsDeepChain(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "x.b.c", "en", "deep leaf"); err != nil {
		t.Fatalf("CreateMessage(x.b.c): %v", err)
	}
	if _, err := svc.CreateMessage(ctx, "x.q", "en", "sibling"); err != nil {
		t.Fatalf("CreateMessage(x.q): %v", err)
	}

	// Deleting the intermediate node must count both it and its leaf child.
	result, err := svc.DeleteByKey(ctx, "x.b")
	if err != nil {
		t.Fatalf("DeleteByKey: %v", err)
	}
	if result.DeletedKeys != 2 {
		t.Errorf("DeletedKeys = %d, want 2", result.DeletedKeys)
	}
	if result.DeletedTranslations != 1 {
		t.Errorf("DeletedTranslations = %d, want 1", result.DeletedTranslations)
	}

	remaining, err := svc.ListMessages(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Key != "x.q" {
		t.Errorf("survivors = %+v, want only x.q", remaining)
	}
}

func TestDeleteByKeyAbsentIsNoOp(t *testing.T) {
	svc := testService(t)

	result, err := svc.DeleteByKey(context.Background(), "does.not.exist")
	if err != nil {
		t.Fatalf("DeleteByKey(absent): %v", err)
	}
	if result.DeletedKeys != 0 || result.DeletedTranslations != 0 {
		t.Errorf("DeleteByKey(absent) = %+v, want zero counts", result)
	}
}

func TestBulkImportAndMissingKeys(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	entries := []transfer.Entry{
		{Key: "menu.file.save", Message: "Save"},
		{Key: "menu.file.open", Message: "Open"},
		{Key: "home.title", Message: "Welcome"},
	}
	result, err := svc.BulkImport(ctx, "en", entries, false)
	if err != nil {
		t.Fatalf("BulkImport: %v", err)
	}
	if result.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", result.Inserted)
	}

	if _, err := svc.BulkImport(ctx, "de", []transfer.Entry{
		{Key: "home.title", Message: "Willkommen"},
	}, false); err != nil {
		t.Fatalf("BulkImport(de): %v", err)
	}

	report, err := svc.MissingKeys(ctx, "de")
	if err != nil {
		t.Fatalf("MissingKeys: %v", err)
	}
	if report.MissingCount != 2 {
		t.Errorf("MissingCount = %d, want 2", report.MissingCount)
	}
	if report.Completeness != "33.33%" {
		t.Errorf("Completeness = %q, want 33.33%%", report.Completeness)
	}
}

func TestExportUsesCacheUntilWrite(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	tree, err := svc.Export(ctx, "en")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	home, ok := tree["home"].(map[string]any)
	if !ok || home["title"] != "Welcome" {
		t.Fatalf("Export tree = %#v", tree)
	}

	// A write invalidates the cached tree.
	if _, err := svc.CreateMessage(ctx, "home.subtitle", "en", "Hi"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	tree, err = svc.Export(ctx, "en")
	if err != nil {
		t.Fatalf("Export after write: %v", err)
	}
	home = tree["home"].(map[string]any)
	if home["subtitle"] != "Hi" {
		t.Errorf("export served stale tree: %#v", home)
	}
}

func TestExportAll(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "home.title", "en", "Welcome"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := svc.CreateMessage(ctx, "home.title", "de", "Willkommen"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	all, err := svc.ExportAll(ctx)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ExportAll has %d locales, want 2", len(all))
	}
	de, ok := all["de"].(map[string]any)
	if !ok {
		t.Fatalf("de tree missing: %#v", all)
	}
	home := de["home"].(map[string]any)
	if home["title"] != "Willkommen" {
		t.Errorf("de home.title = %v", home["title"])
	}
}

func TestListKeysAndDescriptions(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateMessage(ctx, "menu.file.save", "en", "Save"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if err := svc.SetKeyDescription(ctx, "menu.file.save", "toolbar save action"); err != nil {
		t.Fatalf("SetKeyDescription: %v", err)
	}

	keys, err := svc.ListKeys(ctx)
	if err != nil {
		t.Fatalf("ListKeys: %v", err)
	}
	// menu, menu.file, menu.file.save
	if len(keys) != 3 {
		t.Fatalf("ListKeys returned %d keys, want 3", len(keys))
	}
	var found bool
	for _, k := range keys {
		if k.Key == "menu.file.save" {
			found = true
			if k.Description != "toolbar save action" {
				t.Errorf("description = %q", k.Description)
			}
		}
	}
	if !found {
		t.Error("menu.file.save not listed")
	}

	if err := svc.SetKeyDescription(ctx, "absent.key", "x"); !errors.Is(err, keypath.ErrKeyNotFound) {
		t.Errorf("SetKeyDescription(absent) = %v, want ErrKeyNotFound", err)
	}
}

func TestAddAndListLanguages(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	lang, err := svc.AddLanguage(ctx, "DE", "")
	if err != nil {
		t.Fatalf("AddLanguage: %v", err)
	}
	if lang.Code != "de" || lang.Name != "German" {
		t.Errorf("AddLanguage = %+v, want de/German", lang)
	}

	if _, err := svc.AddLanguage(ctx, "de", "Deutsch"); !errors.Is(err, ErrDuplicateLanguage) {
		t.Errorf("duplicate AddLanguage = %v, want ErrDuplicateLanguage", err)
	}

	languages, err := svc.ListLanguages(ctx)
	if err != nil {
		t.Fatalf("ListLanguages: %v", err)
	}
	if len(languages) != 1 {
		t.Errorf("ListLanguages returned %d, want 1", len(languages))
	}
}
