package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/depicts-backend/internal/domain"
)

func TestGetLanguageByCode_ExactlyOne(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	if err := CreateLanguage(ctx, db, &domain.Language{ItemID: 1860, WikimediaLanguageCode: "en", EnLabel: "English"}); err != nil {
		t.Fatalf("CreateLanguage: %v", err)
	}

	got, err := GetLanguageByCode(ctx, db, "en")
	if err != nil {
		t.Fatalf("GetLanguageByCode: %v", err)
	}
	if got.ItemID != 1860 || got.QID() != "Q1860" {
		t.Fatalf("unexpected language: %+v", got)
	}

	_, err = GetLanguageByCode(ctx, db, "xx")
	if !errors.Is(err, ErrNoResult) || !errors.Is(err, ErrCardinality) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("zero matches must not be ErrNotFound")
	}
}

func TestGetLanguageByCode_Multiple(t *testing.T) {
	// Build a table without the unique index to exercise the many-rows branch.
	db := newTestDB(t, false)
	ctx := context.Background()
	if err := db.Exec(`CREATE TABLE language (item_id INTEGER PRIMARY KEY, wikimedia_language_code TEXT, en_label TEXT NOT NULL)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, id := range []int64{1, 2} {
		if err := db.Exec(`INSERT INTO language VALUES (?, 'zz', 'Dup')`, id).Error; err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if _, err := GetLanguageByCode(ctx, db, "zz"); !errors.Is(err, ErrMultipleResults) {
		t.Fatalf("expected ErrMultipleResults, got %v", err)
	}
}

func TestCreateLanguage_Constraints(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	if err := CreateLanguage(ctx, db, &domain.Language{ItemID: 188, WikimediaLanguageCode: "de", EnLabel: "German"}); err != nil {
		t.Fatalf("CreateLanguage: %v", err)
	}
	err := CreateLanguage(ctx, db, &domain.Language{ItemID: 189, WikimediaLanguageCode: "de", EnLabel: "Other"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for repeated code, got %v", err)
	}

	// EnLabel is NOT NULL; a raw insert with NULL must be refused.
	err = translate(db.Exec(`INSERT INTO language (item_id, wikimedia_language_code, en_label) VALUES (190, 'fr', NULL)`).Error)
	if !errors.Is(err, ErrRequiredField) {
		t.Fatalf("expected ErrRequiredField, got %v", err)
	}
}

func TestListAndSaveLanguages(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	n, err := SaveLanguages(ctx, db, []domain.Language{
		{ItemID: 1860, WikimediaLanguageCode: "en", EnLabel: "English"},
		{ItemID: 188, WikimediaLanguageCode: "de", EnLabel: "German"},
	})
	if err != nil || n != 2 {
		t.Fatalf("SaveLanguages: n=%d err=%v", n, err)
	}
	// Upsert rewrites the label of an existing row.
	if _, err := SaveLanguages(ctx, db, []domain.Language{
		{ItemID: 188, WikimediaLanguageCode: "de", EnLabel: "Deutsch"},
	}); err != nil {
		t.Fatalf("SaveLanguages upsert: %v", err)
	}

	got, err := ListLanguages(ctx, db)
	if err != nil {
		t.Fatalf("ListLanguages: %v", err)
	}
	if len(got) != 2 || got[0].EnLabel != "Deutsch" || got[1].EnLabel != "English" {
		t.Fatalf("unexpected list: %+v", got)
	}

	if n, err := SaveLanguages(ctx, db, nil); n != 0 || err != nil {
		t.Fatalf("empty save: %d, %v", n, err)
	}
	if _, err := GetLanguage(ctx, db, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLanguages_MethodSet(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	var store Languages

	if err := store.CreateLanguage(ctx, db, &domain.Language{ItemID: 188, WikimediaLanguageCode: "de", EnLabel: "German"}); err != nil {
		t.Fatalf("CreateLanguage: %v", err)
	}
	if n, err := store.SaveLanguages(ctx, db, []domain.Language{
		{ItemID: 1860, WikimediaLanguageCode: "en", EnLabel: "English"},
		{ItemID: 150, WikimediaLanguageCode: "fr", EnLabel: "French"},
	}); err != nil || n != 2 {
		t.Fatalf("SaveLanguages: n=%d err=%v", n, err)
	}
	if got, err := store.GetLanguageByCode(ctx, db, "fr"); err != nil || got.ItemID != 150 {
		t.Fatalf("GetLanguageByCode: %+v %v", got, err)
	}
	if all, err := store.ListLanguages(ctx, db); err != nil || len(all) != 3 {
		t.Fatalf("ListLanguages: %d %v", len(all), err)
	}
}
