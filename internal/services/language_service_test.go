package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
)

// The store-backed method set satisfies the contract.
var _ LanguageRepo = repo.Languages{}

// ----- Fake repo -----

type fakeLanguageRepo struct {
	created   *domain.Language
	createErr error

	byCode    string
	byCodeRes *domain.Language
	byCodeErr error

	list []domain.Language

	saved   []domain.Language
	saveErr error
}

func (r *fakeLanguageRepo) CreateLanguage(ctx context.Context, db *gorm.DB, l *domain.Language) error {
	r.created = l
	return r.createErr
}

func (r *fakeLanguageRepo) GetLanguageByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Language, error) {
	r.byCode = code
	return r.byCodeRes, r.byCodeErr
}

func (r *fakeLanguageRepo) ListLanguages(ctx context.Context, db *gorm.DB) ([]domain.Language, error) {
	return r.list, nil
}

func (r *fakeLanguageRepo) SaveLanguages(ctx context.Context, db *gorm.DB, langs []domain.Language) (int64, error) {
	r.saved = langs
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	return int64(len(langs)), nil
}

// ----- Tests -----

func TestLanguageService_Create_Normalizes(t *testing.T) {
	fr := &fakeLanguageRepo{}
	svc := NewLanguageService(nil, fr)

	l := &domain.Language{ItemID: 1860, WikimediaLanguageCode: " EN ", EnLabel: " English "}
	if err := svc.Create(context.Background(), l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fr.created.WikimediaLanguageCode != "en" || fr.created.EnLabel != "English" {
		t.Fatalf("not normalized: %+v", fr.created)
	}
}

func TestLanguageService_Create_Errors(t *testing.T) {
	fr := &fakeLanguageRepo{createErr: fmt.Errorf("%w: boom", repo.ErrDuplicate)}
	svc := NewLanguageService(nil, fr)
	ctx := context.Background()

	if err := svc.Create(ctx, &domain.Language{ItemID: 1, WikimediaLanguageCode: "en", EnLabel: "English"}); !errors.Is(err, ErrDuplicateLanguage) {
		t.Fatalf("expected ErrDuplicateLanguage, got %v", err)
	}
	if err := svc.Create(ctx, &domain.Language{ItemID: 1, WikimediaLanguageCode: "en"}); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem for missing label, got %v", err)
	}
	if err := svc.Create(ctx, nil); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem for nil, got %v", err)
	}
}

func TestLanguageService_ByCode(t *testing.T) {
	ctx := context.Background()

	fr := &fakeLanguageRepo{byCodeRes: &domain.Language{ItemID: 188, WikimediaLanguageCode: "de"}}
	svc := NewLanguageService(nil, fr)
	l, err := svc.ByCode(ctx, " DE")
	if err != nil || l.ItemID != 188 || fr.byCode != "de" {
		t.Fatalf("ByCode: %+v %v (asked %q)", l, err, fr.byCode)
	}

	fr.byCodeRes, fr.byCodeErr = nil, repo.ErrNoResult
	if _, err := svc.ByCode(ctx, "xx"); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
	fr.byCodeErr = repo.ErrMultipleResults
	if _, err := svc.ByCode(ctx, "xx"); !errors.Is(err, ErrAmbiguousLanguage) {
		t.Fatalf("expected ErrAmbiguousLanguage, got %v", err)
	}
	if _, err := svc.ByCode(ctx, "  "); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("blank code: expected ErrLanguageNotFound, got %v", err)
	}

	boom := errors.New("db down")
	fr.byCodeErr = boom
	if _, err := svc.ByCode(ctx, "en"); !errors.Is(err, boom) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
}

func TestLanguageService_Import(t *testing.T) {
	fr := &fakeLanguageRepo{}
	svc := NewLanguageService(nil, fr)
	ctx := context.Background()

	n, err := svc.Import(ctx, []domain.Language{
		{ItemID: 1, WikimediaLanguageCode: "EN", EnLabel: "English"},
		{ItemID: 2, WikimediaLanguageCode: "fr", EnLabel: "French"},
	})
	if err != nil || n != 2 || fr.saved[0].WikimediaLanguageCode != "en" {
		t.Fatalf("Import: n=%d err=%v saved=%+v", n, err, fr.saved)
	}

	fr.saved = nil
	if _, err := svc.Import(ctx, []domain.Language{{ItemID: 1, WikimediaLanguageCode: "en"}}); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
	if fr.saved != nil {
		t.Fatalf("nothing must be written when validation fails")
	}

	fr.saveErr = errors.New("UNIQUE constraint failed: language.wikimedia_language_code")
	if _, err := svc.Import(ctx, []domain.Language{{ItemID: 3, WikimediaLanguageCode: "en", EnLabel: "x"}}); !errors.Is(err, ErrDuplicateLanguage) {
		t.Fatalf("expected ErrDuplicateLanguage, got %v", err)
	}
}

func TestLanguageService_List(t *testing.T) {
	fr := &fakeLanguageRepo{list: []domain.Language{{ItemID: 1}, {ItemID: 2}}}
	got, err := NewLanguageService(nil, fr).List(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("List: %v %v", got, err)
	}
}
