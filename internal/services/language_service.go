// Package services – LanguageService
//
// This file implements LanguageService, which manages the Wikimedia
// languages users can label items in. Code lookups expect exactly one match:
// none maps to ErrLanguageNotFound and several to ErrAmbiguousLanguage.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
)

// LanguageRepo defines the repository contract required by LanguageService.
type LanguageRepo interface {
	// CreateLanguage inserts one language.
	CreateLanguage(ctx context.Context, db *gorm.DB, l *domain.Language) error
	// GetLanguageByCode returns the single language with the given code.
	GetLanguageByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Language, error)
	// ListLanguages returns all languages ordered by English label.
	ListLanguages(ctx context.Context, db *gorm.DB) ([]domain.Language, error)
	// SaveLanguages upserts languages by item id.
	SaveLanguages(ctx context.Context, db *gorm.DB, langs []domain.Language) (int64, error)
}

// LanguageService provides language registration and lookup.
type LanguageService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the language repository used by this service.
	Repo LanguageRepo
}

// NewLanguageService constructs a LanguageService.
func NewLanguageService(db *gorm.DB, r LanguageRepo) *LanguageService {
	return &LanguageService{DB: db, Repo: r}
}

// Create registers a language. Codes are trimmed and lower-cased.
func (s *LanguageService) Create(ctx context.Context, l *domain.Language) error {
	if err := normalizeLanguage(l); err != nil {
		return err
	}
	if err := s.Repo.CreateLanguage(ctx, s.DB, l); err != nil {
		if isDuplicate(err) {
			return ErrDuplicateLanguage
		}
		return err
	}
	return nil
}

// ByCode returns the language registered under code.
func (s *LanguageService) ByCode(ctx context.Context, code string) (*domain.Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrLanguageNotFound
	}
	l, err := s.Repo.GetLanguageByCode(ctx, s.DB, code)
	switch {
	case err == nil:
		return l, nil
	case errors.Is(err, repo.ErrNoResult):
		return nil, ErrLanguageNotFound
	case errors.Is(err, repo.ErrMultipleResults):
		return nil, ErrAmbiguousLanguage
	}
	return nil, err
}

// List returns every registered language.
func (s *LanguageService) List(ctx context.Context) ([]domain.Language, error) {
	return s.Repo.ListLanguages(ctx, s.DB)
}

// Import upserts langs and returns the number of rows written. Every entry
// is validated before anything is written.
func (s *LanguageService) Import(ctx context.Context, langs []domain.Language) (int64, error) {
	for i := range langs {
		if err := normalizeLanguage(&langs[i]); err != nil {
			return 0, err
		}
	}
	n, err := s.Repo.SaveLanguages(ctx, s.DB, langs)
	if err != nil && isDuplicate(err) {
		return 0, ErrDuplicateLanguage
	}
	return n, err
}

func normalizeLanguage(l *domain.Language) error {
	if l == nil || l.ItemID <= 0 {
		return ErrInvalidItem
	}
	l.WikimediaLanguageCode = strings.ToLower(strings.TrimSpace(l.WikimediaLanguageCode))
	l.EnLabel = strings.TrimSpace(l.EnLabel)
	if l.WikimediaLanguageCode == "" || l.EnLabel == "" {
		return ErrInvalidItem
	}
	return nil
}
