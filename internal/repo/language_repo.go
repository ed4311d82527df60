// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Language.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// CreateLanguage inserts a language. A repeated item id or language code
// fails with ErrDuplicate.
func CreateLanguage(ctx context.Context, db *gorm.DB, l *domain.Language) error {
	return translate(db.WithContext(ctx).Create(l).Error)
}

// GetLanguage fetches a language by item id, or ErrNotFound.
func GetLanguage(ctx context.Context, db *gorm.DB, id int64) (*domain.Language, error) {
	var l domain.Language
	if err := db.WithContext(ctx).Where("item_id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// GetLanguageByCode returns the single language with the given Wikimedia
// code. Zero matches yield ErrNoResult and several yield ErrMultipleResults;
// neither is ErrNotFound.
func GetLanguageByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Language, error) {
	var rows []domain.Language
	err := db.WithContext(ctx).
		Where("wikimedia_language_code = ?", code).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrNoResult
	case 1:
		return &rows[0], nil
	default:
		return nil, ErrMultipleResults
	}
}

// ListLanguages returns every language ordered by English label.
func ListLanguages(ctx context.Context, db *gorm.DB) ([]domain.Language, error) {
	var out []domain.Language
	err := db.WithContext(ctx).Order("en_label ASC, item_id ASC").Find(&out).Error
	return out, err
}

// SaveLanguages upserts langs by item id in one statement, rewriting code and
// label of existing rows. A code already owned by another item still fails
// with ErrDuplicate.
func SaveLanguages(ctx context.Context, db *gorm.DB, langs []domain.Language) (int64, error) {
	if len(langs) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"wikimedia_language_code", "en_label"}),
		}).
		Create(&langs)
	return res.RowsAffected, translate(res.Error)
}

// Languages exposes the language functions as a method set, so services can
// depend on an interface instead of the package.
type Languages struct{}

func (Languages) CreateLanguage(ctx context.Context, db *gorm.DB, l *domain.Language) error {
	return CreateLanguage(ctx, db, l)
}

func (Languages) GetLanguageByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Language, error) {
	return GetLanguageByCode(ctx, db, code)
}

func (Languages) ListLanguages(ctx context.Context, db *gorm.DB) ([]domain.Language, error) {
	return ListLanguages(ctx, db)
}

func (Languages) SaveLanguages(ctx context.Context, db *gorm.DB, langs []domain.Language) (int64, error) {
	return SaveLanguages(ctx, db, langs)
}
