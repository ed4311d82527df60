// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Edit.
//
// An edit is keyed by (username, artwork_id, depicts_id). Inserting the same
// triple twice fails with ErrDuplicate and leaves the first row untouched.
// Listing functions preload the artwork and depicts rows and order newest
// first.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// EditFilter narrows edit listings. Zero values mean "any".
type EditFilter struct {
	Username  string
	ArtworkID int64
	DepictsID int64
}

func (f EditFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	if f.ArtworkID != 0 {
		q = q.Where("artwork_id = ?", f.ArtworkID)
	}
	if f.DepictsID != 0 {
		q = q.Where("depicts_id = ?", f.DepictsID)
	}
	return q
}

// CreateEdit inserts e without touching the associated artwork or depicts
// rows. Unknown artwork or depicts ids fail with ErrForeignKey.
func CreateEdit(ctx context.Context, db *gorm.DB, e *domain.Edit) error {
	return translate(db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

// GetEdit fetches one edit by its full key, or ErrNotFound.
func GetEdit(ctx context.Context, db *gorm.DB, username string, artworkID, depictsID int64) (*domain.Edit, error) {
	var e domain.Edit
	err := db.WithContext(ctx).
		Preload("Artwork").
		Preload("Depicts").
		Where("username = ? AND artwork_id = ? AND depicts_id = ?", username, artworkID, depictsID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEdit removes one edit by its full key.
func DeleteEdit(ctx context.Context, db *gorm.DB, username string, artworkID, depictsID int64) error {
	res := db.WithContext(ctx).
		Where("username = ? AND artwork_id = ? AND depicts_id = ?", username, artworkID, depictsID).
		Delete(&domain.Edit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountEdits returns the number of edits matching f.
func CountEdits(ctx context.Context, db *gorm.DB, f EditFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Edit{})).Count(&total).Error
	return total, err
}

// ListEditsPage returns a page of edits matching f, newest first.
func ListEditsPage(ctx context.Context, db *gorm.DB, f EditFilter, offset, limit int) ([]domain.Edit, error) {
	var out []domain.Edit
	err := f.apply(db.WithContext(ctx).Model(&domain.Edit{})).
		Preload("Artwork").
		Preload("Depicts").
		Order("timestamp DESC, username ASC, artwork_id ASC, depicts_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
