// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for ArtworkItem.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// CreateArtwork inserts an artwork with its caller-supplied item id.
func CreateArtwork(ctx context.Context, db *gorm.DB, a *domain.ArtworkItem) error {
	return translate(db.WithContext(ctx).Create(a).Error)
}

// GetArtwork fetches an artwork by item id, or ErrNotFound.
func GetArtwork(ctx context.Context, db *gorm.DB, id int64) (*domain.ArtworkItem, error) {
	var a domain.ArtworkItem
	if err := db.WithContext(ctx).Where("item_id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateArtwork rewrites label and entity of a.ItemID.
func UpdateArtwork(ctx context.Context, db *gorm.DB, a *domain.ArtworkItem) error {
	res := db.WithContext(ctx).
		Model(&domain.ArtworkItem{}).
		Where("item_id = ?", a.ItemID).
		Updates(map[string]any{"label": a.Label, "entity": a.Entity})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteArtwork removes an artwork. Edits referencing it make the delete
// fail with ErrForeignKey.
func DeleteArtwork(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Where("item_id = ?", id).Delete(&domain.ArtworkItem{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
