// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for HumanItem.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// CreateHuman inserts a human. Missing years fail with ErrRequiredField.
func CreateHuman(ctx context.Context, db *gorm.DB, h *domain.HumanItem) error {
	return translate(db.WithContext(ctx).Create(h).Error)
}

// GetHuman fetches a human by item id, or ErrNotFound.
func GetHuman(ctx context.Context, db *gorm.DB, id int64) (*domain.HumanItem, error) {
	var h domain.HumanItem
	if err := db.WithContext(ctx).Where("item_id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHumanYears rewrites both years of h.ItemID.
func UpdateHumanYears(ctx context.Context, db *gorm.DB, h *domain.HumanItem) error {
	res := db.WithContext(ctx).
		Model(&domain.HumanItem{}).
		Where("item_id = ?", h.ItemID).
		Updates(map[string]any{"year_of_birth": h.YearOfBirth, "year_of_death": h.YearOfDeath})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteHuman removes a human by item id.
func DeleteHuman(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Where("item_id = ?", id).Delete(&domain.HumanItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
