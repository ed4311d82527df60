// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for DepictsItem and
// its alternate labels.
//
// Functions:
//
//   - CreateDepictsItem(ctx, db, item) -> error
//     Inserts the item and its AltLabels in one transaction.
//
//   - GetDepictsItem(ctx, db, id) -> *domain.DepictsItem, error
//     Loads an item with its alt labels, or ErrNotFound.
//
//   - UpdateDepictsItem(ctx, db, item) -> error
//     Rewrites the mutable columns; item_id is never written.
//
//   - ReplaceDepictsAltLabels(ctx, db, id, labels) -> error
//     Swaps the full alt label set of an item.
//
//   - IncrementDepictsCount(ctx, db, id, delta) -> error
//     Adds delta to the usage count of an item.
//
//   - DeleteDepictsItem(ctx, db, id) -> error
//     Removes the alt labels and the item in one transaction.
//
//   - FindDepictsByLabel(ctx, db, term, limit) -> []domain.DepictsItem, error
//     Case-insensitive substring match on label or any alt label.
package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// CreateDepictsItem inserts item and the rows of item.AltLabels. The alt
// labels are re-keyed to item.ItemID before insert. A duplicate item_id or
// a repeated alt label fails the whole call with ErrDuplicate.
func CreateDepictsItem(ctx context.Context, db *gorm.DB, item *domain.DepictsItem) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return translate(err)
		}
		if len(item.AltLabels) == 0 {
			return nil
		}
		for i := range item.AltLabels {
			item.AltLabels[i].ItemID = item.ItemID
		}
		return translate(tx.Create(&item.AltLabels).Error)
	})
}

// GetDepictsItem fetches a depicts item by id, with alt labels ordered by text.
func GetDepictsItem(ctx context.Context, db *gorm.DB, id int64) (*domain.DepictsItem, error) {
	var d domain.DepictsItem
	err := db.WithContext(ctx).
		Preload("AltLabels", func(tx *gorm.DB) *gorm.DB { return tx.Order("alt_label ASC") }).
		Where("item_id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDepictsItem writes label, description, commons, count and entity
// for item.ItemID. Returns ErrNotFound when no row matched.
func UpdateDepictsItem(ctx context.Context, db *gorm.DB, item *domain.DepictsItem) error {
	res := db.WithContext(ctx).
		Model(&domain.DepictsItem{}).
		Where("item_id = ?", item.ItemID).
		Updates(map[string]any{
			"label":       item.Label,
			"description": item.Description,
			"commons":     item.Commons,
			"count":       item.Count,
			"entity":      item.Entity,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceDepictsAltLabels replaces the alt labels of item id with labels
// (trimmed, blanks and repeats dropped). Returns ErrNotFound when the item
// does not exist.
func ReplaceDepictsAltLabels(ctx context.Context, db *gorm.DB, id int64, labels []string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.DepictsItem{}).Where("item_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.DepictsItemAltLabel{}).Error; err != nil {
			return err
		}
		rows := domain.NewAltLabels(id, labels...)
		if len(rows) == 0 {
			return nil
		}
		return translate(tx.Create(&rows).Error)
	})
}

// IncrementDepictsCount adds delta to the usage count of item id.
func IncrementDepictsCount(ctx context.Context, db *gorm.DB, id int64, delta int) error {
	res := db.WithContext(ctx).
		Model(&domain.DepictsItem{}).
		Where("item_id = ?", id).
		UpdateColumn("count", gorm.Expr("count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDepictsItem removes item id together with all of its alt labels.
// Edits referencing the item make the delete fail with ErrForeignKey.
func DeleteDepictsItem(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.DepictsItemAltLabel{}).Error; err != nil {
			return err
		}
		res := tx.Where("item_id = ?", id).Delete(&domain.DepictsItem{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FindDepictsByLabel returns up to limit items whose label or any alt label
// contains term, most used first. Alt labels are preloaded. Both sides are
// folded by the store's LOWER: full Unicode on PostgreSQL, ASCII only on
// SQLite, where non-ASCII letters must match in their stored case.
func FindDepictsByLabel(ctx context.Context, db *gorm.DB, term string, limit int) ([]domain.DepictsItem, error) {
	term = strings.TrimSpace(term)
	out := []domain.DepictsItem{}
	if term == "" {
		return out, nil
	}
	if limit <= 0 {
		limit = 20
	}
	like := "%" + escapeLike(term) + "%"
	alt := db.Model(&domain.DepictsItemAltLabel{}).
		Select("item_id").
		Where("LOWER(alt_label) LIKE LOWER(?) ESCAPE '\\'", like)

	err := db.WithContext(ctx).
		Preload("AltLabels", func(tx *gorm.DB) *gorm.DB { return tx.Order("alt_label ASC") }).
		Where("LOWER(label) LIKE LOWER(?) ESCAPE '\\'", like).
		Or("item_id IN (?)", alt).
		Order("count DESC, item_id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
