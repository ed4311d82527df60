// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (weak ETags) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// EditsStats returns the number of edits matching f and the newest edit
// timestamp among them. When nothing matches, count is 0 and latest is nil.
func EditsStats(ctx context.Context, db *gorm.DB, f EditFilter) (count int64, latest *time.Time, err error) {
	q := f.apply(db.WithContext(ctx).Model(&domain.Edit{}))

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest timestamp (avoid MAX() -> TEXT in SQLite)
	var row struct {
		Timestamp time.Time
	}
	q = f.apply(db.WithContext(ctx).Model(&domain.Edit{}))
	if err = q.Select("timestamp").Order("timestamp DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.Timestamp, nil
}
