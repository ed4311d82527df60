// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// WikidataQuery audit log.
//
// A query row is written in two steps: StartQuery at dispatch, FinishQuery
// once the call has completed or failed.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// QueryOutcome carries the columns filled in when an outbound query ends.
type QueryOutcome struct {
	EndTime    time.Time
	StatusCode *int
	RowCount   *int
	ErrorText  *string
}

// StartQuery inserts q and sets q.ID. StartTime defaults to now (UTC).
func StartQuery(ctx context.Context, db *gorm.DB, q *domain.WikidataQuery) error {
	if q.StartTime.IsZero() {
		q.StartTime = time.Now().UTC()
	}
	q.EndTime = nil
	return translate(db.WithContext(ctx).Create(q).Error)
}

// FinishQuery records the outcome of query id.
func FinishQuery(ctx context.Context, db *gorm.DB, id uint, out QueryOutcome) error {
	end := out.EndTime
	if end.IsZero() {
		end = time.Now().UTC()
	}
	res := db.WithContext(ctx).
		Model(&domain.WikidataQuery{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"end_time":    end,
			"status_code": out.StatusCode,
			"row_count":   out.RowCount,
			"error_text":  out.ErrorText,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetQuery fetches a query log row by id, or ErrNotFound.
func GetQuery(ctx context.Context, db *gorm.DB, id uint) (*domain.WikidataQuery, error) {
	var q domain.WikidataQuery
	if err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// CountQueries returns the number of logged queries.
func CountQueries(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.WikidataQuery{}).Count(&total).Error
	return total, err
}

// ListQueriesPage returns a page of logged queries, most recent first.
func ListQueriesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.WikidataQuery, error) {
	var out []domain.WikidataQuery
	err := db.WithContext(ctx).
		Order("start_time DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteQueriesBefore removes log rows that started before cutoff and
// returns how many were deleted.
func DeleteQueriesBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("start_time < ?", cutoff).Delete(&domain.WikidataQuery{})
	return res.RowsAffected, res.Error
}
