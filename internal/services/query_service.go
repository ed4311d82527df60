// Package services – QueryService
//
// This file implements QueryService, a read and maintenance view over the
// log of outbound Wikidata queries written by the wdqs client.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
)

// QueryService lists and prunes the query log.
type QueryService struct {
	DB *gorm.DB
}

// ListPage returns a page of logged queries, most recent first, and the total.
func (s *QueryService) ListPage(ctx context.Context, page, pageSize int) ([]domain.WikidataQuery, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total, err := repo.CountQueries(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.WikidataQuery{}, 0, nil
	}
	items, err := repo.ListQueriesPage(ctx, s.DB, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Get loads one logged query.
func (s *QueryService) Get(ctx context.Context, id uint) (*domain.WikidataQuery, error) {
	q, err := repo.GetQuery(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrQueryNotFound
		}
		return nil, err
	}
	return q, nil
}

// Prune deletes queries that started more than olderThan before now.
func (s *QueryService) Prune(ctx context.Context, olderThan time.Duration, now time.Time) (int64, error) {
	return repo.DeleteQueriesBefore(ctx, s.DB, now.Add(-olderThan))
}
