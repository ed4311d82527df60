// Package services – EditService
//
// This file implements EditService, which records the depicts statements
// users add to artworks and lists them back. Recording verifies that both
// items exist, inserts the edit, and bumps the usage count of the depicts
// item, all inside one transaction. A repeated (user, artwork, depicts)
// triple is reported as ErrDuplicateEdit and leaves the stored edit as it was.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
)

// EditService implements the use-cases around edit records.
type EditService struct {
	// DB is the database handle used for all edit operations.
	DB *gorm.DB
}

// Record stores an edit made by username adding depictsID to artworkID.
//
// Errors:
//   - ErrInvalidEdit for a blank username or non-positive ids.
//   - ErrArtworkNotFound / ErrDepictsNotFound when an item is missing.
//   - ErrDuplicateEdit when the same triple was already recorded.
func (s *EditService) Record(ctx context.Context, username string, artworkID, depictsID int64, lastRevID *int64) (*domain.Edit, error) {
	tr := otel.Tracer("services/EditService")
	ctx, span := tr.Start(ctx, "Record",
		trace.WithAttributes(
			attribute.String("user.name", username),
			attribute.Int64("artwork.id", artworkID),
			attribute.Int64("depicts.id", depictsID),
		),
	)
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || artworkID <= 0 || depictsID <= 0 {
		return nil, ErrInvalidEdit
	}

	e := &domain.Edit{
		Username:  username,
		ArtworkID: artworkID,
		DepictsID: depictsID,
		Timestamp: time.Now().UTC(),
		LastRevID: lastRevID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := repo.GetArtwork(ctx, tx, artworkID)
		if err != nil {
			if isNotFound(err) {
				return ErrArtworkNotFound
			}
			return err
		}
		d, err := repo.GetDepictsItem(ctx, tx, depictsID)
		if err != nil {
			if isNotFound(err) {
				return ErrDepictsNotFound
			}
			return err
		}

		if err := repo.CreateEdit(ctx, tx, e); err != nil {
			switch {
			case isDuplicate(err):
				return ErrDuplicateEdit
			case errors.Is(err, repo.ErrForeignKey):
				return ErrArtworkNotFound
			}
			return err
		}
		if err := repo.IncrementDepictsCount(ctx, tx, depictsID, 1); err != nil {
			return err
		}
		d.Count++
		e.Artwork, e.Depicts = a, d
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return e, nil
}

// ListPage returns a page of edits matching f, newest first, and the total.
// It applies defaults for invalid page/pageSize.
func (s *EditService) ListPage(ctx context.Context, f repo.EditFilter, page, pageSize int) ([]domain.Edit, int64, error) {
	tr := otel.Tracer("services/EditService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.name", f.Username),
			attribute.Int64("artwork.id", f.ArtworkID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountEdits(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Edit{}, 0, nil
	}

	items, err := repo.ListEditsPage(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// Stats returns the number of edits matching f and the newest timestamp,
// used by the HTTP layer for weak ETags.
func (s *EditService) Stats(ctx context.Context, f repo.EditFilter) (int64, *time.Time, error) {
	return repo.EditsStats(ctx, s.DB, f)
}
