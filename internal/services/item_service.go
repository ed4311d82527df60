// Package services – ItemService
//
// This file implements ItemService, which owns the Wikidata items cached by
// the application: depicts items (with alt labels), artworks and humans. It
// validates payloads, maps repository errors to service sentinels, and ranks
// depicts lookups through a search.Ranker.
//
// Observability: lookups are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/search"
)

// DepictsMatch is one ranked lookup result.
type DepictsMatch struct {
	Item  domain.DepictsItem
	Match string
	Score float64
}

// ItemService provides CRUD over cached Wikidata items and depicts lookup.
type ItemService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Ranker orders lookup candidates. Nil keeps store order.
	Ranker search.Ranker
	// CandidateLimit caps how many store matches are ranked per lookup.
	CandidateLimit int
}

// NewItemService constructs an ItemService with a default ranker.
func NewItemService(db *gorm.DB, r search.Ranker) *ItemService {
	if r == nil {
		r = search.NewRanker()
	}
	return &ItemService{DB: db, Ranker: r, CandidateLimit: 100}
}

// ---------------------------------------------------------------------------
// Depicts

// CreateDepicts stores a new depicts item together with its alt labels.
func (s *ItemService) CreateDepicts(ctx context.Context, d *domain.DepictsItem) error {
	if d == nil || d.ItemID <= 0 {
		return ErrInvalidItem
	}
	d.Label = strings.TrimSpace(d.Label)
	d.AltLabels = domain.NewAltLabels(d.ItemID, altStrings(d.AltLabels)...)
	if err := repo.CreateDepictsItem(ctx, s.DB, d); err != nil {
		return mapItemErr(err, ErrDepictsNotFound)
	}
	return nil
}

// GetDepicts loads a depicts item with its alt labels.
func (s *ItemService) GetDepicts(ctx context.Context, id int64) (*domain.DepictsItem, error) {
	d, err := repo.GetDepictsItem(ctx, s.DB, id)
	if err != nil {
		return nil, mapItemErr(err, ErrDepictsNotFound)
	}
	return d, nil
}

// UpdateDepicts rewrites the mutable fields of an existing depicts item.
// Alt labels are left untouched; use SetAltLabels for those.
func (s *ItemService) UpdateDepicts(ctx context.Context, d *domain.DepictsItem) error {
	if d == nil || d.ItemID <= 0 {
		return ErrInvalidItem
	}
	d.Label = strings.TrimSpace(d.Label)
	if d.Count < 0 {
		return ErrInvalidItem
	}
	return mapItemErr(repo.UpdateDepictsItem(ctx, s.DB, d), ErrDepictsNotFound)
}

// SetAltLabels replaces the alt label set of a depicts item.
func (s *ItemService) SetAltLabels(ctx context.Context, id int64, labels []string) error {
	return mapItemErr(repo.ReplaceDepictsAltLabels(ctx, s.DB, id, labels), ErrDepictsNotFound)
}

// DeleteDepicts removes a depicts item and its alt labels.
func (s *ItemService) DeleteDepicts(ctx context.Context, id int64) error {
	return mapItemErr(repo.DeleteDepictsItem(ctx, s.DB, id), ErrDepictsNotFound)
}

// LookupDepicts finds depicts items whose label or alt labels contain term
// and returns at most limit of them, best match first.
func (s *ItemService) LookupDepicts(ctx context.Context, term string, limit int) ([]DepictsMatch, error) {
	tr := otel.Tracer("services/ItemService")
	ctx, span := tr.Start(ctx, "LookupDepicts",
		trace.WithAttributes(
			attribute.String("query", term),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	candLimit := s.CandidateLimit
	if candLimit < limit {
		candLimit = limit
	}

	items, err := repo.FindDepictsByLabel(ctx, s.DB, term, candLimit)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates", len(items)))
	if len(items) == 0 {
		return []DepictsMatch{}, nil
	}

	if s.Ranker == nil {
		out := make([]DepictsMatch, 0, limit)
		for i := 0; i < len(items) && i < limit; i++ {
			out = append(out, DepictsMatch{Item: items[i], Match: items[i].Label})
		}
		return out, nil
	}

	byID := make(map[int64]domain.DepictsItem, len(items))
	cands := make([]search.Candidate, 0, len(items))
	for _, it := range items {
		byID[it.ItemID] = it
		cands = append(cands, search.Candidate{
			ID:        it.ItemID,
			Label:     it.Label,
			AltLabels: it.AltLabelSet(),
			Count:     it.Count,
		})
	}
	ranked := s.Ranker.Rank(term, cands, limit)
	out := make([]DepictsMatch, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, DepictsMatch{Item: byID[r.ID], Match: r.Match, Score: r.Score})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Artworks

// CreateArtwork stores a new artwork.
func (s *ItemService) CreateArtwork(ctx context.Context, a *domain.ArtworkItem) error {
	if a == nil || a.ItemID <= 0 {
		return ErrInvalidItem
	}
	a.Label = strings.TrimSpace(a.Label)
	return mapItemErr(repo.CreateArtwork(ctx, s.DB, a), ErrArtworkNotFound)
}

// GetArtwork loads an artwork by item id.
func (s *ItemService) GetArtwork(ctx context.Context, id int64) (*domain.ArtworkItem, error) {
	a, err := repo.GetArtwork(ctx, s.DB, id)
	if err != nil {
		return nil, mapItemErr(err, ErrArtworkNotFound)
	}
	return a, nil
}

// DeleteArtwork removes an artwork that no edit references.
func (s *ItemService) DeleteArtwork(ctx context.Context, id int64) error {
	return mapItemErr(repo.DeleteArtwork(ctx, s.DB, id), ErrArtworkNotFound)
}

// ---------------------------------------------------------------------------
// Humans

// CreateHuman stores a human. Both years are required.
func (s *ItemService) CreateHuman(ctx context.Context, h *domain.HumanItem) error {
	if h == nil || h.ItemID <= 0 || h.YearOfBirth == nil || h.YearOfDeath == nil {
		return ErrInvalidItem
	}
	return mapItemErr(repo.CreateHuman(ctx, s.DB, h), ErrHumanNotFound)
}

// GetHuman loads a human by item id.
func (s *ItemService) GetHuman(ctx context.Context, id int64) (*domain.HumanItem, error) {
	h, err := repo.GetHuman(ctx, s.DB, id)
	if err != nil {
		return nil, mapItemErr(err, ErrHumanNotFound)
	}
	return h, nil
}

// ---------------------------------------------------------------------------
// Helpers

// mapItemErr converts repo errors into item sentinels. notFound is the
// sentinel used for a missing row of the entity at hand.
func mapItemErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err):
		return notFound
	case isDuplicate(err):
		return ErrDuplicateItem
	case errors.Is(err, repo.ErrForeignKey):
		return ErrItemInUse
	case errors.Is(err, repo.ErrRequiredField), errors.Is(err, repo.ErrCheck):
		return errors.Join(ErrInvalidItem, err)
	}
	return err
}

func altStrings(rows []domain.DepictsItemAltLabel) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.AltLabel
	}
	return out
}
