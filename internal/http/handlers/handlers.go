package handlers

import (
	"context"
	"time"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ItemService manages cached Wikidata items and depicts lookup.
type ItemService interface {
	CreateDepicts(ctx context.Context, d *domain.DepictsItem) error
	GetDepicts(ctx context.Context, id int64) (*domain.DepictsItem, error)
	UpdateDepicts(ctx context.Context, d *domain.DepictsItem) error
	SetAltLabels(ctx context.Context, id int64, labels []string) error
	DeleteDepicts(ctx context.Context, id int64) error
	// LookupDepicts returns at most limit items matching term, best first.
	LookupDepicts(ctx context.Context, term string, limit int) ([]services.DepictsMatch, error)

	CreateArtwork(ctx context.Context, a *domain.ArtworkItem) error
	GetArtwork(ctx context.Context, id int64) (*domain.ArtworkItem, error)
	DeleteArtwork(ctx context.Context, id int64) error

	CreateHuman(ctx context.Context, h *domain.HumanItem) error
	GetHuman(ctx context.Context, id int64) (*domain.HumanItem, error)
}

// LanguageService manages Wikimedia languages.
type LanguageService interface {
	Create(ctx context.Context, l *domain.Language) error
	// ByCode expects exactly one language with code.
	ByCode(ctx context.Context, code string) (*domain.Language, error)
	List(ctx context.Context) ([]domain.Language, error)
}

// UserService registers and looks up Wikidata users.
type UserService interface {
	// Ensure returns the user, creating it on first sight.
	Ensure(ctx context.Context, id int64, username string) (*domain.User, bool, error)
	Get(ctx context.Context, username string) (*domain.User, error)
}

// EditService records and lists depicts edits.
type EditService interface {
	Record(ctx context.Context, username string, artworkID, depictsID int64, lastRevID *int64) (*domain.Edit, error)
	ListPage(ctx context.Context, f repo.EditFilter, page, pageSize int) ([]domain.Edit, int64, error)
	// Stats feeds the weak ETag of edit listings.
	Stats(ctx context.Context, f repo.EditFilter) (int64, *time.Time, error)
}

// QueryService reads the SPARQL query log.
type QueryService interface {
	ListPage(ctx context.Context, page, pageSize int) ([]domain.WikidataQuery, int64, error)
	Get(ctx context.Context, id uint) (*domain.WikidataQuery, error)
}

//
// Handler wiring
//

// Services bundles the application services the handlers call.
type Services struct {
	Items     ItemService
	Languages LanguageService
	Users     UserService
	Edits     EditService
	Queries   QueryService
}

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	items     ItemService
	languages LanguageService
	users     UserService
	edits     EditService
	queries   QueryService

	maxLookup int
}

// New binds handlers to svc. maxLookup caps the limit parameter of depicts
// lookups; values below 1 fall back to 20.
func New(svc Services, maxLookup int) *Handlers {
	if maxLookup < 1 {
		maxLookup = 20
	}
	return &Handlers{
		items:     svc.Items,
		languages: svc.Languages,
		users:     svc.Users,
		edits:     svc.Edits,
		queries:   svc.Queries,
		maxLookup: maxLookup,
	}
}
