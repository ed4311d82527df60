package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()
	for _, a := range []domain.ArtworkItem{{ItemID: 10, Label: "Night Watch"}, {ItemID: 11, Label: "Mona Lisa"}} {
		a := a
		if err := repo.CreateArtwork(ctx, db, &a); err != nil {
			t.Fatalf("seed artwork: %v", err)
		}
	}
	for _, d := range []domain.DepictsItem{{ItemID: 20, Label: "musket"}, {ItemID: 21, Label: "woman"}} {
		d := d
		if err := repo.CreateDepictsItem(ctx, db, &d); err != nil {
			t.Fatalf("seed depicts: %v", err)
		}
	}
}

func TestRecordEdit(t *testing.T) {
	r, db := newRealRouter(t)
	seedCatalog(t, db)

	wantError(t, do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "Q10", Depicts: "Q20"}), http.StatusUnauthorized, ErrCodeUnauthorized)

	created := editCounter("created")
	dup := editCounter("duplicate")

	w := do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "Q10", Depicts: "Q20", LastRevID: int64Ptr(100)}, "X-Wiki-User", "Jane Doe")
	if w.Code != http.StatusCreated {
		t.Fatalf("record = %d; body=%s", w.Code, w.Body.String())
	}
	e := decode[EditResponse](t, w)
	if e.ArtworkQID != "Q10" || e.DepictsQID != "Q20" || e.UserWikidataURL != "https://www.wikidata.org/wiki/User:Jane_Doe" {
		t.Fatalf("unexpected edit %+v", e)
	}
	if e.Depicts == nil || e.Depicts.Count != 1 || e.Artwork == nil || e.Artwork.Label != "Night Watch" {
		t.Fatalf("expected attached items with bumped count, got %+v", e)
	}

	wantError(t, do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "Q10", Depicts: "Q20", LastRevID: int64Ptr(200)}, "X-Wiki-User", "Jane Doe"),
		http.StatusConflict, ErrCodeDuplicateEdit)
	stored, err := repo.GetEdit(context.Background(), db, "Jane Doe", 10, 20)
	if err != nil || stored.LastRevID == nil || *stored.LastRevID != 100 {
		t.Fatalf("first edit must stay intact: %+v, %v", stored, err)
	}

	if got := editCounter("created"); got != created+1 {
		t.Fatalf("created counter = %v; want %v", got, created+1)
	}
	if got := editCounter("duplicate"); got != dup+1 {
		t.Fatalf("duplicate counter = %v; want %v", got, dup+1)
	}

	wantError(t, do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "Q99", Depicts: "Q20"}, "X-Wiki-User", "Jane Doe"), http.StatusNotFound, ErrCodeNotFound)
	wantError(t, do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "Q10", Depicts: "Q99"}, "X-Wiki-User", "Jane Doe"), http.StatusNotFound, ErrCodeNotFound)
	wantError(t, do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "painting", Depicts: "Q20"}, "X-Wiki-User", "Jane Doe"), http.StatusBadRequest, ErrCodeInvalidQID)
	wantError(t, do(r, http.MethodPost, "/edits", `{"artwork":"Q10"}`, "X-Wiki-User", "Jane Doe"), http.StatusBadRequest, ErrCodeBadRequest)
}

func TestListEdits_FiltersPagingAndETag(t *testing.T) {
	r, db := newRealRouter(t)
	seedCatalog(t, db)

	for _, rec := range []struct{ user, art, dep string }{
		{"Jane", "Q10", "Q20"},
		{"Jane", "Q11", "Q21"},
		{"Bob", "Q10", "Q21"},
	} {
		if w := do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: rec.art, Depicts: rec.dep}, "X-Wiki-User", rec.user); w.Code != http.StatusCreated {
			t.Fatalf("seed edit: %d %s", w.Code, w.Body.String())
		}
		time.Sleep(2 * time.Millisecond)
	}

	w := do(r, http.MethodGet, "/edits?page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	page := decode[ListEditsResponse](t, w)
	if page.Pagination.Total != 3 || page.Pagination.TotalPages != 2 || !page.Pagination.HasNext || len(page.Edits) != 2 {
		t.Fatalf("pagination = %+v (%d edits)", page.Pagination, len(page.Edits))
	}
	if page.Edits[0].Username != "Bob" {
		t.Fatalf("expected newest first, got %s", page.Edits[0].Username)
	}

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	if w := do(r, http.MethodGet, "/edits?page_size=2", nil, "If-None-Match", etag); w.Code != http.StatusNotModified {
		t.Fatalf("conditional GET = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/edits?page_size=2&page=2", nil, "If-None-Match", etag); w.Code != http.StatusOK {
		t.Fatalf("another page must not match the ETag, got %d", w.Code)
	}

	byUser := decode[ListEditsResponse](t, do(r, http.MethodGet, "/users/Jane/edits", nil))
	if byUser.Pagination.Total != 2 {
		t.Fatalf("user edits = %d", byUser.Pagination.Total)
	}
	byArt := decode[ListEditsResponse](t, do(r, http.MethodGet, "/artworks/Q10/edits", nil))
	if byArt.Pagination.Total != 2 {
		t.Fatalf("artwork edits = %d", byArt.Pagination.Total)
	}
	filtered := decode[ListEditsResponse](t, do(r, http.MethodGet, "/edits?username=Jane&depicts=Q21", nil))
	if filtered.Pagination.Total != 1 || filtered.Edits[0].ArtworkQID != "Q11" {
		t.Fatalf("filtered = %+v", filtered)
	}
	empty := decode[ListEditsResponse](t, do(r, http.MethodGet, "/users/Nobody/edits", nil))
	if empty.Edits == nil || len(empty.Edits) != 0 || empty.Pagination.TotalPages != 0 {
		t.Fatalf("empty listing = %+v", empty)
	}

	wantError(t, do(r, http.MethodGet, "/edits?artwork=x", nil), http.StatusBadRequest, ErrCodeInvalidQID)
	wantError(t, do(r, http.MethodGet, "/artworks/x/edits", nil), http.StatusBadRequest, ErrCodeInvalidQID)

	// A new edit changes the tag.
	do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "Q11", Depicts: "Q20"}, "X-Wiki-User", "Bob")
	if w := do(r, http.MethodGet, "/edits?page_size=2", nil, "If-None-Match", etag); w.Code != http.StatusOK {
		t.Fatalf("stale ETag should miss, got %d", w.Code)
	}
}

type stubEdits struct {
	EditService
	statsErr, listErr error
}

func (s stubEdits) Stats(context.Context, repo.EditFilter) (int64, *time.Time, error) {
	return 0, nil, s.statsErr
}

func (s stubEdits) ListPage(context.Context, repo.EditFilter, int, int) ([]domain.Edit, int64, error) {
	return nil, 0, s.listErr
}

func TestListEdits_StatsFailureSkipsETag(t *testing.T) {
	r := newTestRouter(New(Services{Edits: stubEdits{statsErr: errors.New("stats down")}}, 0))
	w := do(r, http.MethodGet, "/edits", nil)
	if w.Code != http.StatusOK || w.Header().Get("ETag") != "" {
		t.Fatalf("status %d etag %q", w.Code, w.Header().Get("ETag"))
	}

	r = newTestRouter(New(Services{Edits: stubEdits{listErr: errors.New("list down")}}, 0))
	wantError(t, do(r, http.MethodGet, "/edits", nil), http.StatusInternalServerError, ErrCodeListFailed)
}

func TestListEdits_ETagIsWellFormedForAnyUsername(t *testing.T) {
	r, db := newRealRouter(t)
	seedCatalog(t, db)

	quoted := `Jane "JD" Doe`
	if w := do(r, http.MethodPost, "/edits", RecordEditRequest{Artwork: "Q10", Depicts: "Q20"}, "X-Wiki-User", quoted); w.Code != http.StatusCreated {
		t.Fatalf("seed edit: %d %s", w.Code, w.Body.String())
	}

	wellFormed := regexp.MustCompile(`^W/"[^"]*"$`)
	w := do(r, http.MethodGet, "/users/"+url.PathEscape(quoted)+"/edits", nil)
	etag := w.Header().Get("ETag")
	if w.Code != http.StatusOK || !wellFormed.MatchString(etag) {
		t.Fatalf("status %d, malformed ETag %q", w.Code, etag)
	}
	if w := do(r, http.MethodGet, "/users/"+url.PathEscape(quoted)+"/edits", nil, "If-None-Match", etag); w.Code != http.StatusNotModified {
		t.Fatalf("conditional GET = %d", w.Code)
	}

	other := do(r, http.MethodGet, "/users/Jane/edits", nil).Header().Get("ETag")
	if other == etag || !wellFormed.MatchString(other) {
		t.Fatalf("per-user tags must differ: %q vs %q", other, etag)
	}
}

func TestQueryEndpoints(t *testing.T) {
	r, db := newRealRouter(t)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tmpl := "query/artworks.sparql"

	ok1 := &domain.WikidataQuery{StartTime: start, SPARQLQuery: "SELECT 1", QueryTemplate: &tmpl}
	if err := repo.StartQuery(ctx, db, ok1); err != nil {
		t.Fatalf("start: %v", err)
	}
	status := 200
	if err := repo.FinishQuery(ctx, db, ok1.ID, repo.QueryOutcome{EndTime: start.Add(1050 * time.Millisecond), StatusCode: &status}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	open := &domain.WikidataQuery{StartTime: start.Add(time.Minute), SPARQLQuery: "SELECT 2"}
	if err := repo.StartQuery(ctx, db, open); err != nil {
		t.Fatalf("start: %v", err)
	}

	got := decode[QueryResponse](t, do(r, http.MethodGet, fmt.Sprintf("/queries/%d", ok1.ID), nil))
	if got.DisplaySeconds == nil || *got.DisplaySeconds != "1.1" || got.Template == nil || *got.Template != "artworks" || got.Bad {
		t.Fatalf("unexpected derived values %+v", got)
	}
	if got.DurationMS == nil || *got.DurationMS != 1050 {
		t.Fatalf("duration = %v", got.DurationMS)
	}

	pending := decode[QueryResponse](t, do(r, http.MethodGet, fmt.Sprintf("/queries/%d", open.ID), nil))
	if pending.DisplaySeconds != nil || pending.DurationMS != nil || pending.Template != nil || pending.Bad {
		t.Fatalf("open query must have no derived values: %+v", pending)
	}

	list := decode[ListQueriesResponse](t, do(r, http.MethodGet, "/queries", nil))
	if list.Pagination.Total != 2 || list.Queries[0].ID != open.ID {
		t.Fatalf("list = %+v", list)
	}

	wantError(t, do(r, http.MethodGet, "/queries/0", nil), http.StatusBadRequest, ErrCodeBadRequest)
	wantError(t, do(r, http.MethodGet, "/queries/abc", nil), http.StatusBadRequest, ErrCodeBadRequest)
	wantError(t, do(r, http.MethodGet, "/queries/99", nil), http.StatusNotFound, ErrCodeNotFound)
}

// editCounter reads depicts_edit_submissions_total{outcome} from the default
// registry.
func editCounter(outcome string) float64 {
	mfs, _ := prometheus.DefaultGatherer.Gather()
	for _, mf := range mfs {
		if mf.GetName() != "depicts_edit_submissions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func int64Ptr(v int64) *int64 { return &v }
