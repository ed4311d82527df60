package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/depicts-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestStartAndFinishQuery(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	q := &domain.WikidataQuery{
		StartTime:     start,
		SPARQLQuery:   "SELECT ?item WHERE { ?item wdt:P31 wd:Q3305213 }",
		QueryTemplate: strPtr("query/artworks.sparql"),
		Endpoint:      strPtr("https://query.wikidata.org/bigdata/namespace/wdq/sparql"),
	}
	if err := StartQuery(ctx, db, q); err != nil {
		t.Fatalf("StartQuery: %v", err)
	}
	if q.ID == 0 {
		t.Fatalf("expected generated id")
	}

	got, err := GetQuery(ctx, db, q.ID)
	if err != nil {
		t.Fatalf("GetQuery: %v", err)
	}
	if _, ok := got.Duration(); ok {
		t.Fatalf("duration must be absent before finish")
	}

	status, rows := 200, 12
	if err := FinishQuery(ctx, db, q.ID, QueryOutcome{EndTime: start.Add(1050 * time.Millisecond), StatusCode: &status, RowCount: &rows}); err != nil {
		t.Fatalf("FinishQuery: %v", err)
	}
	got, _ = GetQuery(ctx, db, q.ID)
	if s, ok := got.DisplaySeconds(); !ok || s != "1.1" {
		t.Fatalf("DisplaySeconds = %q, %v", s, ok)
	}
	if tpl, _ := got.Template(); tpl != "artworks" {
		t.Fatalf("Template = %q", tpl)
	}
	if got.Bad() || got.RowCount == nil || *got.RowCount != 12 {
		t.Fatalf("unexpected outcome: %+v", got)
	}

	if err := FinishQuery(ctx, db, 9999, QueryOutcome{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStartQuery_DefaultsStartTime(t *testing.T) {
	db := newTestDB(t, true)
	q := &domain.WikidataQuery{SPARQLQuery: "ASK {}"}
	if err := StartQuery(context.Background(), db, q); err != nil {
		t.Fatalf("StartQuery: %v", err)
	}
	if q.StartTime.IsZero() || time.Since(q.StartTime) > time.Minute {
		t.Fatalf("StartTime not defaulted: %v", q.StartTime)
	}
}

func TestListCountAndPruneQueries(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		q := &domain.WikidataQuery{StartTime: base.Add(time.Duration(i) * time.Hour), SPARQLQuery: "ASK {}"}
		if err := StartQuery(ctx, db, q); err != nil {
			t.Fatalf("StartQuery %d: %v", i, err)
		}
	}

	n, err := CountQueries(ctx, db)
	if err != nil || n != 4 {
		t.Fatalf("CountQueries = %d, %v", n, err)
	}
	page, err := ListQueriesPage(ctx, db, 0, 2)
	if err != nil || len(page) != 2 || !page[0].StartTime.Equal(base.Add(3*time.Hour)) {
		t.Fatalf("ListQueriesPage: %+v, %v", page, err)
	}

	deleted, err := DeleteQueriesBefore(ctx, db, base.Add(2*time.Hour))
	if err != nil || deleted != 2 {
		t.Fatalf("DeleteQueriesBefore = %d, %v", deleted, err)
	}
	n, _ = CountQueries(ctx, db)
	if n != 2 {
		t.Fatalf("expected 2 remaining, got %d", n)
	}
}
