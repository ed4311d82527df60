package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/depicts-backend/internal/domain"
)

func TestCreateEdit_DuplicateTripleKeepsFirst(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	seedItems(t, db, []int64{1}, []int64{2})

	rev := int64(100)
	first := &domain.Edit{Username: "Jane Doe", ArtworkID: 1, DepictsID: 2, LastRevID: &rev}
	if err := CreateEdit(ctx, db, first); err != nil {
		t.Fatalf("CreateEdit: %v", err)
	}
	if first.Timestamp.IsZero() {
		t.Fatalf("timestamp default not applied")
	}

	rev2 := int64(200)
	err := CreateEdit(ctx, db, &domain.Edit{Username: "Jane Doe", ArtworkID: 1, DepictsID: 2, LastRevID: &rev2})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := GetEdit(ctx, db, "Jane Doe", 1, 2)
	if err != nil {
		t.Fatalf("GetEdit: %v", err)
	}
	if got.LastRevID == nil || *got.LastRevID != 100 {
		t.Fatalf("first row must be intact, lastrevid=%v", got.LastRevID)
	}
	if got.Artwork == nil || got.Depicts == nil || got.Artwork.Label != "artwork 1" {
		t.Fatalf("associations not preloaded: %+v", got)
	}
	if got.ArtworkQID() != "Q1" || got.DepictsQID() != "Q2" {
		t.Fatalf("qids: %s %s", got.ArtworkQID(), got.DepictsQID())
	}
	if got.UserPageURL() != "https://www.wikidata.org/wiki/User:Jane_Doe" {
		t.Fatalf("UserPageURL = %q", got.UserPageURL())
	}
}

func TestCreateEdit_UnknownItems(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	seedItems(t, db, []int64{1}, nil)

	if err := CreateEdit(ctx, db, &domain.Edit{Username: "u", ArtworkID: 1, DepictsID: 77}); !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
	var n int64
	db.Model(&domain.Edit{}).Count(&n)
	if n != 0 {
		t.Fatalf("no edit must be stored, got %d", n)
	}
}

func TestListEditsPage_OrderAndFilter(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	seedItems(t, db, []int64{1, 2}, []int64{10})

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, e := range []domain.Edit{
		{Username: "a", ArtworkID: 1, DepictsID: 10, Timestamp: base},
		{Username: "b", ArtworkID: 1, DepictsID: 10, Timestamp: base.Add(time.Minute)},
		{Username: "a", ArtworkID: 2, DepictsID: 10, Timestamp: base.Add(2 * time.Minute)},
	} {
		e := e
		if err := CreateEdit(ctx, db, &e); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := ListEditsPage(ctx, db, EditFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("ListEditsPage: %v", err)
	}
	if len(all) != 3 || all[0].ArtworkID != 2 || all[2].Username != "a" || all[2].ArtworkID != 1 {
		t.Fatalf("unexpected order: %+v", all)
	}

	page, _ := ListEditsPage(ctx, db, EditFilter{}, 1, 1)
	if len(page) != 1 || page[0].Username != "b" {
		t.Fatalf("unexpected page: %+v", page)
	}

	byUser, _ := ListEditsPage(ctx, db, EditFilter{Username: "a"}, 0, 10)
	if len(byUser) != 2 {
		t.Fatalf("user filter: %d rows", len(byUser))
	}
	n, err := CountEdits(ctx, db, EditFilter{ArtworkID: 1})
	if err != nil || n != 2 {
		t.Fatalf("CountEdits = %d, %v", n, err)
	}

	if err := DeleteEdit(ctx, db, "b", 1, 10); err != nil {
		t.Fatalf("DeleteEdit: %v", err)
	}
	if err := DeleteEdit(ctx, db, "b", 1, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := GetEdit(ctx, db, "b", 1, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
