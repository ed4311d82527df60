package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Enforce FKs so cascades actually execute.
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&Language{}, &User{}, &ArtworkItem{}, &DepictsItem{},
		&DepictsItemAltLabel{}, &HumanItem{}, &Edit{}, &WikidataQuery{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		DepictsItem{}.TableName():         "depicts",
		DepictsItemAltLabel{}.TableName(): "depicts_alt_label",
		ArtworkItem{}.TableName():         "artwork",
		HumanItem{}.TableName():           "human",
		Language{}.TableName():            "language",
		User{}.TableName():                "user",
		Edit{}.TableName():                "edit",
		WikidataQuery{}.TableName():       "wikidata_query",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	if !m.HasIndex(&Language{}, "ux_language_code") {
		t.Fatalf("expected unique index ux_language_code on language")
	}
	if !m.HasIndex(&User{}, "ux_user_username") {
		t.Fatalf("expected unique index ux_user_username on user")
	}
	if !m.HasIndex(&Edit{}, "idx_edit_timestamp") {
		t.Fatalf("expected index idx_edit_timestamp on edit")
	}
}

func TestAltLabels_CascadeOnParentDelete(t *testing.T) {
	db := newDomainDB(t)

	item := &DepictsItem{ItemID: 42, Label: "dog"}
	item.SetAltLabels("hound", "puppy")
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("insert depicts: %v", err)
	}

	var cnt int64
	db.Model(&DepictsItemAltLabel{}).Where("item_id = ?", 42).Count(&cnt)
	if cnt != 2 {
		t.Fatalf("expected 2 alt labels saved with parent, got %d", cnt)
	}

	// Raw delete of the parent row: the FK cascade must clean up.
	if err := db.Exec("DELETE FROM depicts WHERE item_id = ?", 42).Error; err != nil {
		t.Fatalf("delete depicts: %v", err)
	}
	db.Model(&DepictsItemAltLabel{}).Where("item_id = ?", 42).Count(&cnt)
	if cnt != 0 {
		t.Fatalf("expected alt labels to cascade-delete, got count=%d", cnt)
	}
}

func TestAltLabels_DuplicateTextRejected(t *testing.T) {
	db := newDomainDB(t)
	if err := db.Create(&DepictsItem{ItemID: 7, Label: "cat"}).Error; err != nil {
		t.Fatalf("insert depicts: %v", err)
	}
	if err := db.Create(&DepictsItemAltLabel{ItemID: 7, AltLabel: "kitty"}).Error; err != nil {
		t.Fatalf("first alt label: %v", err)
	}
	if err := db.Create(&DepictsItemAltLabel{ItemID: 7, AltLabel: "kitty"}).Error; err == nil {
		t.Fatalf("expected duplicate (item_id, alt_label) to fail")
	}
}

func TestEdit_DefaultsAndCompositeKey(t *testing.T) {
	db := newDomainDB(t)
	if err := db.Create(&ArtworkItem{ItemID: 1, Label: "Mona Lisa"}).Error; err != nil {
		t.Fatalf("insert artwork: %v", err)
	}
	if err := db.Create(&DepictsItem{ItemID: 2, Label: "woman"}).Error; err != nil {
		t.Fatalf("insert depicts: %v", err)
	}

	start := time.Now().Add(-time.Minute)
	e := &Edit{Username: "Jane Doe", ArtworkID: 1, DepictsID: 2}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("insert edit: %v", err)
	}
	if e.Timestamp.Before(start) {
		t.Fatalf("timestamp not defaulted to creation time: %v", e.Timestamp)
	}

	if err := db.Create(&Edit{Username: "Jane Doe", ArtworkID: 1, DepictsID: 2}).Error; err == nil {
		t.Fatalf("expected composite key violation on duplicate edit")
	}

	// FK: unknown artwork is rejected.
	if err := db.Create(&Edit{Username: "Jane Doe", ArtworkID: 99, DepictsID: 2}).Error; err == nil {
		t.Fatalf("expected foreign key violation for unknown artwork")
	}
}

func TestHumanItem_RequiredYears(t *testing.T) {
	db := newDomainDB(t)
	born := 1853
	if err := db.Create(&HumanItem{ItemID: 5582, YearOfBirth: &born}).Error; err == nil {
		t.Fatalf("expected NOT NULL violation for missing year_of_death")
	}
	died := 1890
	if err := db.Create(&HumanItem{ItemID: 5582, YearOfBirth: &born, YearOfDeath: &died}).Error; err != nil {
		t.Fatalf("insert human: %v", err)
	}
}

func TestItemID_MustBePositive(t *testing.T) {
	db := newDomainDB(t)
	if err := db.Create(&ArtworkItem{ItemID: 0}).Error; err == nil {
		t.Fatalf("expected check constraint to reject item_id 0")
	}
}

func TestUser_Defaults(t *testing.T) {
	db := newDomainDB(t)
	u := &User{ID: 10, Username: "Example"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	var got User
	if err := db.First(&got, "id = ?", 10).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if got.IsAdmin {
		t.Fatalf("is_admin should default to false")
	}
	if got.FirstSeen.IsZero() {
		t.Fatalf("first_seen should default to creation time")
	}
	if err := db.Create(&User{ID: 11, Username: "Example"}).Error; err == nil {
		t.Fatalf("expected unique violation on username")
	}
}
