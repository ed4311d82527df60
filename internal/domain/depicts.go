package domain

import (
	"sort"
	"strings"

	"gorm.io/datatypes"
)

// DepictsItem is a Wikidata item that artworks can depict. ItemID is the
// external numeric id and is never generated by the store.
//
// Fields:
//   - ItemID: Wikidata numeric id (primary key, > 0, immutable once created).
//   - Label / Description: English label and description at import time.
//   - Commons: Wikimedia Commons category name, when the item has one.
//   - Count: how often the item is used as a depicts value.
//   - Entity: raw Wikidata entity JSON.
//   - AltLabels: owned alternate labels; removed together with the item.
type DepictsItem struct {
	ItemID      int64          `json:"item_id"     gorm:"primaryKey;autoIncrement:false;check:item_id > 0"`
	Label       string         `json:"label"       gorm:"type:text"`
	Description string         `json:"description" gorm:"type:text"`
	Commons     string         `json:"commons"     gorm:"type:text"`
	Count       int            `json:"count"       gorm:"not null;default:0"`
	Entity      datatypes.JSON `json:"entity,omitempty"`

	AltLabels []DepictsItemAltLabel `json:"-" gorm:"foreignKey:ItemID;references:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for DepictsItem.
func (DepictsItem) TableName() string { return "depicts" }

// QID returns the Wikidata identifier of the item.
func (d DepictsItem) QID() string { return QID(d.ItemID) }

// AltLabelSet returns the sorted alternate label strings of the loaded
// AltLabels collection.
func (d DepictsItem) AltLabelSet() []string {
	out := make([]string, 0, len(d.AltLabels))
	seen := make(map[string]struct{}, len(d.AltLabels))
	for _, a := range d.AltLabels {
		if _, dup := seen[a.AltLabel]; dup {
			continue
		}
		seen[a.AltLabel] = struct{}{}
		out = append(out, a.AltLabel)
	}
	sort.Strings(out)
	return out
}

// SetAltLabels replaces the in-memory alt label collection with labels,
// dropping blanks and duplicates. Nothing is written until the item is saved.
func (d *DepictsItem) SetAltLabels(labels ...string) {
	d.AltLabels = NewAltLabels(d.ItemID, labels...)
}

// DepictsItemAltLabel is an alternate label of a DepictsItem, keyed by
// (item_id, alt_label).
type DepictsItemAltLabel struct {
	ItemID   int64  `json:"item_id"   gorm:"primaryKey;autoIncrement:false"`
	AltLabel string `json:"alt_label" gorm:"primaryKey;type:text"`
}

// TableName returns the database table name for DepictsItemAltLabel.
func (DepictsItemAltLabel) TableName() string { return "depicts_alt_label" }

// NewAltLabels builds alt label rows for itemID. Labels are trimmed; empty
// and repeated labels are skipped while preserving first-seen order.
func NewAltLabels(itemID int64, labels ...string) []DepictsItemAltLabel {
	out := make([]DepictsItemAltLabel, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, DepictsItemAltLabel{ItemID: itemID, AltLabel: l})
	}
	return out
}
