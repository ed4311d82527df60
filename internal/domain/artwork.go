package domain

import "gorm.io/datatypes"

// ArtworkItem is a painting or other artwork on Wikidata that edits attach
// depicts statements to.
type ArtworkItem struct {
	ItemID int64          `json:"item_id" gorm:"primaryKey;autoIncrement:false;check:item_id > 0"`
	Label  string         `json:"label"   gorm:"type:text"`
	Entity datatypes.JSON `json:"entity,omitempty"`
}

// TableName returns the database table name for ArtworkItem.
func (ArtworkItem) TableName() string { return "artwork" }

// QID returns the Wikidata identifier of the artwork.
func (a ArtworkItem) QID() string { return QID(a.ItemID) }
