package domain

import "time"

// Edit records that Username added a depicts statement (DepictsID) to an
// artwork (ArtworkID). The triple is the primary key, so the same statement
// by the same user is stored once.
//
// Fields:
//   - Timestamp: set to the insert time when left zero.
//   - LastRevID: revision id Wikidata returned for the edit, if known.
//   - Artwork / Depicts: FK associations; deleting either is restricted while
//     edits reference it.
type Edit struct {
	Username  string    `json:"username"            gorm:"primaryKey;type:varchar(255)"`
	ArtworkID int64     `json:"artwork_id"          gorm:"primaryKey;autoIncrement:false;index:idx_edit_artwork"`
	DepictsID int64     `json:"depicts_id"          gorm:"primaryKey;autoIncrement:false;index:idx_edit_depicts"`
	Timestamp time.Time `json:"timestamp"           gorm:"not null;autoCreateTime;index:idx_edit_timestamp"`
	LastRevID *int64    `json:"lastrevid,omitempty"`

	Artwork *ArtworkItem `json:"artwork,omitempty" gorm:"foreignKey:ArtworkID;references:ItemID"`
	Depicts *DepictsItem `json:"depicts,omitempty" gorm:"foreignKey:DepictsID;references:ItemID"`
}

// TableName returns the database table name for Edit.
func (Edit) TableName() string { return "edit" }

// ArtworkQID returns the Wikidata identifier of the edited artwork.
func (e Edit) ArtworkQID() string { return QID(e.ArtworkID) }

// DepictsQID returns the Wikidata identifier of the depicted item.
func (e Edit) DepictsQID() string { return QID(e.DepictsID) }

// UserPageURL returns the Wikidata user page of the editor.
func (e Edit) UserPageURL() string { return UserWikidataURL(e.Username) }
