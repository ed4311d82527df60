package domain

import (
	"time"

	"gorm.io/datatypes"
)

// User is a Wikidata account that has signed in to the tool. ID is the
// Wikidata user id supplied by the caller.
type User struct {
	ID        int64          `json:"id"         gorm:"primaryKey;autoIncrement:false;check:id > 0"`
	Username  string         `json:"username"   gorm:"type:varchar(255);not null;uniqueIndex:ux_user_username"`
	Options   datatypes.JSON `json:"options,omitempty"`
	FirstSeen time.Time      `json:"first_seen" gorm:"not null;autoCreateTime"`
	IsAdmin   bool           `json:"is_admin"   gorm:"not null;default:false"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "user" }

// WikidataURL returns the user's Wikidata user page.
func (u User) WikidataURL() string { return UserWikidataURL(u.Username) }
