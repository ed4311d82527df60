package domain

// HumanItem records the life span of a person item. Both years are required
// by the schema; the pointers only exist so a missing value reaches the
// store as NULL and is rejected there.
type HumanItem struct {
	ItemID      int64 `json:"item_id"       gorm:"primaryKey;autoIncrement:false;check:item_id > 0"`
	YearOfBirth *int  `json:"year_of_birth" gorm:"not null"`
	YearOfDeath *int  `json:"year_of_death" gorm:"not null"`
}

// TableName returns the database table name for HumanItem.
func (HumanItem) TableName() string { return "human" }

// QID returns the Wikidata identifier of the person.
func (h HumanItem) QID() string { return QID(h.ItemID) }

// AgeAtDeath returns year_of_death - year_of_birth. The result may be zero or
// negative if the data says so. ok is false when either year is unset.
func (h HumanItem) AgeAtDeath() (age int, ok bool) {
	if h.YearOfBirth == nil || h.YearOfDeath == nil {
		return 0, false
	}
	return *h.YearOfDeath - *h.YearOfBirth, true
}
