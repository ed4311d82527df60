package domain

// Language maps a Wikimedia language code to its Wikidata item and English
// display label. There is exactly one row per code.
type Language struct {
	ItemID                int64  `json:"item_id"                 gorm:"primaryKey;autoIncrement:false;check:item_id > 0"`
	WikimediaLanguageCode string `json:"wikimedia_language_code" gorm:"type:varchar(32);not null;uniqueIndex:ux_language_code"`
	EnLabel               string `json:"en_label"                gorm:"type:text;not null"`
}

// TableName returns the database table name for Language.
func (Language) TableName() string { return "language" }

// QID returns the Wikidata identifier of the language item.
func (l Language) QID() string { return QID(l.ItemID) }
