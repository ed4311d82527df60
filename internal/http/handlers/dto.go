package handlers

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/services"
)

//
// Requests
//

// CreateDepictsRequest is the payload for POST /depicts.
type CreateDepictsRequest struct {
	QID         string         `json:"qid" binding:"required" example:"Q144"`
	Label       string         `json:"label" example:"dog"`
	Description string         `json:"description" example:"domestic animal"`
	Commons     string         `json:"commons" example:"Dogs"`
	AltLabels   []string       `json:"alt_labels" example:"hound,doggy"`
	Entity      datatypes.JSON `json:"entity,omitempty" swaggertype:"object"`
}

// UpdateDepictsRequest is the payload for PUT /depicts/{qid}. Omitted fields
// keep their stored value.
type UpdateDepictsRequest struct {
	Label       *string        `json:"label"`
	Description *string        `json:"description"`
	Commons     *string        `json:"commons"`
	Count       *int           `json:"count" minimum:"0"`
	Entity      datatypes.JSON `json:"entity,omitempty" swaggertype:"object"`
}

// AltLabelsRequest replaces the alt labels of a depicts item.
type AltLabelsRequest struct {
	AltLabels []string `json:"alt_labels" binding:"required"`
}

// CreateArtworkRequest is the payload for POST /artworks.
type CreateArtworkRequest struct {
	QID    string         `json:"qid" binding:"required" example:"Q12418"`
	Label  string         `json:"label" example:"Mona Lisa"`
	Entity datatypes.JSON `json:"entity,omitempty" swaggertype:"object"`
}

// CreateHumanRequest is the payload for POST /humans.
type CreateHumanRequest struct {
	QID         string `json:"qid" binding:"required" example:"Q762"`
	YearOfBirth *int   `json:"year_of_birth" binding:"required" example:"1452"`
	YearOfDeath *int   `json:"year_of_death" binding:"required" example:"1519"`
}

// CreateLanguageRequest is the payload for POST /languages.
type CreateLanguageRequest struct {
	QID     string `json:"qid" binding:"required" example:"Q188"`
	Code    string `json:"wikimedia_language_code" binding:"required,max=32" example:"de"`
	EnLabel string `json:"en_label" binding:"required" example:"German"`
}

// EnsureUserRequest is the payload for POST /users.
type EnsureUserRequest struct {
	ID       int64  `json:"id" binding:"required,gt=0" example:"12345"`
	Username string `json:"username" binding:"required,max=255" example:"Jane Doe"`
}

// RecordEditRequest is the payload for POST /edits. The acting user comes
// from the X-Wiki-User header.
type RecordEditRequest struct {
	Artwork   string `json:"artwork" binding:"required" example:"Q12418"`
	Depicts   string `json:"depicts" binding:"required" example:"Q144"`
	LastRevID *int64 `json:"lastrevid,omitempty" example:"1234567890"`
}

//
// Responses
//

// DepictsResponse is a depicts item with its derived QID and alt labels.
type DepictsResponse struct {
	QID         string         `json:"qid" example:"Q144"`
	ItemID      int64          `json:"item_id" example:"144"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Commons     string         `json:"commons"`
	Count       int            `json:"count"`
	AltLabels   []string       `json:"alt_labels"`
	Entity      datatypes.JSON `json:"entity,omitempty" swaggertype:"object"`
}

func toDepicts(d *domain.DepictsItem) *DepictsResponse {
	if d == nil {
		return nil
	}
	return &DepictsResponse{
		QID:         d.QID(),
		ItemID:      d.ItemID,
		Label:       d.Label,
		Description: d.Description,
		Commons:     d.Commons,
		Count:       d.Count,
		AltLabels:   d.AltLabelSet(),
		Entity:      d.Entity,
	}
}

// DepictsMatchResponse is one ranked lookup hit.
type DepictsMatchResponse struct {
	DepictsResponse
	// The label or alt label that matched best
	Match string  `json:"match" example:"dog"`
	Score float64 `json:"score" example:"1"`
}

// LookupDepictsResponse wraps ranked lookup hits.
type LookupDepictsResponse struct {
	Query   string                 `json:"query"`
	Results []DepictsMatchResponse `json:"results"`
}

func toMatches(ms []services.DepictsMatch) []DepictsMatchResponse {
	out := make([]DepictsMatchResponse, 0, len(ms))
	for i := range ms {
		out = append(out, DepictsMatchResponse{
			DepictsResponse: *toDepicts(&ms[i].Item),
			Match:           ms[i].Match,
			Score:           ms[i].Score,
		})
	}
	return out
}

// ArtworkResponse is an artwork with its derived QID.
type ArtworkResponse struct {
	QID    string         `json:"qid" example:"Q12418"`
	ItemID int64          `json:"item_id" example:"12418"`
	Label  string         `json:"label"`
	Entity datatypes.JSON `json:"entity,omitempty" swaggertype:"object"`
}

func toArtwork(a *domain.ArtworkItem) *ArtworkResponse {
	if a == nil {
		return nil
	}
	return &ArtworkResponse{QID: a.QID(), ItemID: a.ItemID, Label: a.Label, Entity: a.Entity}
}

// HumanResponse is a human with the derived age at death.
type HumanResponse struct {
	QID         string `json:"qid" example:"Q762"`
	ItemID      int64  `json:"item_id" example:"762"`
	YearOfBirth *int   `json:"year_of_birth" example:"1452"`
	YearOfDeath *int   `json:"year_of_death" example:"1519"`
	AgeAtDeath  *int   `json:"age_at_death,omitempty" example:"67"`
}

func toHuman(h *domain.HumanItem) *HumanResponse {
	out := &HumanResponse{QID: h.QID(), ItemID: h.ItemID, YearOfBirth: h.YearOfBirth, YearOfDeath: h.YearOfDeath}
	if age, ok := h.AgeAtDeath(); ok {
		out.AgeAtDeath = &age
	}
	return out
}

// LanguageResponse is a Wikimedia language.
type LanguageResponse struct {
	QID     string `json:"qid" example:"Q188"`
	ItemID  int64  `json:"item_id" example:"188"`
	Code    string `json:"wikimedia_language_code" example:"de"`
	EnLabel string `json:"en_label" example:"German"`
}

func toLanguage(l *domain.Language) LanguageResponse {
	return LanguageResponse{QID: l.QID(), ItemID: l.ItemID, Code: l.WikimediaLanguageCode, EnLabel: l.EnLabel}
}

// UserResponse is a user with the derived Wikidata user page link.
type UserResponse struct {
	ID              int64          `json:"id" example:"12345"`
	Username        string         `json:"username" example:"Jane Doe"`
	UserWikidataURL string         `json:"user_wikidata_url" example:"https://www.wikidata.org/wiki/User:Jane_Doe"`
	Options         datatypes.JSON `json:"options,omitempty" swaggertype:"object"`
	FirstSeen       time.Time      `json:"first_seen"`
	IsAdmin         bool           `json:"is_admin"`
}

func toUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		UserWikidataURL: u.WikidataURL(),
		Options:         u.Options,
		FirstSeen:       u.FirstSeen,
		IsAdmin:         u.IsAdmin,
	}
}

// EditResponse is a recorded edit with derived QIDs and user page link.
type EditResponse struct {
	Username        string           `json:"username" example:"Jane Doe"`
	UserWikidataURL string           `json:"user_wikidata_url"`
	ArtworkQID      string           `json:"artwork_qid" example:"Q12418"`
	DepictsQID      string           `json:"depicts_qid" example:"Q144"`
	Timestamp       time.Time        `json:"timestamp"`
	LastRevID       *int64           `json:"lastrevid,omitempty"`
	Artwork         *ArtworkResponse `json:"artwork,omitempty"`
	Depicts         *DepictsResponse `json:"depicts,omitempty"`
}

func toEdit(e *domain.Edit) EditResponse {
	return EditResponse{
		Username:        e.Username,
		UserWikidataURL: e.UserPageURL(),
		ArtworkQID:      e.ArtworkQID(),
		DepictsQID:      e.DepictsQID(),
		Timestamp:       e.Timestamp,
		LastRevID:       e.LastRevID,
		Artwork:         toArtwork(e.Artwork),
		Depicts:         toDepicts(e.Depicts),
	}
}

// ListEditsResponse wraps a page of edits.
type ListEditsResponse struct {
	Edits      []EditResponse `json:"edits"`
	Pagination Pagination     `json:"pagination"`
}

// QueryResponse is a logged SPARQL call with its derived values.
type QueryResponse struct {
	ID            uint       `json:"id" example:"1"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	SPARQLQuery   string     `json:"sparql_query"`
	Path          *string    `json:"path,omitempty"`
	StatusCode    *int       `json:"status_code,omitempty" example:"200"`
	ErrorText     *string    `json:"error_text,omitempty"`
	QueryTemplate *string    `json:"query_template,omitempty" example:"query/artworks.sparql"`
	RowCount      *int       `json:"row_count,omitempty"`
	PageTitle     *string    `json:"page_title,omitempty"`
	Endpoint      *string    `json:"endpoint,omitempty"`

	DurationMS     *int64  `json:"duration_ms,omitempty" example:"1050"`
	DisplaySeconds *string `json:"display_seconds,omitempty" example:"1.1"`
	Template       *string `json:"template,omitempty" example:"artworks"`
	Bad            bool    `json:"bad"`
}

func toQuery(q *domain.WikidataQuery) QueryResponse {
	out := QueryResponse{
		ID:            q.ID,
		StartTime:     q.StartTime,
		EndTime:       q.EndTime,
		SPARQLQuery:   q.SPARQLQuery,
		Path:          q.Path,
		StatusCode:    q.StatusCode,
		ErrorText:     q.ErrorText,
		QueryTemplate: q.QueryTemplate,
		RowCount:      q.RowCount,
		PageTitle:     q.PageTitle,
		Endpoint:      q.Endpoint,
		Bad:           q.Bad(),
	}
	if d, ok := q.Duration(); ok {
		ms := d.Milliseconds()
		out.DurationMS = &ms
	}
	if s, ok := q.DisplaySeconds(); ok {
		out.DisplaySeconds = &s
	}
	if t, ok := q.Template(); ok {
		out.Template = &t
	}
	return out
}

// ListQueriesResponse wraps a page of logged queries.
type ListQueriesResponse struct {
	Queries    []QueryResponse `json:"queries"`
	Pagination Pagination      `json:"pagination"`
}
