package domain

import (
	"strconv"
	"strings"
	"time"
)

// WikidataQuery is an audit row for one outbound SPARQL call. It is written
// when the call is dispatched and completed once the response (or error)
// arrives, so EndTime is nil while the call is in flight.
type WikidataQuery struct {
	ID            uint       `json:"id"                       gorm:"primaryKey;autoIncrement"`
	StartTime     time.Time  `json:"start_time"               gorm:"not null;index:idx_query_start"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	SPARQLQuery   string     `json:"sparql_query"             gorm:"column:sparql_query;type:text"`
	Path          *string    `json:"path,omitempty"           gorm:"type:text"`
	StatusCode    *int       `json:"status_code,omitempty"`
	ErrorText     *string    `json:"error_text,omitempty"     gorm:"type:text"`
	QueryTemplate *string    `json:"query_template,omitempty" gorm:"type:text"`
	RowCount      *int       `json:"row_count,omitempty"`
	PageTitle     *string    `json:"page_title,omitempty"     gorm:"type:text"`
	Endpoint      *string    `json:"endpoint,omitempty"       gorm:"type:text"`
}

// TableName returns the database table name for WikidataQuery.
func (WikidataQuery) TableName() string { return "wikidata_query" }

// Duration is EndTime - StartTime; ok is false until EndTime is set.
func (q WikidataQuery) Duration() (d time.Duration, ok bool) {
	if q.EndTime == nil {
		return 0, false
	}
	return q.EndTime.Sub(q.StartTime), true
}

// DisplaySeconds formats Duration in seconds with one decimal place,
// rounding half away from zero ("1.1" for 1.05s).
func (q WikidataQuery) DisplaySeconds() (string, bool) {
	d, ok := q.Duration()
	if !ok {
		return "", false
	}
	return formatTenths(d), true
}

// Template returns QueryTemplate without a leading "query/" and a trailing
// ".sparql"; ok is false when no template was recorded.
func (q WikidataQuery) Template() (string, bool) {
	if q.QueryTemplate == nil {
		return "", false
	}
	t := strings.TrimPrefix(*q.QueryTemplate, "query/")
	return strings.TrimSuffix(t, ".sparql"), true
}

// Bad reports whether a status code was recorded and it is not 200.
func (q WikidataQuery) Bad() bool {
	return q.StatusCode != nil && *q.StatusCode != 200
}

// formatTenths renders d in seconds with one decimal using integer
// arithmetic, so no binary float rounding leaks into the output.
func formatTenths(d time.Duration) string {
	const tenth = 100 * time.Millisecond
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	n := int64((d + tenth/2) / tenth)
	if n == 0 {
		sign = ""
	}
	return sign + strconv.FormatInt(n/10, 10) + "." + strconv.FormatInt(n%10, 10)
}
