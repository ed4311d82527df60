// Package domain defines the persistence models for artworks, depicted
// subjects, humans, languages, users, edits and the outbound query log.
// These types are mapped with GORM and form the core data layer of the
// depicts application. Derived values (QIDs, URLs, durations) are computed
// in-process from loaded fields and never persisted.
package domain

import (
	"errors"
	"strconv"
	"strings"
)

// WikidataUserPrefix is the base of every Wikidata user page link.
const WikidataUserPrefix = "https://www.wikidata.org/wiki/User:"

// ErrInvalidQID is returned by ParseQID for malformed identifiers.
var ErrInvalidQID = errors.New("invalid item identifier")

// QID formats an item id as its canonical Wikidata identifier ("Q" + id).
func QID(id int64) string {
	return "Q" + strconv.FormatInt(id, 10)
}

// ParseQID accepts "Q123", "q123" or "123" and returns the numeric id.
// Zero and negative ids are rejected.
func ParseQID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if len(s) > 0 && (s[0] == 'Q' || s[0] == 'q') {
		s = s[1:]
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidQID
	}
	return id, nil
}

// UserWikidataURL returns the user page URL for username: spaces become
// underscores and the result is percent-encoded.
func UserWikidataURL(username string) string {
	return WikidataUserPrefix + quote(strings.ReplaceAll(username, " ", "_"))
}

// quote percent-encodes every byte outside ALPHA / DIGIT / "_.-~/".
// url.PathEscape leaves sub-delims such as ':' and '@' intact, which would
// produce different links for usernames containing them.
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '_', c == '.', c == '-', c == '~', c == '/':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
