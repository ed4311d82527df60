// Package services defines the business logic for depicts items, artworks,
// humans, languages, users, edits and the outbound query log.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import (
	"errors"
	"strings"

	"github.com/tbourn/depicts-backend/internal/repo"
)

// Item-related errors.
var (
	// ErrInvalidItem is returned when an item payload fails validation
	// (non-positive id, missing required years, blank label where needed).
	ErrInvalidItem = errors.New("invalid item")

	// ErrDuplicateItem is returned when an item with the same id already exists.
	ErrDuplicateItem = errors.New("item already exists")

	// ErrItemInUse is returned when deleting an item that edits still reference.
	ErrItemInUse = errors.New("item is referenced by edits")

	// ErrArtworkNotFound indicates that the requested artwork does not exist.
	ErrArtworkNotFound = errors.New("artwork not found")

	// ErrDepictsNotFound indicates that the requested depicts item does not exist.
	ErrDepictsNotFound = errors.New("depicts item not found")

	// ErrHumanNotFound indicates that the requested human does not exist.
	ErrHumanNotFound = errors.New("human not found")
)

// Language, user, edit and query errors.
var (
	// ErrLanguageNotFound is returned when no language has the requested code.
	ErrLanguageNotFound = errors.New("language not found")

	// ErrAmbiguousLanguage is returned when several languages share a code.
	ErrAmbiguousLanguage = errors.New("language code is ambiguous")

	// ErrDuplicateLanguage is returned when a language id or code is taken.
	ErrDuplicateLanguage = errors.New("language already exists")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when a username is already bound to
	// another user id.
	ErrDuplicateUser = errors.New("username already taken")

	// ErrInvalidUser is returned for a non-positive id or blank username.
	ErrInvalidUser = errors.New("invalid user")

	// ErrDuplicateEdit is returned when the same user already recorded the
	// same depicts statement on the same artwork.
	ErrDuplicateEdit = errors.New("edit already recorded")

	// ErrInvalidEdit is returned for a blank username or non-positive ids.
	ErrInvalidEdit = errors.New("invalid edit")

	// ErrQueryNotFound indicates that the requested query log row does not exist.
	ErrQueryNotFound = errors.New("query not found")
)

// isNotFound treats repo-level not found sentinels as "not found".
func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}

// isDuplicate detects unique-constraint violations, including driver errors
// that reached the service without passing through the repo translator.
func isDuplicate(err error) bool {
	if errors.Is(err, repo.ErrDuplicate) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
