// Package repo implements the data persistence layer for domain entities,
// backed by GORM.
//
// Error semantics:
//   - Missing rows surface as ErrNotFound (an alias of gorm.ErrRecordNotFound).
//   - Constraint violations are wrapped with one of ErrDuplicate,
//     ErrForeignKey, ErrRequiredField or ErrCheck. The driver error stays in
//     the chain, so errors.Is/As still see it.
//   - Exactly-one lookups fail with ErrNoResult or ErrMultipleResults, both of
//     which wrap ErrCardinality and are distinct from ErrNotFound.
package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

var (
	// ErrDuplicate marks primary key and unique index violations.
	ErrDuplicate = errors.New("duplicate")
	// ErrForeignKey marks a reference to a row that does not exist, or a
	// delete of a row that is still referenced.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrRequiredField marks a NOT NULL violation.
	ErrRequiredField = errors.New("required field missing")
	// ErrCheck marks a CHECK constraint violation (e.g. item_id <= 0).
	ErrCheck = errors.New("check constraint violation")

	// ErrCardinality is the parent of the exactly-one lookup failures.
	ErrCardinality = errors.New("expected exactly one row")
	// ErrNoResult is returned when an exactly-one lookup matched nothing.
	ErrNoResult = fmt.Errorf("%w: no rows", ErrCardinality)
	// ErrMultipleResults is returned when an exactly-one lookup matched more
	// than one row.
	ErrMultipleResults = fmt.Errorf("%w: multiple rows", ErrCardinality)
)

// translate classifies driver errors. glebarez/sqlite and pgx report most
// constraint failures as plain text, so matching on the message is needed in
// addition to the gorm sentinels.
func translate(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	low := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(low, "unique constraint"),
		strings.Contains(low, "duplicate key"):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(low, "foreign key constraint"):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	case strings.Contains(low, "not null constraint"),
		strings.Contains(low, "not-null constraint"):
		return fmt.Errorf("%w: %w", ErrRequiredField, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated),
		strings.Contains(low, "check constraint"):
		return fmt.Errorf("%w: %w", ErrCheck, err)
	}
	return err
}
