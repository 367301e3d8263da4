package storage

import (
	"errors"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when an operation targets an id with no
	// matching row.
	ErrNotFound = errors.New("expense not found")

	// ErrNoFields is returned by Update when the patch carries no fields.
	ErrNoFields = errors.New("no fields to update")
)

// Kind is the closed classification of storage failures. Callers branch on
// kinds instead of matching error strings.
type Kind int

const (
	KindOther Kind = iota
	KindReadOnly
	KindNotFound
	KindConstraint
)

// KindOf classifies err by unwrapping to the driver error and inspecting
// its primary result code.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}

	var se *sqlite3.Error
	if errors.As(err, &se) {
		// Extended result codes carry the primary code in the low byte.
		switch se.Code() & 0xff {
		case sqlite3lib.SQLITE_READONLY, sqlite3lib.SQLITE_PERM, sqlite3lib.SQLITE_CANTOPEN:
			return KindReadOnly
		case sqlite3lib.SQLITE_CONSTRAINT:
			return KindConstraint
		}
	}

	return KindOther
}
