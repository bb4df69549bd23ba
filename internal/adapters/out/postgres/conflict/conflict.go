// Package conflict recognises store errors that mean a write lost a race with
// another transaction, and turns them into errs.VersionConflictError so the
// lifecycle commands retry the whole decision.
package conflict

import (
	"errors"

	"foodfast/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Translate returns a VersionConflictError for entity/id when err is a
// unique-key collision, a serialization failure or a deadlock; any other error
// is returned unchanged.
func Translate(err error, entity string, id any, version int) error {
	if err == nil || !IsRetryable(err) {
		return err
	}
	return errs.NewVersionConflictErrorWithCause(entity, id, version, err)
}

// IsRetryable reports whether err is a transient write conflict.
func IsRetryable(err error) bool {
	if errors.Is(err, errs.ErrVersionConflict) || IsDuplicate(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}

	return false
}

// IsDuplicate reports whether err is a primary or unique key collision.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
