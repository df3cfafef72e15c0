package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by
// [SQLiteErrorClassifier.Classify]. It indicates whether a failed database
// operation should be retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, syntax errors, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again. SQLite reports a busy or locked database when a concurrent
	// transaction holds the file; the losing side gets its turn later.
	Retryable
)

// SQLiteErrorClassifier maps go-sqlite3 driver errors to an
// [ErrorClassification]. SQLite enforces single-writer/multi-reader locking
// on the store file; instead of blocking silently, the driver surfaces
// SQLITE_BUSY / SQLITE_LOCKED, which callers of this package observe as the
// retryable [ErrStoreBusy].
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements the classification contract. If err is nil or is not
// a go-sqlite3 driver error, [NonRetryable] is returned.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return Retryable
		}
	}

	return NonRetryable
}

// wrapStoreError attaches the domain sentinel matching a driver error:
// busy/locked conditions become [ErrStoreBusy], everything else is wrapped
// with the supplied fallback sentinel.
func (db *DB) wrapStoreError(err error, fallback error) error {
	if err == nil {
		return nil
	}
	if db.errorClassifier.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStoreBusy, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
