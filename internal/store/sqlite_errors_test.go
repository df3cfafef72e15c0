package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/drivemirror/drivemirror/internal/logger"
)

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	classifier := NewSQLiteErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{
			name: "nil error",
			err:  nil,
			want: NonRetryable,
		},
		{
			name: "busy database",
			err:  sqlite3.Error{Code: sqlite3.ErrBusy},
			want: Retryable,
		},
		{
			name: "locked database",
			err:  sqlite3.Error{Code: sqlite3.ErrLocked},
			want: Retryable,
		},
		{
			name: "wrapped busy database",
			err:  fmt.Errorf("apply batch: %w", sqlite3.Error{Code: sqlite3.ErrBusy}),
			want: Retryable,
		},
		{
			name: "constraint violation",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint},
			want: NonRetryable,
		},
		{
			name: "non-driver error",
			err:  errors.New("disk exploded"),
			want: NonRetryable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}

func TestWrapStoreError(t *testing.T) {
	db := &DB{
		errorClassifier: NewSQLiteErrorClassifier(),
		logger:          logger.Nop(),
	}

	t.Run("busy error maps to store busy sentinel", func(t *testing.T) {
		err := db.wrapStoreError(sqlite3.Error{Code: sqlite3.ErrBusy}, ErrExecutingQuery)
		assert.ErrorIs(t, err, ErrStoreBusy)
		assert.NotErrorIs(t, err, ErrExecutingQuery)
	})

	t.Run("other errors keep the fallback sentinel", func(t *testing.T) {
		cause := errors.New("no such table")
		err := db.wrapStoreError(cause, ErrExecutingQuery)
		assert.ErrorIs(t, err, ErrExecutingQuery)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, db.wrapStoreError(nil, ErrExecutingQuery))
	})
}
