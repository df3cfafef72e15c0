package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/internal/testutil"
	"github.com/drivemirror/drivemirror/models"
)

func newMockRepo(t *testing.T) (NodeRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{
		DB:              conn,
		errorClassifier: NewSQLiteErrorClassifier(),
		logger:          logger.Nop(),
	}
	return NewNodeRepository(db, logger.Nop()), mock
}

func TestCursor_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getMetadataValue)).
		WithArgs(metadataCursorKey).
		WillReturnError(errors.New("no such table: metadata"))

	_, err := repo.Cursor(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCursor_BusyDatabase(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getMetadataValue)).
		WithArgs(metadataCursorKey).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})

	_, err := repo.Cursor(context.Background())
	assert.ErrorIs(t, err, ErrStoreBusy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUploadedSize_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnError(errors.New("no such table: nodes"))

	_, err := repo.GetUploadedSize(context.Background(), time.Unix(0, 0), time.Unix(100, 0))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyChanges_BeginError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("cannot start a transaction"))

	err := repo.ApplyChanges(context.Background(), nil, "5")
	assert.ErrorIs(t, err, ErrBeginningTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyChanges_StatementError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertNode)).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	change := models.UpdateChange(testutil.NewFolder("d1", "d1", "root"))
	err := repo.ApplyChanges(context.Background(), []models.Change{change}, "5")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyChanges_CommitError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertMetadataValue)).
		WithArgs(metadataCursorKey, "5").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk i/o error"))

	err := repo.ApplyChanges(context.Background(), nil, "5")
	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}
