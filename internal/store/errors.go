package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNodeNotFound is returned when a lookup by id, path, or name
	// produces no matching node in the mirror.
	ErrNodeNotFound = errors.New("node was not found")

	// ErrStoreBusy is returned when SQLite reports that the database is
	// locked by a concurrent transaction. The operation did not run;
	// callers may retry it.
	ErrStoreBusy = errors.New("store is busy")

	// ErrStoreCorrupt is returned when path resolution encounters a
	// dangling ancestor link: a parentage row pointing at a node that does
	// not exist. It marks an incomplete or corrupted mirror and is fatal
	// to that lookup only.
	ErrStoreCorrupt = errors.New("store is corrupted: dangling ancestor link")

	// ErrMetadataNotFound is returned when a metadata key (such as the
	// sync cursor) has never been written. A mirror without a cursor has
	// not completed its first sync.
	ErrMetadataNotFound = errors.New("metadata key was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan node row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan node rows")
)
