package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrQueueItemNotFound is returned when a query or update targets a
	// queue item that does not exist in the local database.
	ErrQueueItemNotFound = errors.New("queue item was not found")

	// ErrQueueItemNotSaved is returned when an INSERT of a queue item
	// completes without error but the number of affected rows is zero,
	// indicating that no data was actually persisted.
	ErrQueueItemNotSaved = errors.New("queue item was not saved")

	// ErrConflictNotFound is returned when a lookup targets a sync conflict
	// that does not exist in the local database.
	ErrConflictNotFound = errors.New("sync conflict was not found")

	// ErrDuplicatePendingConflict is returned when saving a conflict would
	// violate the one-unresolved-conflict-per-entity invariant.
	ErrDuplicatePendingConflict = errors.New("entity already has an unresolved conflict")

	// ErrSessionNotFound is returned when a lookup targets a sync session
	// that does not exist in the history.
	ErrSessionNotFound = errors.New("sync session was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied. A failed statement leaves no partial write behind: every
// mutation is a single statement or runs inside a transaction.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingPayload is returned when a JSON payload column cannot be
	// encoded or decoded.
	ErrEncodingPayload = errors.New("failed to encode payload column")
)
