package service

import "errors"

var (
	// scheduler state errors
	ErrSyncAlreadyRunning  = errors.New("sync already running")
	ErrSyncConditionsUnmet = errors.New("sync conditions not met")

	// conflict resolution errors
	ErrConflictAlreadyResolved = errors.New("conflict already resolved")
	ErrUnknownStrategy         = errors.New("unknown resolution strategy")
	ErrJustificationTooShort   = errors.New("justification too short")
	ErrMergedDataRequired      = errors.New("merged data required for manual resolution")

	// mutation validation errors
	ErrEmptyEntityRef = errors.New("entity id and entity type are required")
	ErrUnknownAction  = errors.New("unknown mutation action")
	ErrEmptyPayload   = errors.New("payload required for create and update")

	// queue state errors
	ErrItemNotRetryable = errors.New("only failed items can be retried")

	// optimistic tracker errors
	ErrOptimisticNotFound        = errors.New("optimistic update not found")
	ErrOptimisticNotRetryable    = errors.New("optimistic update is not retryable")
	ErrOptimisticNotRollbackable = errors.New("optimistic update cannot be rolled back")
	ErrRetriesExhausted          = errors.New("retries exhausted")
)
