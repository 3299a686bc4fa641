package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest      = errors.New("gateway rejected request")
	ErrUnauthorized    = errors.New("gateway rejected credentials")
	ErrNotFound        = errors.New("entity not found on server")
	ErrVersionConflict = errors.New("version conflict")

	// ErrUnavailable covers every transient transport failure: timeouts,
	// connection refusals, and 5xx responses. The engine treats it as
	// retryable; everything else fails the item permanently.
	ErrUnavailable = errors.New("gateway unavailable")
)

// VersionConflictError is returned by Submit when the server rejects a
// mutation because its base version is stale. It carries the server's
// current state so the conflict can be recorded without a second round
// trip.
type VersionConflictError struct {
	ServerVersionNum int64
	ServerState      map[string]any
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%v: server at version %d", ErrVersionConflict, e.ServerVersionNum)
}

// Unwrap makes errors.Is(err, ErrVersionConflict) hold for callers that
// only care about the category.
func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
