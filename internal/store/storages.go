package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// Storages groups all local repositories into a single value that can be
// passed around the service layer.
type Storages struct {
	// Queue is the SQLite-backed durable queue of pending mutations.
	Queue QueueRepository

	// Conflicts is the register of detected sync conflicts.
	Conflicts ConflictRepository

	// Sessions retains the per-cycle session history.
	Sessions SessionRepository
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Returns items a previous run left SYNCING back to PENDING, so work
//     interrupted by a crash mid-cycle is drained again instead of
//     stranded.
//  4. Constructs and returns a [Storages] value wired to fresh repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	queue := NewQueueRepository(db, log)

	recovered, err := queue.RequeueInterrupted(ctx)
	if err != nil {
		return nil, fmt.Errorf("recover interrupted queue items: %w", err)
	}
	if recovered > 0 {
		log.Warn().
			Int("count", recovered).
			Msg("requeued items interrupted by previous shutdown")
	}

	return &Storages{
		Queue:     queue,
		Conflicts: NewConflictRepository(db, log),
		Sessions:  NewSessionRepository(db, log),
	}, nil
}
