// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service contains the core sync logic: the scheduler gating when
// cycles run, the engine draining the durable queue, conflict resolution,
// the optimistic overlay, and the session history.
package service

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the background scheduler's public surface. Exactly one
// cycle runs at a time; a second trigger while RUNNING is rejected, never
// queued.
type SyncService interface {
	// Start launches the scheduling loop. Blocks until ctx is cancelled.
	Start(ctx context.Context) error

	// Stop pauses scheduling of new cycles. In-flight submissions drain;
	// nothing is hard-aborted.
	Stop()

	// TriggerImmediateSync requests a cycle outside the regular interval.
	// Returns ErrSyncAlreadyRunning while a cycle is in progress and
	// ErrSyncConditionsUnmet when the gating conditions fail.
	TriggerImmediateSync(reason string) error

	Status() models.SyncStatus
	Progress() models.SyncProgress

	Settings() models.SyncSettings

	// UpdateSettings applies the in-range fields of patch and reports the
	// rejected ones. Partial application, never all-or-nothing.
	UpdateSettings(patch models.SyncSettingsPatch) (models.SyncSettings, []models.FieldRejection)
}

// MutationService accepts domain mutations from the UI layer and manages
// the durable queue on their behalf.
type MutationService interface {
	// Submit validates the mutation, scores it, persists it to the durable
	// queue, and registers its optimistic overlay.
	Submit(ctx context.Context, req models.MutationRequest) (models.MutationResponse, error)

	ListQueue(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error)
	QueueSummary(ctx context.Context) (models.QueueSummary, error)

	// Discard removes a queue item and rolls back its optimistic overlay.
	// Idempotent: discarding an absent item succeeds.
	Discard(ctx context.Context, id string) error

	// RetryItem re-arms a FAILED item for the next cycle, resetting its
	// retry budget.
	RetryItem(ctx context.Context, id string) (models.QueueItem, error)
}

// ConflictService lists detected version conflicts and applies explicit
// resolution decisions.
type ConflictService interface {
	ListConflicts(ctx context.Context, status models.ConflictStatus) ([]models.SyncConflict, error)
	GetConflict(ctx context.Context, id string) (models.SyncConflict, error)

	// Resolve applies the chosen strategy exactly once. A second call on
	// the same conflict returns ErrConflictAlreadyResolved.
	Resolve(ctx context.Context, conflictID string, req models.ResolveConflictRequest) (models.SyncConflict, error)
}

// SessionService exposes the retained cycle history and its aggregates.
type SessionService interface {
	History(ctx context.Context, limit, offset int) ([]models.SyncSession, int, error)
	Performance(ctx context.Context) (models.SyncPerformance, error)
}

// OptimisticService is the UI-facing view of the optimistic overlay.
type OptimisticService interface {
	// EntityState returns the merged probable view of an entity: the
	// pending proposed state over the last confirmed one. ok is false when
	// the tracker has never seen the entity.
	EntityState(ref models.EntityRef) (map[string]any, bool)

	Get(id string) (models.OptimisticUpdate, error)

	// Retry is valid only for FAILED updates with retry budget left; it
	// re-arms the backing queue item.
	Retry(ctx context.Context, id string) (models.OptimisticUpdate, error)

	// Rollback discards a PENDING or FAILED update and its queue item.
	Rollback(ctx context.Context, id string) (models.OptimisticUpdate, error)
}

// ConnectivitySource is the monitor surface the scheduler and engine need.
type ConnectivitySource interface {
	Status() models.ConnectivityStatus
	Subscribe(fn func(models.ConnectivityStatus))
}

// SettingsProvider hands out the current runtime settings to services that
// only read them.
type SettingsProvider interface {
	Settings() models.SyncSettings
}
