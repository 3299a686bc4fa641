// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the local durable persistence layer of the sync
// subsystem: the mutation queue, the conflict register, and the session
// history, all backed by a single SQLite file that survives restarts.
//
// The queue is the single source of truth for pending work. It assumes a
// single-writer-per-device model: field-level last-write-wins, no
// cross-process locking.
package store

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// QueueRepository is the local durable queue of pending mutations.
type QueueRepository interface {
	// Enqueue persists a new queue item with status PENDING, assigning an
	// ID when the item carries none.
	Enqueue(ctx context.Context, item *models.QueueItem) error

	// Get loads a single queue item by ID. Returns ErrQueueItemNotFound
	// when no such item exists.
	Get(ctx context.Context, id string) (models.QueueItem, error)

	// List returns items matching the filter, ordered by creation time or,
	// when filter.OrderByPriority is set, by priority score descending with
	// creation time ascending as the tie-breaker.
	List(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error)

	// Update merges the non-nil fields of patch into the stored item.
	// Returns ErrQueueItemNotFound when no such item exists.
	Update(ctx context.Context, id string, patch models.QueueItemPatch) error

	// Remove deletes a queue item. Idempotent: removing an absent item is
	// not an error.
	Remove(ctx context.Context, id string) error

	// RequeueInterrupted resets items left SYNCING by an interrupted cycle
	// back to PENDING so the next cycle picks them up. Returns the number
	// of items recovered.
	RequeueInterrupted(ctx context.Context) (int, error)

	// Summary returns counts by status and entity type for UI badges.
	Summary(ctx context.Context) (models.QueueSummary, error)
}

// ConflictRepository stores detected sync conflicts and their resolutions.
type ConflictRepository interface {
	// Save persists a newly detected conflict. Returns
	// ErrDuplicatePendingConflict when the entity already has an
	// unresolved conflict.
	Save(ctx context.Context, conflict *models.SyncConflict) error

	// Get loads a conflict by ID. Returns ErrConflictNotFound when no such
	// conflict exists.
	Get(ctx context.Context, id string) (models.SyncConflict, error)

	// List returns conflicts, optionally filtered by status (empty status
	// means all).
	List(ctx context.Context, status models.ConflictStatus) ([]models.SyncConflict, error)

	// HasPendingForEntity reports whether the entity currently has an
	// unresolved conflict.
	HasPendingForEntity(ctx context.Context, ref models.EntityRef) (bool, error)

	// MarkResolved records the resolution fields of an already-loaded
	// conflict: strategy, resolver, time, justification.
	MarkResolved(ctx context.Context, conflict models.SyncConflict) error
}

// SessionRepository retains the history of completed sync cycles.
type SessionRepository interface {
	// Save inserts or updates a session record by ID.
	Save(ctx context.Context, session *models.SyncSession) error

	// List returns a page of the history ordered by start time descending,
	// together with the total number of retained sessions.
	List(ctx context.Context, limit, offset int) ([]models.SyncSession, int, error)

	// Performance aggregates the retained history into averaged figures.
	Performance(ctx context.Context) (models.SyncPerformance, error)
}
