// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// OptimisticTracker is the in-memory overlay that lets the UI show the
// assumed result of a mutation before the server confirms it. State is
// keyed by models.EntityRef; at most one non-terminal update exists per
// entity, a newer registration supersedes the previous one.
//
// The tracker is rebuilt empty on restart: the durable queue is the source
// of truth for pending work, the overlay is a display-layer convenience.
type OptimisticTracker struct {
	queue  store.QueueRepository
	logger *logger.Logger

	mu          sync.RWMutex
	updates     map[string]*models.OptimisticUpdate
	active      map[models.EntityRef]string // entity → non-terminal update id
	byQueueItem map[string]string           // queue item id → update id
	confirmed   map[models.EntityRef]map[string]any
}

func NewOptimisticTracker(queue store.QueueRepository, logger *logger.Logger) *OptimisticTracker {
	return &OptimisticTracker{
		queue:       queue,
		logger:      logger,
		updates:     make(map[string]*models.OptimisticUpdate),
		active:      make(map[models.EntityRef]string),
		byQueueItem: make(map[string]string),
		confirmed:   make(map[models.EntityRef]map[string]any),
	}
}

// Register records a fresh optimistic update for a just-enqueued mutation.
// A previous non-terminal update for the same entity is rolled back; the
// newest proposal wins.
func (t *OptimisticTracker) Register(ref models.EntityRef, queueItemID string, proposed map[string]any, maxRetries int) models.OptimisticUpdate {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prevID, ok := t.active[ref]; ok {
		if prev, found := t.updates[prevID]; found {
			prev.Status = models.OptimisticRolledBack
			delete(t.byQueueItem, prev.QueueItemID)
		}
	}

	update := &models.OptimisticUpdate{
		ID:            uuid.NewString(),
		Entity:        ref,
		QueueItemID:   queueItemID,
		ProposedState: maps.Clone(proposed),
		Status:        models.OptimisticPending,
		MaxRetries:    maxRetries,
		CreatedAt:     time.Now().UTC(),
	}

	t.updates[update.ID] = update
	t.active[ref] = update.ID
	t.byQueueItem[queueItemID] = update.ID

	return *update
}

// Get returns the update by id.
func (t *OptimisticTracker) Get(id string) (models.OptimisticUpdate, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	update, ok := t.updates[id]
	if !ok {
		return models.OptimisticUpdate{}, fmt.Errorf("%w (id=%s)", ErrOptimisticNotFound, id)
	}
	return *update, nil
}

// EntityState implements the merged probable view: the proposed state of
// the entity's unconfirmed update over the last confirmed state. Keys the
// proposal does not touch keep their confirmed values. Falls back to the
// confirmed state alone when no unconfirmed update exists.
func (t *OptimisticTracker) EntityState(ref models.EntityRef) (map[string]any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	confirmed, hasConfirmed := t.confirmed[ref]

	if id, ok := t.active[ref]; ok {
		if update, found := t.updates[id]; found && !isTerminal(update.Status) {
			// proposed keys win even with zero values, a mutation that
			// clears a field must show as cleared
			view := maps.Clone(confirmed)
			if view == nil {
				view = map[string]any{}
			}
			maps.Copy(view, update.ProposedState)
			return view, true
		}
	}

	if hasConfirmed {
		return maps.Clone(confirmed), true
	}
	return nil, false
}

// ConfirmByQueueItem marks the update backing a successfully synced queue
// item CONFIRMED and promotes serverState (or the proposal when the server
// echoed nothing) to the confirmed baseline.
func (t *OptimisticTracker) ConfirmByQueueItem(queueItemID string, serverState map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.byQueueItem[queueItemID]
	if !ok {
		return
	}
	update := t.updates[id]

	update.Status = models.OptimisticConfirmed
	state := serverState
	if state == nil {
		state = update.ProposedState
	}
	t.confirmed[update.Entity] = maps.Clone(state)
	delete(t.active, update.Entity)
	delete(t.byQueueItem, queueItemID)
}

// DiscardByQueueItem rolls back the update behind a queue item that was
// removed without syncing (operator discard). No-op when the overlay has
// no entry for the item.
func (t *OptimisticTracker) DiscardByQueueItem(queueItemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.byQueueItem[queueItemID]
	if !ok {
		return
	}
	update := t.updates[id]

	update.Status = models.OptimisticRolledBack
	delete(t.active, update.Entity)
	delete(t.byQueueItem, queueItemID)
}

// FailByQueueItem marks the update FAILED after the engine exhausted the
// queue item's retries. The proposal stays visible so the user can decide
// between retry and rollback.
func (t *OptimisticTracker) FailByQueueItem(queueItemID, errMsg string, retryCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.byQueueItem[queueItemID]
	if !ok {
		return
	}
	update := t.updates[id]

	update.Status = models.OptimisticFailed
	update.Error = errMsg
	if retryCount > update.MaxRetries {
		retryCount = update.MaxRetries
	}
	update.RetryCount = retryCount
}

// ConfirmEntity settles the entity on state after a conflict resolution
// that applied a write (LOCAL_WINS, MERGE, MANUAL).
func (t *OptimisticTracker) ConfirmEntity(ref models.EntityRef, state map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.confirmed[ref] = maps.Clone(state)
	t.settleActive(ref, models.OptimisticConfirmed)
}

// DiscardEntity settles the entity on the server snapshot after a
// SERVER_WINS resolution: the local proposal is rolled back.
func (t *OptimisticTracker) DiscardEntity(ref models.EntityRef, serverState map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.confirmed[ref] = maps.Clone(serverState)
	t.settleActive(ref, models.OptimisticRolledBack)
}

// Retry re-arms the queue item behind a FAILED update. Valid only while
// the retry budget lasts.
func (t *OptimisticTracker) Retry(ctx context.Context, id string) (models.OptimisticUpdate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	update, ok := t.updates[id]
	if !ok {
		return models.OptimisticUpdate{}, fmt.Errorf("%w (id=%s)", ErrOptimisticNotFound, id)
	}
	if update.Status != models.OptimisticFailed {
		return models.OptimisticUpdate{}, fmt.Errorf("%w (id=%s, status=%s)", ErrOptimisticNotRetryable, id, update.Status)
	}
	if update.RetryCount >= update.MaxRetries {
		return models.OptimisticUpdate{}, fmt.Errorf("%w (id=%s)", ErrRetriesExhausted, id)
	}

	if err := t.rearmQueueItem(ctx, update.QueueItemID); err != nil {
		return models.OptimisticUpdate{}, err
	}

	update.Status = models.OptimisticPending
	update.RetryCount++
	update.Error = ""
	return *update, nil
}

// Rollback discards a PENDING or FAILED update together with its queue
// item. CONFIRMED and ROLLED_BACK are terminal.
func (t *OptimisticTracker) Rollback(ctx context.Context, id string) (models.OptimisticUpdate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	update, ok := t.updates[id]
	if !ok {
		return models.OptimisticUpdate{}, fmt.Errorf("%w (id=%s)", ErrOptimisticNotFound, id)
	}
	if isTerminal(update.Status) {
		return models.OptimisticUpdate{}, fmt.Errorf("%w (id=%s, status=%s)", ErrOptimisticNotRollbackable, id, update.Status)
	}

	if err := t.queue.Remove(ctx, update.QueueItemID); err != nil {
		return models.OptimisticUpdate{}, fmt.Errorf("remove queue item on rollback: %w", err)
	}

	update.Status = models.OptimisticRolledBack
	delete(t.active, update.Entity)
	delete(t.byQueueItem, update.QueueItemID)
	return *update, nil
}

// settleActive moves the entity's non-terminal update (if any) to the
// given terminal status. Caller holds the lock.
func (t *OptimisticTracker) settleActive(ref models.EntityRef, status models.OptimisticStatus) {
	id, ok := t.active[ref]
	if !ok {
		return
	}
	if update, found := t.updates[id]; found {
		update.Status = status
		delete(t.byQueueItem, update.QueueItemID)
	}
	delete(t.active, ref)
}

func (t *OptimisticTracker) rearmQueueItem(ctx context.Context, queueItemID string) error {
	pending := models.QueueStatusPending
	zero := 0
	empty := ""
	now := time.Now().UTC()

	err := t.queue.Update(ctx, queueItemID, models.QueueItemPatch{
		Status:      &pending,
		RetryCount:  &zero,
		Error:       &empty,
		NextAttempt: &now,
	})
	if err != nil {
		return fmt.Errorf("rearm queue item %s: %w", queueItemID, err)
	}
	return nil
}

func isTerminal(status models.OptimisticStatus) bool {
	return status == models.OptimisticConfirmed || status == models.OptimisticRolledBack
}
