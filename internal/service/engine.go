// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/metrics"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// syncEngine drains the durable queue against the gateway. One cycle at a
// time; within a cycle submissions run with bounded concurrency.
type syncEngine struct {
	queue     store.QueueRepository
	conflicts store.ConflictRepository
	sessions  store.SessionRepository
	gateway   adapter.SubmissionGateway
	notifier  adapter.Notifier
	tracker   *OptimisticTracker
	monitor   ConnectivitySource
	retry     RetryPolicy
	deviceID  string
	logger    *logger.Logger

	progressMu sync.RWMutex
	progress   models.SyncProgress
}

func newSyncEngine(
	storages store.Storages,
	gateway adapter.SubmissionGateway,
	notifier adapter.Notifier,
	tracker *OptimisticTracker,
	monitor ConnectivitySource,
	deviceID string,
	logger *logger.Logger,
) *syncEngine {
	return &syncEngine{
		queue:     storages.Queue,
		conflicts: storages.Conflicts,
		sessions:  storages.Sessions,
		gateway:   gateway,
		notifier:  notifier,
		tracker:   tracker,
		monitor:   monitor,
		retry:     DefaultRetryPolicy(),
		deviceID:  deviceID,
		logger:    logger,
	}
}

// cycleCounters accumulates per-item outcomes under its own lock so the
// submission goroutines never touch the session struct directly.
type cycleCounters struct {
	mu sync.Mutex

	succeeded int
	failed    int
	conflicts int
	bytesSent int64
	durations time.Duration
	completed int
	errors    []string
}

// RunCycle drains the eligible part of the queue once. The returned
// session is already persisted; the error reports only cycle-level
// failures (per-item failures land in the session record).
func (e *syncEngine) RunCycle(ctx context.Context, trigger string, settings models.SyncSettings) (models.SyncSession, error) {
	log := logger.FromContext(ctx)
	connectivity := e.monitor.Status()
	started := time.Now().UTC()

	session := models.SyncSession{
		Trigger:   trigger,
		StartTime: started,
	}
	if err := e.sessions.Save(ctx, &session); err != nil {
		return session, fmt.Errorf("open sync session: %w", err)
	}

	metrics.IncSyncCycle(trigger)

	items, err := e.snapshot(ctx, connectivity, settings)
	if err != nil {
		e.closeSession(ctx, &session, started, connectivity, []string{err.Error()})
		return session, err
	}

	session.ItemsProcessed = len(items)
	e.setProgress(models.SyncProgress{TotalItems: len(items), CurrentOperation: "draining queue"})

	counters := &cycleCounters{}
	sem := make(chan struct{}, concurrencyLimit(settings))
	var wg sync.WaitGroup

	for _, item := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(item models.QueueItem) {
			defer wg.Done()
			defer func() { <-sem }()
			e.processItem(ctx, item, settings, counters)
			e.bumpProgress(counters)
		}(item)
	}
	wg.Wait()

	counters.mu.Lock()
	session.ItemsSucceeded = counters.succeeded
	session.ItemsFailed = counters.failed
	session.ConflictsDetected = counters.conflicts
	session.TotalDataSynced = counters.bytesSent
	session.NetworkUsage = counters.bytesSent
	session.Errors = counters.errors
	counters.mu.Unlock()

	e.closeSession(ctx, &session, started, connectivity, nil)

	log.Info().
		Str("func", "syncEngine.RunCycle").
		Str("trigger", trigger).
		Int("processed", session.ItemsProcessed).
		Int("succeeded", session.ItemsSucceeded).
		Int("failed", session.ItemsFailed).
		Int("conflicts", session.ConflictsDetected).
		Dur("took", session.Duration()).
		Msg("sync cycle finished")

	e.notifier.SyncCompleted(ctx, session)
	return session, nil
}

// Progress returns the latest cycle progress snapshot.
func (e *syncEngine) Progress() models.SyncProgress {
	e.progressMu.RLock()
	defer e.progressMu.RUnlock()
	return e.progress
}

// snapshot selects the due PENDING items in priority order, skipping
// entities blocked by an unresolved conflict and, under poor connectivity,
// items below the priority threshold.
func (e *syncEngine) snapshot(ctx context.Context, connectivity models.ConnectivityStatus, settings models.SyncSettings) ([]models.QueueItem, error) {
	log := logger.FromContext(ctx)

	// nothing is legitimately SYNCING between cycles, anything still in
	// that state was stranded by an aborted run or a failed status write
	if recovered, err := e.queue.RequeueInterrupted(ctx); err != nil {
		return nil, fmt.Errorf("requeue interrupted items: %w", err)
	} else if recovered > 0 {
		log.Warn().
			Str("func", "syncEngine.snapshot").
			Int("count", recovered).
			Msg("requeued items stranded in a previous cycle")
	}

	now := time.Now().UTC()
	items, err := e.queue.List(ctx, models.QueueFilter{
		Statuses:        []models.QueueItemStatus{models.QueueStatusPending},
		DueBefore:       &now,
		OrderByPriority: true,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot pending items: %w", err)
	}

	constrained := connectivity.Quality == models.QualityPoor
	minRank := settings.PriorityThreshold.Rank()

	eligible := make([]models.QueueItem, 0, len(items))
	for _, item := range items {
		if constrained && item.PriorityLevel.Rank() < minRank {
			metrics.IncSyncItem("deferred")
			continue
		}
		blocked, err := e.conflicts.HasPendingForEntity(ctx, models.EntityRef{
			EntityID:   item.EntityID,
			EntityType: item.EntityType,
		})
		if err != nil {
			return nil, fmt.Errorf("check conflict block for %s: %w", item.EntityID, err)
		}
		if blocked {
			continue
		}
		eligible = append(eligible, item)
	}

	return eligible, nil
}

func (e *syncEngine) processItem(ctx context.Context, item models.QueueItem, settings models.SyncSettings, counters *cycleCounters) {
	log := logger.FromContext(ctx)
	start := time.Now().UTC()

	if err := e.markSyncing(ctx, item.ID, start); err != nil {
		log.Err(err).
			Str("func", "syncEngine.processItem").
			Str("id", item.ID).
			Msg("failed to mark item syncing")
		counters.record(func(c *cycleCounters) {
			c.failed++
			c.errors = append(c.errors, fmt.Sprintf("%s: %v", item.ID, err))
		})
		return
	}

	result, err := e.gateway.Submit(ctx, item)
	took := time.Since(start)

	switch {
	case err == nil:
		e.onSuccess(ctx, item, result, took, counters)
	case errors.Is(err, adapter.ErrVersionConflict):
		e.onConflict(ctx, item, err, counters)
	case isTransient(err):
		e.onTransient(ctx, item, err, settings, counters)
	default:
		e.onPermanent(ctx, item, err, counters)
	}
}

func (e *syncEngine) onSuccess(ctx context.Context, item models.QueueItem, result adapter.SubmissionResult, took time.Duration, counters *cycleCounters) {
	if err := e.queue.Remove(ctx, item.ID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncEngine.onSuccess").
			Str("id", item.ID).
			Msg("submitted item could not be removed from queue")
	}

	confirmed := maps.Clone(item.Payload)
	if confirmed == nil {
		confirmed = map[string]any{}
	}
	confirmed["version"] = result.NewVersion
	e.tracker.ConfirmByQueueItem(item.ID, confirmed)

	metrics.IncSyncItem("succeeded")
	counters.record(func(c *cycleCounters) {
		c.succeeded++
		c.bytesSent += result.BytesSent
		c.durations += took
	})
}

// onConflict records the divergence and parks the item: it stays PENDING
// in the queue but the conflict block keeps it out of automatic retries
// until a reviewer resolves it. Destructive writes are never applied.
func (e *syncEngine) onConflict(ctx context.Context, item models.QueueItem, submitErr error, counters *cycleCounters) {
	log := logger.FromContext(ctx)

	conflict := models.SyncConflict{
		QueueItemID:      item.ID,
		EntityID:         item.EntityID,
		EntityType:       item.EntityType,
		LocalVersion:     item.Payload,
		LocalBaseVersion: item.BaseVersion,
		DetectedBy:       e.deviceID,
		SubmittedBy:      item.SubmittedBy,
		Status:           models.ConflictPending,
	}
	var vc *adapter.VersionConflictError
	if errors.As(submitErr, &vc) {
		conflict.ServerVersion = vc.ServerState
		conflict.ServerVersionNum = vc.ServerVersionNum
	}

	if err := e.conflicts.Save(ctx, &conflict); err != nil && !errors.Is(err, store.ErrDuplicatePendingConflict) {
		log.Err(err).
			Str("func", "syncEngine.onConflict").
			Str("entity_id", item.EntityID).
			Msg("failed to persist detected conflict")
	}

	if err := e.parkItem(ctx, item.ID, submitErr.Error()); err != nil {
		log.Err(err).
			Str("func", "syncEngine.onConflict").
			Str("id", item.ID).
			Msg("failed to park conflicted item")
	}

	metrics.IncConflictDetected()
	metrics.IncSyncItem("conflict")
	counters.record(func(c *cycleCounters) { c.conflicts++ })

	e.notifier.ConflictDetected(ctx, conflict)
}

func (e *syncEngine) onTransient(ctx context.Context, item models.QueueItem, submitErr error, settings models.SyncSettings, counters *cycleCounters) {
	log := logger.FromContext(ctx)

	retryCount := item.RetryCount + 1
	maxRetries := item.MaxRetries
	if settings.MaxRetryAttempts > 0 && settings.MaxRetryAttempts < maxRetries {
		maxRetries = settings.MaxRetryAttempts
	}
	now := time.Now().UTC()
	errMsg := submitErr.Error()

	if retryCount >= maxRetries {
		// retry budget exhausted; surfaced for manual action, never dropped
		failed := models.QueueStatusFailed
		err := e.queue.Update(ctx, item.ID, models.QueueItemPatch{
			Status:      &failed,
			RetryCount:  &retryCount,
			LastAttempt: &now,
			Error:       &errMsg,
		})
		if err != nil {
			log.Err(err).
				Str("func", "syncEngine.onTransient").
				Str("id", item.ID).
				Msg("failed to mark item FAILED")
		}
		e.tracker.FailByQueueItem(item.ID, errMsg, retryCount)

		metrics.IncSyncItem("failed")
		counters.record(func(c *cycleCounters) {
			c.failed++
			c.errors = append(c.errors, fmt.Sprintf("%s: %s", item.ID, errMsg))
		})
		return
	}

	pending := models.QueueStatusPending
	next := now.Add(e.retry.NextDelay(retryCount))
	err := e.queue.Update(ctx, item.ID, models.QueueItemPatch{
		Status:      &pending,
		RetryCount:  &retryCount,
		LastAttempt: &now,
		NextAttempt: &next,
		Error:       &errMsg,
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncEngine.onTransient").
			Str("id", item.ID).
			Msg("failed to schedule retry")
	}

	log.Debug().
		Str("func", "syncEngine.onTransient").
		Str("id", item.ID).
		Int("retry_count", retryCount).
		Time("next_attempt", next).
		Msg("transient failure, retry scheduled")

	metrics.IncSyncItem("deferred")
	counters.record(func(c *cycleCounters) {
		c.errors = append(c.errors, fmt.Sprintf("%s: %s", item.ID, errMsg))
	})
}

// onPermanent handles non-retryable rejections (bad request, auth). The
// item goes straight to FAILED; backoff would not change the outcome.
func (e *syncEngine) onPermanent(ctx context.Context, item models.QueueItem, submitErr error, counters *cycleCounters) {
	now := time.Now().UTC()
	errMsg := submitErr.Error()
	failed := models.QueueStatusFailed

	err := e.queue.Update(ctx, item.ID, models.QueueItemPatch{
		Status:      &failed,
		LastAttempt: &now,
		Error:       &errMsg,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncEngine.onPermanent").
			Str("id", item.ID).
			Msg("failed to mark rejected item FAILED")
	}
	e.tracker.FailByQueueItem(item.ID, errMsg, item.RetryCount)

	metrics.IncSyncItem("failed")
	counters.record(func(c *cycleCounters) {
		c.failed++
		c.errors = append(c.errors, fmt.Sprintf("%s: %s", item.ID, errMsg))
	})
}

func (e *syncEngine) markSyncing(ctx context.Context, id string, at time.Time) error {
	syncing := models.QueueStatusSyncing
	return e.queue.Update(ctx, id, models.QueueItemPatch{
		Status:      &syncing,
		LastAttempt: &at,
	})
}

// parkItem returns a conflicted item to PENDING with the conflict noted.
// The pending-conflict check excludes it from future snapshots.
func (e *syncEngine) parkItem(ctx context.Context, id, errMsg string) error {
	pending := models.QueueStatusPending
	return e.queue.Update(ctx, id, models.QueueItemPatch{
		Status: &pending,
		Error:  &errMsg,
	})
}

func (e *syncEngine) closeSession(ctx context.Context, session *models.SyncSession, started time.Time, startConnectivity models.ConnectivityStatus, extraErrors []string) {
	end := time.Now().UTC()
	session.EndTime = &end
	session.Errors = append(session.Errors, extraErrors...)

	endConnectivity := e.monitor.Status()
	if drop := startConnectivity.BatteryLevel - endConnectivity.BatteryLevel; drop > 0 {
		session.BatteryUsed = float64(drop)
	}

	if err := e.sessions.Save(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncEngine.closeSession").
			Str("session_id", session.ID).
			Msg("failed to close sync session")
	}

	metrics.ObserveCycleDuration(end.Sub(started).Seconds())
	e.updateQueueDepthMetrics(ctx)
}

func (e *syncEngine) updateQueueDepthMetrics(ctx context.Context) {
	summary, err := e.queue.Summary(ctx)
	if err != nil {
		return
	}
	for _, status := range []models.QueueItemStatus{models.QueueStatusPending, models.QueueStatusSyncing, models.QueueStatusFailed} {
		metrics.SetQueueDepth(string(status), summary.ByStatus[status])
	}
}

func (e *syncEngine) setProgress(p models.SyncProgress) {
	e.progressMu.Lock()
	e.progress = p
	e.progressMu.Unlock()
}

func (e *syncEngine) bumpProgress(counters *cycleCounters) {
	counters.mu.Lock()
	completed := counters.succeeded + counters.conflicts
	failed := counters.failed
	counters.completed++
	done := counters.completed
	var avg time.Duration
	if counters.succeeded > 0 {
		avg = counters.durations / time.Duration(counters.succeeded)
	}
	counters.mu.Unlock()

	e.progressMu.Lock()
	e.progress.CompletedItems = completed
	e.progress.FailedItems = failed
	e.progress.AvgItemDuration = avg
	if done >= e.progress.TotalItems {
		e.progress.CurrentOperation = "idle"
	}
	e.progressMu.Unlock()
}

func (c *cycleCounters) record(fn func(*cycleCounters)) {
	c.mu.Lock()
	fn(c)
	c.mu.Unlock()
}

func concurrencyLimit(settings models.SyncSettings) int {
	if settings.MaximumConcurrentOperations < 1 {
		return 1
	}
	return settings.MaximumConcurrentOperations
}

func isTransient(err error) bool {
	return errors.Is(err, adapter.ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
