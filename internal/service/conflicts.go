// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/metrics"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

const minJustificationLen = 10

type conflictService struct {
	conflicts store.ConflictRepository
	queue     store.QueueRepository
	gateway   adapter.SubmissionGateway
	notifier  adapter.Notifier
	tracker   *OptimisticTracker
	logger    *logger.Logger
}

func NewConflictService(
	conflicts store.ConflictRepository,
	queue store.QueueRepository,
	gateway adapter.SubmissionGateway,
	notifier adapter.Notifier,
	tracker *OptimisticTracker,
	logger *logger.Logger,
) ConflictService {
	return &conflictService{
		conflicts: conflicts,
		queue:     queue,
		gateway:   gateway,
		notifier:  notifier,
		tracker:   tracker,
		logger:    logger,
	}
}

// ListConflicts implements [ConflictService].
func (c *conflictService) ListConflicts(ctx context.Context, status models.ConflictStatus) ([]models.SyncConflict, error) {
	return c.conflicts.List(ctx, status)
}

// GetConflict implements [ConflictService].
func (c *conflictService) GetConflict(ctx context.Context, id string) (models.SyncConflict, error) {
	return c.conflicts.Get(ctx, id)
}

// Resolve implements [ConflictService]. The justification is recorded for
// audit on every strategy; a conflict resolves exactly once. When the
// resolved state must reach the server (every strategy except SERVER_WINS)
// and the gateway fails, nothing is marked: the resolution can simply be
// retried.
func (c *conflictService) Resolve(ctx context.Context, conflictID string, req models.ResolveConflictRequest) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	if err := validateResolution(req); err != nil {
		return models.SyncConflict{}, err
	}

	conflict, err := c.conflicts.Get(ctx, conflictID)
	if err != nil {
		return models.SyncConflict{}, err
	}
	if conflict.Status != models.ConflictPending {
		return models.SyncConflict{}, fmt.Errorf("%w (id=%s)", ErrConflictAlreadyResolved, conflictID)
	}

	ref := models.EntityRef{EntityID: conflict.EntityID, EntityType: conflict.EntityType}
	resolvedState, pushToServer := resolvedStateFor(conflict, req)

	if pushToServer {
		if _, err = c.gateway.ForceApply(ctx, ref, resolvedState, req.ResolverID); err != nil {
			return models.SyncConflict{}, fmt.Errorf("apply resolved state: %w", err)
		}
	}

	// исходная мутация больше не нужна независимо от стратегии
	if conflict.QueueItemID != "" {
		if err = c.queue.Remove(ctx, conflict.QueueItemID); err != nil {
			log.Err(err).
				Str("func", "conflictService.Resolve").
				Str("queue_item_id", conflict.QueueItemID).
				Msg("failed to remove conflicted queue item")
		}
	}

	if req.Strategy == models.StrategyServerWins {
		c.tracker.DiscardEntity(ref, resolvedState)
	} else {
		c.tracker.ConfirmEntity(ref, resolvedState)
	}

	now := time.Now().UTC()
	conflict.Status = models.ConflictResolved
	conflict.ResolutionStrategy = req.Strategy
	conflict.ResolvedBy = req.ResolverID
	conflict.ResolvedAt = &now
	conflict.Justification = req.Justification

	if err = c.conflicts.MarkResolved(ctx, conflict); err != nil {
		return models.SyncConflict{}, fmt.Errorf("mark conflict resolved: %w", err)
	}

	metrics.IncConflictResolved(string(req.Strategy))

	log.Info().
		Str("func", "conflictService.Resolve").
		Str("id", conflictID).
		Str("strategy", string(req.Strategy)).
		Str("resolved_by", req.ResolverID).
		Msg("conflict resolved")

	// уведомления не влияют на результат разрешения
	c.notifier.ConflictResolved(ctx, conflict)

	return conflict, nil
}

// resolvedStateFor computes the final entity state for the chosen
// strategy and reports whether it must be forced onto the server.
func resolvedStateFor(conflict models.SyncConflict, req models.ResolveConflictRequest) (map[string]any, bool) {
	switch req.Strategy {
	case models.StrategyLocalWins:
		return maps.Clone(conflict.LocalVersion), true

	case models.StrategyServerWins:
		// сервер уже в нужном состоянии
		return maps.Clone(conflict.ServerVersion), false

	case models.StrategyMerge:
		// local overrides on collision, zero values included; server-only
		// keys survive. Intentionally shallow, not a semantic three-way
		// merge.
		merged := maps.Clone(conflict.ServerVersion)
		if merged == nil {
			merged = map[string]any{}
		}
		maps.Copy(merged, conflict.LocalVersion)
		return merged, true

	default: // MANUAL, validated upstream
		return maps.Clone(req.MergedData), true
	}
}

func validateResolution(req models.ResolveConflictRequest) error {
	if !req.Strategy.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, req.Strategy)
	}
	if len(req.Justification) < minJustificationLen {
		return fmt.Errorf("%w: need at least %d characters", ErrJustificationTooShort, minJustificationLen)
	}
	if req.Strategy == models.StrategyManual && len(req.MergedData) == 0 {
		return ErrMergedDataRequired
	}
	return nil
}
