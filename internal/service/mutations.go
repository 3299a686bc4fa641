package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/priority"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

type mutationService struct {
	queue    store.QueueRepository
	tracker  *OptimisticTracker
	settings SettingsProvider
	logger   *logger.Logger
}

func NewMutationService(queue store.QueueRepository, tracker *OptimisticTracker, settings SettingsProvider, logger *logger.Logger) MutationService {
	return &mutationService{
		queue:    queue,
		tracker:  tracker,
		settings: settings,
		logger:   logger,
	}
}

// Submit implements [MutationService]. The mutation is scored, persisted,
// and shadowed by an optimistic update in one pass; the caller gets both
// handles back immediately, long before any network attempt.
func (m *mutationService) Submit(ctx context.Context, req models.MutationRequest) (models.MutationResponse, error) {
	log := logger.FromContext(ctx)

	if err := validateMutation(req); err != nil {
		return models.MutationResponse{}, err
	}

	now := time.Now().UTC()
	assigned := priority.Assign(priority.Input{
		EntityType: req.EntityType,
		Action:     req.Action,
		Payload:    req.Payload,
		Urgent:     req.Urgent,
		CreatedAt:  now,
		Now:        now,
	})

	item := models.QueueItem{
		EntityID:       req.EntityID,
		EntityType:     req.EntityType,
		Action:         req.Action,
		Payload:        req.Payload,
		BaseVersion:    req.BaseVersion,
		SubmittedBy:    req.SubmittedBy,
		Urgent:         req.Urgent,
		PriorityScore:  assigned.Score,
		PriorityLevel:  assigned.Level,
		PriorityReason: assigned.Reason,
		Status:         models.QueueStatusPending,
		MaxRetries:     m.settings.Settings().MaxRetryAttempts,
		CreatedAt:      now,
	}

	if err := m.queue.Enqueue(ctx, &item); err != nil {
		return models.MutationResponse{}, fmt.Errorf("enqueue mutation: %w", err)
	}

	optimistic := m.tracker.Register(
		models.EntityRef{EntityID: req.EntityID, EntityType: req.EntityType},
		item.ID,
		req.Payload,
		item.MaxRetries,
	)

	log.Debug().
		Str("func", "mutationService.Submit").
		Str("id", item.ID).
		Str("entity_type", item.EntityType).
		Int("priority_score", item.PriorityScore).
		Msg("mutation queued")

	return models.MutationResponse{Item: item, Optimistic: optimistic}, nil
}

// ListQueue implements [MutationService].
func (m *mutationService) ListQueue(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error) {
	return m.queue.List(ctx, filter)
}

// QueueSummary implements [MutationService].
func (m *mutationService) QueueSummary(ctx context.Context) (models.QueueSummary, error) {
	return m.queue.Summary(ctx)
}

// Discard implements [MutationService]. The overlay rollback is best
// effort; the overlay has no entry when the daemon restarted since the
// mutation was queued.
func (m *mutationService) Discard(ctx context.Context, id string) error {
	if err := m.queue.Remove(ctx, id); err != nil {
		return fmt.Errorf("discard queue item: %w", err)
	}
	m.tracker.DiscardByQueueItem(id)
	return nil
}

// RetryItem implements [MutationService]. Only FAILED items can be
// re-armed; the retry budget starts over.
func (m *mutationService) RetryItem(ctx context.Context, id string) (models.QueueItem, error) {
	item, err := m.queue.Get(ctx, id)
	if err != nil {
		return models.QueueItem{}, err
	}
	if item.Status != models.QueueStatusFailed {
		return models.QueueItem{}, fmt.Errorf("%w (id=%s, status=%s)", ErrItemNotRetryable, id, item.Status)
	}

	pending := models.QueueStatusPending
	zero := 0
	empty := ""
	now := time.Now().UTC()
	err = m.queue.Update(ctx, id, models.QueueItemPatch{
		Status:      &pending,
		RetryCount:  &zero,
		Error:       &empty,
		NextAttempt: &now,
	})
	if err != nil {
		return models.QueueItem{}, fmt.Errorf("rearm queue item: %w", err)
	}

	return m.queue.Get(ctx, id)
}

func validateMutation(req models.MutationRequest) error {
	if req.EntityID == "" || req.EntityType == "" {
		return ErrEmptyEntityRef
	}
	switch req.Action {
	case models.ActionCreate, models.ActionUpdate:
		if len(req.Payload) == 0 {
			return ErrEmptyPayload
		}
	case models.ActionDelete:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	return nil
}
