// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

var queueColumns = []string{
	"id", "entity_id", "entity_type", "action", "payload", "base_version",
	"submitted_by", "urgent", "priority_score", "priority_level",
	"priority_reason", "status", "retry_count", "max_retries",
	"created_at", "last_attempt", "next_attempt", "error",
}

type queueRepository struct {
	*DB
	logger *logger.Logger
}

func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

func (q *queueRepository) Enqueue(ctx context.Context, item *models.QueueItem) error {
	log := logger.FromContext(ctx)

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = models.QueueStatusPending
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	payload, err := encodeJSONColumn(item.Payload)
	if err != nil {
		return fmt.Errorf("%w: queue payload (id=%s): %w", ErrEncodingPayload, item.ID, err)
	}

	query, args, err := sq.Insert("sync_queue").
		Columns(queueColumns...).
		Values(
			item.ID, item.EntityID, item.EntityType, string(item.Action), payload,
			item.BaseVersion, item.SubmittedBy, item.Urgent, item.PriorityScore,
			string(item.PriorityLevel), item.PriorityReason, string(item.Status),
			item.RetryCount, item.MaxRetries, item.CreatedAt,
			nullableTime(item.LastAttempt), nullableTime(item.NextAttempt), item.Error,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: enqueue: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("id", item.ID).
			Str("entity_type", item.EntityType).
			Msg("failed to insert queue item")
		return fmt.Errorf("%w: enqueue (id=%s): %w", ErrExecutingStatement, item.ID, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrQueueItemNotSaved, item.ID)
	}

	return nil
}

func (q *queueRepository) Get(ctx context.Context, id string) (models.QueueItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(queueColumns...).
		From("sync_queue").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.QueueItem{}, fmt.Errorf("%w: get queue item: %w", ErrBuildingSQLQuery, err)
	}

	item, err := scanQueueItem(q.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QueueItem{}, fmt.Errorf("%w (id=%s)", ErrQueueItemNotFound, id)
		}
		log.Err(err).
			Str("func", "queueRepository.Get").
			Str("id", id).
			Msg("failed to scan queue item row")
		return models.QueueItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

func (q *queueRepository) List(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(queueColumns...).From("sync_queue")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.EntityType != "" {
		builder = builder.Where(sq.Eq{"entity_type": filter.EntityType})
	}
	if filter.DueBefore != nil {
		builder = builder.Where(sq.Or{
			sq.Eq{"next_attempt": nil},
			sq.LtOrEq{"next_attempt": *filter.DueBefore},
		})
	}

	if filter.OrderByPriority {
		// score descending, creation time ascending breaks ties
		builder = builder.OrderBy("priority_score DESC", "created_at ASC")
	} else {
		builder = builder.OrderBy("created_at ASC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list queue items: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.List").
			Msg("failed to execute queue list query")
		return nil, fmt.Errorf("%w: list queue items: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.QueueItem
	for rows.Next() {
		item, scanErr := scanQueueItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.List").
				Msg("failed to scan queue item rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (q *queueRepository) Update(ctx context.Context, id string, patch models.QueueItemPatch) error {
	log := logger.FromContext(ctx)

	setMap := map[string]any{}
	if patch.Status != nil {
		setMap["status"] = string(*patch.Status)
	}
	if patch.RetryCount != nil {
		setMap["retry_count"] = *patch.RetryCount
	}
	if patch.Error != nil {
		setMap["error"] = *patch.Error
	}
	if patch.LastAttempt != nil {
		setMap["last_attempt"] = *patch.LastAttempt
	}
	if patch.NextAttempt != nil {
		setMap["next_attempt"] = *patch.NextAttempt
	}
	if patch.BaseVersion != nil {
		setMap["base_version"] = *patch.BaseVersion
	}
	if patch.Payload != nil {
		payload, err := encodeJSONColumn(patch.Payload)
		if err != nil {
			return fmt.Errorf("%w: queue payload (id=%s): %w", ErrEncodingPayload, id, err)
		}
		setMap["payload"] = payload
	}

	if len(setMap) == 0 {
		return nil
	}

	query, args, err := sq.Update("sync_queue").
		SetMap(setMap).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: update queue item: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Update").
			Str("id", id).
			Msg("failed to update queue item")
		return fmt.Errorf("%w: update (id=%s): %w", ErrExecutingStatement, id, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrQueueItemNotFound, id)
	}

	return nil
}

// Remove is idempotent: deleting an absent item succeeds, so a retried
// removal after success never surfaces an error to the caller.
func (q *queueRepository) Remove(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete("sync_queue").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: remove queue item: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Remove").
			Str("id", id).
			Msg("failed to delete queue item")
		return fmt.Errorf("%w: remove (id=%s): %w", ErrExecutingStatement, id, err)
	}

	return nil
}

// RequeueInterrupted returns items stranded SYNCING by a crash or an
// aborted cycle to PENDING, eligible immediately.
func (q *queueRepository) RequeueInterrupted(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Update("sync_queue").
		SetMap(map[string]any{
			"status":       string(models.QueueStatusPending),
			"next_attempt": time.Now().UTC(),
		}).
		Where(sq.Eq{"status": string(models.QueueStatusSyncing)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: requeue interrupted: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.RequeueInterrupted").
			Msg("failed to requeue interrupted items")
		return 0, fmt.Errorf("%w: requeue interrupted: %w", ErrExecutingStatement, err)
	}

	affected, _ := res.RowsAffected()
	return int(affected), nil
}

func (q *queueRepository) Summary(ctx context.Context) (models.QueueSummary, error) {
	log := logger.FromContext(ctx)

	summary := models.QueueSummary{
		ByStatus: make(map[models.QueueItemStatus]int),
		ByType:   make(map[string]int),
	}

	statusQuery, _, err := sq.Select("status", "COUNT(*)").
		From("sync_queue").
		GroupBy("status").
		ToSql()
	if err != nil {
		return models.QueueSummary{}, fmt.Errorf("%w: queue summary: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, statusQuery)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Summary").
			Msg("failed to execute status summary query")
		return models.QueueSummary{}, fmt.Errorf("%w: queue summary: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return models.QueueSummary{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		summary.ByStatus[models.QueueItemStatus(status)] = count
		summary.Total += count
	}
	if err = rows.Err(); err != nil {
		return models.QueueSummary{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	typeQuery, _, err := sq.Select("entity_type", "COUNT(*)").
		From("sync_queue").
		GroupBy("entity_type").
		ToSql()
	if err != nil {
		return models.QueueSummary{}, fmt.Errorf("%w: queue summary: %w", ErrBuildingSQLQuery, err)
	}

	typeRows, err := q.DB.QueryContext(ctx, typeQuery)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Summary").
			Msg("failed to execute type summary query")
		return models.QueueSummary{}, fmt.Errorf("%w: queue summary: %w", ErrExecutingQuery, err)
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var entityType string
		var count int
		if err = typeRows.Scan(&entityType, &count); err != nil {
			return models.QueueSummary{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		summary.ByType[entityType] = count
	}
	if err = typeRows.Err(); err != nil {
		return models.QueueSummary{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return summary, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueueItem(row rowScanner) (models.QueueItem, error) {
	var (
		item        models.QueueItem
		action      string
		level       string
		status      string
		payload     string
		lastAttempt sql.NullTime
		nextAttempt sql.NullTime
	)

	err := row.Scan(
		&item.ID, &item.EntityID, &item.EntityType, &action, &payload,
		&item.BaseVersion, &item.SubmittedBy, &item.Urgent, &item.PriorityScore,
		&level, &item.PriorityReason, &status, &item.RetryCount, &item.MaxRetries,
		&item.CreatedAt, &lastAttempt, &nextAttempt, &item.Error,
	)
	if err != nil {
		return models.QueueItem{}, err
	}

	item.Action = models.QueueAction(action)
	item.PriorityLevel = models.PriorityLevel(level)
	item.Status = models.QueueItemStatus(status)
	if lastAttempt.Valid {
		t := lastAttempt.Time
		item.LastAttempt = &t
	}
	if nextAttempt.Valid {
		t := nextAttempt.Time
		item.NextAttempt = &t
	}
	if err = json.Unmarshal([]byte(payload), &item.Payload); err != nil {
		return models.QueueItem{}, fmt.Errorf("decode payload column: %w", err)
	}

	return item, nil
}

func encodeJSONColumn(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
