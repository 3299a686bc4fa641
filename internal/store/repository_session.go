// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

var sessionColumns = []string{
	"id", "trigger_reason", "start_time", "end_time",
	"items_processed", "items_succeeded", "items_failed", "conflicts_detected",
	"total_data_synced", "network_usage", "battery_used", "errors",
}

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *sessionRepository) Save(ctx context.Context, session *models.SyncSession) error {
	log := logger.FromContext(ctx)

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	sessionErrors, err := json.Marshal(session.Errors)
	if err != nil {
		return fmt.Errorf("%w: session errors (id=%s): %w", ErrEncodingPayload, session.ID, err)
	}
	if session.Errors == nil {
		sessionErrors = []byte("[]")
	}

	// upsert: цикл сохраняет сессию дважды, при старте и по завершении
	query, args, err := sq.Insert("sync_sessions").
		Columns(sessionColumns...).
		Values(
			session.ID, session.Trigger, session.StartTime, nullableTime(session.EndTime),
			session.ItemsProcessed, session.ItemsSucceeded, session.ItemsFailed,
			session.ConflictsDetected, session.TotalDataSynced, session.NetworkUsage,
			session.BatteryUsed, string(sessionErrors),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			end_time = excluded.end_time,
			items_processed = excluded.items_processed,
			items_succeeded = excluded.items_succeeded,
			items_failed = excluded.items_failed,
			conflicts_detected = excluded.conflicts_detected,
			total_data_synced = excluded.total_data_synced,
			network_usage = excluded.network_usage,
			battery_used = excluded.battery_used,
			errors = excluded.errors`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: save session: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Save").
			Str("id", session.ID).
			Msg("failed to save sync session")
		return fmt.Errorf("%w: save session (id=%s): %w", ErrExecutingStatement, session.ID, err)
	}

	return nil
}

func (s *sessionRepository) List(ctx context.Context, limit, offset int) ([]models.SyncSession, int, error) {
	log := logger.FromContext(ctx)

	countQuery, _, err := sq.Select("COUNT(*)").From("sync_sessions").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count sessions: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = s.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: count sessions: %w", ErrScanningRow, err)
	}

	builder := sq.Select(sessionColumns...).
		From("sync_sessions").
		OrderBy("start_time DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list sessions: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.List").
			Msg("failed to execute session list query")
		return nil, 0, fmt.Errorf("%w: list sessions: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var sessions []models.SyncSession
	for rows.Next() {
		session, scanErr := scanSession(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "sessionRepository.List").
				Msg("failed to scan session rows")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sessions, total, nil
}

// Performance aggregates completed sessions only: open sessions have no
// duration and would skew the per-minute rate.
func (s *sessionRepository) Performance(ctx context.Context) (models.SyncPerformance, error) {
	log := logger.FromContext(ctx)

	query, _, err := sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(items_processed), 0)",
		"COALESCE(SUM(items_succeeded), 0)",
		"COALESCE(SUM((julianday(end_time) - julianday(start_time)) * 24 * 60), 0)",
		"COALESCE(AVG(battery_used), 0)",
		"COALESCE(AVG(network_usage), 0)",
	).
		From("sync_sessions").
		Where("end_time IS NOT NULL").
		ToSql()
	if err != nil {
		return models.SyncPerformance{}, fmt.Errorf("%w: session performance: %w", ErrBuildingSQLQuery, err)
	}

	var (
		perf         models.SyncPerformance
		processed    int
		succeeded    int
		totalMinutes float64
	)
	err = s.DB.QueryRowContext(ctx, query).Scan(
		&perf.Sessions, &processed, &succeeded, &totalMinutes,
		&perf.AvgBatteryUsed, &perf.AvgNetworkUsage,
	)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Performance").
			Msg("failed to aggregate session performance")
		return models.SyncPerformance{}, fmt.Errorf("%w: session performance: %w", ErrScanningRow, err)
	}

	if totalMinutes > 0 {
		perf.ItemsPerMinute = float64(processed) / totalMinutes
	}
	if processed > 0 {
		perf.SuccessRate = float64(succeeded) / float64(processed)
	}

	return perf, nil
}

func scanSession(row rowScanner) (models.SyncSession, error) {
	var (
		session       models.SyncSession
		endTime       sql.NullTime
		sessionErrors string
	)

	err := row.Scan(
		&session.ID, &session.Trigger, &session.StartTime, &endTime,
		&session.ItemsProcessed, &session.ItemsSucceeded, &session.ItemsFailed,
		&session.ConflictsDetected, &session.TotalDataSynced, &session.NetworkUsage,
		&session.BatteryUsed, &sessionErrors,
	)
	if err != nil {
		return models.SyncSession{}, err
	}

	if endTime.Valid {
		t := endTime.Time
		session.EndTime = &t
	}
	if err = json.Unmarshal([]byte(sessionErrors), &session.Errors); err != nil {
		return models.SyncSession{}, fmt.Errorf("decode errors column: %w", err)
	}

	return session, nil
}
