package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

var conflictColumns = []string{
	"id", "queue_item_id", "entity_id", "entity_type",
	"local_version", "server_version", "local_base_version", "server_version_num",
	"detected_by", "detected_at", "submitted_by",
	"status", "resolution_strategy", "resolved_by", "resolved_at", "justification",
}

type conflictRepository struct {
	*DB
	logger *logger.Logger
}

func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *conflictRepository) Save(ctx context.Context, conflict *models.SyncConflict) error {
	log := logger.FromContext(ctx)

	if conflict.ID == "" {
		conflict.ID = uuid.NewString()
	}
	if conflict.Status == "" {
		conflict.Status = models.ConflictPending
	}
	if conflict.DetectedAt.IsZero() {
		conflict.DetectedAt = time.Now().UTC()
	}

	localVersion, err := encodeJSONColumn(conflict.LocalVersion)
	if err != nil {
		return fmt.Errorf("%w: conflict local version (id=%s): %w", ErrEncodingPayload, conflict.ID, err)
	}
	serverVersion, err := encodeJSONColumn(conflict.ServerVersion)
	if err != nil {
		return fmt.Errorf("%w: conflict server version (id=%s): %w", ErrEncodingPayload, conflict.ID, err)
	}

	query, args, err := sq.Insert("sync_conflicts").
		Columns(conflictColumns...).
		Values(
			conflict.ID, conflict.QueueItemID, conflict.EntityID, conflict.EntityType,
			localVersion, serverVersion, conflict.LocalBaseVersion, conflict.ServerVersionNum,
			conflict.DetectedBy, conflict.DetectedAt, conflict.SubmittedBy,
			string(conflict.Status), string(conflict.ResolutionStrategy),
			conflict.ResolvedBy, nullableTime(conflict.ResolvedAt), conflict.Justification,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: save conflict: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w (entity_id=%s, entity_type=%s)",
				ErrDuplicatePendingConflict, conflict.EntityID, conflict.EntityType)
		}
		log.Err(err).
			Str("func", "conflictRepository.Save").
			Str("id", conflict.ID).
			Str("entity_id", conflict.EntityID).
			Msg("failed to insert conflict")
		return fmt.Errorf("%w: save conflict (id=%s): %w", ErrExecutingStatement, conflict.ID, err)
	}

	return nil
}

func (c *conflictRepository) Get(ctx context.Context, id string) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(conflictColumns...).
		From("sync_conflicts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.SyncConflict{}, fmt.Errorf("%w: get conflict: %w", ErrBuildingSQLQuery, err)
	}

	conflict, err := scanConflict(c.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncConflict{}, fmt.Errorf("%w (id=%s)", ErrConflictNotFound, id)
		}
		log.Err(err).
			Str("func", "conflictRepository.Get").
			Str("id", id).
			Msg("failed to scan conflict row")
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

func (c *conflictRepository) List(ctx context.Context, status models.ConflictStatus) ([]models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(conflictColumns...).
		From("sync_conflicts").
		OrderBy("detected_at DESC")
	if status != "" {
		builder = builder.Where(sq.Eq{"status": string(status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list conflicts: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.List").
			Msg("failed to execute conflict list query")
		return nil, fmt.Errorf("%w: list conflicts: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var conflicts []models.SyncConflict
	for rows.Next() {
		conflict, scanErr := scanConflict(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "conflictRepository.List").
				Msg("failed to scan conflict rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		conflicts = append(conflicts, conflict)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}

func (c *conflictRepository) HasPendingForEntity(ctx context.Context, ref models.EntityRef) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("sync_conflicts").
		Where(sq.Eq{
			"entity_id":   ref.EntityID,
			"entity_type": ref.EntityType,
			"status":      string(models.ConflictPending),
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: pending conflict check: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = c.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: pending conflict check: %w", ErrScanningRow, err)
	}

	return count > 0, nil
}

func (c *conflictRepository) MarkResolved(ctx context.Context, conflict models.SyncConflict) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Update("sync_conflicts").
		SetMap(map[string]any{
			"status":              string(models.ConflictResolved),
			"resolution_strategy": string(conflict.ResolutionStrategy),
			"resolved_by":         conflict.ResolvedBy,
			"resolved_at":         nullableTime(conflict.ResolvedAt),
			"justification":       conflict.Justification,
		}).
		Where(sq.Eq{
			"id":     conflict.ID,
			"status": string(models.ConflictPending),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: mark conflict resolved: %w", ErrBuildingSQLQuery, err)
	}

	res, err := c.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.MarkResolved").
			Str("id", conflict.ID).
			Msg("failed to mark conflict resolved")
		return fmt.Errorf("%w: mark resolved (id=%s): %w", ErrExecutingStatement, conflict.ID, err)
	}

	// записи нет либо она уже разрешена
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrConflictNotFound, conflict.ID)
	}

	return nil
}

func scanConflict(row rowScanner) (models.SyncConflict, error) {
	var (
		conflict      models.SyncConflict
		localVersion  string
		serverVersion string
		status        string
		strategy      string
		resolvedAt    sql.NullTime
	)

	err := row.Scan(
		&conflict.ID, &conflict.QueueItemID, &conflict.EntityID, &conflict.EntityType,
		&localVersion, &serverVersion, &conflict.LocalBaseVersion, &conflict.ServerVersionNum,
		&conflict.DetectedBy, &conflict.DetectedAt, &conflict.SubmittedBy,
		&status, &strategy, &conflict.ResolvedBy, &resolvedAt, &conflict.Justification,
	)
	if err != nil {
		return models.SyncConflict{}, err
	}

	conflict.Status = models.ConflictStatus(status)
	conflict.ResolutionStrategy = models.ResolutionStrategy(strategy)
	if resolvedAt.Valid {
		t := resolvedAt.Time
		conflict.ResolvedAt = &t
	}
	if err = json.Unmarshal([]byte(localVersion), &conflict.LocalVersion); err != nil {
		return models.SyncConflict{}, fmt.Errorf("decode local_version column: %w", err)
	}
	if err = json.Unmarshal([]byte(serverVersion), &conflict.ServerVersion); err != nil {
		return models.SyncConflict{}, fmt.Errorf("decode server_version column: %w", err)
	}

	return conflict, nil
}

// isUniqueViolation matches SQLITE_CONSTRAINT_UNIQUE by message text, the
// driver exposes no portable error code through database/sql.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
