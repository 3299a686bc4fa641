package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

func newTestConflictRepo(t *testing.T) (*conflictRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &conflictRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func conflictRow(id string, status models.ConflictStatus) *sqlmock.Rows {
	return sqlmock.NewRows(conflictColumns).
		AddRow(
			id, "item-1", "entity-1", "assessment",
			`{"severity":"high"}`, `{"severity":"medium"}`, int64(3), int64(5),
			"server", time.Now().UTC(), "medic-7",
			string(status), "", "", nil, "",
		)
}

func TestConflictSave_AssignsDefaults(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	conflict := &models.SyncConflict{
		QueueItemID: "item-1",
		EntityID:    "entity-1",
		EntityType:  "assessment",
	}

	mock.ExpectExec("INSERT INTO sync_conflicts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), conflict); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict.ID == "" {
		t.Error("expected generated ID")
	}
	if conflict.Status != models.ConflictPending {
		t.Errorf("expected status PENDING, got %s", conflict.Status)
	}
	if conflict.DetectedAt.IsZero() {
		t.Error("expected DetectedAt to be set")
	}
}

func TestConflictSave_DuplicatePending(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	conflict := &models.SyncConflict{EntityID: "entity-1", EntityType: "assessment"}

	// частичный уникальный индекс по (entity_id, entity_type) WHERE PENDING
	mock.ExpectExec("INSERT INTO sync_conflicts").
		WillReturnError(errors.New("UNIQUE constraint failed: sync_conflicts.entity_id, sync_conflicts.entity_type"))

	err := repo.Save(context.Background(), conflict)
	if !errors.Is(err, ErrDuplicatePendingConflict) {
		t.Fatalf("expected ErrDuplicatePendingConflict, got %v", err)
	}
}

func TestConflictGet_NotFound(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sync_conflicts").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrConflictNotFound) {
		t.Fatalf("expected ErrConflictNotFound, got %v", err)
	}
}

func TestConflictList_FiltersByStatus(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sync_conflicts WHERE status").
		WithArgs("PENDING").
		WillReturnRows(conflictRow("conflict-1", models.ConflictPending))

	conflicts, err := repo.List(context.Background(), models.ConflictPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].LocalVersion["severity"] != "high" {
		t.Errorf("expected decoded local version, got %v", conflicts[0].LocalVersion)
	}
}

func TestHasPendingForEntity(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sync_conflicts`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	has, err := repo.HasPendingForEntity(context.Background(), models.EntityRef{
		EntityID:   "entity-1",
		EntityType: "assessment",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Error("expected pending conflict to be reported")
	}
}

func TestMarkResolved_Success(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectExec("UPDATE sync_conflicts SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkResolved(context.Background(), models.SyncConflict{
		ID:                 "conflict-1",
		ResolutionStrategy: models.StrategyLocalWins,
		ResolvedBy:         "coordinator-2",
		ResolvedAt:         &now,
		Justification:      "field team has the freshest observation",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarkResolved_AlreadyResolvedOrMissing(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE sync_conflicts SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkResolved(context.Background(), models.SyncConflict{ID: "conflict-1"})
	if !errors.Is(err, ErrConflictNotFound) {
		t.Fatalf("expected ErrConflictNotFound, got %v", err)
	}
}
