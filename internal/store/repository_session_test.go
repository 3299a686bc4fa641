package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &sessionRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestSessionSave_Upsert(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	end := time.Now().UTC()
	session := &models.SyncSession{
		Trigger:        "scheduled",
		StartTime:      end.Add(-2 * time.Minute),
		EndTime:        &end,
		ItemsProcessed: 4,
		ItemsSucceeded: 3,
		ItemsFailed:    1,
		Errors:         []string{"item-9: gateway unavailable"},
	}

	mock.ExpectExec("INSERT INTO sync_sessions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID == "" {
		t.Error("expected generated session ID")
	}
}

func TestSessionList_ReturnsTotal(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	start := time.Now().UTC()
	end := start.Add(time.Minute)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sync_sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(sessionColumns).
		AddRow("session-1", "manual", start, end, 5, 5, 0, 0, int64(2048), int64(2048), 0.4, `[]`).
		AddRow("session-2", "scheduled", start.Add(-time.Hour), nil, 0, 0, 0, 0, int64(0), int64(0), 0.0, `["probe failed"]`)

	mock.ExpectQuery("SELECT (.+) FROM sync_sessions ORDER BY start_time DESC").
		WillReturnRows(rows)

	sessions, total, err := repo.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 12 {
		t.Errorf("expected total 12, got %d", total)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[1].EndTime != nil {
		t.Error("expected open session to have nil EndTime")
	}
	if len(sessions[1].Errors) != 1 {
		t.Errorf("expected decoded errors column, got %v", sessions[1].Errors)
	}
}

func TestSessionPerformance_Aggregates(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	// 10 обработанных за 5 минут, 8 успешных
	rows := sqlmock.NewRows([]string{"sessions", "processed", "succeeded", "minutes", "battery", "network"}).
		AddRow(3, 10, 8, 5.0, 1.2, 4096.0)

	mock.ExpectQuery("SELECT COUNT(.+) FROM sync_sessions WHERE end_time IS NOT NULL").
		WillReturnRows(rows)

	perf, err := repo.Performance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.Sessions != 3 {
		t.Errorf("expected 3 sessions, got %d", perf.Sessions)
	}
	if perf.ItemsPerMinute != 2.0 {
		t.Errorf("expected 2 items/minute, got %f", perf.ItemsPerMinute)
	}
	if perf.SuccessRate != 0.8 {
		t.Errorf("expected success rate 0.8, got %f", perf.SuccessRate)
	}
}

func TestSessionPerformance_EmptyHistory(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"sessions", "processed", "succeeded", "minutes", "battery", "network"}).
		AddRow(0, 0, 0, 0.0, 0.0, 0.0)

	mock.ExpectQuery("SELECT COUNT(.+) FROM sync_sessions WHERE end_time IS NOT NULL").
		WillReturnRows(rows)

	perf, err := repo.Performance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.ItemsPerMinute != 0 || perf.SuccessRate != 0 {
		t.Errorf("expected zeroed rates for empty history, got %+v", perf)
	}
}
