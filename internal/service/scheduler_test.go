// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/models"
)

// newTestScheduler — планировщик поверх движка с моками
func newTestScheduler(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*syncScheduler,
	*mock.MockQueueRepository,
	*mock.MockSessionRepository,
	*mock.MockNotifier,
	*stubConnectivity,
) {
	t.Helper()

	engine, mockQueue, _, mockSessions, _, mockNotifier, connectivity := newTestEngine(t, ctrl)
	scheduler := newSyncScheduler(engine, connectivity, models.DefaultSyncSettings(), logger.Nop())

	return scheduler, mockQueue, mockSessions, mockNotifier, connectivity
}

// ── TriggerImmediateSync ─────────────────────────────────────────────────────

func TestSyncScheduler_TriggerImmediateSync_RejectedWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, _ := newTestScheduler(t, ctrl)

	scheduler.mu.Lock()
	scheduler.running = true
	scheduler.mu.Unlock()

	err := scheduler.TriggerImmediateSync("manual")
	assert.ErrorIs(t, err, ErrSyncAlreadyRunning)
}

func TestSyncScheduler_TriggerImmediateSync_ConditionsUnmet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, connectivity := newTestScheduler(t, ctrl)
	connectivity.status.IsOnline = false

	err := scheduler.TriggerImmediateSync("manual")
	require.ErrorIs(t, err, ErrSyncConditionsUnmet)
	assert.Contains(t, err.Error(), "offline")
}

func TestSyncScheduler_TriggerImmediateSync_Accepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, _ := newTestScheduler(t, ctrl)

	require.NoError(t, scheduler.TriggerImmediateSync(""))

	select {
	case reason := <-scheduler.trigger:
		// пустая причина нормализуется в manual
		assert.Equal(t, "manual", reason)
	default:
		t.Fatal("expected a buffered trigger")
	}
}

func TestSyncScheduler_TriggerImmediateSync_DuplicateDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, _ := newTestScheduler(t, ctrl)

	require.NoError(t, scheduler.TriggerImmediateSync("first"))
	require.NoError(t, scheduler.TriggerImmediateSync("second"))

	assert.Equal(t, "first", <-scheduler.trigger)
	select {
	case extra := <-scheduler.trigger:
		t.Fatalf("unexpected second trigger: %s", extra)
	default:
	}
}

// ── Start loop ───────────────────────────────────────────────────────────────

func TestSyncScheduler_Start_RunsTriggeredCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, mockQueue, mockSessions, mockNotifier, _ := newTestScheduler(t, ctrl)

	cycleDone := make(chan struct{})
	mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mockQueue.EXPECT().RequeueInterrupted(gomock.Any()).Return(0, nil)
	mockQueue.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	mockQueue.EXPECT().Summary(gomock.Any()).Return(models.QueueSummary{}, nil)
	mockNotifier.EXPECT().SyncCompleted(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ models.SyncSession) { close(cycleDone) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- scheduler.Start(ctx) }()

	require.NoError(t, scheduler.TriggerImmediateSync("manual"))

	select {
	case <-cycleDone:
	case <-time.After(2 * time.Second):
		t.Fatal("cycle did not run")
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	status := scheduler.Status()
	assert.NotNil(t, status.LastCycleAt)
	assert.Empty(t, status.LastError)
}

func TestSyncScheduler_Start_SkipsCycleWhenOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, connectivity := newTestScheduler(t, ctrl)
	connectivity.status.IsOnline = false

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- scheduler.Start(ctx) }()

	// триггер кладём напрямую, минуя проверку в TriggerImmediateSync
	scheduler.trigger <- "manual"

	// движок не вызывается: никакие ожидания моков не настроены,
	// нарушение уронит тест через ctrl.Finish
	time.Sleep(100 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, models.SchedulerIdle, scheduler.Status().State)
}

// ── connectivity subscription ────────────────────────────────────────────────

func TestSyncScheduler_ConnectivityRegainedFiresTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, connectivity := newTestScheduler(t, ctrl)

	offline := connectivity.status
	offline.IsOnline = false
	connectivity.push(offline)

	online := offline
	online.IsOnline = true
	connectivity.push(online)

	select {
	case reason := <-scheduler.trigger:
		assert.Equal(t, "connectivity_regained", reason)
	default:
		t.Fatal("expected connectivity trigger")
	}

	// повторный онлайн без обрыва триггер не дублирует
	connectivity.push(online)
	select {
	case <-scheduler.trigger:
		t.Fatal("unexpected trigger without an offline edge")
	default:
	}
}

// ── settings ─────────────────────────────────────────────────────────────────

func TestSyncScheduler_UpdateSettings_PartialApplication(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, _ := newTestScheduler(t, ctrl)

	battery := 150 // вне диапазона
	interval := 10
	updated, rejected := scheduler.UpdateSettings(models.SyncSettingsPatch{
		MinimumBatteryLevel: &battery,
		SyncIntervalMinutes: &interval,
	})

	require.Len(t, rejected, 1)
	assert.Equal(t, "minimum_battery_level", rejected[0].Field)

	// корректное поле применилось несмотря на отклонённое
	assert.Equal(t, 10, updated.SyncIntervalMinutes)
	assert.Equal(t, models.DefaultSyncSettings().MinimumBatteryLevel, updated.MinimumBatteryLevel)
	assert.Equal(t, 10, scheduler.Settings().SyncIntervalMinutes)
}

func TestSyncScheduler_StopAndResume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler, _, _, _, _ := newTestScheduler(t, ctrl)

	scheduler.Stop()
	status := scheduler.Status()
	assert.True(t, status.IsPaused)
	assert.False(t, status.CanSync)
	assert.Equal(t, "scheduler is paused", status.CanSyncNote)

	scheduler.Resume()
	status = scheduler.Status()
	assert.False(t, status.IsPaused)
	assert.True(t, status.CanSync)
}

// ── checkConditions ──────────────────────────────────────────────────────────

func TestCheckConditions(t *testing.T) {
	settings := models.DefaultSyncSettings()
	online := onlineStatus()

	tests := []struct {
		name     string
		settings models.SyncSettings
		status   models.ConnectivityStatus
		paused   bool
		want     bool
	}{
		{name: "all conditions met", settings: settings, status: online, want: true},
		{name: "paused", settings: settings, status: online, paused: true, want: false},
		{
			name: "sync disabled",
			settings: func() models.SyncSettings {
				s := settings
				s.Enabled = false
				return s
			}(),
			status: online,
			want:   false,
		},
		{
			name:     "offline",
			settings: settings,
			status: func() models.ConnectivityStatus {
				s := online
				s.IsOnline = false
				return s
			}(),
			want: false,
		},
		{
			name: "charging required but not charging",
			settings: func() models.SyncSettings {
				s := settings
				s.SyncOnlyWhenCharging = true
				return s
			}(),
			status: online,
			want:   false,
		},
		{
			name:     "battery below minimum",
			settings: settings,
			status: func() models.ConnectivityStatus {
				s := online
				s.BatteryLevel = 10
				return s
			}(),
			want: false,
		},
		{
			name:     "low battery but charging",
			settings: settings,
			status: func() models.ConnectivityStatus {
				s := online
				s.BatteryLevel = 10
				s.IsCharging = true
				return s
			}(),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, note := checkConditions(tt.settings, tt.status, tt.paused)
			assert.Equal(t, tt.want, got)
			if !tt.want {
				assert.NotEmpty(t, note)
			}
		})
	}
}
