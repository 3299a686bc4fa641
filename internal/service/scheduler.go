// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/metrics"
	"github.com/MKhiriev/go-field-sync/models"
)

// syncScheduler decides when a cycle may run. State machine:
// IDLE → CHECKING_CONDITIONS → RUNNING → IDLE, with the unmet-conditions
// branch falling straight back to IDLE re-armed for the next tick.
type syncScheduler struct {
	engine  *syncEngine
	monitor ConnectivitySource
	logger  *logger.Logger

	mu          sync.RWMutex
	settings    models.SyncSettings
	state       models.SchedulerState
	running     bool
	paused      bool
	lastCycleAt *time.Time
	nextCycleAt *time.Time
	lastError   string

	trigger chan string
}

func newSyncScheduler(engine *syncEngine, monitor ConnectivitySource, settings models.SyncSettings, logger *logger.Logger) *syncScheduler {
	s := &syncScheduler{
		engine:   engine,
		monitor:  monitor,
		logger:   logger,
		settings: settings,
		state:    models.SchedulerIdle,
		trigger:  make(chan string, 1),
	}

	// смена связности с оффлайн на онлайн перезапускает планировщик
	var wasOnline bool
	monitor.Subscribe(func(status models.ConnectivityStatus) {
		metrics.SetGatewayOnline(status.IsOnline)
		if status.IsOnline && !wasOnline {
			select {
			case s.trigger <- "connectivity_regained":
			default:
			}
		}
		wasOnline = status.IsOnline
	})

	return s
}

// Start implements [SyncService]. It blocks, running cycles on the
// configured interval and on triggers, until ctx is cancelled.
func (s *syncScheduler) Start(ctx context.Context) error {
	s.logger.Info().
		Str("func", "syncScheduler.Start").
		Int("interval_minutes", s.Settings().SyncIntervalMinutes).
		Msg("scheduler started")

	for {
		interval := s.interval()
		s.setNextCycle(time.Now().UTC().Add(interval))

		// таймер пересоздаётся на каждой итерации, чтобы смена настроек
		// применялась со следующего тика
		timer := time.NewTimer(interval)

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			s.attempt(ctx, "scheduled")
		case reason := <-s.trigger:
			timer.Stop()
			s.attempt(ctx, reason)
		}
	}
}

// Stop implements [SyncService]. It pauses scheduling; an in-progress
// cycle is left to drain.
func (s *syncScheduler) Stop() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "syncScheduler.Stop").
		Msg("scheduler paused")
}

// Resume lifts a Stop pause.
func (s *syncScheduler) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// TriggerImmediateSync implements [SyncService]. The trigger is rejected,
// never queued, when a cycle is already in progress.
func (s *syncScheduler) TriggerImmediateSync(reason string) error {
	s.mu.RLock()
	running := s.running
	settings := s.settings
	s.mu.RUnlock()

	if running {
		return ErrSyncAlreadyRunning
	}
	if canSync, note := checkConditions(settings, s.monitor.Status(), false); !canSync {
		return fmt.Errorf("%w: %s", ErrSyncConditionsUnmet, note)
	}

	if reason == "" {
		reason = "manual"
	}
	select {
	case s.trigger <- reason:
	default:
		// уже есть необработанный триггер, второй не нужен
	}
	return nil
}

// Status implements [SyncService].
func (s *syncScheduler) Status() models.SyncStatus {
	connectivity := s.monitor.Status()

	s.mu.RLock()
	defer s.mu.RUnlock()

	canSync, note := checkConditions(s.settings, connectivity, s.paused)
	return models.SyncStatus{
		State:        s.state,
		IsRunning:    s.running,
		IsPaused:     s.paused,
		CanSync:      canSync,
		CanSyncNote:  note,
		LastCycleAt:  s.lastCycleAt,
		NextCycleAt:  s.nextCycleAt,
		LastError:    s.lastError,
		Connectivity: connectivity,
	}
}

// Progress implements [SyncService].
func (s *syncScheduler) Progress() models.SyncProgress {
	return s.engine.Progress()
}

// Settings implements [SyncService] and [SettingsProvider].
func (s *syncScheduler) Settings() models.SyncSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings implements [SyncService]. In-range fields apply even when
// the same patch carries out-of-range ones.
func (s *syncScheduler) UpdateSettings(patch models.SyncSettingsPatch) (models.SyncSettings, []models.FieldRejection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rejected := s.settings.Apply(patch)

	s.logger.Info().
		Str("func", "syncScheduler.UpdateSettings").
		Int("rejected_fields", len(rejected)).
		Msg("sync settings updated")

	return s.settings, rejected
}

// attempt runs one pass of the state machine. Called only from the Start
// loop, so cycles are naturally serialised.
func (s *syncScheduler) attempt(ctx context.Context, reason string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.state = models.SchedulerChecking
	settings := s.settings
	paused := s.paused
	s.mu.Unlock()

	canSync, note := checkConditions(settings, s.monitor.Status(), paused)
	if !canSync {
		s.logger.Debug().
			Str("func", "syncScheduler.attempt").
			Str("reason", reason).
			Str("note", note).
			Msg("sync conditions unmet, staying idle")

		s.mu.Lock()
		s.state = models.SchedulerIdle
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.state = models.SchedulerRunning
	s.running = true
	s.mu.Unlock()

	_, err := s.engine.RunCycle(ctx, reason, settings)

	now := time.Now().UTC()
	s.mu.Lock()
	s.state = models.SchedulerIdle
	s.running = false
	s.lastCycleAt = &now
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Err(err).
			Str("func", "syncScheduler.attempt").
			Str("reason", reason).
			Msg("sync cycle failed")
	}
}

func (s *syncScheduler) interval() time.Duration {
	minutes := s.Settings().SyncIntervalMinutes
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute
}

func (s *syncScheduler) setNextCycle(at time.Time) {
	s.mu.Lock()
	s.nextCycleAt = &at
	s.mu.Unlock()
}

// checkConditions gates cycle start on the configured connectivity and
// power requirements.
func checkConditions(settings models.SyncSettings, connectivity models.ConnectivityStatus, paused bool) (bool, string) {
	switch {
	case paused:
		return false, "scheduler is paused"
	case !settings.Enabled:
		return false, "sync is disabled"
	case !connectivity.IsOnline:
		return false, "device is offline"
	case settings.SyncOnlyWhenCharging && !connectivity.IsCharging:
		return false, "device is not charging"
	case !connectivity.IsCharging && connectivity.BatteryLevel < settings.MinimumBatteryLevel:
		return false, fmt.Sprintf("battery %d%% below minimum %d%%", connectivity.BatteryLevel, settings.MinimumBatteryLevel)
	}
	return true, ""
}
