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

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/models"
)

// newTestConflictSvc — хелпер для создания conflictService с моками
func newTestConflictSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*conflictService,
	*mock.MockConflictRepository,
	*mock.MockQueueRepository,
	*mock.MockSubmissionGateway,
	*mock.MockNotifier,
	*OptimisticTracker,
) {
	t.Helper()

	mockConflicts := mock.NewMockConflictRepository(ctrl)
	mockQueue := mock.NewMockQueueRepository(ctrl)
	mockGateway := mock.NewMockSubmissionGateway(ctrl)
	mockNotifier := mock.NewMockNotifier(ctrl)
	log := logger.Nop()
	tracker := NewOptimisticTracker(mockQueue, log)

	svc := NewConflictService(mockConflicts, mockQueue, mockGateway, mockNotifier, tracker, log).(*conflictService)

	return svc, mockConflicts, mockQueue, mockGateway, mockNotifier, tracker
}

func pendingConflict() models.SyncConflict {
	return models.SyncConflict{
		ID:               "c1",
		QueueItemID:      "q1",
		EntityID:         "entity-1",
		EntityType:       "assessment",
		LocalVersion:     map[string]any{"a": 1, "b": 2},
		ServerVersion:    map[string]any{"a": 0, "b": 2, "c": 3},
		LocalBaseVersion: 3,
		ServerVersionNum: 7,
		DetectedBy:       "device-1",
		DetectedAt:       time.Now().UTC().Add(-time.Minute),
		Status:           models.ConflictPending,
	}
}

func resolveReq(strategy models.ResolutionStrategy) models.ResolveConflictRequest {
	return models.ResolveConflictRequest{
		Strategy:      strategy,
		ResolverID:    "coordinator-1",
		Justification: "field team confirmed on site",
	}
}

// ── validation ───────────────────────────────────────────────────────────────

func TestConflictService_Resolve_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _, _ := newTestConflictSvc(t, ctrl)
	ctx := context.Background()

	t.Run("unknown strategy", func(t *testing.T) {
		req := resolveReq("COIN_FLIP")
		_, err := svc.Resolve(ctx, "c1", req)
		assert.ErrorIs(t, err, ErrUnknownStrategy)
	})

	t.Run("justification too short", func(t *testing.T) {
		req := resolveReq(models.StrategyLocalWins)
		req.Justification = "short"
		_, err := svc.Resolve(ctx, "c1", req)
		assert.ErrorIs(t, err, ErrJustificationTooShort)
	})

	t.Run("manual without merged data", func(t *testing.T) {
		req := resolveReq(models.StrategyManual)
		_, err := svc.Resolve(ctx, "c1", req)
		assert.ErrorIs(t, err, ErrMergedDataRequired)
	})
}

func TestConflictService_Resolve_AlreadyResolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockConflicts, _, _, _, _ := newTestConflictSvc(t, ctrl)
	ctx := context.Background()

	resolved := pendingConflict()
	resolved.Status = models.ConflictResolved
	mockConflicts.EXPECT().Get(ctx, "c1").Return(resolved, nil)

	_, err := svc.Resolve(ctx, "c1", resolveReq(models.StrategyLocalWins))
	assert.ErrorIs(t, err, ErrConflictAlreadyResolved)
}

// ── strategies ───────────────────────────────────────────────────────────────

func TestConflictService_Resolve_LocalWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockConflicts, mockQueue, mockGateway, mockNotifier, tracker := newTestConflictSvc(t, ctrl)
	ctx := context.Background()
	conflict := pendingConflict()
	ref := models.EntityRef{EntityID: conflict.EntityID, EntityType: conflict.EntityType}

	mockConflicts.EXPECT().Get(ctx, "c1").Return(conflict, nil)
	mockGateway.EXPECT().ForceApply(ctx, ref, conflict.LocalVersion, "coordinator-1").Return(adapter.SubmissionResult{NewVersion: 8}, nil)
	mockQueue.EXPECT().Remove(ctx, "q1").Return(nil)
	mockConflicts.EXPECT().MarkResolved(ctx, gomock.Any()).Return(nil)
	mockNotifier.EXPECT().ConflictResolved(ctx, gomock.Any())

	got, err := svc.Resolve(ctx, "c1", resolveReq(models.StrategyLocalWins))
	require.NoError(t, err)

	assert.Equal(t, models.ConflictResolved, got.Status)
	assert.Equal(t, models.StrategyLocalWins, got.ResolutionStrategy)
	assert.Equal(t, "coordinator-1", got.ResolvedBy)
	assert.NotNil(t, got.ResolvedAt)
	assert.Equal(t, "field team confirmed on site", got.Justification)

	// локальная версия стала подтверждённым состоянием
	state, ok := tracker.EntityState(ref)
	require.True(t, ok)
	assert.Equal(t, conflict.LocalVersion, state)
}

func TestConflictService_Resolve_ServerWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockConflicts, mockQueue, _, mockNotifier, tracker := newTestConflictSvc(t, ctrl)
	ctx := context.Background()
	conflict := pendingConflict()
	ref := models.EntityRef{EntityID: conflict.EntityID, EntityType: conflict.EntityType}

	// сервер уже в нужном состоянии: ForceApply не вызывается
	mockConflicts.EXPECT().Get(ctx, "c1").Return(conflict, nil)
	mockQueue.EXPECT().Remove(ctx, "q1").Return(nil)
	mockConflicts.EXPECT().MarkResolved(ctx, gomock.Any()).Return(nil)
	mockNotifier.EXPECT().ConflictResolved(ctx, gomock.Any())

	got, err := svc.Resolve(ctx, "c1", resolveReq(models.StrategyServerWins))
	require.NoError(t, err)
	assert.Equal(t, models.StrategyServerWins, got.ResolutionStrategy)

	state, ok := tracker.EntityState(ref)
	require.True(t, ok)
	assert.Equal(t, conflict.ServerVersion, state)
}

func TestConflictService_Resolve_Merge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockConflicts, mockQueue, mockGateway, mockNotifier, _ := newTestConflictSvc(t, ctrl)
	ctx := context.Background()
	conflict := pendingConflict()

	var applied map[string]any
	mockConflicts.EXPECT().Get(ctx, "c1").Return(conflict, nil)
	mockGateway.EXPECT().ForceApply(ctx, gomock.Any(), gomock.Any(), "coordinator-1").
		DoAndReturn(func(_ context.Context, _ models.EntityRef, state map[string]any, _ string) (adapter.SubmissionResult, error) {
			applied = state
			return adapter.SubmissionResult{NewVersion: 8}, nil
		})
	mockQueue.EXPECT().Remove(ctx, "q1").Return(nil)
	mockConflicts.EXPECT().MarkResolved(ctx, gomock.Any()).Return(nil)
	mockNotifier.EXPECT().ConflictResolved(ctx, gomock.Any())

	_, err := svc.Resolve(ctx, "c1", resolveReq(models.StrategyMerge))
	require.NoError(t, err)

	// локальные поля побеждают при коллизии, серверные сохраняются
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, applied)
}

func TestConflictService_Resolve_Manual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockConflicts, mockQueue, mockGateway, mockNotifier, _ := newTestConflictSvc(t, ctrl)
	ctx := context.Background()
	conflict := pendingConflict()
	merged := map[string]any{"a": 42, "note": "reconciled by hand"}

	mockConflicts.EXPECT().Get(ctx, "c1").Return(conflict, nil)
	mockGateway.EXPECT().ForceApply(ctx, gomock.Any(), merged, "coordinator-1").Return(adapter.SubmissionResult{NewVersion: 8}, nil)
	mockQueue.EXPECT().Remove(ctx, "q1").Return(nil)
	mockConflicts.EXPECT().MarkResolved(ctx, gomock.Any()).Return(nil)
	mockNotifier.EXPECT().ConflictResolved(ctx, gomock.Any())

	req := resolveReq(models.StrategyManual)
	req.MergedData = merged

	got, err := svc.Resolve(ctx, "c1", req)
	require.NoError(t, err)
	assert.Equal(t, models.StrategyManual, got.ResolutionStrategy)
}

// ── failure paths ────────────────────────────────────────────────────────────

func TestConflictService_Resolve_GatewayFailureLeavesConflictPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockConflicts, _, mockGateway, _, _ := newTestConflictSvc(t, ctrl)
	ctx := context.Background()
	conflict := pendingConflict()

	// сбой шлюза: MarkResolved и Remove не вызываются, разрешение можно повторить
	mockConflicts.EXPECT().Get(ctx, "c1").Return(conflict, nil)
	mockGateway.EXPECT().ForceApply(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(adapter.SubmissionResult{}, assert.AnError)

	_, err := svc.Resolve(ctx, "c1", resolveReq(models.StrategyLocalWins))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestConflictService_Resolve_QueueRemoveFailureIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockConflicts, mockQueue, mockGateway, mockNotifier, _ := newTestConflictSvc(t, ctrl)
	ctx := context.Background()
	conflict := pendingConflict()

	mockConflicts.EXPECT().Get(ctx, "c1").Return(conflict, nil)
	mockGateway.EXPECT().ForceApply(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(adapter.SubmissionResult{NewVersion: 8}, nil)
	mockQueue.EXPECT().Remove(ctx, "q1").Return(assert.AnError)
	mockConflicts.EXPECT().MarkResolved(ctx, gomock.Any()).Return(nil)
	mockNotifier.EXPECT().ConflictResolved(ctx, gomock.Any())

	_, err := svc.Resolve(ctx, "c1", resolveReq(models.StrategyLocalWins))
	assert.NoError(t, err)
}

// ── resolvedStateFor ─────────────────────────────────────────────────────────

func TestResolvedStateFor(t *testing.T) {
	conflict := pendingConflict()

	tests := []struct {
		strategy  models.ResolutionStrategy
		wantState map[string]any
		wantPush  bool
	}{
		{models.StrategyLocalWins, map[string]any{"a": 1, "b": 2}, true},
		{models.StrategyServerWins, map[string]any{"a": 0, "b": 2, "c": 3}, false},
		{models.StrategyMerge, map[string]any{"a": 1, "b": 2, "c": 3}, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			state, push := resolvedStateFor(conflict, models.ResolveConflictRequest{Strategy: tt.strategy})
			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantPush, push)
		})
	}

	t.Run("MANUAL", func(t *testing.T) {
		merged := map[string]any{"x": 1}
		state, push := resolvedStateFor(conflict, models.ResolveConflictRequest{
			Strategy:   models.StrategyManual,
			MergedData: merged,
		})
		assert.Equal(t, merged, state)
		assert.True(t, push)
	})

	// локальные нулевые значения тоже побеждают: мутация, снявшая флаг
	// или очистившая строку, не должна воскрешать серверное значение
	t.Run("MERGE zero-valued local fields win", func(t *testing.T) {
		zeroed := models.SyncConflict{
			LocalVersion:  map[string]any{"active": false, "count": 0, "note": ""},
			ServerVersion: map[string]any{"active": true, "count": 7, "note": "old", "c": 3},
		}

		state, push := resolvedStateFor(zeroed, models.ResolveConflictRequest{Strategy: models.StrategyMerge})
		assert.True(t, push)
		assert.Equal(t, map[string]any{"active": false, "count": 0, "note": "", "c": 3}, state)
	})
}
