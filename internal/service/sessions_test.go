package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/models"
)

func TestSessionService_History_DefaultsApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := mock.NewMockSessionRepository(ctrl)
	svc := NewSessionService(mockSessions, logger.Nop())
	ctx := context.Background()

	// нулевой лимит и отрицательное смещение нормализуются
	mockSessions.EXPECT().List(ctx, defaultHistoryPageSize, 0).
		Return([]models.SyncSession{{ID: "s1"}}, 1, nil)

	sessions, total, err := svc.History(ctx, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, sessions, 1)
}

func TestSessionService_History_PassesPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := mock.NewMockSessionRepository(ctrl)
	svc := NewSessionService(mockSessions, logger.Nop())
	ctx := context.Background()

	mockSessions.EXPECT().List(ctx, 5, 10).Return(nil, 42, nil)

	_, total, err := svc.History(ctx, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 42, total)
}

func TestSessionService_Performance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := mock.NewMockSessionRepository(ctrl)
	svc := NewSessionService(mockSessions, logger.Nop())
	ctx := context.Background()

	want := models.SyncPerformance{Sessions: 3, ItemsPerMinute: 12.5, SuccessRate: 0.9}
	mockSessions.EXPECT().Performance(ctx).Return(want, nil)

	got, err := svc.Performance(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
