package service

import (
	"context"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

const defaultHistoryPageSize = 20

type sessionService struct {
	sessions store.SessionRepository
	logger   *logger.Logger
}

func NewSessionService(sessions store.SessionRepository, logger *logger.Logger) SessionService {
	return &sessionService{sessions: sessions, logger: logger}
}

// History implements [SessionService]. Pages are newest-first.
func (s *sessionService) History(ctx context.Context, limit, offset int) ([]models.SyncSession, int, error) {
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.sessions.List(ctx, limit, offset)
}

// Performance implements [SessionService].
func (s *sessionService) Performance(ctx context.Context) (models.SyncPerformance, error) {
	return s.sessions.Performance(ctx)
}
