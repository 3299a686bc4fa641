package service

import (
	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
)

type Services struct {
	SyncService       SyncService
	MutationService   MutationService
	ConflictService   ConflictService
	SessionService    SessionService
	OptimisticService OptimisticService
}

func NewServices(
	storages store.Storages,
	gateway adapter.SubmissionGateway,
	notifier adapter.Notifier,
	monitor ConnectivitySource,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	tracker := NewOptimisticTracker(storages.Queue, logger)
	engine := newSyncEngine(storages, gateway, notifier, tracker, monitor, cfg.App.DeviceID, logger)
	scheduler := newSyncScheduler(engine, monitor, cfg.Sync.Settings(), logger)

	return &Services{
		SyncService:       scheduler,
		MutationService:   NewMutationService(storages.Queue, tracker, scheduler, logger),
		ConflictService:   NewConflictService(storages.Conflicts, storages.Queue, gateway, notifier, tracker, logger),
		SessionService:    NewSessionService(storages.Sessions, logger),
		OptimisticService: tracker,
	}
}
