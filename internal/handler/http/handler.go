package http

import (
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/models"
)

// ConnectivityController is the monitor surface the transport layer needs:
// reading the current snapshot and accepting pushed platform updates.
type ConnectivityController interface {
	Status() models.ConnectivityStatus
	SetStatus(status models.ConnectivityStatus)
}

type Handler struct {
	services     *service.Services
	connectivity ConnectivityController

	logger *logger.Logger
}

func NewHandler(services *service.Services, connectivity ConnectivityController, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		connectivity: connectivity,
		logger:       logger,
	}
}
