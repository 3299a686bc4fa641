package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrSyncAlreadyRunning:  http.StatusConflict,
	service.ErrSyncConditionsUnmet: http.StatusPreconditionFailed,

	service.ErrEmptyEntityRef: http.StatusBadRequest,
	service.ErrUnknownAction:  http.StatusBadRequest,
	service.ErrEmptyPayload:   http.StatusBadRequest,

	service.ErrUnknownStrategy:         http.StatusBadRequest,
	service.ErrJustificationTooShort:   http.StatusBadRequest,
	service.ErrMergedDataRequired:      http.StatusBadRequest,
	service.ErrConflictAlreadyResolved: http.StatusConflict,

	service.ErrItemNotRetryable:          http.StatusConflict,
	service.ErrOptimisticNotFound:        http.StatusNotFound,
	service.ErrOptimisticNotRetryable:    http.StatusConflict,
	service.ErrOptimisticNotRollbackable: http.StatusConflict,
	service.ErrRetriesExhausted:          http.StatusConflict,

	store.ErrQueueItemNotFound: http.StatusNotFound,
	store.ErrConflictNotFound:  http.StatusNotFound,
	store.ErrSessionNotFound:   http.StatusNotFound,
	store.ErrQueueItemNotSaved: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
