package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	sessions, total, err := h.services.SessionService.History(ctx, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listSessions").Msg("error listing sessions")
		http.Error(w, "error listing sessions", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SessionListResponse{
		Sessions: sessions,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, http.StatusOK)
}

func (h *Handler) performance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	performance, err := h.services.SessionService.Performance(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.performance").Msg("error aggregating performance")
		http.Error(w, "error aggregating performance", statusFromError(err))
		return
	}

	utils.WriteJSON(w, performance, http.StatusOK)
}
