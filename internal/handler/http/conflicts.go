package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	status := models.ConflictStatus(r.URL.Query().Get("status"))

	conflicts, err := h.services.ConflictService.ListConflicts(ctx, status)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listConflicts").Msg("error listing conflicts")
		http.Error(w, "error listing conflicts", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ConflictListResponse{Conflicts: conflicts, Length: len(conflicts)}, http.StatusOK)
}

func (h *Handler) getConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	conflict, err := h.services.ConflictService.GetConflict(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getConflict").Str("id", id).Msg("error getting conflict")
		http.Error(w, "error getting conflict", statusFromError(err))
		return
	}

	utils.WriteJSON(w, conflict, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	var resolveRequest models.ResolveConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&resolveRequest); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	conflict, err := h.services.ConflictService.Resolve(ctx, id, resolveRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Str("id", id).Msg("error resolving conflict")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, conflict, http.StatusOK)
}
