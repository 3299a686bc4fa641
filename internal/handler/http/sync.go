package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Status(), http.StatusOK)
}

func (h *Handler) syncProgress(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Progress(), http.StatusOK)
}

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var triggerRequest models.TriggerSyncRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&triggerRequest); err != nil {
			log.Err(err).Str("func", "*Handler.triggerSync").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	if err := h.services.SyncService.TriggerImmediateSync(triggerRequest.Reason); err != nil {
		log.Err(err).Str("func", "*Handler.triggerSync").Msg("sync trigger rejected")
		utils.WriteJSON(w, models.TriggerSyncResponse{Accepted: false, Reason: err.Error()}, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.TriggerSyncResponse{Accepted: true}, http.StatusAccepted)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Settings(), http.StatusOK)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var patch models.SyncSettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateSettings").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	settings, rejected := h.services.SyncService.UpdateSettings(patch)

	utils.WriteJSON(w, models.UpdateSettingsResponse{
		Settings: settings,
		Rejected: rejected,
	}, http.StatusOK)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
