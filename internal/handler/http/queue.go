// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) submitMutation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var mutationRequest models.MutationRequest
	if err := json.NewDecoder(r.Body).Decode(&mutationRequest); err != nil {
		log.Err(err).Str("func", "*Handler.submitMutation").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.MutationService.Submit(ctx, mutationRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.submitMutation").Msg("error submitting mutation")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusCreated)
}

func (h *Handler) listQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter := queueFilterFromQuery(r)

	items, err := h.services.MutationService.ListQueue(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listQueue").Msg("error listing queue")
		http.Error(w, "error listing queue", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.QueueListResponse{Items: items, Length: len(items)}, http.StatusOK)
}

func (h *Handler) queueSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	summary, err := h.services.MutationService.QueueSummary(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.queueSummary").Msg("error building queue summary")
		http.Error(w, "error building queue summary", statusFromError(err))
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) discardQueueItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	if err := h.services.MutationService.Discard(ctx, id); err != nil {
		log.Err(err).Str("func", "*Handler.discardQueueItem").Str("id", id).Msg("error discarding queue item")
		http.Error(w, "error discarding queue item", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) retryQueueItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	item, err := h.services.MutationService.RetryItem(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.retryQueueItem").Str("id", id).Msg("error re-arming queue item")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, item, http.StatusOK)
}

// queueFilterFromQuery reads the optional ?status=&entityType=&limit=&offset=
// parameters. Unknown or malformed numbers fall back to zero values.
func queueFilterFromQuery(r *http.Request) models.QueueFilter {
	var filter models.QueueFilter

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Statuses = []models.QueueItemStatus{models.QueueItemStatus(status)}
	}
	filter.EntityType = r.URL.Query().Get("entityType")

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	return filter
}
