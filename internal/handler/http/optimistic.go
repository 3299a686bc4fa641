// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) getOptimisticUpdate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	update, err := h.services.OptimisticService.Get(id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getOptimisticUpdate").Str("id", id).Msg("error getting optimistic update")
		http.Error(w, "error getting optimistic update", statusFromError(err))
		return
	}

	utils.WriteJSON(w, update, http.StatusOK)
}

func (h *Handler) retryOptimisticUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	update, err := h.services.OptimisticService.Retry(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.retryOptimisticUpdate").Str("id", id).Msg("error retrying optimistic update")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, update, http.StatusOK)
}

func (h *Handler) rollbackOptimisticUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	update, err := h.services.OptimisticService.Rollback(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.rollbackOptimisticUpdate").Str("id", id).Msg("error rolling back optimistic update")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, update, http.StatusOK)
}

// entityState returns the merged probable view of an entity: proposed
// optimistic fields over the last confirmed state. 404 when the tracker has
// never seen the entity.
func (h *Handler) entityState(w http.ResponseWriter, r *http.Request) {
	ref := models.EntityRef{
		EntityID:   chi.URLParam(r, "entityID"),
		EntityType: chi.URLParam(r, "entityType"),
	}

	state, ok := h.services.OptimisticService.EntityState(ref)
	if !ok {
		http.Error(w, "no optimistic state for entity", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, state, http.StatusOK)
}
