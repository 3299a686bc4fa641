package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/sync", func(r chi.Router) {
		r.Get("/status", h.syncStatus)
		r.Get("/progress", h.syncProgress)
		r.Post("/trigger", h.triggerSync)

		r.Get("/settings", h.getSettings)
		r.Patch("/settings", h.updateSettings)

		r.Post("/mutations", h.submitMutation)
		r.Get("/queue", h.listQueue)
		r.Get("/queue/summary", h.queueSummary)
		r.Delete("/queue/{id}", h.discardQueueItem)
		r.Post("/queue/{id}/retry", h.retryQueueItem)

		r.Get("/conflicts", h.listConflicts)
		r.Get("/conflicts/{id}", h.getConflict)
		r.Post("/conflicts/{id}/resolve", h.resolveConflict)

		r.Get("/sessions", h.listSessions)
		r.Get("/performance", h.performance)

		r.Get("/connectivity", h.connectivityStatus)
		r.Post("/connectivity", h.pushConnectivity)

		r.Get("/optimistic/{id}", h.getOptimisticUpdate)
		r.Post("/optimistic/{id}/retry", h.retryOptimisticUpdate)
		r.Post("/optimistic/{id}/rollback", h.rollbackOptimisticUpdate)
		r.Get("/entities/{entityType}/{entityID}/state", h.entityState)
	})

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/ping", h.ping)

	return router
}
