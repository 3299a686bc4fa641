package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) connectivityStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.connectivity.Status(), http.StatusOK)
}

// pushConnectivity accepts a platform-reported connectivity snapshot. The
// host application knows about radio and battery state changes long before
// the probe loop would notice them.
func (h *Handler) pushConnectivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var status models.ConnectivityStatus
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		log.Err(err).Str("func", "*Handler.pushConnectivity").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if status.BatteryLevel < 0 || status.BatteryLevel > 100 {
		http.Error(w, "battery_level must be between 0 and 100", http.StatusBadRequest)
		return
	}
	if status.CheckedAt.IsZero() {
		status.CheckedAt = time.Now().UTC()
	}

	h.connectivity.SetStatus(status)
	utils.WriteJSON(w, h.connectivity.Status(), http.StatusOK)
}
