// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connectivity tracks device reachability and power state. The host
// application pushes status reports through the HTTP API; between reports the
// monitor can probe the gateway health endpoint itself.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// latency thresholds for quality classification on probe
const (
	goodLatency     = 300 * time.Millisecond
	degradedLatency = 1500 * time.Millisecond
)

// Monitor holds the last known connectivity snapshot and fans status
// changes out to subscribers. All callbacks run on a single dispatch
// goroutine, so subscribers never need their own locking against the
// monitor.
type Monitor struct {
	mu          sync.RWMutex
	status      models.ConnectivityStatus
	subscribers []func(models.ConnectivityStatus)

	changes chan models.ConnectivityStatus

	client        *resty.Client
	probeInterval time.Duration
	logger        *logger.Logger
}

func NewMonitor(cfg config.Gateway, probeInterval time.Duration, log *logger.Logger) *Monitor {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout)
	if cfg.AuthToken != "" {
		client.SetAuthToken(cfg.AuthToken)
	}

	return &Monitor{
		status: models.ConnectivityStatus{
			// до первого отчёта считаем устройство оффлайн
			IsOnline:     false,
			Quality:      models.QualityPoor,
			BatteryLevel: 100,
			CheckedAt:    time.Now().UTC(),
		},
		changes:       make(chan models.ConnectivityStatus, 16),
		client:        client,
		probeInterval: probeInterval,
		logger:        log,
	}
}

// Status returns the most recent snapshot.
func (m *Monitor) Status() models.ConnectivityStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Subscribe registers fn to be called on every status change. Must be
// called before Run; registration is not safe concurrently with dispatch.
func (m *Monitor) Subscribe(fn func(models.ConnectivityStatus)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// SetStatus records a status report pushed by the host application and
// queues it for dispatch. When the dispatch buffer is full the change is
// still recorded; only the notification is dropped, subscribers catch up
// on the next change.
func (m *Monitor) SetStatus(status models.ConnectivityStatus) {
	if status.CheckedAt.IsZero() {
		status.CheckedAt = time.Now().UTC()
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()

	select {
	case m.changes <- status:
	default:
		m.logger.Warn().
			Str("func", "Monitor.SetStatus").
			Msg("dispatch buffer full, dropping connectivity notification")
	}
}

// Run drives the dispatch loop and, when a probe interval is configured,
// periodically probes the gateway health endpoint. Blocks until ctx is
// cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	var ticker *time.Ticker
	var probeC <-chan time.Time
	if m.probeInterval > 0 {
		ticker = time.NewTicker(m.probeInterval)
		probeC = ticker.C
		defer ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case status := <-m.changes:
			m.dispatch(status)
		case <-probeC:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) dispatch(status models.ConnectivityStatus) {
	m.mu.RLock()
	subscribers := m.subscribers
	m.mu.RUnlock()

	for _, fn := range subscribers {
		fn(status)
	}
}

// probe checks the gateway health endpoint and updates reachability and
// link quality. Battery fields come only from host reports and are
// preserved across probes.
func (m *Monitor) probe(ctx context.Context) {
	start := time.Now()
	resp, err := m.client.R().SetContext(ctx).Get("/ping")
	latency := time.Since(start)

	online := err == nil && resp.StatusCode() < 500
	quality := classifyQuality(online, latency)

	m.mu.Lock()
	status := m.status
	changed := status.IsOnline != online || status.Quality != quality
	status.IsOnline = online
	status.Quality = quality
	status.CheckedAt = time.Now().UTC()
	m.status = status
	m.mu.Unlock()

	m.logger.Debug().
		Str("func", "Monitor.probe").
		Bool("online", online).
		Str("quality", string(quality)).
		Dur("latency", latency).
		Msg("gateway probe finished")

	if changed {
		m.dispatch(status)
	}
}

func classifyQuality(online bool, latency time.Duration) models.ConnectionQuality {
	switch {
	case !online:
		return models.QualityPoor
	case latency <= goodLatency:
		return models.QualityGood
	case latency <= degradedLatency:
		return models.QualityDegraded
	default:
		return models.QualityPoor
	}
}
