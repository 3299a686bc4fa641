// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

const defaultNotifyPath = "/api/notifications"

type httpNotifier struct {
	client *resty.Client

	path     string
	deviceID string

	logger *logger.Logger
}

type notification struct {
	Kind     string `json:"kind"`
	DeviceID string `json:"device_id"`
	SentAt   string `json:"sent_at"`
	Body     any    `json:"body"`
}

// NewHTTPNotifier builds a best-effort [Notifier] posting to the gateway's
// notification endpoint. All delivery failures are logged at warn level and
// swallowed.
func NewHTTPNotifier(cfg config.Gateway, deviceID string, logger *logger.Logger) (Notifier, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)
	if cfg.AuthToken != "" {
		client.SetAuthToken(cfg.AuthToken)
	}

	path := cfg.NotifyPath
	if path == "" {
		path = defaultNotifyPath
	}

	return &httpNotifier{client: client, path: path, deviceID: deviceID, logger: logger}, nil
}

func (n *httpNotifier) ConflictDetected(ctx context.Context, conflict models.SyncConflict) {
	n.send(ctx, "conflict_detected", conflict)
}

func (n *httpNotifier) ConflictResolved(ctx context.Context, conflict models.SyncConflict) {
	n.send(ctx, "conflict_resolved", conflict)
}

func (n *httpNotifier) SyncCompleted(ctx context.Context, session models.SyncSession) {
	n.send(ctx, "sync_completed", session)
}

func (n *httpNotifier) send(ctx context.Context, kind string, body any) {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(notification{
			Kind:     kind,
			DeviceID: n.deviceID,
			SentAt:   time.Now().UTC().Format(time.RFC3339),
			Body:     body,
		}).
		Post(n.path)
	if err != nil {
		n.logger.Warn().
			Err(err).
			Str("func", "httpNotifier.send").
			Str("kind", kind).
			Msg("notification delivery failed")
		return
	}
	if resp.StatusCode() >= 300 {
		n.logger.Warn().
			Str("func", "httpNotifier.send").
			Str("kind", kind).
			Int("status", resp.StatusCode()).
			Msg("notification rejected by gateway")
	}
}
