// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// newTestGateway создаёт httpSubmissionGateway, направленный на тестовый сервер
func newTestGateway(t *testing.T, serverURL string) *httpSubmissionGateway {
	t.Helper()
	cfg := config.Gateway{
		BaseURL:        serverURL,
		AuthToken:      "test-token",
		RequestTimeout: 2 * time.Second,
	}

	g, err := NewHTTPSubmissionGateway(cfg, "device-17", logger.Nop())
	require.NoError(t, err)
	return g.(*httpSubmissionGateway)
}

func testQueueItem() models.QueueItem {
	return models.QueueItem{
		ID:          "item-1",
		EntityID:    "entity-1",
		EntityType:  "assessment",
		Action:      models.ActionUpdate,
		Payload:     map[string]any{"severity": "high"},
		BaseVersion: 3,
		SubmittedBy: "medic-7",
	}
}

// ── Submit ──────────────────────────────────────────────────────────────────

func TestSubmit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/entities/assessment/entity-1/mutations", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body mutationBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "UPDATE", body.Action)
		assert.Equal(t, int64(3), body.BaseVersion)
		assert.Equal(t, "device-17", body.DeviceID)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"new_version": 4}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	result, err := g.Submit(context.Background(), testQueueItem())

	require.NoError(t, err)
	assert.Equal(t, int64(4), result.NewVersion)
	assert.Greater(t, result.BytesSent, int64(0))
}

func TestSubmit_VersionConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"server_version": 7, "server_state": {"severity": "medium"}}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Submit(context.Background(), testQueueItem())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionConflict)

	var conflict *VersionConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(7), conflict.ServerVersionNum)
	assert.Equal(t, "medium", conflict.ServerState["severity"])
}

func TestSubmit_ConflictWithUnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Submit(context.Background(), testQueueItem())

	// конфликт распознаётся даже без тела
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestSubmit_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Submit(context.Background(), testQueueItem())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmit_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // закрываем сразу, чтобы получить connection refused

	g := newTestGateway(t, srv.URL)
	_, err := g.Submit(context.Background(), testQueueItem())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmit_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("unknown action"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Submit(context.Background(), testQueueItem())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

// ── ForceApply ──────────────────────────────────────────────────────────────

func TestForceApply_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/entities/assessment/entity-1/state", r.URL.Path)

		var body forceApplyBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "coordinator-2", body.ResolvedBy)
		assert.Equal(t, "high", body.State["severity"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"new_version": 8}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	result, err := g.ForceApply(context.Background(),
		models.EntityRef{EntityID: "entity-1", EntityType: "assessment"},
		map[string]any{"severity": "high"},
		"coordinator-2",
	)

	require.NoError(t, err)
	assert.Equal(t, int64(8), result.NewVersion)
}

// ── URL normalisation ───────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "https://api.example.org/", want: "https://api.example.org"},
		{name: "bare host gets scheme", raw: "api.example.org:8080", want: "http://api.example.org:8080"},
		{name: "empty", raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Notifier ────────────────────────────────────────────────────────────────

func TestNotifier_ConflictDetected(t *testing.T) {
	received := make(chan notification, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications", r.URL.Path)
		var n notification
		require.NoError(t, json.NewDecoder(r.Body).Decode(&n))
		received <- n
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n, err := NewHTTPNotifier(config.Gateway{BaseURL: srv.URL, RequestTimeout: time.Second}, "device-17", logger.Nop())
	require.NoError(t, err)

	n.ConflictDetected(context.Background(), models.SyncConflict{ID: "conflict-1"})

	select {
	case got := <-received:
		assert.Equal(t, "conflict_detected", got.Kind)
		assert.Equal(t, "device-17", got.DeviceID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestNotifier_DeliveryFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	n, err := NewHTTPNotifier(config.Gateway{BaseURL: srv.URL, RequestTimeout: time.Second}, "device-17", logger.Nop())
	require.NoError(t, err)

	// не должно ни паниковать, ни блокироваться
	n.SyncCompleted(context.Background(), models.SyncSession{ID: "session-1"})
}
