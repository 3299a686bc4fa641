package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type httpSubmissionGateway struct {
	client *resty.Client

	deviceID string

	logger *logger.Logger
}

type mutationBody struct {
	ItemID      string         `json:"item_id"`
	Action      string         `json:"action"`
	Payload     map[string]any `json:"payload"`
	BaseVersion int64          `json:"base_version"`
	SubmittedBy string         `json:"submitted_by"`
	DeviceID    string         `json:"device_id"`
}

type forceApplyBody struct {
	State      map[string]any `json:"state"`
	ResolvedBy string         `json:"resolved_by"`
	DeviceID   string         `json:"device_id"`
}

type submissionResponse struct {
	NewVersion int64 `json:"new_version"`
}

// NewHTTPSubmissionGateway constructs an HTTP/REST implementation of
// [SubmissionGateway]. It normalises and validates the base URL from
// cfg.BaseURL and configures the client with the request timeout and the
// bearer token issued by the host application.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPSubmissionGateway(cfg config.Gateway, deviceID string, logger *logger.Logger) (SubmissionGateway, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)
	if cfg.AuthToken != "" {
		client.SetAuthToken(cfg.AuthToken)
	}

	return &httpSubmissionGateway{client: client, deviceID: deviceID, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Submit implements [SubmissionGateway]. It POSTs the mutation to
// POST /api/entities/{type}/{id}/mutations. The body size is reported back
// in the result for network accounting. A 409 response is decoded into a
// *VersionConflictError carrying the server's current state.
func (h *httpSubmissionGateway) Submit(ctx context.Context, item models.QueueItem) (SubmissionResult, error) {
	body := mutationBody{
		ItemID:      item.ID,
		Action:      string(item.Action),
		Payload:     item.Payload,
		BaseVersion: item.BaseVersion,
		SubmittedBy: item.SubmittedBy,
		DeviceID:    h.deviceID,
	}

	var result submissionResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(fmt.Sprintf("/api/entities/%s/%s/mutations", url.PathEscape(item.EntityType), url.PathEscape(item.EntityID)))
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("%w: submit request: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return SubmissionResult{}, err
	}

	return SubmissionResult{
		NewVersion: result.NewVersion,
		BytesSent:  bodySize(body),
	}, nil
}

// ForceApply implements [SubmissionGateway]. It PUTs the resolved state to
// PUT /api/entities/{type}/{id}/state, which the server applies without a
// version check.
func (h *httpSubmissionGateway) ForceApply(ctx context.Context, ref models.EntityRef, state map[string]any, resolvedBy string) (SubmissionResult, error) {
	body := forceApplyBody{
		State:      state,
		ResolvedBy: resolvedBy,
		DeviceID:   h.deviceID,
	}

	var result submissionResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Put(fmt.Sprintf("/api/entities/%s/%s/state", url.PathEscape(ref.EntityType), url.PathEscape(ref.EntityID)))
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("%w: force apply request: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return SubmissionResult{}, err
	}

	return SubmissionResult{
		NewVersion: result.NewVersion,
		BytesSent:  bodySize(body),
	}, nil
}

func bodySize(v any) int64 {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return int64(len(data))
}
