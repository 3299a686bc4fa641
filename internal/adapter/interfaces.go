// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the backend submission API.
//
// The primary abstraction is [SubmissionGateway], which decouples the sync
// engine from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPSubmissionGateway]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrVersionConflict] for 409, [ErrUnavailable] for
// timeouts and 5xx).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// SubmissionResult describes the server's acknowledgement of an accepted
// mutation.
type SubmissionResult struct {
	// NewVersion is the entity version assigned by the server after
	// applying the mutation.
	NewVersion int64

	// BytesSent is the size of the serialised request body, used for
	// session network accounting.
	BytesSent int64
}

// SubmissionGateway defines transport-agnostic communication with the
// backend. Implementations are responsible for serialisation, auth header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type SubmissionGateway interface {
	// Submit sends a single queued mutation to the server. Returns a
	// *VersionConflictError (matching [ErrVersionConflict]) when the
	// server's entity version has moved past the mutation's base version,
	// or [ErrUnavailable] (wrapped) on transient transport failure.
	Submit(ctx context.Context, item models.QueueItem) (SubmissionResult, error)

	// ForceApply overwrites the server-side entity state, bypassing the
	// version check. Used to push the outcome of a resolved conflict.
	ForceApply(ctx context.Context, ref models.EntityRef, state map[string]any, resolvedBy string) (SubmissionResult, error)
}

// Notifier delivers best-effort notifications about sync outcomes to the
// coordination backend. Failures are logged and swallowed; notification
// delivery never blocks or fails a sync operation.
type Notifier interface {
	ConflictDetected(ctx context.Context, conflict models.SyncConflict)
	ConflictResolved(ctx context.Context, conflict models.SyncConflict)
	SyncCompleted(ctx context.Context, session models.SyncSession)
}
