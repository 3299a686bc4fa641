// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// QueueAction identifies the kind of domain mutation a queue item carries.
type QueueAction string

const (
	ActionCreate QueueAction = "CREATE"
	ActionUpdate QueueAction = "UPDATE"
	ActionDelete QueueAction = "DELETE"
)

// QueueItemStatus is the lifecycle state of a pending mutation.
// An item is in exactly one of these states or absent from the queue.
type QueueItemStatus string

const (
	// QueueStatusPending — the item awaits its next submission attempt.
	QueueStatusPending QueueItemStatus = "PENDING"

	// QueueStatusSyncing — the item is part of the currently running cycle.
	QueueStatusSyncing QueueItemStatus = "SYNCING"

	// QueueStatusFailed — the item exhausted its retries and needs operator
	// action (manual retry or discard). Never dropped silently.
	QueueStatusFailed QueueItemStatus = "FAILED"
)

// QueueItem is a pending domain mutation awaiting network submission.
// It is created on a local mutation, mutated by each sync attempt, and
// removed on success.
type QueueItem struct {
	ID          string         `json:"id"`
	EntityID    string         `json:"entity_id"`
	EntityType  string         `json:"entity_type"`
	Action      QueueAction    `json:"action"`
	Payload     map[string]any `json:"payload"`
	BaseVersion int64          `json:"base_version"`
	SubmittedBy string         `json:"submitted_by,omitempty"`
	Urgent      bool           `json:"urgent,omitempty"`

	PriorityScore  int           `json:"priority_score"`
	PriorityLevel  PriorityLevel `json:"priority_level"`
	PriorityReason string        `json:"priority_reason"`

	Status      QueueItemStatus `json:"status"`
	RetryCount  int             `json:"retry_count"`
	MaxRetries  int             `json:"max_retries"`
	CreatedAt   time.Time       `json:"created_at"`
	LastAttempt *time.Time      `json:"last_attempt,omitempty"`
	NextAttempt *time.Time      `json:"next_attempt,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// QueueFilter narrows List queries. Zero values mean "no restriction".
type QueueFilter struct {
	Statuses   []QueueItemStatus
	EntityType string

	// DueBefore keeps only items whose next_attempt is unset or not after
	// the given instant. Used by the engine to respect backoff windows.
	DueBefore *time.Time

	// OrderByPriority sorts by priority score descending with creation time
	// ascending as the tie-breaker; otherwise creation time ascending.
	OrderByPriority bool

	Limit  int
	Offset int
}

// QueueItemPatch is a field-level partial update of a queue item.
// Nil fields are left untouched (last-write-wins at the field level,
// single-writer-per-device).
type QueueItemPatch struct {
	Status      *QueueItemStatus
	RetryCount  *int
	Error       *string
	LastAttempt *time.Time
	NextAttempt *time.Time
	BaseVersion *int64
	Payload     map[string]any
}

// QueueSummary holds per-status and per-type counts for UI badges.
type QueueSummary struct {
	Total    int                     `json:"total"`
	ByStatus map[QueueItemStatus]int `json:"by_status"`
	ByType   map[string]int          `json:"by_type"`
}
