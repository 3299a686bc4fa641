// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ResolutionStrategy is the policy used to reconcile a detected conflict.
type ResolutionStrategy string

const (
	// StrategyLocalWins overwrites server state with the local version.
	StrategyLocalWins ResolutionStrategy = "LOCAL_WINS"

	// StrategyServerWins discards the local mutation and refreshes the
	// local cache from the server version.
	StrategyServerWins ResolutionStrategy = "SERVER_WINS"

	// StrategyMerge performs a shallow override: server fields form the
	// base, local fields overwrite on key collision, server-only fields
	// are preserved. Not a semantic three-way merge.
	StrategyMerge ResolutionStrategy = "MERGE"

	// StrategyManual applies caller-supplied merged data verbatim.
	StrategyManual ResolutionStrategy = "MANUAL"
)

// Valid reports whether s is one of the known strategies.
func (s ResolutionStrategy) Valid() bool {
	switch s {
	case StrategyLocalWins, StrategyServerWins, StrategyMerge, StrategyManual:
		return true
	}
	return false
}

// ConflictStatus is the lifecycle state of a sync conflict.
type ConflictStatus string

const (
	ConflictPending  ConflictStatus = "PENDING"
	ConflictResolved ConflictStatus = "RESOLVED"
)

// SyncConflict records a divergence between a mutation's declared base
// version and the server's current version for the same entity. An entity
// has at most one unresolved conflict at a time; resolving it is the only
// way out of PENDING.
type SyncConflict struct {
	ID          string `json:"id"`
	QueueItemID string `json:"queue_item_id"`
	EntityID    string `json:"entity_id"`
	EntityType  string `json:"entity_type"`

	LocalVersion     map[string]any `json:"local_version"`
	ServerVersion    map[string]any `json:"server_version"`
	LocalBaseVersion int64          `json:"local_base_version"`
	ServerVersionNum int64          `json:"server_version_num"`
	DetectedBy       string         `json:"detected_by"`
	DetectedAt       time.Time      `json:"detected_at"`
	SubmittedBy      string         `json:"submitted_by,omitempty"`

	Status             ConflictStatus     `json:"status"`
	ResolutionStrategy ResolutionStrategy `json:"resolution_strategy,omitempty"`
	ResolvedBy         string             `json:"resolved_by,omitempty"`
	ResolvedAt         *time.Time         `json:"resolved_at,omitempty"`
	Justification      string             `json:"justification,omitempty"`
}
