package models

import "time"

// EntityRef is the typed composite key for optimistic state lookups.
// Using a struct key instead of a concatenated string avoids collisions
// between entity IDs that happen to contain the separator.
type EntityRef struct {
	EntityID   string `json:"entity_id"`
	EntityType string `json:"entity_type"`
}

// OptimisticStatus is the lifecycle state of an optimistic update.
// CONFIRMED and ROLLED_BACK are terminal.
type OptimisticStatus string

const (
	OptimisticPending    OptimisticStatus = "PENDING"
	OptimisticConfirmed  OptimisticStatus = "CONFIRMED"
	OptimisticFailed     OptimisticStatus = "FAILED"
	OptimisticRolledBack OptimisticStatus = "ROLLED_BACK"
)

// OptimisticUpdate is a locally-applied, unconfirmed view of an entity
// shown to the user ahead of server acknowledgment.
type OptimisticUpdate struct {
	ID            string           `json:"id"`
	Entity        EntityRef        `json:"entity"`
	QueueItemID   string           `json:"queue_item_id"`
	ProposedState map[string]any   `json:"proposed_state"`
	Status        OptimisticStatus `json:"status"`
	RetryCount    int              `json:"retry_count"`
	MaxRetries    int              `json:"max_retries"`
	Error         string           `json:"error,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
