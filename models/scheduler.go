package models

import "time"

// SchedulerState is the scheduler's position in its state machine.
type SchedulerState string

const (
	SchedulerIdle     SchedulerState = "IDLE"
	SchedulerChecking SchedulerState = "CHECKING_CONDITIONS"
	SchedulerRunning  SchedulerState = "RUNNING"
)

// SyncStatus is the read-only scheduler snapshot exposed to the UI layer.
type SyncStatus struct {
	State        SchedulerState     `json:"state"`
	IsRunning    bool               `json:"is_running"`
	IsPaused     bool               `json:"is_paused"`
	CanSync      bool               `json:"can_sync"`
	CanSyncNote  string             `json:"can_sync_note,omitempty"`
	LastCycleAt  *time.Time         `json:"last_cycle_at,omitempty"`
	NextCycleAt  *time.Time         `json:"next_cycle_at,omitempty"`
	LastError    string             `json:"last_error,omitempty"`
	Connectivity ConnectivityStatus `json:"connectivity"`
}

// SyncProgress reports how far the current (or most recent) cycle has come.
type SyncProgress struct {
	TotalItems       int           `json:"total_items"`
	CompletedItems   int           `json:"completed_items"`
	FailedItems      int           `json:"failed_items"`
	CurrentOperation string        `json:"current_operation,omitempty"`
	AvgItemDuration  time.Duration `json:"avg_item_duration"`
}
