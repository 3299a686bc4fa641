package models

import "time"

// SyncSession is the record of a single sync cycle. One is created per
// cycle and retained as history.
type SyncSession struct {
	ID        string     `json:"id"`
	Trigger   string     `json:"trigger"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	ItemsProcessed    int `json:"items_processed"`
	ItemsSucceeded    int `json:"items_succeeded"`
	ItemsFailed       int `json:"items_failed"`
	ConflictsDetected int `json:"conflicts_detected"`

	// TotalDataSynced and NetworkUsage are byte counts; BatteryUsed is the
	// percentage-point drop observed between cycle start and end.
	TotalDataSynced int64   `json:"total_data_synced"`
	NetworkUsage    int64   `json:"network_usage"`
	BatteryUsed     float64 `json:"battery_used"`

	Errors []string `json:"errors,omitempty"`
}

// Duration returns the wall-clock length of the session, zero while the
// session is still open.
func (s SyncSession) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// SyncPerformance aggregates the retained session history into averaged
// figures for the UI.
type SyncPerformance struct {
	Sessions        int     `json:"sessions"`
	ItemsPerMinute  float64 `json:"items_per_minute"`
	SuccessRate     float64 `json:"success_rate"`
	AvgBatteryUsed  float64 `json:"avg_battery_used"`
	AvgNetworkUsage float64 `json:"avg_network_usage"`
}
