// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncSettings controls when and how aggressively the scheduler runs
// sync cycles.
type SyncSettings struct {
	Enabled                     bool          `json:"enabled"`
	SyncOnlyWhenCharging        bool          `json:"sync_only_when_charging"`
	MinimumBatteryLevel         int           `json:"minimum_battery_level"`         // 0–100
	MaximumConcurrentOperations int           `json:"maximum_concurrent_operations"` // 1–10
	SyncIntervalMinutes         int           `json:"sync_interval_minutes"`         // 1–60
	MaxRetryAttempts            int           `json:"max_retry_attempts"`            // 1–10
	PriorityThreshold           PriorityLevel `json:"priority_threshold"`
}

// DefaultSyncSettings returns the settings a fresh installation starts with.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		Enabled:                     true,
		SyncOnlyWhenCharging:        false,
		MinimumBatteryLevel:         15,
		MaximumConcurrentOperations: 3,
		SyncIntervalMinutes:         5,
		MaxRetryAttempts:            5,
		PriorityThreshold:           PriorityHigh,
	}
}

// SyncSettingsPatch is a partial settings update. Nil fields keep their
// current value.
type SyncSettingsPatch struct {
	Enabled                     *bool          `json:"enabled,omitempty"`
	SyncOnlyWhenCharging        *bool          `json:"sync_only_when_charging,omitempty"`
	MinimumBatteryLevel         *int           `json:"minimum_battery_level,omitempty"`
	MaximumConcurrentOperations *int           `json:"maximum_concurrent_operations,omitempty"`
	SyncIntervalMinutes         *int           `json:"sync_interval_minutes,omitempty"`
	MaxRetryAttempts            *int           `json:"max_retry_attempts,omitempty"`
	PriorityThreshold           *PriorityLevel `json:"priority_threshold,omitempty"`
}

// FieldRejection reports a single out-of-range field in a settings patch.
// Rejected fields do not prevent the in-range fields of the same patch
// from being applied.
type FieldRejection struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Apply merges the in-range fields of patch into s and returns the list of
// rejected fields. Application is per-field, not all-or-nothing.
func (s *SyncSettings) Apply(patch SyncSettingsPatch) []FieldRejection {
	var rejected []FieldRejection

	if patch.Enabled != nil {
		s.Enabled = *patch.Enabled
	}
	if patch.SyncOnlyWhenCharging != nil {
		s.SyncOnlyWhenCharging = *patch.SyncOnlyWhenCharging
	}
	if patch.MinimumBatteryLevel != nil {
		if v := *patch.MinimumBatteryLevel; v < 0 || v > 100 {
			rejected = append(rejected, FieldRejection{Field: "minimum_battery_level", Reason: "must be between 0 and 100"})
		} else {
			s.MinimumBatteryLevel = v
		}
	}
	if patch.MaximumConcurrentOperations != nil {
		if v := *patch.MaximumConcurrentOperations; v < 1 || v > 10 {
			rejected = append(rejected, FieldRejection{Field: "maximum_concurrent_operations", Reason: "must be between 1 and 10"})
		} else {
			s.MaximumConcurrentOperations = v
		}
	}
	if patch.SyncIntervalMinutes != nil {
		if v := *patch.SyncIntervalMinutes; v < 1 || v > 60 {
			rejected = append(rejected, FieldRejection{Field: "sync_interval_minutes", Reason: "must be between 1 and 60"})
		} else {
			s.SyncIntervalMinutes = v
		}
	}
	if patch.MaxRetryAttempts != nil {
		if v := *patch.MaxRetryAttempts; v < 1 || v > 10 {
			rejected = append(rejected, FieldRejection{Field: "max_retry_attempts", Reason: "must be between 1 and 10"})
		} else {
			s.MaxRetryAttempts = v
		}
	}
	if patch.PriorityThreshold != nil {
		if v := *patch.PriorityThreshold; !v.Valid() {
			rejected = append(rejected, FieldRejection{Field: "priority_threshold", Reason: "must be one of HIGH, NORMAL, LOW"})
		} else {
			s.PriorityThreshold = v
		}
	}

	return rejected
}
