package models

import "time"

// ConnectionQuality is the coarse link-quality classification used to
// gate sync cycles and filter low-priority items.
type ConnectionQuality string

const (
	QualityGood     ConnectionQuality = "good"
	QualityDegraded ConnectionQuality = "degraded"
	QualityPoor     ConnectionQuality = "poor"
)

// ConnectivityStatus is a point-in-time snapshot of reachability, link
// quality, and power state.
type ConnectivityStatus struct {
	IsOnline     bool              `json:"is_online"`
	Quality      ConnectionQuality `json:"quality"`
	BatteryLevel int               `json:"battery_level"`
	IsCharging   bool              `json:"is_charging"`
	CheckedAt    time.Time         `json:"checked_at"`
}
