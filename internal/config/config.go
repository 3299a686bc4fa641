// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// StructuredConfig is the top-level configuration container for the
// go-field-sync daemon. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the device identity
	// and the build version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local durable queue database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the exposed
	// HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Gateway holds settings for the outbound submission gateway and the
	// notification endpoint.
	Gateway Gateway `envPrefix:"GATEWAY_"`

	// Sync holds the initial sync scheduler settings. They can be changed
	// at runtime through the settings API.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DeviceID identifies this field device in submissions and
	// notifications. Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// Version is the semantic version string of the running daemon.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local queue database.
type DB struct {
	// DSN is the SQLite file path (e.g. "/var/lib/fieldsync/queue.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the exposed HTTP API.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format. Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request. Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Gateway holds settings for outbound communication with the backend.
type Gateway struct {
	// BaseURL is the backend API root (e.g. "https://api.example.org").
	// Env: GATEWAY_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// NotifyPath is the relative path used by the notifier.
	// Env: GATEWAY_NOTIFY_PATH
	NotifyPath string `env:"NOTIFY_PATH"`

	// AuthToken is the opaque bearer token attached to outbound requests.
	// Issued by the host application; this subsystem never parses it.
	// Env: GATEWAY_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// RequestTimeout bounds every single submission attempt; a timeout
	// counts as a transient failure. Env: GATEWAY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the initial scheduler settings and monitor tuning.
type Sync struct {
	Enabled                     bool   `env:"ENABLED" envDefault:"true"`
	SyncOnlyWhenCharging        bool   `env:"ONLY_WHEN_CHARGING"`
	MinimumBatteryLevel         int    `env:"MINIMUM_BATTERY_LEVEL" envDefault:"15"`
	MaximumConcurrentOperations int    `env:"MAX_CONCURRENT_OPERATIONS" envDefault:"3"`
	SyncIntervalMinutes         int    `env:"INTERVAL_MINUTES" envDefault:"5"`
	MaxRetryAttempts            int    `env:"MAX_RETRY_ATTEMPTS" envDefault:"5"`
	PriorityThreshold           string `env:"PRIORITY_THRESHOLD" envDefault:"HIGH"`

	// ProbeInterval is how often the connectivity monitor probes the
	// gateway health endpoint when the host app pushes no status.
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Settings converts the static Sync configuration into the runtime
// models.SyncSettings the scheduler starts with. Out-of-range values fall
// back to the defaults rather than failing startup.
func (s Sync) Settings() models.SyncSettings {
	settings := models.DefaultSyncSettings()
	patch := models.SyncSettingsPatch{
		Enabled:                     &s.Enabled,
		SyncOnlyWhenCharging:        &s.SyncOnlyWhenCharging,
		MinimumBatteryLevel:         &s.MinimumBatteryLevel,
		MaximumConcurrentOperations: &s.MaximumConcurrentOperations,
		SyncIntervalMinutes:         &s.SyncIntervalMinutes,
		MaxRetryAttempts:            &s.MaxRetryAttempts,
	}
	if s.PriorityThreshold != "" {
		level := models.PriorityLevel(s.PriorityThreshold)
		patch.PriorityThreshold = &level
	}
	settings.Apply(patch)
	return settings
}

// GetStructuredConfig builds the final daemon configuration by merging,
// in order of increasing precedence: environment variables, command-line
// flags, and the optional JSON file.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
