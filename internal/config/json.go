package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] type for timeout fields.
type StructuredJSONConfig struct {
	App struct {
		DeviceID string `json:"device_id"`
		Version  string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Gateway struct {
		BaseURL        string   `json:"base_url"`
		NotifyPath     string   `json:"notify_path"`
		AuthToken      string   `json:"auth_token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"gateway,omitempty"`

	Sync struct {
		Enabled                     bool     `json:"enabled"`
		SyncOnlyWhenCharging        bool     `json:"sync_only_when_charging"`
		MinimumBatteryLevel         int      `json:"minimum_battery_level"`
		MaximumConcurrentOperations int      `json:"maximum_concurrent_operations"`
		SyncIntervalMinutes         int      `json:"sync_interval_minutes"`
		MaxRetryAttempts            int      `json:"max_retry_attempts"`
		PriorityThreshold           string   `json:"priority_threshold"`
		ProbeInterval               Duration `json:"probe_interval"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DeviceID: jsonCfg.App.DeviceID,
			Version:  jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Gateway: Gateway{
			BaseURL:        jsonCfg.Gateway.BaseURL,
			NotifyPath:     jsonCfg.Gateway.NotifyPath,
			AuthToken:      jsonCfg.Gateway.AuthToken,
			RequestTimeout: time.Duration(jsonCfg.Gateway.RequestTimeout),
		},
		Sync: Sync{
			Enabled:                     jsonCfg.Sync.Enabled,
			SyncOnlyWhenCharging:        jsonCfg.Sync.SyncOnlyWhenCharging,
			MinimumBatteryLevel:         jsonCfg.Sync.MinimumBatteryLevel,
			MaximumConcurrentOperations: jsonCfg.Sync.MaximumConcurrentOperations,
			SyncIntervalMinutes:         jsonCfg.Sync.SyncIntervalMinutes,
			MaxRetryAttempts:            jsonCfg.Sync.MaxRetryAttempts,
			PriorityThreshold:           jsonCfg.Sync.PriorityThreshold,
			ProbeInterval:               time.Duration(jsonCfg.Sync.ProbeInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
