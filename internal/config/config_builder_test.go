package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validBaseConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "/tmp/queue.db"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
		Gateway: Gateway{BaseURL: "https://api.example.org"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation: the daemon refuses to start without a durable queue file.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validBaseConfig(),
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{DeviceID: "unit-7"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "unit-7", cfg.App.DeviceID)
	assert.Equal(t, "/tmp/queue.db", cfg.Storage.DB.DSN)
}

// TestBuild_FirstValueWins verifies mergo's no-override semantics: the value
// that arrives first in the configs slice takes precedence.
func TestBuild_FirstValueWins(t *testing.T) {
	b := newConfigBuilder()
	first := validBaseConfig()
	first.App.DeviceID = "first"
	b.configs = append(b.configs,
		first,
		&StructuredConfig{App: App{DeviceID: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.App.DeviceID)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ParsesFile verifies that the JSON config referenced by a
// previous layer's JSONFilePath is parsed and appended.
func TestWithJSON_ParsesFile(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{"db": map[string]any{"dsn": "/data/queue.db"}},
		"server":  map[string]any{"http_address": "0.0.0.0:9090", "request_timeout": "30s"},
		"gateway": map[string]any{"base_url": "https://field.example.org"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: jsonPath})
	cfg, err := b.withJSON().build()

	require.NoError(t, err)
	assert.Equal(t, "/data/queue.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "https://field.example.org", cfg.Gateway.BaseURL)
}

// TestWithJSON_MissingFile verifies that a dangling JSONFilePath surfaces as
// a build error.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/no/such/file.json"})

	_, err := b.withJSON().build()
	require.Error(t, err)
}

// TestWithJSON_NoPath — без указанного пути JSON-слой не добавляется.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBaseConfig())

	b = b.withJSON()
	assert.Len(t, b.configs, 1)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate_RejectsInMemoryDSN(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.DB.DSN = ":memory:"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_RejectsMissingGateway(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Gateway.BaseURL = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidGatewayConfigs)
}

func TestValidate_RejectsMissingServerAddress(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
}
