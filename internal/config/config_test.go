package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: "8080"
log:
  level: debug
  format: json
ai:
  provider: openai
  api_key: dummy
  model: gpt-4o-mini
  base_url: https://api.example.com/v1
  temperature: 0.4
  max_tokens: 512
chat:
  max_idle: 2h
  sweep_interval: 10m
  history_limit: 30
trains:
  availability_seed: 42
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "https://api.example.com/v1", cfg.AI.BaseURL)
	require.NotNil(t, cfg.AI.Temperature)
	assert.InDelta(t, 0.4, *cfg.AI.Temperature, 1e-9)
	assert.Nil(t, cfg.AI.TopP)
	require.NotNil(t, cfg.AI.MaxTokens)
	assert.Equal(t, 512, *cfg.AI.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Chat.MaxIdle)
	assert.Equal(t, 10*time.Minute, cfg.Chat.SweepInterval)
	assert.Equal(t, 30, cfg.Chat.HistoryLimit)
	assert.Equal(t, uint64(42), cfg.Trains.AvailabilitySeed)
	assert.True(t, cfg.AI.Enabled())
	assert.NotEmpty(t, cfg.File())
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, ProviderArk, cfg.AI.Provider)
	assert.Equal(t, "https://ark.cn-beijing.volces.com/api/v3", cfg.AI.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Chat.MaxIdle)
	assert.Equal(t, time.Hour, cfg.Chat.SweepInterval)
	assert.Equal(t, 20, cfg.Chat.HistoryLimit)
	assert.Empty(t, cfg.File())
	assert.False(t, cfg.Watch(func(*Config) {}))
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("CHAT_HISTORY_LIMIT", "12")
	t.Setenv("ARK_API_KEY", "from-env")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 12, cfg.Chat.HistoryLimit)
	assert.Equal(t, "from-env", cfg.AI.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port with space", key: "PORT", val: "80 80"},
		{name: "provider", key: "AI_PROVIDER", val: "gemini"},
		{name: "temperature", key: "AI_TEMPERATURE", val: "warm"},
		{name: "max idle", key: "CHAT_MAX_IDLE", val: "forever"},
		{name: "sweep interval", key: "CHAT_SWEEP_INTERVAL", val: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			assert.Error(t, err)
		})
	}
}

func TestAIConfigEnabled(t *testing.T) {
	assert.False(t, AIConfig{Provider: ProviderArk, APIKey: "k"}.Enabled())
	assert.True(t, AIConfig{Provider: ProviderArk, APIKey: "k", Model: "m"}.Enabled())
	assert.True(t, AIConfig{Provider: ProviderArk, AccessKey: "a", SecretKey: "s", Model: "m"}.Enabled())
	assert.False(t, AIConfig{Provider: ProviderOpenAI, AccessKey: "a", SecretKey: "s", Model: "m"}.Enabled())
}

func TestWatchReloadsChangedFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg, err := Load(path)
	require.NoError(t, err)

	changed := make(chan *Config, 16)
	require.True(t, cfg.Watch(func(next *Config) {
		select {
		case changed <- next:
		default:
		}
	}))

	updated := []byte("log:\n  level: warn\n")
	require.NoError(t, os.WriteFile(path, updated, 0o644))

	// a truncating write may surface as more than one event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case next := <-changed:
			if next.Log.Level == "warn" {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}
