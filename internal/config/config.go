package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/sharma-alok1/RailMate/backend/pkg/log"
)

// DefaultPath is read when neither an explicit path nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// Provider names accepted by ai.provider.
const (
	ProviderArk    = "ark"
	ProviderOpenAI = "openai"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Log    LogConfig
	AI     AIConfig
	Chat   ChatConfig
	Trains TrainsConfig

	v *viper.Viper
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// LogConfig selects zap level, encoder and optional file output.
type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider    string
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Timeout     time.Duration
}

// ChatConfig bounds conversation state.
type ChatConfig struct {
	MaxIdle       time.Duration
	SweepInterval time.Duration
	HistoryLimit  int
}

// TrainsConfig tunes the train directory. A zero seed means the clock seeds
// the availability simulator.
type TrainsConfig struct {
	AvailabilitySeed uint64
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	if c.Model == "" {
		return false
	}
	switch c.Provider {
	case ProviderOpenAI:
		return c.APIKey != ""
	default:
		return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
	}
}

// Load reads the yaml file at path (CONFIG_PATH or DefaultPath when empty)
// and applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "PORT", "SERVER_PORT")
	_ = v.BindEnv("ai.api_key", "AI_API_KEY", "ARK_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("ai.model", "AI_MODEL", "Model")

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	return decode(v)
}

// File returns the config file in use, or "" when only defaults and
// environment were applied.
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Watch re-reads the config file whenever it changes and hands the result to
// onChange. It reports false when there is no file to watch.
func (c *Config) Watch(onChange func(*Config)) bool {
	if c.File() == "" {
		return false
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(c.v)
		if err != nil {
			log.Warnw("ignoring invalid config change", "file", e.Name, "error", err)
			return
		}
		log.Infow("config reloaded", "file", e.Name, "op", e.Op.String())
		onChange(next)
	})
	c.v.WatchConfig()
	return true
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_path", "")
	v.SetDefault("ai.provider", ProviderArk)
	v.SetDefault("ai.region", "cn-beijing")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("chat.max_idle", "24h")
	v.SetDefault("chat.sweep_interval", "1h")
	v.SetDefault("chat.history_limit", 20)
	v.SetDefault("trains.availability_seed", 0)
}

func decode(v *viper.Viper) (*Config, error) {
	server, err := loadServerConfig(v)
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig(v)
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig(v)
	if err != nil {
		return nil, err
	}

	seed, err := strconv.ParseUint(strings.TrimSpace(v.GetString("trains.availability_seed")), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid trains.availability_seed: %w", err)
	}

	return &Config{
		Server: server,
		Log: LogConfig{
			Level:      strings.TrimSpace(v.GetString("log.level")),
			Format:     strings.TrimSpace(v.GetString("log.format")),
			OutputPath: strings.TrimSpace(v.GetString("log.output_path")),
		},
		AI:     ai,
		Chat:   chat,
		Trains: TrainsConfig{AvailabilitySeed: seed},
		v:      v,
	}, nil
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig(v *viper.Viper) (ServerConfig, error) {
	port := strings.TrimSpace(v.GetString("server.port"))
	if port == "" {
		port = "5000"
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadAIConfig(v *viper.Viper) (AIConfig, error) {
	provider := strings.ToLower(strings.TrimSpace(v.GetString("ai.provider")))
	if provider != ProviderArk && provider != ProviderOpenAI {
		return AIConfig{}, fmt.Errorf("unsupported ai.provider %q", provider)
	}

	temperature, err := parseOptionalFloat(v, "ai.temperature")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloat(v, "ai.top_p")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalInt(v, "ai.max_tokens")
	if err != nil {
		return AIConfig{}, err
	}

	timeout, err := parseDuration(v, "ai.timeout")
	if err != nil {
		return AIConfig{}, err
	}

	baseURL := strings.TrimSpace(v.GetString("ai.base_url"))
	if baseURL == "" && provider == ProviderArk {
		baseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}

	return AIConfig{
		Provider:    provider,
		APIKey:      strings.TrimSpace(v.GetString("ai.api_key")),
		AccessKey:   strings.TrimSpace(v.GetString("ai.access_key")),
		SecretKey:   strings.TrimSpace(v.GetString("ai.secret_key")),
		Model:       strings.TrimSpace(v.GetString("ai.model")),
		BaseURL:     baseURL,
		Region:      strings.TrimSpace(v.GetString("ai.region")),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Timeout:     timeout,
	}, nil
}

func loadChatConfig(v *viper.Viper) (ChatConfig, error) {
	maxIdle, err := parseDuration(v, "chat.max_idle")
	if err != nil {
		return ChatConfig{}, err
	}

	interval, err := parseDuration(v, "chat.sweep_interval")
	if err != nil {
		return ChatConfig{}, err
	}
	if interval <= 0 {
		return ChatConfig{}, fmt.Errorf("chat.sweep_interval must be positive, got %s", interval)
	}

	limit, err := strconv.Atoi(strings.TrimSpace(v.GetString("chat.history_limit")))
	if err != nil {
		return ChatConfig{}, fmt.Errorf("invalid chat.history_limit: %w", err)
	}
	if limit < 2 {
		// the system prompt plus at least one turn
		limit = 2
	}

	return ChatConfig{MaxIdle: maxIdle, SweepInterval: interval, HistoryLimit: limit}, nil
}

func parseOptionalFloat(v *viper.Viper, key string) (*float64, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &val, nil
}

func parseOptionalInt(v *viper.Viper, key string) (*int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &val, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
