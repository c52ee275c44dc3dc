// Package config loads service configuration from an optional YAML file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Redis   RedisConfig   `yaml:"redis"`
	Scoring ScoringConfig `yaml:"scoring"`
	AI      AIConfig      `yaml:"ai"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type MongoConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type ScoringConfig struct {
	RemoteEnabled bool          `yaml:"remote_enabled"`
	AllowFallback bool          `yaml:"allow_fallback"`
	CacheBackend  string        `yaml:"cache_backend"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	CacheCapacity int           `yaml:"cache_capacity"`
}

type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"`
	PlayerTokenTTL time.Duration `yaml:"player_token_ttl"`
	// AdminToken guards maintenance endpoints; empty disables them
	AdminToken string `yaml:"admin_token"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when neither file nor environment set a value
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:        "8080",
			CORSOrigins: []string{"*"},
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "whats_that_color",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Scoring: ScoringConfig{
			RemoteEnabled: true,
			AllowFallback: true,
			CacheBackend:  CacheBackendMemory,
			CacheTTL:      24 * time.Hour,
			CacheCapacity: 100,
		},
		AI: DefaultAIConfig(),
		Auth: AuthConfig{
			JWTSecret:      "super-secret-key-change-in-production",
			PlayerTokenTTL: 30 * 24 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path when it is non-empty, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// GetConfigPath returns the config file path from the environment; empty means env only
func GetConfigPath() string {
	return os.Getenv("COLORSCORE_CONFIG")
}

func applyEnvironmentOverrides(cfg *Config) error {
	setString(&cfg.HTTP.Port, "HTTP_PORT")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}

	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Mongo.Database, "MONGO_DATABASE")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Scoring.CacheBackend, "SCORING_CACHE_BACKEND")
	setString(&cfg.AI.Provider, "AI_PROVIDER")
	setString(&cfg.AI.APIKey, "GEMINI_API_KEY")
	setString(&cfg.AI.BaseURL, "AI_BASE_URL")
	setString(&cfg.AI.Model, "GEMINI_MODEL")
	setString(&cfg.AI.EndpointURL, "AI_ENDPOINT_URL")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.AdminToken, "ADMIN_TOKEN")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	bools := []struct {
		dst *bool
		env string
	}{
		{&cfg.Mongo.Enabled, "MONGO_ENABLED"},
		{&cfg.Redis.Enabled, "REDIS_ENABLED"},
		{&cfg.Scoring.RemoteEnabled, "SCORING_REMOTE_ENABLED"},
		{&cfg.Scoring.AllowFallback, "SCORING_ALLOW_FALLBACK"},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
		*b.dst = parsed
	}

	if v := os.Getenv("AI_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AI_TIMEOUT_MS: %w", err)
		}
		cfg.AI.TimeoutMS = ms
	}
	if v := os.Getenv("PLAYER_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PLAYER_TOKEN_TTL: %w", err)
		}
		cfg.Auth.PlayerTokenTTL = d
	}
	return nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Scoring.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("cache_backend %q requires redis.enabled", c.Scoring.CacheBackend)
		}
	default:
		return fmt.Errorf("unknown cache_backend %q", c.Scoring.CacheBackend)
	}
	if c.Scoring.CacheCapacity <= 0 {
		return fmt.Errorf("cache_capacity must be positive, got %d", c.Scoring.CacheCapacity)
	}
	if c.Scoring.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %s", c.Scoring.CacheTTL)
	}
	switch c.AI.Provider {
	case ProviderGemini:
	case ProviderEndpoint:
		if c.Scoring.RemoteEnabled && c.AI.EndpointURL == "" {
			return fmt.Errorf("provider %q requires endpoint_url", c.AI.Provider)
		}
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	if c.AI.TimeoutMS <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.AI.TimeoutMS)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// ScoringPolicy is the default policy for a request that may carry its own credential
func (c *Config) ScoringPolicy(credential string) model.ScoringPolicy {
	return model.ScoringPolicy{
		UseRemote:     c.Scoring.RemoteEnabled && c.AI.Usable(credential),
		AllowFallback: c.Scoring.AllowFallback,
	}
}

// SlogLevel parses the configured level name
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return lvl, fmt.Errorf("log level %q: %w", c.Level, err)
	}
	return lvl, nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
