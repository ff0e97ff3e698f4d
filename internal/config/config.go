// Package config loads server configuration from an optional YAML file
// and environment variables, following the teacher's env-with-defaults
// pattern.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	LLM       LLMConfig       `yaml:"llm"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
}

// TransportConfig selects how the WCP surface is exposed.
type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "websocket"
	Port int    `yaml:"port"`
}

// DBConfig configures the Postgres connection pool.
type DBConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Name           string        `yaml:"name"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	PoolMax        int           `yaml:"pool_max"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	LogQueries     bool          `yaml:"log_queries"`
}

// SchedulerConfig configures the Agent Scheduler's cycle loop.
type SchedulerConfig struct {
	CycleInterval time.Duration `yaml:"cycle_interval"`
	WorldID       string        `yaml:"world_id"`
}

// LLMConfig configures the Router's backend endpoints.
type LLMConfig struct {
	MinorEndpoint string `yaml:"minor_endpoint"`
	StoryEndpoint string `yaml:"story_endpoint"`
}

// SessionConfig configures the session store. TTL defaults to 24h; the
// config file or SESSION_TTL overrides it, which lets tests avoid a 24h wait.
type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// LogConfig configures structured logging verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file (STORYSPLICER_CONFIG_PATH)
// and the environment variables specified in spec.md §6.
func Load() (Config, error) {
	cfg := Config{
		Transport: TransportConfig{
			Mode: "stdio",
			Port: 3000,
		},
		DB: DBConfig{
			Host:           "localhost",
			Port:           5432,
			PoolMax:        10,
			IdleTimeout:    30000 * time.Millisecond,
			ConnectTimeout: 2000 * time.Millisecond,
		},
		Scheduler: SchedulerConfig{
			CycleInterval: 5000 * time.Millisecond,
			WorldID:       "1",
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("STORYSPLICER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_PORT: %w", err)
		}
		cfg.DB.Port = port
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DB.Name = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.DB.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("DB_POOL_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_POOL_MAX: %w", err)
		}
		cfg.DB.PoolMax = n
	}
	if v := os.Getenv("DB_IDLE_TIMEOUT"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_IDLE_TIMEOUT: %w", err)
		}
		cfg.DB.IdleTimeout = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("DB_CONNECT_TIMEOUT"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
		}
		cfg.DB.ConnectTimeout = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("LOG_QUERIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_QUERIES: %w", err)
		}
		cfg.DB.LogQueries = b
	}
	if v := os.Getenv("MCP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MCP_PORT: %w", err)
		}
		cfg.Transport.Port = port
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		cfg.Transport.Mode = v
	}
	if v := os.Getenv("CYCLE_INTERVAL"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CYCLE_INTERVAL: %w", err)
		}
		cfg.Scheduler.CycleInterval = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("WORLD_ID"); v != "" {
		cfg.Scheduler.WorldID = v
	}
	if v := os.Getenv("LLM_MINOR_ENDPOINT"); v != "" {
		cfg.LLM.MinorEndpoint = v
	}
	if v := os.Getenv("LLM_STORY_ENDPOINT"); v != "" {
		cfg.LLM.StoryEndpoint = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.Session.TTL = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
