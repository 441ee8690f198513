package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"` // public base used to build return/notify URLs
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type GatewayConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Sandbox      bool   `yaml:"sandbox"`
	ReturnPath   string `yaml:"return_path"` // defaults to /api/payment-status
	NotifyPath   string `yaml:"notify_path"` // defaults to /api/payment-status
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	GeminiKey       string `yaml:"gemini_key"`
	GeminiURL       string `yaml:"gemini_url"`
	DefaultModel    string `yaml:"default_model"`
	ConcurrentLimit int    `yaml:"concurrent_limit"` // max concurrent AI calls
	Workers         int    `yaml:"workers"`          // notes job workers
}

type ChatConfig struct {
	RateLimit       int           `yaml:"rate_limit"` // messages per window
	RateWindow      time.Duration `yaml:"rate_window"`
	TelegramToken   string        `yaml:"telegram_token"`
	TelegramChatID  int64         `yaml:"telegram_chat_id"`
	HistoryPageSize int           `yaml:"history_page_size"`
}

type ReconcilerConfig struct {
	Interval     time.Duration `yaml:"interval"`      // pending sweep cadence
	StaleAfter   time.Duration `yaml:"stale_after"`   // how old a pending intent must be
	Lookback     time.Duration `yaml:"lookback"`      // historical sync window
	SyncInterval time.Duration `yaml:"sync_interval"` // historical sync cadence
}

type AdminConfig struct {
	APIKey    string        `yaml:"api_key"` // login credential for minting a session
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	AI         AIConfig         `yaml:"ai"`
	Chat       ChatConfig       `yaml:"chat"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`
	Admin      AdminConfig      `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Gateway.ReturnPath == "" {
		cfg.Gateway.ReturnPath = "/api/payment-status"
	}
	if cfg.Gateway.NotifyPath == "" {
		cfg.Gateway.NotifyPath = "/api/payment-status"
	}
	if cfg.AI.DefaultModel == "" {
		cfg.AI.DefaultModel = "gpt-4o-mini"
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.AI.Workers <= 0 {
		cfg.AI.Workers = 4
	}
	if cfg.Chat.RateLimit <= 0 {
		cfg.Chat.RateLimit = 10
	}
	if cfg.Chat.RateWindow <= 0 {
		cfg.Chat.RateWindow = time.Minute
	}
	if cfg.Chat.HistoryPageSize <= 0 {
		cfg.Chat.HistoryPageSize = 50
	}
	if cfg.Reconciler.Interval <= 0 {
		cfg.Reconciler.Interval = time.Minute
	}
	if cfg.Reconciler.StaleAfter <= 0 {
		cfg.Reconciler.StaleAfter = 10 * time.Minute
	}
	if cfg.Reconciler.Lookback <= 0 {
		cfg.Reconciler.Lookback = 30 * 24 * time.Hour
	}
	if cfg.Reconciler.SyncInterval <= 0 {
		cfg.Reconciler.SyncInterval = time.Hour
	}
	if cfg.Admin.TokenTTL <= 0 {
		cfg.Admin.TokenTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Server.BaseURL == "" {
		return nil, errors.New("server.base_url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
