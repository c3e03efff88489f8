package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// Outbound requests per second against the backend; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type CacheConfig struct {
	StaleSeconds int `yaml:"stale_seconds"`
}

func (c CacheConfig) StaleTime() time.Duration {
	return time.Duration(c.StaleSeconds) * time.Second
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
	DryRun   bool   `yaml:"dry_run"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	API     APIConfig   `yaml:"api"`
	Cache   CacheConfig `yaml:"cache"`
	Session struct {
		File string `yaml:"file"`
	} `yaml:"session"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	return LoadConfigFile("config/config.yaml")
}

func LoadConfigFile(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:3000/api"
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.Cache.StaleSeconds == 0 {
		cfg.Cache.StaleSeconds = 30
	}
	if cfg.Session.File == "" {
		cfg.Session.File = "./session.json"
	}
	return &cfg
}
