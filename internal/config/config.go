package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Trivia struct {
		URL     string `yaml:"url"`
		Amount  int    `yaml:"amount"`
		Timeout string `yaml:"timeout"`
		Offline bool   `yaml:"offline"`
	} `yaml:"trivia"`
	Quiz struct {
		Duration string `yaml:"duration"`
	} `yaml:"quiz"`
	Log struct {
		Env string `yaml:"env"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// QuestionAmount is the configured batch size, 15 unless set.
func (c Config) QuestionAmount() int {
	if c.Trivia.Amount > 0 {
		return c.Trivia.Amount
	}
	return 15
}
