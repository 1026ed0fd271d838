package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
	} `yaml:"auth"`
	Loading struct {
		Delay string `yaml:"delay"`
	} `yaml:"loading"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Catalog struct {
		TTL string `yaml:"ttl"`
	} `yaml:"catalog"`
	Leaderboard struct {
		Size int `yaml:"size"`
	} `yaml:"leaderboard"`
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

// TTLDuration parses a duration string or returns the fallback if empty or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
