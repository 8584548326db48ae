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
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Banks struct {
		// Path to a YAML bank file; empty uses the banks built into the binary.
		Path string `yaml:"path"`
		TTL  string `yaml:"ttl"`
	} `yaml:"banks"`
	Game struct {
		DispatchTimeout string `yaml:"dispatch_timeout"`
		RoundInterval   string `yaml:"round_interval"`
		Warmup          bool   `yaml:"warmup"`
		WarmupDuration  string `yaml:"warmup_duration"`
		Seed            int64  `yaml:"seed"`
	} `yaml:"game"`
	Players []PlayerConfig `yaml:"players"`
}

// PlayerConfig is a statically registered player.
type PlayerConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
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

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
