// Package config loads the dashboard configuration and builds the
// infrastructure clients it names.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const EnvPrefix = "DASHBOARD_"

type Config struct {
	APIBaseURL     string        `koanf:"api_base_url"`
	ListenAddr     string        `koanf:"listen_addr"`
	PublicURL      string        `koanf:"public_url"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	ChartWidth     int           `koanf:"chart_width"`
	ChartHeight    int           `koanf:"chart_height"`
	Locale         string        `koanf:"locale"`
	PageTTL        time.Duration `koanf:"page_ttl"`
	LogLevel       string        `koanf:"log_level"`

	RedisAddr      string `koanf:"redis_addr"`
	RefreshChannel string `koanf:"refresh_channel"`
	KafkaBroker    string `koanf:"kafka_broker"`
	KafkaTopic     string `koanf:"kafka_topic"`
	PostgresDSN    string `koanf:"postgres_dsn"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"api_base_url":    "http://localhost:5000",
		"listen_addr":     ":8080",
		"public_url":      "",
		"request_timeout": "30s",
		"chart_width":     900,
		"chart_height":    420,
		"locale":          "en",
		"page_ttl":        "30m",
		"log_level":       "info",
		"refresh_channel": "dashboard:refresh",
		"kafka_topic":     "dashboard.panel-loads",
	}
}

// Load layers defaults, the optional YAML file, DASHBOARD_* environment
// variables and explicitly set flags, in increasing priority.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	return nil
}
