// Package config loads engine configuration from defaults, an optional YAML
// file and APP_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Analytics AnalyticsConfig `koanf:"analytics"`

	// Display carries per-data-source presentation metadata keyed by the
	// source name. Sources absent from the map fall back to DefaultDisplay.
	Display map[string]DisplayMeta `koanf:"display"`
}

type AnalyticsConfig struct {
	// ChartTopN bounds ranked tooltip breakdowns; entries beyond it
	// collapse into a remainder count
	ChartTopN int `koanf:"chart_top_n"`

	// DefaultRangeDays sizes the date range used when a caller supplies none
	DefaultRangeDays int `koanf:"default_range_days"`
}

// DisplayMeta is presentation metadata for one data source
type DisplayMeta struct {
	Icon  string `koanf:"icon"`
	Color string `koanf:"color"`
}

// DefaultDisplay is used for data sources without configured metadata
var DefaultDisplay = DisplayMeta{Icon: "🔗", Color: "#6B7280"}

// DisplayFor resolves presentation metadata for a data source
func (c *Config) DisplayFor(source string) DisplayMeta {
	if meta, ok := c.Display[source]; ok {
		return meta
	}
	return DefaultDisplay
}

func defaults() *Config {
	return &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Analytics: AnalyticsConfig{
			ChartTopN:        5,
			DefaultRangeDays: 30,
		},
		Display: map[string]DisplayMeta{
			"Meta":               {Icon: "/logos/meta-symbol.svg", Color: "#1877F2"},
			"Google Ads":         {Icon: "/logos/google-ads-symbol.svg", Color: "#4285F4"},
			"Amazon Advertising": {Icon: "/logos/amazon-symbol.svg", Color: "#FF9900"},
			"Google Sheets":      {Icon: "/logos/google-sheets-symbol.svg", Color: "#34A853"},
			"LinkedIn Ads":       {Icon: "/logos/linkedin-symbol.svg", Color: "#0A66C2"},
			"TikTok Ads":         {Icon: "/logos/tiktok-symbol.svg", Color: "#000000"},
			"Twitter Ads":        {Icon: "/logos/twitter-x-symbol.svg", Color: "#1DA1F2"},
		},
	}
}

// Load builds the configuration. The file path is optional; a missing file
// is not an error so the binary runs with defaults out of the box.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "APP_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Analytics.ChartTopN <= 0 {
		cfg.Analytics.ChartTopN = 5
	}
	if cfg.Analytics.DefaultRangeDays <= 0 {
		cfg.Analytics.DefaultRangeDays = 30
	}

	return &cfg, nil
}
