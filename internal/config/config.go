// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Telemetry sizes the per-tick output line.
type Telemetry struct {
	MaxLogLength int `yaml:"max_log_length"`
}

// Trader holds orchestrator knobs returned to the host every tick.
type Trader struct {
	Conversions int `yaml:"conversions"`
}

// FairValue selects a fair-value estimator; Price is only read by the fixed mode.
type FairValue struct {
	Mode  string `yaml:"mode"`
	Price string `yaml:"price"`
}

// Product registers one tradable symbol with its position limit.
type Product struct {
	Symbol    string    `yaml:"symbol"`
	Limit     int       `yaml:"limit"`
	FairValue FairValue `yaml:"fair_value"`
}

// Feed chooses where ticks come from.
type Feed struct {
	Provider   string `yaml:"provider"`
	Path       string `yaml:"path"`
	IntervalMs int    `yaml:"interval_ms"`
	MaxTicks   int    `yaml:"max_ticks"`
}

// Paper captures paper-execution settings.
type Paper struct {
	FillsPath string `yaml:"fills_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App       App       `yaml:"app"`
	Telemetry Telemetry `yaml:"telemetry"`
	Trader    Trader    `yaml:"trader"`
	Products  []Product `yaml:"products"`
	Feed      Feed      `yaml:"feed"`
	Paper     Paper     `yaml:"paper"`
}

// Load reads a YAML file from disk over Default and validates the result.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects configurations the agent cannot run with.
func (c *Config) Validate() error {
	if c.Telemetry.MaxLogLength <= 0 {
		return fmt.Errorf("telemetry.max_log_length must be positive, got %d", c.Telemetry.MaxLogLength)
	}
	seen := make(map[string]struct{}, len(c.Products))
	for i, p := range c.Products {
		symbol := strings.TrimSpace(p.Symbol)
		if symbol == "" {
			return fmt.Errorf("products[%d]: empty symbol", i)
		}
		if _, dup := seen[symbol]; dup {
			return fmt.Errorf("products[%d]: duplicate symbol %s", i, symbol)
		}
		seen[symbol] = struct{}{}
		if p.Limit <= 0 {
			return fmt.Errorf("products[%d]: limit for %s must be positive", i, symbol)
		}
	}
	return nil
}
