// Package config loads the gaugeserver configuration: defaults,
// optionally overlaid by a YAML file, overlaid by environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fideuardo/gaugekit/internal/logging"
)

// Env var names used as overrides.
const (
	EnvListen        = "GAUGEKIT_LISTEN"
	EnvTelegramToken = "GAUGEKIT_TELEGRAM_TOKEN"
	EnvTelegramChat  = "GAUGEKIT_TELEGRAM_CHAT"
	EnvLogLevel      = "GAUGEKIT_LOG_LEVEL"
	EnvLogFormat     = "GAUGEKIT_LOG_FORMAT"
	EnvLogFile       = "GAUGEKIT_LOG_FILE"
)

// CanvasConfig sets the pixel buffer the server renders into.
type CanvasConfig struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Background [3]uint8 `yaml:"background"` // RGB
}

// GaugeConfig mirrors gauge.Config for the file format.
type GaugeConfig struct {
	Min        int    `yaml:"min"`
	Max        int    `yaml:"max"`
	MinorMarks int    `yaml:"minor_marks"`
	Units      string `yaml:"units"`
	Arch       int    `yaml:"arch"`
	Phase      int    `yaml:"phase"`
}

// TelegramConfig is the optional push target. The token is usually
// supplied via environment or the upload form rather than the file.
type TelegramConfig struct {
	Token string `yaml:"token"`
	Chat  int64  `yaml:"chat"`
}

type Config struct {
	Listen   string          `yaml:"listen"`
	Canvas   CanvasConfig    `yaml:"canvas"`
	Gauge    GaugeConfig     `yaml:"gauge"`
	Telegram TelegramConfig  `yaml:"telegram"`
	Logging  logging.Options `yaml:"logging"`
}

// Defaults returns the built-in configuration: the reference 0-200
// km/h half-circle dial on a 600x400 dark canvas.
func Defaults() Config {
	return Config{
		Listen: "0.0.0.0:9991",
		Canvas: CanvasConfig{Width: 600, Height: 400, Background: [3]uint8{30, 30, 30}},
		Gauge: GaugeConfig{
			Min:        0,
			Max:        200,
			MinorMarks: 20,
			Units:      "km/h",
			Arch:       180,
			Phase:      180,
		},
		Logging: logging.Options{Level: "info", Format: "text"},
	}
}

// Load reads the config file at path (if path is non-empty) over the
// defaults and applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvListen)); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelegramToken)); v != "" {
		cfg.Telegram.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelegramChat)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.Chat = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
