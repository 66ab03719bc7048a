package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const EnvHTTPAddr = "TASKTRACKER_HTTP_ADDR"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Loop       LoopConfig       `yaml:"loop"`
	Validation ValidationConfig `yaml:"validation"`
	UI         UIConfig         `yaml:"ui"`
	Debug      bool             `yaml:"debug"`
}

type HTTPConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type LoopConfig struct {
	QueueSize int `yaml:"queue_size"`
}

type ValidationConfig struct {
	// StrictPriority rejects priorities outside Low/Medium/High.
	StrictPriority bool `yaml:"strict_priority"`
}

type UIConfig struct {
	// Prompts forces interactive prompts even when stdin is not a terminal.
	Prompts bool `yaml:"prompts"`
}

func New() Config {
	return Config{
		HTTP: HTTPConfig{
			Enabled:           false,
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   time.Second * 10,
		},
		Loop: LoopConfig{
			QueueSize: 100,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// non-empty) and with environment overrides.
func Load(path string) (Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if addr := strings.TrimSpace(os.Getenv(EnvHTTPAddr)); addr != "" {
		c.HTTP.Addr = addr
	}
	if debug := os.Getenv("DEBUG"); debug == "1" || strings.EqualFold(debug, "true") {
		c.Debug = true
	}
}

func (c Config) Validate() error {
	if c.Loop.QueueSize < 1 {
		return fmt.Errorf("%w: loop.queue_size must be >= 1, got %d", ErrInvalidConfig, c.Loop.QueueSize)
	}
	if c.HTTP.Enabled && strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("%w: http.addr is required when http is enabled", ErrInvalidConfig)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: http.shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if c.HTTP.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("%w: http.read_header_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
