package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/i5heu/TetrisStack/pkg/exchange"
	"github.com/i5heu/TetrisStack/pkg/piece"
)

// Game modes. Each one unlocks more menu actions than the previous.
const (
	ModeQueue     = "queue"
	ModeReserve   = "reserve"
	ModeStrategic = "strategic"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "tetrisstack.yaml"

// Config holds all TetrisStack settings.
type Config struct {
	Mode          string        `yaml:"mode"` // queue, reserve, strategic
	QueueCapacity int           `yaml:"queue_capacity"`
	StackCapacity int           `yaml:"stack_capacity"`
	BatchSize     int           `yaml:"batch_size"`
	Alphabet      string        `yaml:"alphabet"`
	Seed          uint64        `yaml:"seed"` // 0 picks a seed from the clock
	Logging       LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty means stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Mode:          ModeStrategic,
		QueueCapacity: 5,
		StackCapacity: 3,
		BatchSize:     exchange.DefaultBatch,
		Alphabet:      piece.DefaultAlphabet,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path on top of the defaults and applies env overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv("TETRIS_MODE"); mode != "" {
		c.Mode = mode
	}
	if seed := os.Getenv("TETRIS_SEED"); seed != "" {
		if v, err := strconv.ParseUint(seed, 10, 64); err == nil {
			c.Seed = v
		}
	}
	if alphabet := os.Getenv("TETRIS_ALPHABET"); alphabet != "" {
		c.Alphabet = alphabet
	}
	if level := os.Getenv("TETRIS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	switch c.Mode {
	case ModeQueue, ModeReserve, ModeStrategic:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.QueueCapacity < 1 {
		errs = append(errs, fmt.Errorf("queue_capacity must be at least 1, got %d", c.QueueCapacity))
	}
	if c.StackCapacity < 1 {
		errs = append(errs, fmt.Errorf("stack_capacity must be at least 1, got %d", c.StackCapacity))
	}
	if c.BatchSize < 1 || c.BatchSize > min(c.QueueCapacity, c.StackCapacity) {
		errs = append(errs, fmt.Errorf("batch_size must be between 1 and min(queue_capacity, stack_capacity), got %d", c.BatchSize))
	}
	if c.Alphabet == "" {
		errs = append(errs, errors.New("alphabet must not be empty"))
	} else {
		seen := make(map[rune]bool)
		for _, r := range c.Alphabet {
			if seen[r] {
				errs = append(errs, fmt.Errorf("alphabet repeats %q", r))
				break
			}
			seen[r] = true
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
