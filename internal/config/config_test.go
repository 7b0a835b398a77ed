package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TETRIS_MODE", "TETRIS_SEED", "TETRIS_ALPHABET", "TETRIS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != ModeStrategic {
		t.Errorf("expected Mode=strategic, got %s", cfg.Mode)
	}
	if cfg.QueueCapacity != 5 || cfg.StackCapacity != 3 || cfg.BatchSize != 3 {
		t.Errorf("unexpected capacities: %d/%d/%d", cfg.QueueCapacity, cfg.StackCapacity, cfg.BatchSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "tetrisstack.yaml")

	cfg := DefaultConfig()
	cfg.Mode = ModeReserve
	cfg.Seed = 1234
	cfg.Alphabet = "IOTLSZJ"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: queue\nqueue_capacity: 7\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeQueue, cfg.Mode)
	assert.Equal(t, 7, cfg.QueueCapacity)
	assert.Equal(t, 3, cfg.StackCapacity)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("mode and seed", func(t *testing.T) {
		t.Setenv("TETRIS_MODE", ModeQueue)
		t.Setenv("TETRIS_SEED", "99")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, ModeQueue, cfg.Mode)
		assert.Equal(t, uint64(99), cfg.Seed)
	})

	t.Run("bad seed is ignored", func(t *testing.T) {
		t.Setenv("TETRIS_SEED", "not-a-number")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, uint64(0), cfg.Seed)
	})

	t.Run("alphabet and log level", func(t *testing.T) {
		t.Setenv("TETRIS_ALPHABET", "XY")
		t.Setenv("TETRIS_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "XY", cfg.Alphabet)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = "arcade" }},
		{"zero queue", func(c *Config) { c.QueueCapacity = 0 }},
		{"zero stack", func(c *Config) { c.StackCapacity = 0 }},
		{"batch too big", func(c *Config) { c.StackCapacity = 2 }},
		{"batch zero", func(c *Config) { c.BatchSize = 0 }},
		{"empty alphabet", func(c *Config) { c.Alphabet = "" }},
		{"repeated symbol", func(c *Config) { c.Alphabet = "IOI" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
