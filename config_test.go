// SPDX-License-Identifier: EPL-2.0

package pcmplay

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	if cfg.BlockSize != 256 || cfg.Backend != "oto" || cfg.Lenient {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no backend", func(c *Config) { c.Backend = "" }},
		{"zero block", func(c *Config) { c.BlockSize = 0 }},
		{"negative block", func(c *Config) { c.BlockSize = -1 }},
		{"zero latency", func(c *Config) { c.Latency = 0 }},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.BlockSize = 0

	if _, err := New(nil, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}
