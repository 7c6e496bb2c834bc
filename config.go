// SPDX-License-Identifier: EPL-2.0

package pcmplay

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config for a Player.
type Config struct {
	// Backend name in the registry (e.g., "oto", "beep").
	Backend string
	// BlockSize in frames per device callback.
	BlockSize int
	// Latency hint for the device buffer.
	Latency time.Duration
	// PollInterval between checks of the stream while it plays.
	PollInterval time.Duration
	// Lenient decoding walks WAV chunks instead of failing on a
	// non-canonical layout.
	Lenient bool
}

// DefaultConfig returns 256-frame blocks on the oto backend, polled every 100ms.
func DefaultConfig() Config {
	return Config{
		Backend:      "oto",
		BlockSize:    256,
		Latency:      20 * time.Millisecond,
		PollInterval: 100 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Backend == "":
		return fmt.Errorf("%w: backend is empty", ErrInvalidConfig)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, c.BlockSize)
	case c.Latency <= 0:
		return fmt.Errorf("%w: latency %s", ErrInvalidConfig, c.Latency)
	case c.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval %s", ErrInvalidConfig, c.PollInterval)
	}
	return nil
}
