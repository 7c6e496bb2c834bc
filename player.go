// SPDX-License-Identifier: EPL-2.0

package pcmplay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/formats/wav"
	"github.com/ik5/pcmplay/playback"
)

// Player decodes WAV files and plays them through one audio.Backend.
type Player struct {
	backend audio.Backend
	cfg     Config
	logger  *log.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithLogger replaces the default charmbracelet logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) {
		p.logger = l
	}
}

// New creates a Player. cfg.Backend is only used for logging; the
// backend itself is passed in.
func New(backend audio.Backend, cfg Config, opts ...Option) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Player{
		backend: backend,
		cfg:     cfg,
		logger:  log.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// PlayFile decodes path and plays it to the end.
//
// Errors from the decoder match the formats/wav sentinels, errors from the
// device match the audio sentinels. See Play.
func (p *Player) PlayFile(ctx context.Context, path string) error {
	decoder := wav.Decoder{Lenient: p.cfg.Lenient}

	buf, err := decoder.DecodeFile(path)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	p.logger.Info("decoded",
		"file", path,
		"channels", buf.Format.Channels,
		"rate", buf.Format.SampleRate,
		"bits", buf.Format.BitsPerSample,
		"bytes", len(buf.Samples)*2,
		"frames", buf.TotalFrames(),
		"duration", buf.Duration(),
	)

	return p.Play(ctx, buf)
}

// Play streams buf to the backend and returns once the device has played
// it all, or ctx is cancelled.
//
// The stream is opened with a playback.Engine as its callback and polled
// every PollInterval. It is closed on every return path.
//
// Returns:
//   - audio.ErrStreamOpen / audio.ErrDeviceUnavailable when the device cannot be opened
//   - audio.ErrStreamStart when it opens but will not start
//   - audio.ErrStreamFailed when it reports an error mid-playback
//   - ctx.Err() when cancelled; the stream is stopped first
func (p *Player) Play(ctx context.Context, buf *audio.Buffer) error {
	engine := playback.New(buf)

	cfg := audio.StreamConfig{
		Format:    buf.Format,
		BlockSize: p.cfg.BlockSize,
		Latency:   p.cfg.Latency,
	}

	stream, err := p.backend.Open(cfg, engine.Tick)
	if err != nil {
		if errors.Is(err, audio.ErrDeviceUnavailable) || errors.Is(err, audio.ErrStreamOpen) {
			return fmt.Errorf("open stream: %w", err)
		}
		return fmt.Errorf("%w: %w", audio.ErrStreamOpen, err)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			p.logger.Warn("close stream", "err", err)
		}
		p.logger.Debug("stream closed")
	}()

	p.logger.Debug("stream opened",
		"backend", p.cfg.Backend,
		"block", cfg.BlockSize,
		"latency", cfg.Latency,
	)

	if err := stream.Start(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrStreamStart, err)
	}
	p.logger.Debug("stream started")

	if err := p.wait(ctx, stream, engine); err != nil {
		return err
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrStreamFailed, err)
	}

	p.logger.Info("playback finished", "frames", engine.Position())
	return nil
}

func (p *Player) wait(ctx context.Context, stream audio.Stream, engine *playback.Engine) error {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := stream.Stop(); err != nil {
				p.logger.Warn("stop stream", "err", err)
			}
			p.logger.Debug("stream stopped", "frame", engine.Position())
			return ctx.Err()

		case pr := <-engine.Progress():
			p.logger.Info("playing",
				"position", pr.Frame,
				"total", pr.Total,
				"percent", fmt.Sprintf("%.0f%%", pr.Fraction()*100),
			)

		case <-ticker.C:
			if !stream.Active() {
				return nil
			}
		}
	}
}

// Devices lists what the backend can play to.
func (p *Player) Devices() ([]audio.DeviceInfo, error) {
	devices, err := p.backend.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}
	return devices, nil
}
