// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/pcmplay/audio"
)

// maxChannels is what oto and the beep speaker can drive.
const maxChannels = 2

// Oto plays through github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so the first Open fixes the
// sample rate and channel count for every later stream.
type Oto struct {
	ctx    *oto.Context
	format audio.Format

	mtx sync.Mutex
}

func NewOto() *Oto {
	return &Oto{}
}

// Devices reports the system default output. oto does not enumerate.
func (o *Oto) Devices() ([]audio.DeviceInfo, error) {
	return []audio.DeviceInfo{
		{Name: "default", MaxOutputChannels: maxChannels, Default: true},
	}, nil
}

func (o *Oto) Open(cfg audio.StreamConfig, cb audio.Callback) (audio.Stream, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	ctx, err := o.context(cfg)
	if err != nil {
		return nil, err
	}

	reader := newTickReader(cb, cfg.Format.Channels, cfg.BlockSize)
	player := ctx.NewPlayer(reader)
	player.SetBufferSize(cfg.BlockSize * cfg.Format.FrameSize())

	return &otoStream{player: player, reader: reader}, nil
}

func (o *Oto) context(cfg audio.StreamConfig) (*oto.Context, error) {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if o.ctx != nil {
		if o.format != cfg.Format {
			return nil, fmt.Errorf("%w: oto is already running at %d Hz, %d channels",
				audio.ErrStreamOpen, o.format.SampleRate, o.format.Channels)
		}
		return o.ctx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.Format.SampleRate,
		ChannelCount: cfg.Format.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   cfg.Latency,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}
	<-ready

	o.ctx = ctx
	o.format = cfg.Format

	return ctx, nil
}

func checkConfig(cfg audio.StreamConfig) error {
	switch {
	case cfg.Format.Channels < 1 || cfg.Format.Channels > maxChannels:
		return fmt.Errorf("%w: %d channels, device supports at most %d",
			audio.ErrStreamOpen, cfg.Format.Channels, maxChannels)
	case cfg.Format.BitsPerSample != 16:
		return fmt.Errorf("%w: %d-bit samples", audio.ErrStreamOpen, cfg.Format.BitsPerSample)
	case cfg.Format.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", audio.ErrStreamOpen, cfg.Format.SampleRate)
	case cfg.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", audio.ErrStreamOpen, cfg.BlockSize)
	}
	return nil
}

// tickReader turns a Callback into the io.Reader oto pulls from. Every
// callback gets exactly one block; Read hands the bytes out in whatever
// sizes oto asks for.
type tickReader struct {
	cb    audio.Callback
	block []int16
	bytes []byte

	// unread part of bytes
	pending []byte
	done    atomic.Bool
}

func newTickReader(cb audio.Callback, channels, blockSize int) *tickReader {
	return &tickReader{
		cb:    cb,
		block: make([]int16, blockSize*channels),
		bytes: make([]byte, blockSize*channels*2),
	}
}

func (r *tickReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			if r.done.Load() || r.cb(r.block) == audio.Complete {
				r.done.Store(true)
				break
			}

			for i, s := range r.block {
				binary.LittleEndian.PutUint16(r.bytes[i*2:], uint16(s))
			}
			r.pending = r.bytes
		}

		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}

	if n == 0 && r.done.Load() {
		return 0, io.EOF
	}
	return n, nil
}

// otoPlayer is the part of *oto.Player a stream drives.
type otoPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Err() error
}

type otoStream struct {
	player otoPlayer
	reader *tickReader

	mtx     sync.Mutex
	stopped bool
	closed  bool
}

func (s *otoStream) Start() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return fmt.Errorf("%w: stream is closed", audio.ErrStreamStart)
	}

	s.stopped = false
	s.player.Play()
	return nil
}

func (s *otoStream) Stop() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}

	s.stopped = true
	s.player.Pause()
	return nil
}

// Close pauses the player and ends the reader. oto players have no real
// close, so a paused player is left for the garbage collector.
func (s *otoStream) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stopped = true

	s.reader.done.Store(true)
	s.player.Pause()
	return nil
}

// Active stays true until oto has played everything the reader produced.
func (s *otoStream) Active() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return !s.stopped && s.player.IsPlaying()
}

func (s *otoStream) Err() error {
	return s.player.Err()
}
