// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/utils"
)

// Beep plays through the github.com/gopxl/beep/v2 speaker.
//
// The speaker can be initialised only once per process, so the first Open
// fixes the sample rate for every later stream.
type Beep struct {
	rate beep.SampleRate

	mtx sync.Mutex
}

func NewBeep() *Beep {
	return &Beep{}
}

// Devices reports the system default output. The speaker does not
// enumerate.
func (b *Beep) Devices() ([]audio.DeviceInfo, error) {
	return []audio.DeviceInfo{
		{Name: "default", MaxOutputChannels: maxChannels, Default: true},
	}, nil
}

func (b *Beep) Open(cfg audio.StreamConfig, cb audio.Callback) (audio.Stream, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	if err := b.init(cfg); err != nil {
		return nil, err
	}

	s := &beepStream{
		streamer: newTickStreamer(cb, cfg.Format.Channels, cfg.BlockSize),
	}
	s.ctrl = &beep.Ctrl{Streamer: s.streamer, Paused: true}

	return s, nil
}

func (b *Beep) init(cfg audio.StreamConfig) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	rate := beep.SampleRate(cfg.Format.SampleRate)

	first, err := claimRate(b.rate, rate)
	if err != nil || !first {
		return err
	}

	bufferSize := max(cfg.BlockSize, rate.N(cfg.Latency))
	if err := speaker.Init(rate, bufferSize); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}
	b.rate = rate

	return nil
}

// claimRate reports whether the speaker still needs initialising for want.
// current is zero until the first successful init.
func claimRate(current, want beep.SampleRate) (bool, error) {
	switch current {
	case 0:
		return true, nil
	case want:
		return false, nil
	default:
		return false, fmt.Errorf("%w: speaker is already running at %d Hz, stream needs %d Hz",
			audio.ErrStreamOpen, current, want)
	}
}

// tickStreamer turns a Callback into a beep.Streamer. Mono blocks are
// played on both speaker channels.
type tickStreamer struct {
	cb       audio.Callback
	channels int
	block    []int16

	// unread part of block
	pending []int16
	done    atomic.Bool
}

func newTickStreamer(cb audio.Callback, channels, blockSize int) *tickStreamer {
	return &tickStreamer{
		cb:       cb,
		channels: channels,
		block:    make([]int16, blockSize*channels),
	}
}

func (s *tickStreamer) Stream(samples [][2]float64) (int, bool) {
	ch := s.channels

	n := 0
	for n < len(samples) {
		if len(s.pending) == 0 {
			if s.done.Load() || s.cb(s.block) == audio.Complete {
				s.done.Store(true)
				break
			}
			s.pending = s.block
		}

		frames := min(len(samples)-n, len(s.pending)/ch)
		for i := range frames {
			left := s.pending[i*ch]
			right := s.pending[i*ch+ch-1]

			samples[n+i][0] = utils.Int16ToFloat64(left)
			samples[n+i][1] = utils.Int16ToFloat64(right)
		}

		s.pending = s.pending[frames*ch:]
		n += frames
	}

	return n, n > 0
}

func (s *tickStreamer) Err() error {
	return nil
}

type beepStream struct {
	streamer *tickStreamer
	ctrl     *beep.Ctrl

	// set once the speaker has pulled the last sample
	finished atomic.Bool

	mtx     sync.Mutex
	started bool
	closed  bool
}

func (s *beepStream) Start() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return fmt.Errorf("%w: stream is closed", audio.ErrStreamStart)
	}

	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()

	if !s.started {
		s.started = true
		speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
			s.finished.Store(true)
		})))
	}

	return nil
}

func (s *beepStream) Stop() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}

	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()

	return nil
}

func (s *beepStream) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	// the speaker stays initialised for the next stream
	speaker.Clear()

	return nil
}

func (s *beepStream) Active() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.started || s.closed || s.finished.Load() {
		return false
	}

	speaker.Lock()
	defer speaker.Unlock()

	return !s.ctrl.Paused
}

func (s *beepStream) Err() error {
	return s.ctrl.Err()
}
