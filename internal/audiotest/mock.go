// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"

	"github.com/ik5/pcmplay/audio"
)

// ErrDevice is the mid-playback failure MockBackend injects.
var ErrDevice = errors.New("mock device failure")

// MockBackend is an audio.Backend that needs no sound card. Started
// streams tick their callback on a goroutine as fast as it returns.
type MockBackend struct {
	// DeviceList is returned by Devices. Nil means one default stereo device.
	DeviceList []audio.DeviceInfo
	// FailOpen, when set, is returned by Open.
	FailOpen error
	// FailStart, when set, is returned by Start.
	FailStart error
	// FailAfter makes a stream stop with ErrDevice after that many ticks.
	FailAfter int
	// Endless streams ignore audio.Complete and keep ticking until stopped.
	Endless bool

	mtx     sync.Mutex
	streams []*MockStream
}

func (m *MockBackend) Devices() ([]audio.DeviceInfo, error) {
	if m.DeviceList == nil {
		return []audio.DeviceInfo{{Name: "mock", MaxOutputChannels: 2, Default: true}}, nil
	}
	return m.DeviceList, nil
}

func (m *MockBackend) Open(cfg audio.StreamConfig, cb audio.Callback) (audio.Stream, error) {
	if m.FailOpen != nil {
		return nil, m.FailOpen
	}

	s := &MockStream{
		cfg:       cfg,
		cb:        cb,
		failStart: m.FailStart,
		failAfter: m.FailAfter,
		endless:   m.Endless,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	m.mtx.Lock()
	m.streams = append(m.streams, s)
	m.mtx.Unlock()

	return s, nil
}

// Streams returns every stream opened so far.
func (m *MockBackend) Streams() []*MockStream {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return append([]*MockStream(nil), m.streams...)
}

// MockStream records what its callback produced.
type MockStream struct {
	cfg       audio.StreamConfig
	cb        audio.Callback
	failStart error
	failAfter int
	endless   bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mtx     sync.Mutex
	started bool
	active  bool
	closed  bool
	err     error
	ticks   int
	output  []int16
}

func (s *MockStream) Start() error {
	if s.failStart != nil {
		return s.failStart
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.started {
		return nil
	}
	s.started = true
	s.active = true

	go s.run()

	return nil
}

func (s *MockStream) run() {
	defer close(s.done)

	block := make([]int16, s.cfg.BlockSize*s.cfg.Format.Channels)

	for {
		select {
		case <-s.stop:
			s.finish(nil)
			return
		default:
		}

		s.mtx.Lock()
		failing := s.failAfter > 0 && s.ticks >= s.failAfter
		s.mtx.Unlock()

		if failing {
			s.finish(ErrDevice)
			return
		}

		status := s.cb(block)

		s.mtx.Lock()
		s.ticks++
		if status == audio.Continue {
			s.output = append(s.output, block...)
		}
		s.mtx.Unlock()

		if status == audio.Complete && !s.endless {
			s.finish(nil)
			return
		}
	}
}

func (s *MockStream) finish(err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.active = false
	s.err = err
}

func (s *MockStream) Stop() error {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mtx.Lock()
	started := s.started
	s.mtx.Unlock()

	if started {
		<-s.done
	}
	return nil
}

func (s *MockStream) Close() error {
	_ = s.Stop()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	return nil
}

func (s *MockStream) Active() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.active
}

func (s *MockStream) Err() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.err
}

// Config is what the stream was opened with.
func (s *MockStream) Config() audio.StreamConfig {
	return s.cfg
}

// Output is every block returned with audio.Continue, concatenated.
func (s *MockStream) Output() []int16 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return append([]int16(nil), s.output...)
}

func (s *MockStream) Ticks() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.ticks
}

func (s *MockStream) Closed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.closed
}
