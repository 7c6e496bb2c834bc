// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"slices"
	"sync"
	"time"
)

// Format describes a decoded PCM stream. It is set once at decode time.
type Format struct {
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// SampleRate of the PCM stream in Hz.
	SampleRate int
	// BitsPerSample is always 16 for buffers produced by this module.
	BitsPerSample int
}

// FrameSize is the size in bytes of one interleaved frame.
func (f Format) FrameSize() int {
	return f.Channels * f.BitsPerSample / 8
}

// Duration of n frames at the format's sample rate.
func (f Format) Duration(frames int) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// Buffer owns interleaved 16-bit samples ordered
// [frame0_ch0, frame0_ch1, ..., frame1_ch0, ...].
// len(Samples) is always a multiple of Format.Channels.
type Buffer struct {
	Format  Format
	Samples []int16
}

// NewBuffer builds a Buffer, dropping any trailing partial frame.
func NewBuffer(format Format, samples []int16) *Buffer {
	if format.Channels > 0 {
		samples = samples[:len(samples)-len(samples)%format.Channels]
	}
	return &Buffer{Format: format, Samples: samples}
}

func (b *Buffer) TotalFrames() int {
	if b.Format.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Format.Channels
}

// Frame returns the samples of frame i without copying.
func (b *Buffer) Frame(i int) []int16 {
	ch := b.Format.Channels
	return b.Samples[i*ch : (i+1)*ch]
}

func (b *Buffer) Duration() time.Duration {
	return b.Format.Duration(b.TotalFrames())
}

// StreamStatus is what a Callback tells the device after filling a block.
type StreamStatus int

const (
	// Continue asks the device for more blocks.
	Continue StreamStatus = iota
	// Complete tells the device the stream is finished.
	Complete
)

func (s StreamStatus) String() string {
	switch s {
	case Continue:
		return "continue"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Callback fills out with interleaved samples. len(out) is the negotiated
// block size times the channel count. It runs on the device's schedule and
// must not block or allocate.
type Callback func(out []int16) StreamStatus

// DeviceInfo is one entry of a backend's device list.
type DeviceInfo struct {
	Name              string
	MaxOutputChannels int
	Default           bool
}

// StreamConfig is what the controller asks a backend to open.
type StreamConfig struct {
	Format Format
	// BlockSize in frames per callback.
	BlockSize int
	// Latency is a hint for the device buffer length.
	Latency time.Duration
}

// Stream is an opened output stream. It is owned by the controlling
// goroutine; the Callback it was opened with is driven by the device.
type Stream interface {
	Start() error
	Stop() error
	// Close releases the device. Safe to call more than once.
	Close() error
	// Active reports whether the device is still pulling blocks.
	Active() bool
	// Err returns a device error raised during playback, if any.
	Err() error
}

// Backend is an audio output subsystem.
type Backend interface {
	Devices() ([]DeviceInfo, error)
	Open(cfg StreamConfig, cb Callback) (Stream, error)
}

// Registry for output backends by name (e.g., "oto", "beep").
type Registry struct {
	backends map[string]Backend

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
		mtx:      &sync.Mutex{},
	}
}

func (r *Registry) Register(name string, b Backend) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.backends[name] = b
}

func (r *Registry) Get(name string) (Backend, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	b, ok := r.backends[name]
	return b, ok
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
