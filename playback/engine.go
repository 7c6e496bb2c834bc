// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"sync/atomic"

	"github.com/ik5/pcmplay/audio"
)

// State of an Engine, derived from its cursor.
type State int

const (
	// Ready: nothing consumed yet.
	Ready State = iota
	// Streaming: some frames consumed, some left.
	Streaming
	// Drained: every frame consumed. Terminal.
	Drained
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Streaming:
		return "streaming"
	case Drained:
		return "drained"
	default:
		return "unknown"
	}
}

// Progress is posted by Tick for the controller to report.
type Progress struct {
	Frame int
	Total int
}

// Fraction of the buffer consumed, in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Frame) / float64(p.Total)
}

// Engine feeds a decoded buffer to an output device one block at a time.
//
// Tick is called by the device, never concurrently with itself. Every
// other method may be called from any goroutine.
type Engine struct {
	samples     []int16
	channels    int
	totalFrames int

	// written only by Tick
	cursor atomic.Int64

	// owned by Tick
	lastReported int
	reportEvery  int
	progress     chan Progress
}

// Option configures an Engine.
type Option func(*Engine)

// WithReportInterval sets how many consumed frames trigger a Progress post.
// The default is one second of audio. n <= 0 disables progress entirely.
func WithReportInterval(frames int) Option {
	return func(e *Engine) {
		e.reportEvery = frames
	}
}

// New creates an Engine over buf. buf must not be modified afterwards.
func New(buf *audio.Buffer, opts ...Option) *Engine {
	e := &Engine{
		samples:     buf.Samples,
		channels:    buf.Format.Channels,
		totalFrames: buf.TotalFrames(),
		reportEvery: buf.Format.SampleRate,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.reportEvery > 0 {
		e.progress = make(chan Progress, 1)
	}

	return e
}

// Tick fills out with the next block and reports whether the stream goes
// on. The block is len(out)/channels frames; whatever the buffer cannot
// supply is zero. The tick that copies the last frame returns
// audio.Continue, every tick after that returns audio.Complete with a
// silent block.
//
// Tick does not allocate, block or lock; it can be handed to a device as
// an audio.Callback.
func (e *Engine) Tick(out []int16) audio.StreamStatus {
	requested := len(out) / e.channels
	if requested == 0 {
		clear(out)
		return audio.Continue
	}

	current := int(e.cursor.Load())
	available := e.totalFrames - current

	if available == 0 {
		clear(out)
		return audio.Complete
	}

	toCopy := min(requested, available)
	start := current * e.channels
	copied := copy(out, e.samples[start:start+toCopy*e.channels])
	clear(out[copied:])

	current += toCopy
	e.cursor.Store(int64(current))

	e.report(current)

	return audio.Continue
}

func (e *Engine) report(current int) {
	if e.progress == nil {
		return
	}

	if current-e.lastReported < e.reportEvery && current != e.totalFrames {
		return
	}
	e.lastReported = current

	select {
	case e.progress <- Progress{Frame: current, Total: e.totalFrames}:
	default:
		// reader is behind, it will get the next one
	}
}

// Progress returns the channel Tick posts to, or nil when reporting is
// disabled. The channel is never closed.
func (e *Engine) Progress() <-chan Progress {
	return e.progress
}

// Position is the number of frames consumed so far.
func (e *Engine) Position() int {
	return int(e.cursor.Load())
}

func (e *Engine) TotalFrames() int {
	return e.totalFrames
}

func (e *Engine) Channels() int {
	return e.channels
}

func (e *Engine) State() State {
	switch pos := e.Position(); {
	case pos >= e.totalFrames:
		return Drained
	case pos == 0:
		return Ready
	default:
		return Streaming
	}
}
