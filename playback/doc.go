// SPDX-License-Identifier: EPL-2.0

// Package playback implements the real-time side of the player: an Engine
// that hands a decoded buffer to an output device one block at a time.
//
// # Pull Model
//
// The device decides when it needs audio and how much. It calls Tick from
// its own goroutine with a block sized to the negotiated block size:
//
//	engine := playback.New(buf)
//	stream, err := backend.Open(cfg, engine.Tick)
//
// Each Tick copies as many frames as the buffer still holds, pads the rest
// of the block with silence, and advances the cursor. Once every frame has
// been handed out, Tick returns audio.Complete with a silent block on every
// further call.
//
// # States
//
//	Ready      cursor == 0
//	Streaming  0 < cursor < TotalFrames
//	Drained    cursor == TotalFrames (terminal)
//
// The tick that copies the last frame still returns audio.Continue; the
// device learns about the end on the following tick.
//
// # Concurrency
//
// Tick is the only writer of the cursor and is never called concurrently
// with itself. The cursor is atomic, so Position and State are safe from
// the controlling goroutine while the device is ticking.
//
// Tick never allocates, blocks, locks or does I/O. Progress is posted to a
// buffered channel with a non-blocking send, at most once per second of
// audio consumed and once more when the buffer drains; the controller
// drains the channel and does the logging.
package playback
