// SPDX-License-Identifier: EPL-2.0

// Package audio provides the types shared by the decoder, the playback
// engine and the output backends.
//
// # Buffers
//
// A decoded file is a Format plus a Buffer of interleaved 16-bit samples:
//
//	format := audio.Format{Channels: 2, SampleRate: 44100, BitsPerSample: 16}
//	buf := audio.NewBuffer(format, samples)
//	frames := buf.TotalFrames() // len(samples) / 2
//
// NewBuffer drops a trailing partial frame, so len(buf.Samples) is always a
// multiple of the channel count.
//
// # Output Devices
//
// A Backend opens a Stream for a StreamConfig and a Callback. The device
// pulls blocks by invoking the Callback on its own goroutine; the Callback
// returns Continue or Complete:
//
//	stream, err := backend.Open(audio.StreamConfig{
//	    Format:    format,
//	    BlockSize: 256,
//	    Latency:   20 * time.Millisecond,
//	}, engine.Tick)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
// Callbacks run on a deadline. They must not block, allocate, lock or do
// I/O.
//
// # Backend Registry
//
// The registry maps backend names to implementations:
//
//	registry := audio.NewRegistry()
//	registry.Register("oto", output.NewOto())
//	backend, ok := registry.Get("oto")
//
// # Error Handling
//
// Device failures are reported with sentinel errors that callers match
// with errors.Is:
//   - ErrDeviceUnavailable: no output device could be initialized
//   - ErrStreamOpen: the stream could not be opened with the format
//   - ErrStreamStart: the stream opened but did not start
//   - ErrStreamFailed: the device reported an error mid-playback
package audio
