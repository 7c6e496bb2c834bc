// SPDX-License-Identifier: EPL-2.0

// Package pcmplay plays 16-bit PCM WAV files through the system sound
// device.
//
// # Quick Start
//
//	backend := output.NewOto()
//	player, err := pcmplay.New(backend, pcmplay.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	err = player.PlayFile(ctx, "audio.wav")
//
// PlayFile decodes the whole file into memory with formats/wav, then Play
// opens a stream on the backend with a playback.Engine as its callback,
// starts it, and waits until the device reports it is done or ctx is
// cancelled. The stream is closed on every return path.
//
// # Packages
//
//   - audio: Format, Buffer, and the Backend / Stream device contract
//   - formats/wav: canonical 44-byte WAV decoding and writing
//   - playback: the real-time Engine that feeds the device
//   - output: oto and beep backends
//   - utils: sample conversions and a sine generator
//
// # Errors
//
// Decode errors match the formats/wav sentinels (wav.ErrIO,
// wav.ErrInvalidContainer, ...). Device errors match audio.ErrDeviceUnavailable,
// audio.ErrStreamOpen, audio.ErrStreamStart and audio.ErrStreamFailed.
// Use errors.Is to tell them apart.
package pcmplay
