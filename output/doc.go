// SPDX-License-Identifier: EPL-2.0

// Package output holds the audio.Backend implementations that reach a real
// sound card.
//
//	oto   github.com/ebitengine/oto/v3, pulls an io.Reader
//	beep  github.com/gopxl/beep/v2/speaker, pulls a beep.Streamer
//
// Both adapt an audio.Callback to the library's pull interface: the
// callback is asked for one block of the configured size at a time, and
// the block is handed out in whatever sizes the library reads. Neither
// library enumerates devices or drives more than two channels, so each
// backend reports a single default device and refuses wider formats with
// audio.ErrStreamOpen.
package output
