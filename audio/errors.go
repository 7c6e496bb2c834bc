// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrDeviceUnavailable = errors.New("no audio output device available")
	ErrStreamOpen        = errors.New("failed to open output stream")
	ErrStreamStart       = errors.New("failed to start output stream")
	ErrStreamFailed      = errors.New("output stream failed during playback")
	ErrUnknownBackend    = errors.New("unknown output backend")
)
