// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"

	"github.com/ik5/pcmplay/audio"
)

// Sine renders frames of a sine wave at freq Hz, the same signal on every
// channel. amplitude is clamped to [0, 1].
func Sine(format audio.Format, freq float64, frames int, amplitude float64) *audio.Buffer {
	amplitude = max(0, min(1, amplitude))

	samples := make([]int16, frames*format.Channels)
	step := 2 * math.Pi * freq / float64(format.SampleRate)

	for i := range frames {
		v := Float64ToInt16(amplitude * math.Sin(step*float64(i)))
		for ch := range format.Channels {
			samples[i*format.Channels+ch] = v
		}
	}

	return audio.NewBuffer(format, samples)
}
