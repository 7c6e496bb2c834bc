// SPDX-License-Identifier: EPL-2.0

package playback_test

import (
	"fmt"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/playback"
)

// Example_ticks walks a 100-frame stereo buffer through 256-frame blocks.
func Example_ticks() {
	format := audio.Format{Channels: 2, SampleRate: 44100, BitsPerSample: 16}
	buf := audio.NewBuffer(format, make([]int16, 100*2))

	engine := playback.New(buf)
	block := make([]int16, 256*format.Channels)

	for i := 1; i <= 3; i++ {
		status := engine.Tick(block)
		fmt.Printf("tick %d: %s, position %d/%d, %s\n",
			i, status, engine.Position(), engine.TotalFrames(), engine.State())
	}
	// Output:
	// tick 1: continue, position 100/100, drained
	// tick 2: complete, position 100/100, drained
	// tick 3: complete, position 100/100, drained
}
