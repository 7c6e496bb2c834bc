// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/pcmplay/audio"
)

// Example_buffer demonstrates frame accounting on an interleaved buffer.
func Example_buffer() {
	format := audio.Format{Channels: 2, SampleRate: 8000, BitsPerSample: 16}

	// 7 samples: the last one is half a frame and gets dropped
	buf := audio.NewBuffer(format, []int16{1, -1, 2, -2, 3, -3, 4})

	fmt.Printf("Frames: %d\n", buf.TotalFrames())
	fmt.Printf("Frame 2: %v\n", buf.Frame(2))
	fmt.Printf("Duration: %v\n", buf.Duration())
	// Output:
	// Frames: 3
	// Frame 2: [3 -3]
	// Duration: 375µs
}
