// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/formats/wav"
)

// Example_decoding demonstrates decoding a WAV file.
func Example_decoding() {
	format := audio.Format{Channels: 2, SampleRate: 16000, BitsPerSample: 16}
	samples := []int16{100, -100, 200, -200, 300, -300}

	wavData := new(bytes.Buffer)
	wav.WriteWAV16(wavData, format, samples)

	buf, err := wav.Decoder{}.Decode(wavData)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", buf.Format.SampleRate)
	fmt.Printf("Channels: %d\n", buf.Format.Channels)
	fmt.Printf("Frames: %d\n", buf.TotalFrames())
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 2
	// Frames: 3
}

// Example_encoding demonstrates writing a WAV file.
func Example_encoding() {
	format := audio.Format{Channels: 1, SampleRate: 8000, BitsPerSample: 16}
	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = int16((i % 100) * 100)
	}

	output := new(bytes.Buffer)
	if err := wav.WriteWAV16(output, format, samples); err != nil {
		fmt.Printf("Write error: %v\n", err)
		return
	}

	fmt.Printf("Wrote %d bytes\n", output.Len())
	fmt.Printf("Data: %d bytes (%d samples × 2 bytes)\n", len(samples)*2, len(samples))
	// Output:
	// Wrote 2044 bytes
	// Data: 2000 bytes (1000 samples × 2 bytes)
}

// Example_errorNotWAV shows handling of invalid WAV files.
func Example_errorNotWAV() {
	invalidData := bytes.NewReader([]byte("This is not a WAV file, just some text padding it out."))

	_, err := wav.Decoder{}.Decode(invalidData)

	if errors.Is(err, wav.ErrInvalidContainer) {
		fmt.Println("Detected: Not a valid WAV file")
	} else if err != nil {
		fmt.Printf("Other error: %v\n", err)
	}
	// Output: Detected: Not a valid WAV file
}

// Example_errorBitDepth shows the bit depth being reported back.
func Example_errorBitDepth() {
	header := make([]byte, wav.HeaderSize)
	copy(header[0:], "RIFF")
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	header[20] = 1  // PCM
	header[22] = 1  // mono
	header[24] = 64 // 8000 Hz = 0x1F40
	header[25] = 31
	header[34] = 24 // 24-bit
	copy(header[36:], "data")

	_, err := wav.ParseHeader(header)

	var depthErr *wav.UnsupportedBitDepthError
	if errors.As(err, &depthErr) {
		fmt.Printf("Unsupported: %d-bit\n", depthErr.Bits)
	}
	// Output: Unsupported: 24-bit
}
