// SPDX-License-Identifier: EPL-2.0

// Package wav decodes 16-bit PCM WAV files into an in-memory audio.Buffer
// and writes them back.
//
// # Decoding
//
// The default Decoder reads the canonical 44-byte header by fixed offsets:
//
//	| Offset | Size | Field             |
//	|--------|------|-------------------|
//	| 0      | 4    | "RIFF"            |
//	| 8      | 4    | "WAVE"            |
//	| 12     | 4    | "fmt "            |
//	| 20     | 2    | format tag (1)    |
//	| 22     | 2    | channel count     |
//	| 24     | 4    | sample rate (Hz)  |
//	| 34     | 2    | bits per sample   |
//	| 36     | 4    | "data"            |
//	| 40     | 4    | data size (bytes) |
//	| 44     | ...  | interleaved PCM   |
//
// All fields are little-endian. The whole data chunk is read into memory:
//
//	buf, err := wav.DecodeFile("music.wav")
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(buf.Format.Channels, buf.Format.SampleRate, buf.TotalFrames())
//
// # Limitations
//
// The default Decoder does not walk RIFF chunks. A file with anything
// between the fmt and data chunks (LIST, fact, an extensible fmt chunk) is
// rejected with ErrNonCanonicalLayout rather than misread. Set Lenient to
// walk the chunks with github.com/go-audio/wav instead:
//
//	buf, err := wav.Decoder{Lenient: true}.DecodeFile("tagged.wav")
//
// Only 16-bit samples are supported by either path.
//
// A data chunk shorter than its declared size fails with ErrTruncatedData
// in the default Decoder; the Lenient Decoder keeps the samples present.
// A trailing partial frame is dropped in both.
//
// # Writing WAV Files
//
// WriteWAV16 writes the canonical layout for any channel count, Encode
// writes through the go-audio encoder:
//
//	format := audio.Format{Channels: 2, SampleRate: 44100, BitsPerSample: 16}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, format, samples)
//
// # Error Handling
//
// Errors are sentinel values matched with errors.Is:
//   - ErrIO: the file could not be opened or read
//   - ErrTruncatedHeader: fewer than 44 bytes
//   - ErrTruncatedData: the data chunk is shorter than declared
//   - ErrInvalidContainer: bad RIFF/WAVE tags, zero channels or zero rate
//   - ErrNonCanonicalLayout: extra chunks in the header area
//   - ErrUnsupportedBitDepth: not 16-bit (errors.As gives *UnsupportedBitDepthError),
//     or a format tag other than integer PCM
package wav
