package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/pcmplay/audio"
)

// HeaderSize is the size of the canonical RIFF/WAVE header.
const HeaderSize = 44

// Header holds the fixed-offset fields of a canonical 44-byte header.
type Header struct {
	Channels      uint16 // offset 22
	SampleRate    uint32 // offset 24
	BitsPerSample uint16 // offset 34
	DataSize      uint32 // offset 40
}

// Format converts the header into the buffer format.
func (h Header) Format() audio.Format {
	return audio.Format{
		Channels:      int(h.Channels),
		SampleRate:    int(h.SampleRate),
		BitsPerSample: int(h.BitsPerSample),
	}
}

// TotalFrames is the number of whole frames announced by DataSize.
func (h Header) TotalFrames() int {
	frameSize := int(h.Channels) * 2
	if frameSize == 0 {
		return 0
	}
	return int(h.DataSize) / frameSize
}

// ParseHeader validates b and extracts its fields.
//
// Only the canonical layout is accepted: "fmt " at offset 12 and "data" at
// offset 36 with nothing in between. Files carrying extra chunks (LIST,
// fact, extensible fmt) fail with ErrNonCanonicalLayout; use a Lenient
// Decoder for those.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrTruncatedHeader
	}

	if !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
		return Header{}, ErrInvalidContainer
	}

	if !bytes.Equal(b[12:16], []byte("fmt ")) || !bytes.Equal(b[36:40], []byte("data")) {
		return Header{}, ErrNonCanonicalLayout
	}

	h := Header{
		Channels:      binary.LittleEndian.Uint16(b[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(b[24:28]),
		BitsPerSample: binary.LittleEndian.Uint16(b[34:36]),
		DataSize:      binary.LittleEndian.Uint32(b[40:44]),
	}

	if h.BitsPerSample != 16 {
		return Header{}, &UnsupportedBitDepthError{Bits: int(h.BitsPerSample)}
	}

	// 1 is integer PCM; float, extensible and compressed tags are refused
	if tag := binary.LittleEndian.Uint16(b[20:22]); tag != 1 {
		return Header{}, fmt.Errorf("%w: format tag %#x", ErrUnsupportedBitDepth, tag)
	}

	if h.Channels == 0 || h.SampleRate == 0 {
		return Header{}, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidContainer, h.Channels, h.SampleRate)
	}

	return h, nil
}

// Decoder reads a whole 16-bit PCM WAV stream into memory.
type Decoder struct {
	// Lenient walks the RIFF chunks instead of assuming the canonical
	// layout, and keeps whatever PCM is present when the data chunk is
	// shorter than announced.
	Lenient bool
}

// DecodeFile opens path and decodes it. The file is closed before return.
func (d Decoder) DecodeFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return d.Decode(f)
}

func (d Decoder) Decode(r io.Reader) (*audio.Buffer, error) {
	if d.Lenient {
		return decodeChunked(r)
	}

	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	h, err := ParseHeader(header)
	if err != nil {
		return nil, err
	}

	// Grows only as far as the file really goes.
	data, err := io.ReadAll(io.LimitReader(r, int64(h.DataSize)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if len(data) < int(h.DataSize) {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedData, len(data), h.DataSize)
	}

	format := h.Format()
	samples := make([]int16, h.TotalFrames()*format.Channels)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i : 2*i+2]))
	}

	return audio.NewBuffer(format, samples), nil
}

// DecodeFile decodes path with the default strict Decoder.
func DecodeFile(path string) (*audio.Buffer, error) {
	return Decoder{}.DecodeFile(path)
}

func decodeChunked(r io.Reader) (*audio.Buffer, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrInvalidContainer
	}

	if dec.BitDepth != 16 {
		return nil, &UnsupportedBitDepthError{Bits: int(dec.BitDepth)}
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidContainer, dec.NumChans, dec.SampleRate)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContainer, err)
	}

	samples := make([]int16, len(pcm.Data))
	for i, v := range pcm.Data {
		samples[i] = int16(v)
	}

	format := audio.Format{
		Channels:      int(dec.NumChans),
		SampleRate:    int(dec.SampleRate),
		BitsPerSample: 16,
	}

	return audio.NewBuffer(format, samples), nil
}
