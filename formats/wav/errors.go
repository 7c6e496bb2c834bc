package wav

import (
	"errors"
	"fmt"
)

var (
	ErrIO                  = errors.New("WAV read failed")
	ErrTruncatedHeader     = errors.New("WAV header truncated")
	ErrTruncatedData       = errors.New("WAV data truncated")
	ErrInvalidContainer    = errors.New("not a WAV file")
	ErrNonCanonicalLayout  = errors.New("unsupported WAV layout")
	ErrUnsupportedBitDepth = errors.New("only PCM 16-bit supported")
)

// UnsupportedBitDepthError carries the bit depth found in the header.
// It matches ErrUnsupportedBitDepth with errors.Is.
type UnsupportedBitDepthError struct {
	Bits int
}

func (e *UnsupportedBitDepthError) Error() string {
	return fmt.Sprintf("%s, got %d-bit", ErrUnsupportedBitDepth, e.Bits)
}

func (e *UnsupportedBitDepthError) Is(target error) bool {
	return target == ErrUnsupportedBitDepth
}
