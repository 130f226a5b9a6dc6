// Package rom loads the Gigatron's instruction memory image: a fixed
// 131 072-byte binary holding 65 536 (IR, D) instruction pairs.
package rom

import (
	"errors"
	"fmt"
	"os"
)

// Size is the exact expected ROM file size: 65 536 entries of 2 bytes.
const Size = 65536 * 2

// Image is the immutable 64Ki×2-byte instruction memory, addressed by
// the 16-bit program counter. Entry i holds (IR, D) = (bytes[2i],
// bytes[2i+1]).
type Image [65536][2]byte

// ErrWrongSize is returned by Load and Parse when the input is not
// exactly Size bytes.
var ErrWrongSize = fmt.Errorf("rom: image must be exactly %d bytes", Size)

// Load reads path and parses it as a ROM image. Errors are plain —
// callers at the CLI boundary are expected to escalate them to a fatal
// exit, matching the teacher's cart.ParseHeader / cmd.main convention.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates data and unpacks it into an Image.
func Parse(data []byte) (*Image, error) {
	if len(data) != Size {
		return nil, fmt.Errorf("%w: got %d bytes", ErrWrongSize, len(data))
	}
	var img Image
	for i := 0; i < 65536; i++ {
		img[i][0] = data[2*i]
		img[i][1] = data[2*i+1]
	}
	return &img, nil
}

// Bytes re-serializes the image back into the 131 072-byte wire format,
// byte-identical to the file Load read it from (spec §8 round-trip law).
func (img *Image) Bytes() []byte {
	out := make([]byte, Size)
	for i := 0; i < 65536; i++ {
		out[2*i] = img[i][0]
		out[2*i+1] = img[i][1]
	}
	return out
}

// At returns the (IR, D) pair at the given program counter.
func (img *Image) At(pc uint16) (ir, d byte) {
	e := img[pc]
	return e[0], e[1]
}

// IsNotFound reports whether err is (or wraps) a file-not-found error
// from Load, for callers that want to distinguish it from a size error.
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
