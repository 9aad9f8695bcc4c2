package codec

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// HeaderSize is the length of the big-endian payload length prefix.
const HeaderSize = 4

// DefaultMaxSize bounds a frame payload unless configured otherwise.
const DefaultMaxSize = 1 << 20

// AppendFrame appends the framed payload to dst. With obfuscated set the
// payload bytes (never the header) are XORed with the length-derived key.
func AppendFrame(dst, payload []byte, obfuscated bool) []byte {
	var hdr [HeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload)))
	dst = append(dst, hdr[:]...)
	start := len(dst)
	dst = append(dst, payload...)
	if obfuscated {
		Obfuscate(dst[start:])
	}
	return dst
}

// Encode returns payload as a single frame.
func Encode(payload []byte, obfuscated bool) []byte {
	return AppendFrame(make([]byte, 0, HeaderSize+len(payload)), payload, obfuscated)
}

// checkLength validates a declared payload length before anything is sized
// from it.
func checkLength(n uint32, max int) error {
	if n == 0 {
		return ErrZeroLength
	}
	if uint64(n) > uint64(max) {
		return errors.Wrapf(ErrTooLarge, "declared %d, limit %d", n, max)
	}
	return nil
}

// ReadFrame reads one frame from a blocking reader and returns its payload.
func ReadFrame(r io.Reader, max int, obfuscated bool) ([]byte, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if err := checkLength(n, max); err != nil {
		return nil, err
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, errors.Wrap(err, "read frame payload")
	}
	if obfuscated {
		Obfuscate(payload)
	}
	return payload, nil
}
