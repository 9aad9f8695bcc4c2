package codec

import "github.com/pkg/errors"

var (
	// ErrZeroLength is a frame header declaring an empty payload.
	ErrZeroLength = errors.New("frame declares zero length")
	// ErrTooLarge is a frame header declaring more than the allowed size.
	ErrTooLarge = errors.New("frame exceeds maximum size")
)
