package landmarks

import "errors"

var (
	// ErrMalformedFrame is returned for a recording line that cannot be decoded.
	// The line is skipped; later lines are still readable.
	ErrMalformedFrame = errors.New("malformed landmark frame")

	// ErrClosed is returned by Next after Close.
	ErrClosed = errors.New("landmark source closed")
)
