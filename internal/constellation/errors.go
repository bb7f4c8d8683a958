package constellation

import "errors"

var (
	// ErrNotFound is returned when a template name is unknown.
	ErrNotFound = errors.New("template not found")

	// ErrInvalidTemplate is returned when template data is malformed.
	ErrInvalidTemplate = errors.New("invalid template data")
)
