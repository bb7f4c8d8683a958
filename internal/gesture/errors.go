package gesture

import "errors"

var (
	// ErrInvalidObservation is returned when a hand does not carry exactly
	// LandmarkCount points. The frame is skipped and stability history kept.
	ErrInvalidObservation = errors.New("invalid hand observation")

	// ErrInvalidSlot is returned for a tracker slot outside [0, MaxHands).
	ErrInvalidSlot = errors.New("invalid hand slot")
)
