package gesture

import (
	"fmt"

	"github.com/iburimskiy/hand-constellation/internal/geom"
)

// StabilityTracker keeps the previous frame of each hand slot and turns the
// inter-frame landmark movement into a stillness score in [0,1].
//
// It is not safe for concurrent use; the frame feed is its only writer.
type StabilityTracker struct {
	th    Thresholds
	slots [MaxHands]slotHistory
}

type slotHistory struct {
	prev  [LandmarkCount]geom.Point3D
	valid bool
}

// NewStabilityTracker creates a tracker with empty history.
func NewStabilityTracker(th Thresholds) *StabilityTracker {
	return &StabilityTracker{th: th}
}

// Update scores obs against the previous observation stored for slot and
// then replaces it. The first observation of a slot scores NeutralStillness.
func (t *StabilityTracker) Update(slot int, obs HandObservation) (float64, error) {
	if slot < 0 || slot >= MaxHands {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if err := obs.Validate(); err != nil {
		return 0, err
	}

	h := &t.slots[slot]
	if !h.valid {
		copy(h.prev[:], obs)
		h.valid = true
		return t.th.NeutralStillness, nil
	}

	var total float64
	for i := range h.prev {
		total += geom.Distance(obs[i], h.prev[i])
	}
	avgMovement := total / LandmarkCount

	copy(h.prev[:], obs)
	return geom.Clamp01(1 - avgMovement*t.th.MovementScale), nil
}

// Has reports whether slot holds a previous observation.
func (t *StabilityTracker) Has(slot int) bool {
	if slot < 0 || slot >= MaxHands {
		return false
	}
	return t.slots[slot].valid
}

// Reset drops all history.
func (t *StabilityTracker) Reset() {
	for i := range t.slots {
		t.slots[i].valid = false
	}
}
