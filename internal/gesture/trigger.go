package gesture

import "time"

// Default trigger policy.
const (
	DefaultTriggerConfidence = 0.8
	DefaultCooldown          = 3 * time.Second
)

// Trigger debounces detections into spawn events: at most one per Cooldown
// window, and only for confident detections. Times are offsets on a
// monotonic session clock.
type Trigger struct {
	MinConfidence float64
	Cooldown      time.Duration

	last  time.Duration
	fired bool
}

// NewTrigger creates a trigger policy.
func NewTrigger(minConfidence float64, cooldown time.Duration) *Trigger {
	return &Trigger{MinConfidence: minConfidence, Cooldown: cooldown}
}

// Observe reports whether r at time now fires a spawn event.
func (t *Trigger) Observe(r Result, now time.Duration) bool {
	if !r.Detected || r.Confidence <= t.MinConfidence {
		return false
	}
	if t.fired && now-t.last <= t.Cooldown {
		return false
	}
	t.last = now
	t.fired = true
	return true
}

// LastTrigger returns the time of the last fired event.
func (t *Trigger) LastTrigger() (time.Duration, bool) {
	return t.last, t.fired
}

// Reset forgets the last trigger.
func (t *Trigger) Reset() {
	t.last = 0
	t.fired = false
}
