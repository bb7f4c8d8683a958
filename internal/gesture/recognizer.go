package gesture

import (
	"time"

	"github.com/iburimskiy/hand-constellation/internal/geom"
)

// Recognizer runs the classifier and the trigger policy for each frame and
// keeps the State snapshot shown to the user.
type Recognizer struct {
	classifier *Classifier
	trigger    *Trigger
	state      State
}

// NewRecognizer wires a classifier and a trigger policy.
func NewRecognizer(c *Classifier, t *Trigger) *Recognizer {
	return &Recognizer{classifier: c, trigger: t}
}

// Process classifies one frame at time now. It returns the updated snapshot
// and whether a spawn event fired. On ErrInvalidObservation the previous
// snapshot is returned unchanged alongside the error.
func (r *Recognizer) Process(hands []HandObservation, now time.Duration) (State, bool, error) {
	res, err := r.classifier.Classify(hands)
	if err != nil {
		return r.state, false, err
	}

	fired := r.trigger.Observe(res, now)

	r.state = State{
		Detected:   res.Detected,
		Confidence: res.Confidence,
		Metrics:    res.Metrics,
		Reason:     res.Reason,
	}
	if last, ok := r.trigger.LastTrigger(); ok {
		r.state.LastTrigger = &last
	}
	return r.state, fired, nil
}

// State returns the latest snapshot.
func (r *Recognizer) State() State {
	return r.state
}

// Reset clears stability history, the trigger cooldown and the snapshot.
func (r *Recognizer) Reset() {
	r.classifier.Tracker().Reset()
	r.trigger.Reset()
	r.state = State{}
}

// Midpoint returns the point between the two hands' centroids, used to
// place the constellation. It returns false unless exactly two hands are given.
func Midpoint(hands []HandObservation) (geom.Point3D, bool) {
	if len(hands) != MaxHands || len(hands[0]) == 0 || len(hands[1]) == 0 {
		return geom.Point3D{}, false
	}
	a := geom.Centroid(hands[0])
	b := geom.Centroid(hands[1])
	return geom.Point3D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}, true
}
