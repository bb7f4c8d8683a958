package gesture

import (
	"math"

	"github.com/iburimskiy/hand-constellation/internal/geom"
)

// Classifier decides whether two hands are held close together and still.
// The only state it touches is the injected StabilityTracker, which it
// advances once per slot on every two-hand frame.
type Classifier struct {
	th      Thresholds
	tracker *StabilityTracker
}

// NewClassifier creates a classifier. A nil tracker gets a fresh one.
func NewClassifier(th Thresholds, tracker *StabilityTracker) *Classifier {
	if tracker == nil {
		tracker = NewStabilityTracker(th)
	}
	return &Classifier{th: th, tracker: tracker}
}

// Tracker returns the stability tracker used by the classifier.
func (c *Classifier) Tracker() *StabilityTracker {
	return c.tracker
}

// Classify evaluates one frame. Any hand count other than two is a
// not-detected result, not an error, and clears the stability history.
// A malformed hand returns ErrInvalidObservation without touching history.
func (c *Classifier) Classify(hands []HandObservation) (Result, error) {
	if len(hands) != MaxHands {
		c.tracker.Reset()
		return Result{Reason: ReasonWrongHandCount}, nil
	}
	a, b := hands[0], hands[1]
	if err := a.Validate(); err != nil {
		return Result{}, err
	}
	if err := b.Validate(); err != nil {
		return Result{}, err
	}

	stillA, err := c.tracker.Update(0, a)
	if err != nil {
		return Result{}, err
	}
	stillB, err := c.tracker.Update(1, b)
	if err != nil {
		return Result{}, err
	}

	m := &Metrics{
		WristDistance:  geom.Distance(a.Wrist(), b.Wrist()),
		CenterDistance: geom.Distance(geom.Centroid(a), geom.Centroid(b)),
		Stability:      (stillA + stillB) / 2,
	}
	m.Proximity = math.Max(0, 1-m.WristDistance/c.th.WristDistance)

	isClose := m.WristDistance < c.th.WristDistance && m.CenterDistance < c.th.CenterDistance
	isStable := m.Stability > c.th.Stability

	switch {
	case !isClose:
		return Result{Metrics: m, Reason: ReasonHandsApart}, nil
	case !isStable:
		return Result{Metrics: m, Reason: ReasonHandsMoving}, nil
	}

	conf := m.Proximity*c.th.ProximityWeight + m.Stability*c.th.StabilityWeight
	return Result{
		Detected:   true,
		Confidence: geom.Clamp01(conf),
		Metrics:    m,
		Reason:     ReasonDetected,
	}, nil
}
