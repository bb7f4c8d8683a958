package gesture

import (
	"fmt"
	"math"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/geom"
)

const (
	// LandmarkCount is the number of landmarks per hand: the wrist plus four
	// joints per finger.
	LandmarkCount = 21

	// MaxHands is the number of tracked hand slots.
	MaxHands = 2

	wristIndex = 0
)

// Reasons reported with every classification.
const (
	ReasonWrongHandCount = "wrong hand count"
	ReasonHandsApart     = "hands apart"
	ReasonHandsMoving    = "hands moving"
	ReasonDetected       = "gesture detected"
)

// HandObservation is one hand's landmarks for a single frame.
type HandObservation []geom.Point3D

// Validate checks the landmark count.
func (h HandObservation) Validate() error {
	if len(h) != LandmarkCount {
		return fmt.Errorf("%w: got %d landmarks, want %d", ErrInvalidObservation, len(h), LandmarkCount)
	}
	return nil
}

// Wrist returns landmark 0.
func (h HandObservation) Wrist() geom.Point3D {
	return h[wristIndex]
}

// Thresholds holds the calibration constants used by the tracker and the
// classifier. They were tuned by hand for a camera-facing two-hand pose.
type Thresholds struct {
	WristDistance  float64 // wrists closer than this count as close
	CenterDistance float64 // hand centroids closer than this count as close
	Stability      float64 // mean stillness above this counts as stable

	MovementScale    float64 // avg per-landmark movement multiplier
	NeutralStillness float64 // stillness reported for a slot with no history

	ProximityWeight float64
	StabilityWeight float64
}

// DefaultThresholds returns the calibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WristDistance:    0.25,
		CenterDistance:   0.20,
		Stability:        0.7,
		MovementScale:    10,
		NeutralStillness: 0.5,
		ProximityWeight:  0.7,
		StabilityWeight:  0.3,
	}
}

// Metrics are the raw measurements behind a classification.
type Metrics struct {
	WristDistance  float64
	CenterDistance float64
	Proximity      float64 // 1 at touching wrists, 0 at the wrist threshold
	Stability      float64 // mean stillness of both slots
}

// Result is the outcome of classifying one frame.
type Result struct {
	Detected   bool
	Confidence float64
	Metrics    *Metrics
	Reason     string
}

// State is the snapshot handed to the status display.
type State struct {
	Detected    bool
	Confidence  float64
	Metrics     *Metrics
	Reason      string
	LastTrigger *time.Duration
}

// Percent returns the confidence as a whole percentage.
func (s State) Percent() int {
	return int(math.Round(s.Confidence * 100))
}

func (s State) String() string {
	if s.Detected {
		return fmt.Sprintf("detected %d%% (%s)", s.Percent(), s.Reason)
	}
	if s.Reason == "" {
		return "waiting for hands"
	}
	return fmt.Sprintf("not detected (%s)", s.Reason)
}
