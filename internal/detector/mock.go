package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Observation
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the observations that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Observation) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured observations or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PinchObservation returns a preset observation with the thumb and index tips
// close enough together to register a thumb-index pinch, the remaining
// fingers extended.
func PinchObservation() Observation {
	return Observation{
		Handedness: "Right",
		Score:      0.95,
		Joints: map[Joint]Landmark{
			ThumbTip:  {X: 0.50, Y: 0.50, Confidence: 0.9},
			IndexTip:  {X: 0.52, Y: 0.51, Confidence: 0.9},
			MiddleTip: {X: 0.48, Y: 0.28, Confidence: 0.9},
			RingTip:   {X: 0.42, Y: 0.32, Confidence: 0.9},
			LittleTip: {X: 0.36, Y: 0.40, Confidence: 0.9},
		},
	}
}

// OpenHandObservation returns a preset observation with all five fingertips
// spread apart, no pair within pinch range.
func OpenHandObservation() Observation {
	return Observation{
		Handedness: "Right",
		Score:      0.95,
		Joints: map[Joint]Landmark{
			ThumbTip:  {X: 0.73, Y: 0.60, Confidence: 0.9},
			IndexTip:  {X: 0.58, Y: 0.35, Confidence: 0.9},
			MiddleTip: {X: 0.50, Y: 0.28, Confidence: 0.9},
			RingTip:   {X: 0.42, Y: 0.35, Confidence: 0.9},
			LittleTip: {X: 0.34, Y: 0.42, Confidence: 0.9},
		},
	}
}

// WeakObservation returns a preset observation in which every fingertip is
// below the classifier's confidence floor, as from a marginally detected hand.
func WeakObservation() Observation {
	return Observation{
		Handedness: "Left",
		Score:      0.4,
		Joints: map[Joint]Landmark{
			ThumbTip: {X: 0.50, Y: 0.50, Confidence: 0.2},
			IndexTip: {X: 0.52, Y: 0.51, Confidence: 0.25},
		},
	}
}
