// Package gesture classifies pinch gestures from hand landmark observations.
package gesture

import (
	"fmt"
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Classification thresholds, in normalized image-space units.
const (
	// ConfidenceFloor is the minimum per-joint confidence; joints at or below
	// it are treated as absent.
	ConfidenceFloor = 0.3

	// PinchThreshold is the fingertip-to-thumb distance below which a pinch
	// is declared. Strictly below: a pair at exactly this distance is open.
	PinchThreshold = 0.1

	// MinVisibleJoints is the number of confident fingertips a hand needs to
	// be classified at all.
	MinVisibleJoints = 2
)

// pinchableJoints are the fingertips checked against the thumb, in report order.
var pinchableJoints = []detector.Joint{
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.LittleTip,
}

// Classify produces a report from one frame's hand observations. It is a pure
// function: no state is kept between calls and the input is never mutated.
//
// Hands degrade rather than fail: a hand with fewer than two confident
// fingertips, or without a confident thumb tip, contributes no line to the
// report. Each thumb pair is evaluated independently, so a single hand may
// report several simultaneous pinches.
func Classify(hands []detector.Observation) Report {
	report := Report{Detected: len(hands)}

	for i, obs := range hands {
		visible := confidentJoints(obs)
		if len(visible) < MinVisibleJoints {
			continue
		}

		// Pinches are thumb-relative; without a thumb there is nothing to say.
		thumb, ok := visible[detector.ThumbTip]
		if !ok {
			continue
		}

		var pinches []string
		for _, joint := range pinchableJoints {
			tip, ok := visible[joint]
			if !ok {
				continue
			}
			if distance(thumb, tip) < PinchThreshold {
				pinches = append(pinches, PairName(joint))
			}
		}

		report.Hands = append(report.Hands, HandReport{
			Label:   handLabel(i),
			Pinches: pinches,
		})
	}

	return report
}

// PairName returns the pinch pair name for a thumb paired with the given
// fingertip, e.g. "thumb-index".
func PairName(j detector.Joint) string {
	return "thumb-" + j.String()
}

// confidentJoints filters an observation down to the fingertips whose
// confidence exceeds the floor.
func confidentJoints(obs detector.Observation) map[detector.Joint]detector.Landmark {
	visible := make(map[detector.Joint]detector.Landmark, len(obs.Joints))
	for _, joint := range detector.Fingertips {
		lm, ok := obs.Landmark(joint)
		if !ok {
			continue
		}
		if lm.Confidence > ConfidenceFloor {
			visible[joint] = lm
		}
	}
	return visible
}

// distance is the Euclidean distance between two landmarks in normalized
// image space.
func distance(a, b detector.Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// handLabel names a hand by its position in the detector's output order.
// The label is positional, not identity-stable: a hand entering or leaving
// the frame can flip which label the other hand receives.
func handLabel(i int) string {
	switch i {
	case 0:
		return "First hand"
	case 1:
		return "Second hand"
	}
	return fmt.Sprintf("Hand %d", i+1)
}
