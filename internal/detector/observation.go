// Package detector provides hand detection interfaces and types for pinch
// gesture classification.
package detector

// Joint identifies one of the five fingertip landmarks reported per hand.
// The constant values follow the MediaPipe hand landmark indices.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
type Joint int

const (
	ThumbTip  Joint = 4
	IndexTip  Joint = 8
	MiddleTip Joint = 12
	RingTip   Joint = 16
	LittleTip Joint = 20
)

// Fingertips lists all fingertip joints in anatomical order.
var Fingertips = []Joint{ThumbTip, IndexTip, MiddleTip, RingTip, LittleTip}

// String returns the finger name for the joint.
func (j Joint) String() string {
	switch j {
	case ThumbTip:
		return "thumb"
	case IndexTip:
		return "index"
	case MiddleTip:
		return "middle"
	case RingTip:
		return "ring"
	case LittleTip:
		return "little"
	}
	return "unknown"
}

// Landmark is a fingertip position in normalized [0,1]x[0,1] image space,
// with a per-joint confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Observation holds the fingertip landmarks detected for one hand in a frame.
// Joints absent from the map were not reported by the detector at all.
// Observations are produced fresh per detection and never mutated.
type Observation struct {
	Joints     map[Joint]Landmark `json:"joints"`
	Handedness string             `json:"handedness"` // "Left" or "Right"
	Score      float64            `json:"score"`
}

// Landmark returns the landmark for the given joint, if present.
func (o Observation) Landmark(j Joint) (Landmark, bool) {
	lm, ok := o.Joints[j]
	return lm, ok
}
