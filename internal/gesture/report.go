package gesture

import (
	"fmt"
	"strings"
)

// NoHandsText is published when a frame contains no hand observations.
const NoHandsText = "no hands detected"

// Report is the classification result for one frame.
// Detected counts every observation the detector returned; Hands holds an
// entry only for the hands that survived confidence filtering.
type Report struct {
	Detected int          `json:"detected"`
	Hands    []HandReport `json:"hands"`
}

// HandReport is the classification of a single hand.
// An empty Pinches slice means an open hand.
type HandReport struct {
	Label   string   `json:"label"`
	Pinches []string `json:"pinches"`
}

// Open reports whether the hand shows no pinch.
func (h HandReport) Open() bool {
	return len(h.Pinches) == 0
}

// String renders the report in its published text form: a header line with
// the detected hand count followed by one line per classified hand, or the
// no-hands sentinel.
func (r Report) String() string {
	if r.Detected == 0 {
		return NoHandsText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d hand(s) detected\n", r.Detected)
	for _, hand := range r.Hands {
		if hand.Open() {
			fmt.Fprintf(&b, "%s: open hand\n", hand.Label)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", hand.Label, strings.Join(hand.Pinches, ", "))
		}
	}
	return b.String()
}
