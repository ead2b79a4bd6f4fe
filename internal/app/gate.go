package app

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/ayusman/mudra/internal/capture"
)

// Admission policy defaults.
const (
	// DefaultStride admits only every Nth frame by sequence number.
	DefaultStride = 4

	// DefaultMinInterval is the minimum wall-clock gap between admitted
	// frames, guarding against oversampling when the native frame rate is
	// unusually high.
	DefaultMinInterval = 150 * time.Millisecond

	// dispatchLogSample bounds error logging to roughly one line per this
	// many dispatch failures.
	dispatchLogSample = 30
)

// DispatchFunc runs detection on an admitted frame. It is called on its own
// goroutine and may block for as long as the detector needs. The gate owns
// the frame for the duration of the call and closes it afterwards.
type DispatchFunc func(*capture.Frame) error

// FrameGate throttles the frame stream down to a rate the detector can
// sustain. Frames pass only when no dispatch is in flight, their sequence
// number lands on the stride, and enough wall-clock time has elapsed since
// the last admitted frame.
//
// The in-flight flag is the only shared mutable state. It is checked and set
// with a compare-and-swap so frame delivery from concurrent contexts cannot
// start two dispatches, and it is cleared unconditionally when the dispatch
// returns, errors included; a stuck flag would silently halt the pipeline.
type FrameGate struct {
	stride   uint64
	minGap   time.Duration
	dispatch DispatchFunc
	now      func() time.Time

	inFlight atomic.Bool
	lastRun  atomic.Int64 // unix nanos of the last admitted frame
	failures atomic.Uint64
}

// NewFrameGate creates a gate with the given stride and minimum interval.
// Values <= 0 fall back to the defaults.
func NewFrameGate(stride int, minGap time.Duration, dispatch DispatchFunc) *FrameGate {
	if stride <= 0 {
		stride = DefaultStride
	}
	if minGap <= 0 {
		minGap = DefaultMinInterval
	}
	return &FrameGate{
		stride:   uint64(stride),
		minGap:   minGap,
		dispatch: dispatch,
		now:      time.Now,
	}
}

// OnFrame decides whether the frame is forwarded to the detector. It never
// blocks: an admitted frame is handed to a new goroutine and ownership of the
// frame transfers to the gate. When OnFrame returns false the caller still
// owns the frame and must close it.
func (g *FrameGate) OnFrame(frame *capture.Frame) bool {
	if g.inFlight.Load() {
		return false
	}

	if frame.Seq%g.stride != 0 {
		return false
	}

	now := g.now()
	if now.Sub(time.Unix(0, g.lastRun.Load())) < g.minGap {
		return false
	}

	if !g.inFlight.CompareAndSwap(false, true) {
		// Lost the race to a concurrent delivery.
		return false
	}

	g.lastRun.Store(now.UnixNano())
	go g.run(frame)
	return true
}

// run executes the dispatch off the frame-delivery path.
func (g *FrameGate) run(frame *capture.Frame) {
	defer g.inFlight.Store(false)
	defer frame.Close()

	if err := g.dispatch(frame); err != nil {
		// Detection errors are recoverable; the next admitted frame is the
		// retry. Log sampled to avoid flooding under sustained failure.
		if n := g.failures.Add(1); n%dispatchLogSample == 1 {
			log.Printf("frame dispatch failed (%d so far): %v", n, err)
		}
	}
}

// InFlight reports whether a dispatch is currently running.
func (g *FrameGate) InFlight() bool {
	return g.inFlight.Load()
}

// Failures returns the number of dispatches that have errored.
func (g *FrameGate) Failures() uint64 {
	return g.failures.Load()
}
