package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/capture"
)

// fakeClock is a manually advanced clock for gate tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	// Well past the epoch so the gate's zero "last processed" time never
	// trips the interval throttle on the first frame.
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func frame(seq uint64) *capture.Frame {
	return &capture.Frame{Seq: seq, Timestamp: time.Now()}
}

// waitIdle blocks until the gate's dispatch goroutine has finished.
func waitIdle(t *testing.T, g *FrameGate) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for g.InFlight() {
		if time.Now().After(deadline) {
			t.Fatal("gate still in flight after 2s")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFrameGate_Stride(t *testing.T) {
	var mu sync.Mutex
	var forwarded []uint64

	g := NewFrameGate(4, DefaultMinInterval, func(f *capture.Frame) error {
		mu.Lock()
		forwarded = append(forwarded, f.Seq)
		mu.Unlock()
		return nil
	})

	clock := newFakeClock()
	g.now = clock.Now

	for seq := uint64(1); seq <= 12; seq++ {
		clock.Advance(time.Second) // interval throttle never rejects
		admitted := g.OnFrame(frame(seq))

		if want := seq%4 == 0; admitted != want {
			t.Errorf("OnFrame(seq=%d) = %v, want %v", seq, admitted, want)
		}
		if admitted {
			waitIdle(t, g)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(forwarded) != 3 {
		t.Fatalf("forwarded %d frames, want 3: %v", len(forwarded), forwarded)
	}
	for _, seq := range forwarded {
		if seq%4 != 0 {
			t.Errorf("frame seq %d forwarded despite stride", seq)
		}
	}
}

func TestFrameGate_MinInterval(t *testing.T) {
	g := NewFrameGate(4, 150*time.Millisecond, func(f *capture.Frame) error {
		return nil
	})

	clock := newFakeClock()
	g.now = clock.Now

	if !g.OnFrame(frame(4)) {
		t.Fatal("first stride frame should be admitted")
	}
	waitIdle(t, g)

	// Too soon after the last processed frame, despite matching the stride.
	clock.Advance(100 * time.Millisecond)
	if g.OnFrame(frame(8)) {
		t.Error("frame within min interval should be rejected")
	}

	clock.Advance(100 * time.Millisecond)
	if !g.OnFrame(frame(12)) {
		t.Error("frame past min interval should be admitted")
	}
	waitIdle(t, g)
}

func TestFrameGate_AtMostOneInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	g := NewFrameGate(4, time.Millisecond, func(f *capture.Frame) error {
		close(started)
		<-release
		return nil
	})

	clock := newFakeClock()
	g.now = clock.Now

	if !g.OnFrame(frame(4)) {
		t.Fatal("first frame should be admitted")
	}
	<-started

	// Stride and interval both pass, but a dispatch is in flight.
	clock.Advance(time.Second)
	if g.OnFrame(frame(8)) {
		t.Error("frame admitted while dispatch in flight")
	}

	close(release)
	waitIdle(t, g)

	clock.Advance(time.Second)
	if !g.OnFrame(frame(12)) {
		t.Error("frame rejected after dispatch completed")
	}
	waitIdle(t, g)
}

func TestFrameGate_RecoversFromDispatchError(t *testing.T) {
	calls := 0
	g := NewFrameGate(4, time.Millisecond, func(f *capture.Frame) error {
		calls++
		return errors.New("malformed image buffer")
	})

	clock := newFakeClock()
	g.now = clock.Now

	// A failing dispatch must still clear the in-flight flag so the pipeline
	// resumes on the next eligible frame.
	for i := 1; i <= 3; i++ {
		clock.Advance(time.Second)
		if !g.OnFrame(frame(uint64(4 * i))) {
			t.Fatalf("frame %d rejected after earlier dispatch failure", i)
		}
		waitIdle(t, g)
	}

	if calls != 3 {
		t.Errorf("dispatch called %d times, want 3", calls)
	}
	if got := g.Failures(); got != 3 {
		t.Errorf("Failures() = %d, want 3", got)
	}
}

func TestFrameGate_Defaults(t *testing.T) {
	g := NewFrameGate(0, 0, func(f *capture.Frame) error { return nil })

	if g.stride != DefaultStride {
		t.Errorf("stride = %d, want %d", g.stride, DefaultStride)
	}
	if g.minGap != DefaultMinInterval {
		t.Errorf("minGap = %v, want %v", g.minGap, DefaultMinInterval)
	}
}
