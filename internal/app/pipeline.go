package app

import (
	"log"
	"time"
)

// runPipeline is the frame-delivery loop. It reads frames from the camera at
// its native cadence and offers every one to the admission gate; the gate
// decides which few reach the detector. Rejected frames are closed here,
// admitted ones belong to the gate.
//
// All throttling lives in the gate. The loop itself stays dumb: no detection,
// no classification, nothing that could stall frame delivery.
func (a *App) runPipeline(stop <-chan struct{}) {
	interval := time.Second / time.Duration(a.Camera().FPS())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if !a.gate.OnFrame(frame) {
				frame.Close()
			}
		}
	}
}
