// Package app wires the capture, detection, and classification pipeline for
// the Mudra pinch recognition system.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// Publisher receives the text of each classification report. Publication is
// fire-and-forget and last-write-wins: each report supersedes the previous
// displayed state entirely, so publishers need no ordering guarantees.
type Publisher interface {
	Publish(text string)
}

// Config holds configuration options for the application.
type Config struct {
	Store       *store.Store
	PluginDir   string
	CameraID    int
	Stride      int
	MinInterval time.Duration
}

// App orchestrates the pipeline: camera frames flow through the admission
// gate, admitted frames through the detector and classifier, and the
// resulting reports out to the registered publishers and pinch triggers.
type App struct {
	config     Config
	camera     capture.Camera
	detector   detector.Detector
	gate       *FrameGate
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	publishers []Publisher
	sessionID  string
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(5 * time.Second),
		sessionID:  uuid.NewString(),
	}
	a.gate = NewFrameGate(config.Stride, config.MinInterval, a.process)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables pinch detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether pinch detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// AddPublisher registers a publisher for classification reports.
// Not safe to call after Start.
func (a *App) AddPublisher(p Publisher) {
	if p == nil {
		return
	}
	a.publishers = append(a.publishers, p)
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start opens the camera and begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// process is the gate's dispatch function: detect, classify, publish.
// It runs on the gate's worker goroutine, never the frame-delivery path.
func (a *App) process(frame *capture.Frame) error {
	hands, err := a.Detector().Detect(frame.Mat)
	if err != nil {
		return err
	}

	report := gesture.Classify(hands)
	a.publish(report)
	return nil
}

// publish fans a report out to every publisher, records it, and fires any
// pinch-bound plugin triggers.
func (a *App) publish(report gesture.Report) {
	text := report.String()

	for _, p := range a.publishers {
		p.Publish(text)
	}

	if a.config.Store != nil {
		if _, err := a.config.Store.Reports().Append(a.sessionID, report.Detected, text); err != nil {
			log.Printf("Failed to record report: %v", err)
		}
	}

	a.fireTriggers(report)
}

// fireTriggers executes the plugin action bound to each reported pinch pair.
// Triggers fire on every report containing the pair; there is no debouncing.
func (a *App) fireTriggers(report gesture.Report) {
	if a.config.Store == nil {
		return
	}

	for _, hand := range report.Hands {
		for _, pair := range hand.Pinches {
			binding, err := a.config.Store.Bindings().GetByPair(pair)
			if err != nil {
				log.Printf("Failed to look up binding for %s: %v", pair, err)
				continue
			}
			if binding == nil || !binding.Enabled {
				continue
			}
			a.executeBinding(binding, hand.Label)
		}
	}
}

// executeBinding runs one plugin action for a matched pinch.
func (a *App) executeBinding(binding *store.Binding, handLabel string) {
	p, err := a.pluginMgr.Get(binding.PluginName)
	if err != nil {
		log.Printf("Plugin %q not available for %s: %v", binding.PluginName, binding.Pair, err)
		return
	}

	req := &plugin.Request{
		Action: binding.ActionName,
		Pair:   binding.Pair,
		Hand:   handLabel,
		Config: binding.Config,
	}

	if _, err := a.pluginExec.Execute(p, req); err != nil {
		log.Printf("Trigger %s -> %s/%s failed: %v", binding.Pair, binding.PluginName, binding.ActionName, err)
		return
	}

	log.Printf("Trigger fired: %s -> %s/%s", binding.Pair, binding.PluginName, binding.ActionName)
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Gate returns the frame admission gate.
func (a *App) Gate() *FrameGate {
	return a.gate
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// SessionID returns the identifier recorded with this run's reports.
func (a *App) SessionID() string {
	return a.sessionID
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
