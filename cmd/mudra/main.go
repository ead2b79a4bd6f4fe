package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

type config struct {
	Addr        string        `env:"MUDRA_ADDR" envDefault:":8080"`
	CameraID    int           `env:"MUDRA_CAMERA_ID" envDefault:"0"`
	Stride      int           `env:"MUDRA_STRIDE" envDefault:"4"`
	MinInterval time.Duration `env:"MUDRA_MIN_INTERVAL" envDefault:"150ms"`
	DataDir     string        `env:"MUDRA_DATA_DIR"`
	PluginDir   string        `env:"MUDRA_PLUGIN_DIR"`
	Headless    bool          `env:"MUDRA_HEADLESS" envDefault:"false"`
}

func main() {
	fmt.Println("Mudra - Pinch Gesture Detection")

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		cfg.DataDir = filepath.Join(homeDir, ".mudra")
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if cfg.PluginDir == "" {
		cfg.PluginDir = filepath.Join(cfg.DataDir, "plugins")
	}

	st, err := store.New(filepath.Join(cfg.DataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:       st,
		PluginDir:   cfg.PluginDir,
		CameraID:    cfg.CameraID,
		Stride:      cfg.Stride,
		MinInterval: cfg.MinInterval,
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	// Live report feed for websocket clients.
	hub := server.NewReportHub()
	a.AddPublisher(hub)

	webDir := findWebDir(cfg.DataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Hub:       hub,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Publishers must be registered before the pipeline starts.
	var t *tray.Tray
	if !cfg.Headless {
		t = tray.New()
		a.AddPublisher(t)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	a.SetEnabled(true)

	if cfg.Headless {
		log.Println("Running headless, press Ctrl+C to quit")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		a.Stop()
		return
	}

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if enabled {
			log.Println("Detection enabled")
		} else {
			log.Println("Detection disabled")
		}
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + cfg.Addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Blocks until quit is selected from the menu.
	t.Run()
}

// findWebDir searches for the web directory in common locations.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the settings page in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
