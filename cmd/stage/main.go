// cmd/stage/main.go
package main

import (
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/stage/internal/app"
	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/logger"
)

var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("stage %s\n", version)
		os.Exit(0)
	}

	sessionPath := ""
	if len(args) > 0 {
		sessionPath = args[0]
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logCloser, err := logger.InitFromConfig(cfg.Logger)
	if err != nil {
		// Logging already fell back to stderr; don't fail startup.
		stlog.Printf("Warning: could not open log file: %v", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	logger.Infof("Starting stage workspace...")
	if sessionPath != "" {
		logger.Debugf("Session file: %s", sessionPath)
	} else {
		logger.Debugf("No session file, starting empty.")
	}

	// --- Headless stats mode ---
	if flags.Stats != nil && *flags.Stats {
		if sessionPath == "" {
			stlog.Fatalf("-stats requires a session file argument")
		}
		if err := app.RunStats(cfg, sessionPath, os.Stdout); err != nil {
			logger.Errorf("Stats run failed: %v", err)
			os.Exit(1)
		}
		return
	}

	// --- Create and Run App ---
	stageApp, err := app.NewApp(cfg, sessionPath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := stageApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("Stage finished.")
}
