package main

import (
	"flag"
	"log"
	"runtime"

	"globe/internal/logger"
	"globe/pkg/config"
	"globe/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this path and exit")
	logLevel := flag.String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	appLogger := logger.NewLogger(cfg.Log.Level)
	if cfg.Log.File != "" {
		fileLogger, err := logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			appLogger.Warnf("Logging to console only: %v", err)
		} else {
			appLogger = fileLogger
		}
	}
	defer appLogger.Close()

	if cfgErr != nil {
		appLogger.Warnf("Using default configuration: %v", cfgErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *writeConfig != "" {
		if err := config.SaveConfig(cfg, *writeConfig); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		appLogger.Infof("Configuration written to %s", *writeConfig)
		return
	}

	appLogger.Info("Starting globe viewer...")

	viewer, err := engine.NewEngine(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	appLogger.Info("Engine initialized, starting render loop...")
	viewer.Run()
}
