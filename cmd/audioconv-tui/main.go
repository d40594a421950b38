package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/handiism/audioconv/internal/config"
	"github.com/handiism/audioconv/internal/logger"
	"github.com/handiism/audioconv/internal/tui"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "Path to config file")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; only a log file gets entries.
	logCfg := settings.ToLoggerConfig()
	logCfg.Console = io.Discard
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := tui.Run(settings, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
