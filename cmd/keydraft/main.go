// Package main is the entry point for the keydraft editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keydraft/internal/app"
	"github.com/dshills/keydraft/internal/logging"
	"github.com/dshills/keydraft/internal/storage"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Open(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	if err := application.Run(ctx, screen); err != nil && !errors.Is(err, app.ErrQuit) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.Backend, "storage", "", "Storage backend (file, memory, redis)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open the document without allowing edits")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keydraft - shortcut-driven rich text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keydraft [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nShortcuts at the start of a block, followed by a space:\n")
		fmt.Fprintf(os.Stderr, "  #    header\n")
		fmt.Fprintf(os.Stderr, "  *    bold\n")
		fmt.Fprintf(os.Stderr, "  **   red\n")
		fmt.Fprintf(os.Stderr, "  ***  underline\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("keydraft %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			return opts, false
		}
	}
	switch opts.Backend {
	case "", storage.BackendFile, storage.BackendMemory, storage.BackendRedis:
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid storage backend %q\n", opts.Backend)
		return opts, false
	}
	return opts, true
}
