// Package main is the entry point for the numentry field shell.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/numentry/internal/config"
	"github.com/dshills/numentry/internal/field"
	"github.com/dshills/numentry/internal/logging"
	"github.com/dshills/numentry/internal/replay"
	"github.com/dshills/numentry/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line settings.
type options struct {
	ConfigPath  string
	CatalogPath string
	UnitSet     string
	Value       string
	Replay      string
	Query       string
	Watch       bool
	LogLevel    string
	LogFile     string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	loader := config.NewLoader()
	profile, err := loadProfile(loader, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := newLogger(profile, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	fieldOpts, err := loader.Resolve(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	f, err := field.New(append(fieldOpts, field.WithLogger(log))...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid field settings: %v\n", err)
		return 1
	}

	if opts.Replay != "" {
		return runReplay(f, opts)
	}
	return runShell(f, loader, log, opts)
}

// runReplay feeds the script to the field and prints the transcript, or
// the result of the query against it.
func runReplay(f *field.Field, opts options) int {
	transcript, err := replay.RunScript(f, opts.Replay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Query != "" {
		result, err := replay.Query(transcript, opts.Query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(result)
		return 0
	}

	fmt.Print(replay.Pretty(transcript))
	return 0
}

func runShell(f *field.Field, loader *config.Loader, log *logging.Logger, opts options) int {
	screen, err := tui.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	app := tui.New(screen, f, tui.WithLogger(log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		app.Quit()
	}()

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(loader, opts.ConfigPath, func(p *config.Profile, _ []field.Option) {
			applyOverrides(p, opts)
			next, err := loader.Resolve(p)
			if err != nil {
				log.Warn("reload: %v", err)
				return
			}
			app.Reload(append(next, field.WithLogger(log)))
		}, config.WithWatchLogger(log))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch %s: %v\n", opts.ConfigPath, err)
			return 1
		}
		defer func() { _ = w.Close() }()

		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("watcher stopped: %v", err)
			}
		}()
	}

	if err := app.Run(); err != nil && !errors.Is(err, tui.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadProfile reads the configured profile, or the defaults, and applies
// the command line overrides.
func loadProfile(loader *config.Loader, opts options) (*config.Profile, error) {
	profile := config.Default()
	if opts.ConfigPath != "" {
		p, err := loader.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	if opts.Value != "" {
		var n config.Number
		if err := n.UnmarshalText([]byte(opts.Value)); err != nil {
			return nil, fmt.Errorf("invalid -value %q: %w", opts.Value, err)
		}
	}
	applyOverrides(profile, opts)
	return profile, nil
}

// applyOverrides copies command line settings over a loaded profile.
// Values were validated by loadProfile.
func applyOverrides(p *config.Profile, opts options) {
	if opts.CatalogPath != "" {
		path, err := filepath.Abs(opts.CatalogPath)
		if err != nil {
			path = opts.CatalogPath
		}
		p.Catalog.Path = path
	}
	if opts.UnitSet != "" {
		p.Field.Units = opts.UnitSet
	}
	if opts.Value != "" {
		_ = p.Field.Value.UnmarshalText([]byte(opts.Value))
	}
}

// newLogger builds the logger. The shell owns the terminal, so it only
// logs when a log file is given.
func newLogger(p *config.Profile, opts options) (*logging.Logger, func(), error) {
	level := p.LogLevel()
	if opts.LogLevel != "" {
		l, err := logging.ParseLevel(opts.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if opts.LogFile != "" {
		file, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closeFn = func() { _ = file.Close() }
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = out
	log := logging.New(cfg)
	if opts.LogFile == "" && opts.Replay == "" {
		log.Disable()
	}
	logging.SetDefault(log)
	return log, closeFn, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a TOML field profile")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to a TOML field profile (shorthand)")
	flag.StringVar(&opts.CatalogPath, "units", "", "Path to a YAML unit catalog")
	flag.StringVar(&opts.UnitSet, "set", "", "Unit set name (frequency, time, voltage, ...)")
	flag.StringVar(&opts.Value, "value", "", "Initial value")
	flag.StringVar(&opts.Replay, "replay", "", "Run a key script and print the transcript")
	flag.StringVar(&opts.Query, "query", "", "Print only this path of the replay transcript")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the profile when it changes")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "numentry - numeric entry field\n\n")
		fmt.Fprintf(os.Stderr, "Usage: numentry [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  numentry -set frequency -value 1E+6          Edit a frequency\n")
		fmt.Fprintf(os.Stderr, "  numentry -c field.toml -watch                Edit with a live profile\n")
		fmt.Fprintf(os.Stderr, "  numentry -replay '<SelectAll>12.5<CR><Up>'   Print a replay transcript\n")
		fmt.Fprintf(os.Stderr, "  numentry -replay '9<Up>' -query final.text   Print one transcript value\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("numentry %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", flag.Args())
		os.Exit(1)
	}

	return opts
}
