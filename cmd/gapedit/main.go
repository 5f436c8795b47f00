// Package main is the entry point for the gapedit terminal editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gapedit/internal/config"
	"github.com/dshills/gapedit/internal/config/watcher"
	"github.com/dshills/gapedit/internal/engine/document"
	"github.com/dshills/gapedit/internal/logging"
	"github.com/dshills/gapedit/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	LogLevel   string
	Scripts    stringList
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	log.Info("gapedit %s starting", version)
	if cfg.Source != "" {
		log.Info("loaded config from %s", cfg.Source)
	}

	doc := document.New("", cfg.EngineOptions(log)...)

	scripts := append(append([]string(nil), cfg.Scripts.Paths...), opts.Scripts...)
	if len(scripts) > 0 {
		state, err := runScripts(doc, log, scripts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer state.Close()
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

	ed := newEditor(screen, doc, log)
	defer ed.Close()
	ed.onConfig = func(path string) {
		reloadConfig(path, opts.LogLevel, log)
	}

	if opts.ConfigPath != "" {
		w, err := watchConfig(opts.ConfigPath, screen, log)
		if err != nil {
			log.Warn("config reload disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			ev := &quitEvent{}
			ev.SetEventNow()
			_ = screen.PostEvent(ev)
		}
	}()

	ed.Run()
	log.Info("gapedit exiting")
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Var(&opts.Scripts, "script", "Lua script to run at startup (repeatable)")
	flag.Var(&opts.Scripts, "s", "Lua script to run at startup (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gapedit - a gap buffer text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gapedit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %sLOG_LEVEL, %sLOG_FILE, %sGAP_CAPACITY, %sSCRIPTS\n",
			config.EnvPrefix, config.EnvPrefix, config.EnvPrefix, config.EnvPrefix)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("gapedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}

// openLogger writes to logging.file when set. The terminal is owned by
// the screen, so without a file logs are discarded.
func openLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel()
	lc.Output = io.Discard

	if cfg.Logging.File == "" {
		return logging.New(lc), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc.Output = f
	return logging.New(lc), func() { _ = f.Close() }, nil
}

// runScripts binds doc into a new Lua state and runs each script in order.
func runScripts(doc *document.Document, log *logging.Logger, paths []string) (*lua.State, error) {
	state, err := lua.NewState(lua.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := state.Register(lua.NewDocumentModule(doc, log)); err != nil {
		_ = state.Close()
		return nil, err
	}

	var errs []error
	for _, p := range paths {
		if err := state.DoFile(p); err != nil {
			errs = append(errs, fmt.Errorf("script %s: %w", p, err))
			continue
		}
		log.Debug("ran script %s", p)
	}
	if err := errors.Join(errs...); err != nil {
		_ = state.Close()
		return nil, err
	}
	return state, nil
}

// watchConfig posts a configEvent to the screen whenever the file changes.
func watchConfig(path string, screen tcell.Screen, log *logging.Logger) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		ce := &configEvent{path: path}
		ce.SetEventNow()
		_ = screen.PostEvent(ce)
	})
	w.Start()
	return w, nil
}

// reloadConfig applies a changed config file. Only the log level takes
// effect immediately; a -log-level flag keeps precedence.
func reloadConfig(path, flagLevel string, log *logging.Logger) {
	cfg, err := config.Load(path)
	if err != nil {
		log.Warn("config reload failed: %v", err)
		return
	}
	if flagLevel != "" {
		return
	}
	log.SetLevel(cfg.LogLevel())
	log.Info("config reloaded, log level %s", cfg.LogLevel())
}
