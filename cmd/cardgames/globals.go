package main

import (
	"context"
	"io"
	rand "math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/cardgames/internal/config"
	"github.com/lox/cardgames/internal/display"
	"github.com/lox/cardgames/internal/randutil"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `kong:"default='cardgames.hcl',help='Path to HCL config file'"`
	LogLevel string `kong:"help='Log level (debug, info, warn, error); overrides the config file'"`
	NoColor  bool   `kong:"help='Disable colour output'"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

// env is everything a command needs once flags and config are resolved
type env struct {
	cfg     *config.Config
	logger  *log.Logger
	display *display.Display
	out     io.Writer
}

func (g *Globals) setup() (*env, error) {
	stdout, stderr := g.stdout, g.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []display.Option
	if g.NoColor {
		opts = append(opts, display.WithNoColor())
	}

	return &env{
		cfg:     cfg,
		logger:  setupLogger(stderr, cfg.Level()),
		display: display.New(stdout, opts...),
		out:     stdout,
	}, nil
}

// setupLogger configures charmbracelet/log for console output
func setupLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "cardgames",
	})
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// resolveSeed prefers the flag, then the config file. A zero seed falls back
// to the clock; the seed actually used is returned for logging.
func resolveSeed(flag *int64, configured int64) (*rand.Rand, int64) {
	seed := configured
	if flag != nil {
		seed = *flag
	}
	return randutil.NewOrRandom(seed)
}
