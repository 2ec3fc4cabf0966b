package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/pthm-cable/hunt/config"
	"github.com/pthm-cable/hunt/game"
	"github.com/pthm-cable/hunt/renderer"
	"github.com/pthm-cable/hunt/telemetry"
	"github.com/pthm-cable/hunt/ui"
)

// defaultMaxTurns caps a headless run when -max-turns is not set.
const defaultMaxTurns = 10000

type options struct {
	configPath string
	seed       int64
	headless   bool
	maxTurns   int
	outputDir  string
	logFile    string
	logStats   bool
	noColor    bool
}

func main() {
	var opts options

	// CLI flags
	flag.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.BoolVar(&opts.headless, "headless", false, "Let the autopilot play without a terminal")
	flag.IntVar(&opts.maxTurns, "max-turns", 0, "Stop a headless run after N turns (0 = 10000)")
	flag.StringVar(&opts.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.StringVar(&opts.logFile, "log-file", "", "JSON log file (empty = stderr when headless, discarded otherwise)")
	flag.BoolVar(&opts.logStats, "log-stats", false, "Output stats via slog")
	flag.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colours")

	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "hunt:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := openLogger(opts.logFile, opts.headless)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	// Set up seed
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if err := output.Close(); err != nil {
			logger.Error("failed to close output", "error", err)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionOpts := game.SessionOptions{
		Rand:     rand.New(rand.NewSource(seed)),
		Logger:   logger,
		Output:   output,
		LogStats: opts.logStats,
	}

	if opts.headless {
		return runHeadless(ctx, cfg, sessionOpts, seed, opts.maxTurns)
	}
	return runInteractive(ctx, cfg, sessionOpts, !opts.noColor)
}

// openLogger builds the JSON logger. Stdout belongs to the game screen, so
// logs go to a file, to stderr when headless, or nowhere.
func openLogger(path string, headless bool) (*slog.Logger, func(), error) {
	if path == "" {
		w := io.Discard
		if headless {
			w = os.Stderr
		}
		return slog.New(slog.NewJSONHandler(w, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}

func runHeadless(ctx context.Context, cfg *config.Config, opts game.SessionOptions, seed int64, maxTurns int) error {
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	opts.Clock = game.NewStepClock(time.Now(), cfg.Hunger.DecayInterval).Now

	session := game.NewSession(cfg, opts)
	pilot := game.NewAutopilot(cfg, rand.New(rand.NewSource(seed+1)))

	opts.Logger.Info("starting headless game",
		"seed", seed,
		"max_turns", maxTurns,
		"session", session.ID(),
	)

	turns := game.PlayHeadless(ctx, session, pilot, maxTurns)
	stats, err := session.Close()
	state, reason := session.State()
	opts.Logger.Info("headless game finished",
		"turns", turns,
		"state", state.String(),
		"reason", reason,
		"level", stats.Level,
	)
	return err
}

func runInteractive(ctx context.Context, cfg *config.Config, opts game.SessionOptions, color bool) error {
	stdin := int(os.Stdin.Fd())
	stdout := int(os.Stdout.Fd())
	if !term.IsTerminal(stdin) {
		return errors.New("stdin is not a terminal (use -headless)")
	}

	oldState, err := term.MakeRaw(stdin)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(stdin, oldState)

	cols, rows, err := term.GetSize(stdout)
	if err != nil {
		opts.Logger.Warn("terminal size unknown", "error", err)
	}
	screen := renderer.NewTerminalRenderer(os.Stdout, cols, rows, color)
	if err := screen.Begin(); err != nil {
		return fmt.Errorf("preparing screen: %w", err)
	}
	defer screen.End()

	opts.Render = func(snap game.Snapshot) {
		if w, h, err := term.GetSize(stdout); err == nil {
			screen.Resize(w, h)
		}
		if err := screen.Draw(snap, ui.Lines(snap)); err != nil {
			opts.Logger.Error("failed to draw", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan game.Command)
	go func() {
		if err := ui.ReadCommands(ctx, os.Stdin, commands); err != nil && !errors.Is(err, context.Canceled) {
			opts.Logger.Error("input stopped", "error", err)
		}
	}()

	session := game.NewSession(cfg, opts)
	runErr := session.Run(ctx, commands)
	if _, err := session.Close(); err != nil {
		opts.Logger.Error("failed to close session", "error", err)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
