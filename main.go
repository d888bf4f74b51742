package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	goerrors "github.com/go-errors/errors"

	"runefall/internal/app"
	"runefall/internal/config"
	"runefall/internal/rain"
	"runefall/internal/term"
)

// === MAIN ===

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.NewParser(stdout).Parse(args)
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, config.ErrListed) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	logger, closeLog, err := setupLogging(cfg.Debug, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Frames > 0 {
		err = runHeadless(ctx, cfg, stdout, logger)
	} else {
		err = runInteractive(ctx, cfg, stdin, stdout, logger)
	}
	if err != nil {
		logger.Error("exiting", "error", err)
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

// === LOGGING ===

// setupLogging writes debug logs to path when enabled and discards them
// otherwise. The returned func closes the log file.
func setupLogging(debug bool, path string) (*slog.Logger, func(), error) {
	if !debug {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	logger.Info("logging started", "pid", os.Getpid())
	return logger, func() { f.Close() }, nil
}

// === RUN MODES ===

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

func engineConfig(cfg *config.Config, logger *slog.Logger) rain.Config {
	ec := cfg.Engine()
	ec.Logger = logger
	return ec
}

// runInteractive owns the terminal for the whole session and restores it
// on every way out, including a panic in the loop.
func runInteractive(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) (err error) {
	in, inOK := stdin.(*os.File)
	out, outOK := stdout.(*os.File)
	if !inOK || !outOK || !term.IsTerminal(in) || !term.IsTerminal(out) {
		return errors.New("interactive mode needs a terminal; use --frames N for headless output")
	}

	screen, err := term.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()
	defer func() {
		if r := recover(); r != nil {
			screen.Close()
			err = fmt.Errorf("panic: %s", goerrors.Wrap(r, 2).ErrorStack())
		}
	}()

	engine, err := rain.New(engineConfig(cfg, logger), screen, newRand())
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	return app.Run(ctx, engine, screen, screen, app.Options{FPS: cfg.FPS, Logger: logger})
}

// runHeadless renders cfg.Frames frames as ANSI text to stdout.
func runHeadless(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) (err error) {
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = term.DetectSize(stdout)
	}
	profile := term.ParseProfile(cfg.ColorProfile, stdout)
	logger.Debug("headless", "width", width, "height", height, "profile", profile, "frames", cfg.Frames)

	display := term.NewANSI(stdout, profile, width, height)
	display.Begin()
	defer func() {
		if endErr := display.End(); err == nil && endErr != nil {
			err = fmt.Errorf("flush output: %w", endErr)
		}
	}()

	engine, err := rain.New(engineConfig(cfg, logger), display, newRand())
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	return app.Run(ctx, engine, display, app.NoInput{}, app.Options{
		FPS:       cfg.FPS,
		MaxFrames: cfg.Frames,
		Logger:    logger,
	})
}
