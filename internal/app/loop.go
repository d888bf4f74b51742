package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"runefall/internal/rain"
)

// Options tune the loop.
type Options struct {
	FPS       int          // Initial target frame rate
	MaxFrames int          // Stop after this many frames; 0 runs until quit
	Logger    *slog.Logger // nil discards
}

type loop struct {
	engine  *rain.Engine
	display Display
	input   Input
	pacer   Pacer
	log     *slog.Logger
}

// Run drives engine until a quit key, ctx cancellation or MaxFrames. Each
// iteration drains pending input, ticks, renders and sleeps out the rest of
// the frame. The caller owns terminal setup and restoration.
func Run(ctx context.Context, engine *rain.Engine, display Display, input Input, opts Options) error {
	l := &loop{
		engine:  engine,
		display: display,
		input:   input,
		pacer:   NewPacer(opts.FPS),
		log:     opts.Logger,
	}
	if l.log == nil {
		l.log = slog.New(slog.DiscardHandler)
	}
	engine.SetFPS(l.pacer.FPS())
	if engine.StatusVisible() {
		engine.PokeStatus()
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	l.log.Info("loop started", "fps", l.pacer.FPS(), "max_frames", opts.MaxFrames)
	for frame := 0; opts.MaxFrames == 0 || frame < opts.MaxFrames; frame++ {
		start := time.Now()
		if ctx.Err() != nil {
			l.log.Info("loop cancelled", "frames", frame, "cause", context.Cause(ctx))
			return nil
		}

		if l.processEvents() == actionExit {
			l.log.Info("quit requested", "frames", frame)
			return nil
		}

		engine.Tick()
		if err := engine.Render(display); err != nil {
			return fmt.Errorf("render frame %d: %w", frame, err)
		}

		timer.Reset(l.pacer.Remaining(time.Since(start)))
		select {
		case <-ctx.Done():
			l.log.Info("loop cancelled", "frames", frame+1, "cause", context.Cause(ctx))
			return nil
		case <-timer.C:
		}
	}
	l.log.Info("frame limit reached", "frames", opts.MaxFrames)
	return nil
}

// processEvents drains every queued event without blocking.
func (l *loop) processEvents() action {
	for {
		ev, ok := l.input.Poll()
		if !ok {
			return actionNone
		}
		if l.handleEvent(ev) == actionExit {
			return actionExit
		}
	}
}
