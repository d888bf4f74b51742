package app

import "time"

// Frame duration limits for the runtime speed keys.
const (
	FrameStep     = 5 * time.Millisecond
	MinFrame      = 10 * time.Millisecond
	MaxFrame      = 200 * time.Millisecond
	frameFallback = 50 * time.Millisecond
)

// Pacer holds the target frame duration.
type Pacer struct {
	frame time.Duration
}

// NewPacer returns a pacer targeting fps frames per second, in whole milliseconds.
func NewPacer(fps int) Pacer {
	if fps <= 0 {
		return Pacer{frame: frameFallback}
	}
	return Pacer{frame: clampFrame(time.Duration(1000/fps) * time.Millisecond)}
}

func clampFrame(d time.Duration) time.Duration {
	return max(MinFrame, min(MaxFrame, d))
}

// Frame returns the target frame duration.
func (p Pacer) Frame() time.Duration { return p.frame }

// FPS returns the effective frames per second.
func (p Pacer) FPS() int {
	return int(time.Second / p.frame)
}

// Faster shortens the frame by FrameStep, down to MinFrame.
func (p *Pacer) Faster() { p.frame = clampFrame(p.frame - FrameStep) }

// Slower lengthens the frame by FrameStep, up to MaxFrame.
func (p *Pacer) Slower() { p.frame = clampFrame(p.frame + FrameStep) }

// Remaining returns how long to sleep after a frame that took elapsed.
func (p Pacer) Remaining(elapsed time.Duration) time.Duration {
	return max(p.frame-elapsed, 0)
}
