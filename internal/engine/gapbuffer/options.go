package gapbuffer

import "github.com/dshills/gapedit/internal/logging"

// DefaultGapCapacity is the size of the initial gap and of every growth step.
const DefaultGapCapacity = 128

// Option is a functional option for configuring a GapBuffer.
type Option func(*GapBuffer)

// WithGapCapacity sets the initial gap size and the growth increment.
// Non-positive values are ignored.
func WithGapCapacity(n int) Option {
	return func(g *GapBuffer) {
		if n > 0 {
			g.growBy = n
		}
	}
}

// WithLogger sets the logger used for construction and growth messages.
func WithLogger(l *logging.Logger) Option {
	return func(g *GapBuffer) {
		if l != nil {
			g.log = l.WithComponent("gapbuffer")
		}
	}
}
