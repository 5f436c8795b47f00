package gapbuffer

import (
	"fmt"

	"github.com/dshills/gapedit/internal/engine/notify"
	"github.com/dshills/gapedit/internal/logging"
)

// GapBuffer is a byte buffer with a movable gap at the edit point.
type GapBuffer struct {
	buf       []byte
	gapOffset int
	gapSize   int
	growBy    int
	revision  uint64
	observers *notify.Registry
	log       *logging.Logger
}

// New creates a buffer holding initial. The gap starts at offset 0 and is
// DefaultGapCapacity bytes unless WithGapCapacity says otherwise.
func New(initial string, opts ...Option) *GapBuffer {
	g := &GapBuffer{
		growBy:    DefaultGapCapacity,
		observers: notify.New(),
		log:       logging.Null(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.buf = make([]byte, len(initial)+g.growBy)
	g.gapSize = g.growBy
	copy(g.buf[g.gapSize:], initial)

	g.log.Debug("created with %d bytes of text, gap %d", len(initial), g.gapSize)
	return g
}

// Len returns the number of visible bytes.
func (g *GapBuffer) Len() int {
	return len(g.buf) - g.gapSize
}

// Get returns the byte at logical index.
func (g *GapBuffer) Get(index int) (byte, error) {
	if index < 0 || index >= g.Len() {
		return 0, fmt.Errorf("%w: get at %d, length %d", ErrIndexOutOfBounds, index, g.Len())
	}
	return g.buf[g.physical(index)], nil
}

// Insert writes b at offset, shifting later bytes right by one.
// Valid offsets are 0 through Len() inclusive.
func (g *GapBuffer) Insert(offset int, b byte) error {
	if offset < 0 || offset > g.Len() {
		return fmt.Errorf("%w: insert at %d, length %d", ErrIndexOutOfBounds, offset, g.Len())
	}

	g.confirmGap(offset)
	g.buf[g.gapOffset] = b
	g.gapOffset++
	g.gapSize--

	g.revision++
	g.observers.Notify()
	return nil
}

// Delete removes the byte at offset. Deleting from an empty buffer is a
// no-op and notifies nobody.
func (g *GapBuffer) Delete(offset int) error {
	n := g.Len()
	if n == 0 {
		return nil
	}
	if offset < 0 || offset >= n {
		return fmt.Errorf("%w: delete at %d, length %d", ErrIndexOutOfBounds, offset, n)
	}

	// Park the gap right after the victim, then swallow it.
	g.confirmGap(offset + 1)
	g.gapOffset--
	g.gapSize++

	g.revision++
	g.observers.Notify()
	return nil
}

// Subscribe registers fn to be called after every successful mutation.
func (g *GapBuffer) Subscribe(fn func()) *notify.Subscription {
	return g.observers.Subscribe(fn)
}

// Unsubscribe removes a callback registered with Subscribe.
func (g *GapBuffer) Unsubscribe(id notify.ID) bool {
	return g.observers.Unsubscribe(id)
}

// Revision returns a counter that increases with every mutation.
func (g *GapBuffer) Revision() uint64 {
	return g.revision
}

// Bytes returns a copy of the visible content.
func (g *GapBuffer) Bytes() []byte {
	out := make([]byte, 0, g.Len())
	out = append(out, g.buf[:g.gapOffset]...)
	out = append(out, g.buf[g.gapOffset+g.gapSize:]...)
	return out
}

// String returns the visible content as a string.
func (g *GapBuffer) String() string {
	return string(g.Bytes())
}

// physical maps a logical index to its position in buf.
func (g *GapBuffer) physical(i int) int {
	if i < g.gapOffset {
		return i
	}
	return i + g.gapSize
}

// confirmGap moves the gap so that it starts at newGapOffset, growing the
// buffer first if the gap is exhausted.
func (g *GapBuffer) confirmGap(newGapOffset int) {
	if g.gapSize == 0 {
		g.grow()
	}

	switch {
	case newGapOffset < g.gapOffset:
		// Bytes between the new and old gap start move right past the gap.
		n := g.gapOffset - newGapOffset
		g.move(newGapOffset, newGapOffset+g.gapSize, n)
	case newGapOffset > g.gapOffset:
		// Bytes just after the gap move left into it.
		n := newGapOffset - g.gapOffset
		g.move(g.gapOffset+g.gapSize, g.gapOffset, n)
	}
	g.gapOffset = newGapOffset
}

// move copies n bytes from src to dst within buf. The ranges may overlap;
// the built-in copy has memmove semantics.
func (g *GapBuffer) move(src, dst, n int) {
	if n == 0 {
		return
	}
	copy(g.buf[dst:dst+n], g.buf[src:src+n])
}

// grow appends a fresh gap of growBy bytes at the end of buf. It is only
// called with an empty gap, when every physical index is also a logical one,
// so placing the gap at the end does not disturb the content.
func (g *GapBuffer) grow() {
	g.gapOffset = len(g.buf)
	g.buf = append(g.buf, make([]byte, g.growBy)...)
	g.gapSize = g.growBy

	g.log.Debug("grew buffer to %d bytes", len(g.buf))
}
