package document

import (
	"github.com/dshills/gapedit/internal/engine/gapbuffer"
	"github.com/dshills/gapedit/internal/engine/notify"
)

// Editable is the capability surface shared by every storage
// implementation. Offsets are logical byte positions.
type Editable interface {
	// Insert writes b at offset, 0 <= offset <= Len().
	Insert(offset int, b byte) error

	// Delete removes the byte at offset, 0 <= offset < Len().
	// It is a no-op on an empty buffer.
	Delete(offset int) error

	// Subscribe registers fn to run after every successful mutation.
	Subscribe(fn func()) *notify.Subscription

	// Unsubscribe removes a registration by handle.
	Unsubscribe(id notify.ID) bool

	// Len returns the number of visible bytes.
	Len() int

	// Get returns the byte at index, 0 <= index < Len().
	Get(index int) (byte, error)
}

var (
	_ Editable = (*gapbuffer.GapBuffer)(nil)
	_ Editable = (*Document)(nil)
)
