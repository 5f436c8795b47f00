package document

import (
	"github.com/dshills/gapedit/internal/engine/gapbuffer"
	"github.com/dshills/gapedit/internal/engine/notify"
)

// Document is the editable text of one editor view.
type Document struct {
	buffer *gapbuffer.GapBuffer
}

// New creates a document holding initial text.
func New(initial string, opts ...gapbuffer.Option) *Document {
	return &Document{buffer: gapbuffer.New(initial, opts...)}
}

// Insert writes b at offset.
func (d *Document) Insert(offset int, b byte) error {
	return d.buffer.Insert(offset, b)
}

// Delete removes the byte at offset.
func (d *Document) Delete(offset int) error {
	return d.buffer.Delete(offset)
}

// Subscribe registers fn to run after every successful mutation.
func (d *Document) Subscribe(fn func()) *notify.Subscription {
	return d.buffer.Subscribe(fn)
}

// Unsubscribe removes a registration by handle.
func (d *Document) Unsubscribe(id notify.ID) bool {
	return d.buffer.Unsubscribe(id)
}

// Len returns the number of visible bytes.
func (d *Document) Len() int {
	return d.buffer.Len()
}

// Get returns the byte at index.
func (d *Document) Get(index int) (byte, error) {
	return d.buffer.Get(index)
}

// Revision returns a counter that increases with every mutation.
func (d *Document) Revision() uint64 {
	return d.buffer.Revision()
}

// Text returns the full content as a string.
func (d *Document) Text() string {
	return d.buffer.String()
}

// ForEach calls fn for every byte in ascending order.
func (d *Document) ForEach(fn func(offset int, b byte)) {
	it := d.Iter()
	for it.Next() {
		fn(it.Offset(), it.Byte())
	}
}

// Iter returns a live forward cursor positioned before the first byte.
func (d *Document) Iter() *Iterator {
	return &Iterator{
		doc:      d,
		revision: d.Revision(),
	}
}

// Snapshot returns an immutable copy of the current content.
func (d *Document) Snapshot() *Snapshot {
	return &Snapshot{
		data:     d.buffer.Bytes(),
		revision: d.Revision(),
	}
}
