package document

import "fmt"

// Snapshot is a read-only copy of a Document at one revision.
// It is safe for concurrent access and will not change even if the
// document is modified.
type Snapshot struct {
	data     []byte
	revision uint64
}

// Len returns the number of bytes in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.data)
}

// Get returns the byte at index.
func (s *Snapshot) Get(index int) (byte, error) {
	if index < 0 || index >= len(s.data) {
		return 0, fmt.Errorf("%w: snapshot get at %d, length %d", ErrIndexOutOfBounds, index, len(s.data))
	}
	return s.data[index], nil
}

// Text returns the snapshot content as a string.
func (s *Snapshot) Text() string {
	return string(s.data)
}

// Revision returns the document revision the snapshot was taken at.
func (s *Snapshot) Revision() uint64 {
	return s.revision
}

// Bytes returns an iterator over all bytes in the snapshot.
func (s *Snapshot) Bytes() *SnapshotIterator {
	return &SnapshotIterator{data: s.data, idx: -1}
}

// SnapshotIterator iterates over the bytes of a Snapshot.
type SnapshotIterator struct {
	data []byte
	idx  int
}

// Next advances to the next byte.
// Returns true if there is a byte, false if iteration is complete.
func (it *SnapshotIterator) Next() bool {
	if it.idx >= len(it.data) {
		return false
	}
	it.idx++
	return it.idx < len(it.data)
}

// Byte returns the current byte.
func (it *SnapshotIterator) Byte() byte {
	if it.idx >= 0 && it.idx < len(it.data) {
		return it.data[it.idx]
	}
	return 0
}

// Offset returns the offset of the current byte.
func (it *SnapshotIterator) Offset() int {
	return it.idx
}
