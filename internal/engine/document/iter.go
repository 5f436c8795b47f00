package document

// Iterator walks a Document's bytes in ascending order.
//
// The length is re-read on every step, so inserts and deletes made during
// traversal change what is observed. An Iterator is single-pass: once Next
// returns false it keeps returning false, and a new traversal needs a new
// Iterator.
type Iterator struct {
	doc      *Document
	next     int
	offset   int
	current  byte
	revision uint64
	done     bool
}

// Next advances to the next byte.
// Returns true if there is a byte, false if iteration is complete.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if it.next >= it.doc.Len() {
		it.done = true
		return false
	}

	b, err := it.doc.Get(it.next)
	if err != nil {
		it.done = true
		return false
	}

	it.current = b
	it.offset = it.next
	it.next++
	return true
}

// Byte returns the current byte.
func (it *Iterator) Byte() byte {
	return it.current
}

// Offset returns the logical offset of the current byte.
func (it *Iterator) Offset() int {
	return it.offset
}

// Stale reports whether the document was mutated after the iterator was
// created.
func (it *Iterator) Stale() bool {
	return it.doc.Revision() != it.revision
}

// Done reports whether the iterator is exhausted.
func (it *Iterator) Done() bool {
	return it.done
}
