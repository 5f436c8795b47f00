// Package document provides the Document facade over the gap buffer storage
// engine and the Editable capability that front ends program against.
//
// A Document owns exactly one engine and forwards every Editable call to it
// unchanged. On top of that it offers two ways to read the content in order:
//
//   - Iter returns a live forward cursor. Each step re-reads the current
//     length, so edits made during traversal are observed. Stale reports
//     whether the document changed since the cursor was created, letting a
//     renderer restart instead of drawing a torn frame.
//   - Snapshot copies the content once. The copy never changes and may be
//     read from any goroutine while the document keeps being edited.
//
// Basic usage:
//
//	doc := document.New("abc")
//	sub := doc.Subscribe(func() { redraw(doc) })
//	defer sub.Unsubscribe()
//
//	_ = doc.Insert(0, 'd') // "dabc"
//
//	it := doc.Iter()
//	for it.Next() {
//	    draw(it.Offset(), it.Byte())
//	}
package document
