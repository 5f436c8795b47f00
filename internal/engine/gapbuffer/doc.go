// Package gapbuffer implements the byte storage engine of the editor: a
// single contiguous slice holding the live text plus one relocatable unused
// region, the gap.
//
// Edits happen at the gap. Before an insert or delete the gap is moved to the
// edit offset, shifting only the bytes between the old and new gap position,
// so a run of edits near the cursor costs O(1) each. When the gap is used up
// the slice grows by a fixed increment at its end.
//
// Layout for the text "hello" with the gap after "he":
//
//	logical:   h e | l l o
//	physical:  h e _ _ _ _ l l o
//	           ^   ^       ^
//	           0   gapOffset gapOffset+gapSize
//
// A logical index i maps to physical index i when i < gapOffset and to
// i + gapSize otherwise.
//
// Basic usage:
//
//	gb := gapbuffer.New("abc")
//	gb.Subscribe(func() { redraw() })
//	_ = gb.Insert(0, 'd')  // "dabc"
//	_ = gb.Delete(3)       // "dab"
//	b, _ := gb.Get(0)      // 'd'
//
// The buffer stores raw bytes; it has no notion of runes or lines.
//
// Thread Safety:
//
// A GapBuffer has a single owner and performs no locking. Observers run
// synchronously on the mutating goroutine before Insert or Delete returns.
package gapbuffer
