package gapbuffer

import (
	"strings"
	"testing"
)

func BenchmarkInsertAtCursor(b *testing.B) {
	g := New(strings.Repeat("x", 64*1024))
	cursor := g.Len() / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = g.Insert(cursor, 'a')
		cursor++
	}
}

func BenchmarkInsertAppend(b *testing.B) {
	g := New("")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = g.Insert(g.Len(), 'a')
	}
}

func BenchmarkInsertScattered(b *testing.B) {
	g := New(strings.Repeat("x", 64*1024))
	n := g.Len()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		// Alternate between the two ends to force long relocations.
		off := 0
		if i%2 == 1 {
			off = n
		}
		_ = g.Insert(off, 'a')
		n++
	}
}

func BenchmarkTypeAndBackspace(b *testing.B) {
	g := New(strings.Repeat("x", 64*1024))
	cursor := 1000
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = g.Insert(cursor, 'a')
		_ = g.Delete(cursor)
	}
}

func BenchmarkGet(b *testing.B) {
	g := New(strings.Repeat("x", 64*1024))
	_ = g.Insert(g.Len()/2, 'y')
	n := g.Len()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = g.Get(i % n)
	}
}
