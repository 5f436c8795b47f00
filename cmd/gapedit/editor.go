package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/gapedit/internal/engine/document"
	"github.com/dshills/gapedit/internal/engine/notify"
	"github.com/dshills/gapedit/internal/logging"
)

const tabWidth = 8

// configEvent is posted to the screen when the config file changes.
type configEvent struct {
	tcell.EventTime
	path string
}

// quitEvent is posted to the screen to end the event loop.
type quitEvent struct {
	tcell.EventTime
}

// editor draws a document on a tcell screen and turns key presses into
// document edits. It must be used from a single goroutine.
type editor struct {
	screen tcell.Screen
	doc    *document.Document
	log    *logging.Logger
	sub    *notify.Subscription

	cursor int // byte offset, always on a rune boundary
	top    int // first visible row
	dirty  bool

	onConfig func(path string)
}

func newEditor(screen tcell.Screen, doc *document.Document, log *logging.Logger) *editor {
	e := &editor{
		screen: screen,
		doc:    doc,
		log:    log.WithComponent("editor"),
		dirty:  true,
	}
	e.sub = doc.Subscribe(e.changed)
	return e
}

// changed observes the document; the next loop iteration redraws.
func (e *editor) changed() {
	e.dirty = true
	if e.cursor > e.doc.Len() {
		e.cursor = e.doc.Len()
	}
}

// Close stops observing the document.
func (e *editor) Close() {
	e.sub.Unsubscribe()
}

// Run processes screen events until the user quits or the screen is finalized.
func (e *editor) Run() {
	for {
		if e.dirty {
			e.draw()
		}

		ev := e.screen.PollEvent()
		if ev == nil {
			return
		}
		if e.handleEvent(ev) {
			return
		}
	}
}

// handleEvent applies one event and reports whether the loop should stop.
func (e *editor) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
		e.dirty = true
	case *tcell.EventKey:
		return e.handleKey(ev)
	case *configEvent:
		if e.onConfig != nil {
			e.onConfig(ev.path)
		}
	case *quitEvent:
		return true
	}
	return false
}

func (e *editor) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		e.insert([]byte{'\n'})
	case tcell.KeyTab:
		e.insert([]byte{'\t'})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.backspace()
	case tcell.KeyLeft:
		e.moveLeft()
	case tcell.KeyRight:
		e.moveRight()
	case tcell.KeyRune:
		e.insert(utf8.AppendRune(nil, ev.Rune()))
	}
	return false
}

func (e *editor) insert(p []byte) {
	for _, b := range p {
		if err := e.doc.Insert(e.cursor, b); err != nil {
			e.log.Error("insert at %d: %v", e.cursor, err)
			return
		}
		e.cursor++
	}
}

// backspace deletes the rune before the cursor.
func (e *editor) backspace() {
	start := e.prevBoundary(e.cursor)
	for e.cursor > start {
		// Move first: the delete notifies changed, which clamps the cursor.
		e.cursor--
		if err := e.doc.Delete(e.cursor); err != nil {
			e.log.Error("delete at %d: %v", e.cursor, err)
			return
		}
	}
}

func (e *editor) moveLeft() {
	if e.cursor > 0 {
		e.cursor = e.prevBoundary(e.cursor)
		e.dirty = true
	}
}

func (e *editor) moveRight() {
	n := e.doc.Len()
	if e.cursor >= n {
		return
	}
	e.cursor++
	for e.cursor < n && isContinuation(e.byteAt(e.cursor)) {
		e.cursor++
	}
	e.dirty = true
}

// prevBoundary returns the start of the rune ending at offset.
func (e *editor) prevBoundary(offset int) int {
	if offset <= 0 {
		return 0
	}
	offset--
	for offset > 0 && isContinuation(e.byteAt(offset)) {
		offset--
	}
	return offset
}

func (e *editor) byteAt(offset int) byte {
	b, err := e.doc.Get(offset)
	if err != nil {
		return 0
	}
	return b
}

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// draw renders the document, wrapping long lines, with a status line
// on the last row.
func (e *editor) draw() {
	e.dirty = false
	e.screen.Clear()

	width, height := e.screen.Size()
	textRows := height - 1
	if width <= 0 || textRows <= 0 {
		e.screen.Show()
		return
	}

	cells := e.layout(width)

	// Keep the cursor row on screen.
	if cells.cursorY < e.top {
		e.top = cells.cursorY
	} else if cells.cursorY >= e.top+textRows {
		e.top = cells.cursorY - textRows + 1
	}

	style := tcell.StyleDefault
	for _, c := range cells.runes {
		y := c.y - e.top
		if y < 0 || y >= textRows {
			continue
		}
		e.screen.SetContent(c.x, y, c.r, nil, style)
	}

	e.screen.ShowCursor(cells.cursorX, cells.cursorY-e.top)
	e.drawStatus(width, height-1)
	e.screen.Show()
}

type placedRune struct {
	x, y int
	r    rune
}

type layout struct {
	runes            []placedRune
	cursorX, cursorY int
}

// layout walks the document and assigns screen cells to its runes.
func (e *editor) layout(width int) layout {
	var out layout
	x, y := 0, 0
	cursorSet := false

	var pending []byte
	start := 0

	it := e.doc.Iter()
	for it.Next() {
		if len(pending) == 0 {
			start = it.Offset()
		}
		pending = append(pending, it.Byte())
		if !utf8.FullRune(pending) {
			continue
		}
		r, _ := utf8.DecodeRune(pending)
		pending = pending[:0]

		if start == e.cursor {
			out.cursorX, out.cursorY = x, y
			cursorSet = true
		}

		switch r {
		case '\n':
			x, y = 0, y+1
			continue
		case '\t':
			x += tabWidth - x%tabWidth
			if x >= width {
				x, y = 0, y+1
			}
			continue
		}

		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
			r = utf8.RuneError
		}
		if x+w > width {
			x, y = 0, y+1
		}
		if start == e.cursor {
			out.cursorX, out.cursorY = x, y
		}
		out.runes = append(out.runes, placedRune{x: x, y: y, r: r})
		x += w
	}

	// A truncated sequence at the end of the text draws as one bad rune.
	if len(pending) > 0 {
		if x+1 > width {
			x, y = 0, y+1
		}
		if start == e.cursor {
			out.cursorX, out.cursorY = x, y
			cursorSet = true
		}
		out.runes = append(out.runes, placedRune{x: x, y: y, r: utf8.RuneError})
		x++
	}

	if !cursorSet {
		if x >= width {
			x, y = 0, y+1
		}
		out.cursorX, out.cursorY = x, y
	}
	return out
}

func (e *editor) drawStatus(width, y int) {
	style := tcell.StyleDefault.Reverse(true)
	status := fmt.Sprintf(" %d bytes  offset %d  rev %d ", e.doc.Len(), e.cursor, e.doc.Revision())

	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		e.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width; x++ {
		e.screen.SetContent(x, y, ' ', nil, style)
	}
}
