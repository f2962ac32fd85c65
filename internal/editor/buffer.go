// Package editor implements the text buffer behind the editor pane: content
// as runes, a cursor and an optional selection anchor. Offsets are rune
// offsets, which is also what the ingestion pipeline reports.
package editor

import "strings"

// Buffer is an editable text with a cursor and selection.
type Buffer struct {
	text   []rune
	cursor int
	anchor int // -1 without a selection
	col    int // preferred column for vertical moves, -1 when unset
}

// New creates a buffer with the cursor at the end of text.
func New(text string) *Buffer {
	b := &Buffer{anchor: -1, col: -1}
	b.SetText(text)
	return b
}

// Text returns the full content.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// SetText replaces the content, moves the cursor to the end and drops the
// selection.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.cursor = len(b.text)
	b.anchor = -1
	b.col = -1
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor, clamped to the content, and clears the selection.
func (b *Buffer) SetCursor(offset int) {
	b.cursor = clamp(offset, 0, len(b.text))
	b.anchor = -1
	b.col = -1
}

// Selection returns the selected range [start, end). Without a selection both
// equal the cursor.
func (b *Buffer) Selection() (start, end int) {
	if b.anchor < 0 {
		return b.cursor, b.cursor
	}
	return min(b.anchor, b.cursor), max(b.anchor, b.cursor)
}

// HasSelection reports whether a non-empty range is selected.
func (b *Buffer) HasSelection() bool {
	s, e := b.Selection()
	return s != e
}

// SelectAll selects the whole content.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
}

// Insert replaces the selection with s and places the cursor after it.
func (b *Buffer) Insert(s string) {
	start, end := b.Selection()
	ins := []rune(s)
	out := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	out = append(out, b.text[:start]...)
	out = append(out, ins...)
	out = append(out, b.text[end:]...)
	b.text = out
	b.cursor = start + len(ins)
	b.anchor = -1
	b.col = -1
}

// Backspace deletes the selection or the rune before the cursor.
func (b *Buffer) Backspace() {
	if b.HasSelection() {
		b.Insert("")
		return
	}
	if b.cursor == 0 {
		return
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	b.anchor = -1
	b.col = -1
}

// Delete deletes the selection or the rune under the cursor.
func (b *Buffer) Delete() {
	if b.HasSelection() {
		b.Insert("")
		return
	}
	if b.cursor >= len(b.text) {
		return
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	b.anchor = -1
	b.col = -1
}

// Move is a cursor motion.
type Move int

const (
	Left Move = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	DocStart
	DocEnd
)

// MoveCursor applies a motion. With extend the selection grows from the
// current anchor; otherwise it is dropped.
func (b *Buffer) MoveCursor(m Move, extend bool) {
	if extend && b.anchor < 0 {
		b.anchor = b.cursor
	}
	if !extend {
		if start, end := b.Selection(); start != end && (m == Left || m == Right) {
			b.anchor = -1
			b.col = -1
			if m == Left {
				b.cursor = start
			} else {
				b.cursor = end
			}
			return
		}
		b.anchor = -1
	}

	line, col := b.position(b.cursor)
	switch m {
	case Left:
		b.cursor = max(b.cursor-1, 0)
	case Right:
		b.cursor = min(b.cursor+1, len(b.text))
	case Up, Down:
		if b.col < 0 {
			b.col = col
		}
		target := line - 1
		if m == Down {
			target = line + 1
		}
		starts := b.lineStarts()
		if target < 0 {
			b.cursor = 0
		} else if target >= len(starts) {
			b.cursor = len(b.text)
		} else {
			b.cursor = min(starts[target]+b.col, b.lineEnd(starts, target))
		}
		return
	case LineStart:
		b.cursor = b.lineStarts()[line]
	case LineEnd:
		b.cursor = b.lineEnd(b.lineStarts(), line)
	case DocStart:
		b.cursor = 0
	case DocEnd:
		b.cursor = len(b.text)
	}
	b.col = -1
}

// Position returns the zero-based line and column of the cursor.
func (b *Buffer) Position() (line, col int) {
	return b.position(b.cursor)
}

func (b *Buffer) position(offset int) (line, col int) {
	for i := 0; i < offset && i < len(b.text); i++ {
		if b.text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func (b *Buffer) lineStarts() []int {
	starts := []int{0}
	for i, r := range b.text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (b *Buffer) lineEnd(starts []int, line int) int {
	if line+1 < len(starts) {
		return starts[line+1] - 1
	}
	return len(b.text)
}

// Lines splits the content into lines.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.text), "\n")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
