package gapbuf

import (
	"iter"
	"strings"
)

// minGrow is the initial capacity and the minimum growth step.
const minGrow = 10

// Buffer is a gap buffer holding the runes of one line.
//
// Logical content is data[:gapStart] followed by data[gapStart+gapSize:].
type Buffer struct {
	data     []rune
	gapStart int
	gapSize  int
}

// New creates an empty buffer with a small initial capacity.
func New() *Buffer {
	return &Buffer{
		data:    make([]rune, minGrow),
		gapSize: minGrow,
	}
}

// FromString creates a buffer holding s.
func FromString(s string) *Buffer {
	b := New()
	b.InsertText(0, s)
	return b
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data) - b.gapSize
}

// InsertChar inserts r at col. col must be in [0, Len()].
func (b *Buffer) InsertChar(col int, r rune) {
	b.moveGap(col)
	if b.gapSize == 0 {
		b.grow()
	}
	b.data[b.gapStart] = r
	b.gapStart++
	b.gapSize--
}

// InsertText inserts s at col. col must be in [0, Len()].
func (b *Buffer) InsertText(col int, s string) {
	b.moveGap(col)
	for _, r := range s {
		if b.gapSize == 0 {
			b.grow()
		}
		b.data[b.gapStart] = r
		b.gapStart++
		b.gapSize--
	}
}

// DeleteBefore removes the rune immediately before col.
// It is a no-op when col is 0; joining lines is the caller's business.
func (b *Buffer) DeleteBefore(col int) {
	if col == 0 {
		return
	}
	b.moveGap(col)
	b.gapStart--
	b.gapSize++
}

// Split truncates b to [0, col) and returns a new buffer owning [col, Len()).
func (b *Buffer) Split(col int) *Buffer {
	b.moveGap(col)

	suffix := b.data[b.gapStart+b.gapSize:]
	tail := &Buffer{
		data:    make([]rune, len(suffix)+minGrow),
		gapSize: minGrow,
	}
	tail.gapStart = 0
	copy(tail.data[minGrow:], suffix)

	// Everything after the gap now belongs to tail; fold it into the gap.
	b.gapSize += len(suffix)
	return tail
}

// Merge appends the full content of other to b. other must not be used
// afterwards.
func (b *Buffer) Merge(other *Buffer) {
	if other == nil {
		return
	}
	b.moveGap(b.Len())
	for _, r := range other.Chars() {
		if b.gapSize == 0 {
			b.grow()
		}
		b.data[b.gapStart] = r
		b.gapStart++
		b.gapSize--
	}
	other.data = nil
	other.gapStart = 0
	other.gapSize = 0
}

// String returns the logical content.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(b.Len())
	for _, r := range b.data[:b.gapStart] {
		sb.WriteRune(r)
	}
	for _, r := range b.data[b.gapStart+b.gapSize:] {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Chars returns an iterator over (column, rune) pairs in order.
// Each call produces a fresh sequence.
func (b *Buffer) Chars() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		col := 0
		for _, r := range b.data[:b.gapStart] {
			if !yield(col, r) {
				return
			}
			col++
		}
		for _, r := range b.data[b.gapStart+b.gapSize:] {
			if !yield(col, r) {
				return
			}
			col++
		}
	}
}

// moveGap relocates the gap so that it starts at col.
func (b *Buffer) moveGap(col int) {
	if col < 0 || col > b.Len() {
		panic("gapbuf: column out of range")
	}
	switch {
	case col == b.gapStart:
		return
	case col < b.gapStart:
		// Shift data[col:gapStart] to the far end of the gap.
		n := b.gapStart - col
		copy(b.data[b.gapStart+b.gapSize-n:b.gapStart+b.gapSize], b.data[col:b.gapStart])
	default:
		// Pull the runes after the gap down to its start.
		n := col - b.gapStart
		gapEnd := b.gapStart + b.gapSize
		copy(b.data[b.gapStart:b.gapStart+n], b.data[gapEnd:gapEnd+n])
	}
	b.gapStart = col
}

// grow adds at least max(len(b.data), minGrow) runes of capacity to the gap.
func (b *Buffer) grow() {
	oldCap := len(b.data)
	by := max(oldCap, minGrow)

	data := make([]rune, oldCap+by)
	copy(data, b.data[:b.gapStart])

	suffixStart := b.gapStart + b.gapSize
	copy(data[suffixStart+by:], b.data[suffixStart:])

	b.data = data
	b.gapSize += by
}
