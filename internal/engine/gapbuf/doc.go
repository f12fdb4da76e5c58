// Package gapbuf provides the per-line character store used by documents.
//
// A Buffer keeps its runes in a single slice with one contiguous unused
// region, the gap, positioned at the most recent edit. Inserting or deleting
// at the gap is O(1); moving the gap costs time proportional to the distance
// moved, so runs of nearby edits (typing) stay cheap.
//
// Columns are rune indexes in [0, Len()]. The end-of-line column Len() is a
// valid insertion point.
//
// Basic usage:
//
//	b := gapbuf.New()
//	b.InsertText(0, "helo")
//	b.InsertChar(3, 'l')        // "hello"
//	tail := b.Split(2)          // b = "he", tail = "llo"
//	b.Merge(tail)               // b = "hello", tail is consumed
//
// A Buffer is not safe for concurrent use.
package gapbuf
