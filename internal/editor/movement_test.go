package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisualRows(t *testing.T) {
	tests := []struct {
		n, width int
		want     int
	}{
		{0, 4, 1},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{8, 4, 2},
		{9, 4, 3},
		{3, 0, 3},
		{3, -2, 3},
	}

	for _, tt := range tests {
		if got := VisualRows(tt.n, tt.width); got != tt.want {
			t.Errorf("VisualRows(%d, %d) = %d, want %d", tt.n, tt.width, got, tt.want)
		}
	}
}

func TestMoveHorizontalWraps(t *testing.T) {
	e, _ := newEditor(t, "ab", "cd")

	e.SetCursor(pos(0, 2))
	e.Move(1, 0, wide)
	assert.Equal(t, pos(1, 0), e.Cursor(), "right at line end goes to next line")

	e.Move(-1, 0, wide)
	assert.Equal(t, pos(0, 2), e.Cursor(), "left at column 0 goes to previous line end")
	assert.Equal(t, 2, e.PreferredColumn())

	e.SetCursor(pos(0, 0))
	e.Move(-1, 0, wide)
	assert.Equal(t, pos(0, 0), e.Cursor(), "clamped at document start")

	e.SetCursor(pos(1, 2))
	e.Move(1, 0, wide)
	assert.Equal(t, pos(1, 2), e.Cursor(), "clamped at document end")
}

func TestMoveUnitSteps(t *testing.T) {
	e, _ := newEditor(t, "abcdef", "x", "y")

	e.Move(5, 0, wide)
	assert.Equal(t, pos(0, 1), e.Cursor())

	e.Move(0, 7, wide)
	assert.Equal(t, pos(1, 1), e.Cursor())

	e.Move(-3, -2, wide)
	assert.Equal(t, pos(0, 0), e.Cursor(), "horizontal step applies before vertical")
}

func TestMovePreferredColumn(t *testing.T) {
	e, _ := newEditor(t, "abcdef", "ab", "abcdef")
	e.SetCursor(pos(0, 5))

	e.Move(0, 1, wide)
	assert.Equal(t, pos(1, 2), e.Cursor())
	assert.Equal(t, 5, e.PreferredColumn(), "vertical moves keep the preferred column")

	e.Move(0, 1, wide)
	assert.Equal(t, pos(2, 5), e.Cursor())

	e.Move(0, 1, wide)
	assert.Equal(t, pos(2, 5), e.Cursor(), "clamped at last line")

	e.Move(-1, 0, wide)
	e.Move(0, -1, wide)
	assert.Equal(t, pos(1, 2), e.Cursor())
	assert.Equal(t, 4, e.PreferredColumn())
}

func TestMoveWrappedSegments(t *testing.T) {
	// At width 4 the middle line wraps as "abcd" "efgh" "ij".
	e, _ := newEditor(t, "xy", "abcdefghij", "z")
	e.SetCursor(pos(1, 6))

	steps := []struct {
		dy      int
		want    [2]int
		wantScr [2]int
	}{
		{-1, [2]int{1, 2}, [2]int{1, 2}},
		{-1, [2]int{0, 2}, [2]int{0, 2}},
		{1, [2]int{1, 6}, [2]int{2, 2}},
		{1, [2]int{1, 10}, [2]int{3, 2}},
		{1, [2]int{2, 1}, [2]int{4, 1}},
		{-1, [2]int{1, 6}, [2]int{2, 2}},
	}

	for i, s := range steps {
		e.Move(0, s.dy, 4)
		assert.Equal(t, pos(s.want[0], s.want[1]), e.Cursor(), "step %d", i)

		row, col := e.LogicalToScreen(4)
		assert.Equal(t, s.wantScr, [2]int{row, col}, "step %d screen", i)
	}
}

func TestMoveExactlyFilledLine(t *testing.T) {
	e, _ := newEditor(t, "abcdefgh")
	e.SetCursor(pos(0, 8))

	row, col := e.LogicalToScreen(4)
	assert.Equal(t, [2]int{1, 4}, [2]int{row, col}, "line end stays on the last wrapped row")

	e.Move(0, -1, 4)
	assert.Equal(t, pos(0, 3), e.Cursor())

	e.Move(0, 1, 4)
	assert.Equal(t, pos(0, 7), e.Cursor())
}

func TestMoveEmptyLines(t *testing.T) {
	e, _ := newEditor(t, "", "", "abc")

	e.Move(0, 1, 4)
	assert.Equal(t, pos(1, 0), e.Cursor())

	row, col := e.LogicalToScreen(4)
	assert.Equal(t, [2]int{1, 0}, [2]int{row, col})

	e.Move(0, 1, 4)
	row, _ = e.LogicalToScreen(4)
	assert.Equal(t, 2, row)
}

func TestMoveZeroWidth(t *testing.T) {
	e, _ := newEditor(t, "abc", "de")
	e.SetCursor(pos(0, 2))

	e.Move(0, -1, 0)
	assert.Equal(t, pos(0, 1), e.Cursor(), "width below 1 wraps every rune")

	row, col := e.LogicalToScreen(0)
	assert.Equal(t, [2]int{1, 0}, [2]int{row, col})
}

func TestLogicalToScreenAcrossLines(t *testing.T) {
	e, _ := newEditor(t, "aaaaaaaaaa", "", "bbbbb", "cc")
	e.SetCursor(pos(3, 1))

	row, col := e.LogicalToScreen(4)
	// 3 rows for the first line, 1 for the empty one, 2 for "bbbbb".
	assert.Equal(t, 6, row)
	assert.Equal(t, 1, col)

	row, col = e.LogicalToScreen(wide)
	assert.Equal(t, 3, row)
	assert.Equal(t, 1, col)
}
