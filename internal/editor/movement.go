package editor

// VisualRows returns how many screen rows a line of n runes occupies at the
// given viewport width. An empty line still takes one row.
func VisualRows(n, width int) int {
	width = max(width, 1)
	if n == 0 {
		return 1
	}
	return (n + width - 1) / width
}

// segment returns which wrapped row of a line of n runes holds col.
// The end-of-line position of a line that exactly fills its last row stays
// on that row instead of starting a new one.
func segment(col, n, width int) int {
	return min(col/width, VisualRows(n, width)-1)
}

// Move applies a horizontal then a vertical step. Only the sign of dx and dy
// matters.
//
// Horizontal steps wrap across line ends and set the preferred column.
// Vertical steps first walk the wrapped rows of the current line and only
// cross to the neighbouring line from its first or last wrapped row, landing
// on the preferred column clamped to that line.
func (e *Editor) Move(dx, dy, width int) {
	width = max(width, 1)

	switch {
	case dx < 0:
		if e.col > 0 {
			e.col--
		} else if e.row > 0 {
			e.row--
			e.col = e.doc.LineLen(e.row)
		}
	case dx > 0:
		if e.col < e.doc.LineLen(e.row) {
			e.col++
		} else if e.row < e.doc.LineCount()-1 {
			e.row++
			e.col = 0
		}
	}
	if dx != 0 {
		e.preferredCol = e.col
	}

	switch {
	case dy < 0:
		e.moveUp(width)
	case dy > 0:
		e.moveDown(width)
	}
}

func (e *Editor) moveUp(width int) {
	n := e.doc.LineLen(e.row)
	seg := segment(e.col, n, width)
	if seg > 0 {
		screenCol := e.col - seg*width
		e.col = min((seg-1)*width+screenCol, seg*width-1)
		return
	}
	if e.row > 0 {
		e.row--
		e.col = min(e.preferredCol, e.doc.LineLen(e.row))
	}
}

func (e *Editor) moveDown(width int) {
	n := e.doc.LineLen(e.row)
	seg := segment(e.col, n, width)
	if seg < VisualRows(n, width)-1 {
		screenCol := e.col - seg*width
		e.col = min((seg+1)*width+screenCol, n)
		return
	}
	if e.row < e.doc.LineCount()-1 {
		e.row++
		e.col = min(e.preferredCol, e.doc.LineLen(e.row))
	}
}

// LogicalToScreen maps the cursor to a screen row and column at the given
// viewport width. The row counts wrapped rows from the top of the document.
func (e *Editor) LogicalToScreen(width int) (row, col int) {
	width = max(width, 1)
	for r := 0; r < e.row; r++ {
		row += VisualRows(e.doc.LineLen(r), width)
	}
	seg := segment(e.col, e.doc.LineLen(e.row), width)
	return row + seg, e.col - seg*width
}
