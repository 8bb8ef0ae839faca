package vt

// lineFeed advances the cursor row by one, scrolling the scroll region
// (and pushing into scrollback, if the region's top coincides with row 0
// and the main screen buffer is active) when the cursor sits on the last
// row of the region.
func (t *Terminal) lineFeed() {
	if t.cursorRow == t.scrollEnd {
		t.scrollUp(1)
		return
	}
	if t.cursorRow < t.rowCount-1 {
		t.cursorRow++
	}
}

// reverseLineFeed is RI: move up one row, scrolling the region downward
// when already at its top.
func (t *Terminal) reverseLineFeed() {
	if t.cursorRow == t.scrollStart {
		t.scrollDown(1)
		return
	}
	if t.cursorRow > 0 {
		t.cursorRow--
	}
}

// scrollUp moves the scroll region's content up by n rows, feeding rows
// that leave the top of the region into scrollback only when the region
// starts at row 0 and the main screen buffer is active (a region whose
// top margin is below row 0, or the alternate buffer, does not feed
// scrollback).
func (t *Terminal) scrollUp(n int) {
	for i := 0; i < n; i++ {
		if t.scrollStart == 0 && !t.modes.InAlternateScreenBuffer {
			t.pushRowsAbove(t.rows[t.scrollStart].Clone())
		}
		copy(t.rows[t.scrollStart:t.scrollEnd], t.rows[t.scrollStart+1:t.scrollEnd+1])
		t.rows[t.scrollEnd] = NewRow(t.colCount)
	}
}

// scrollDown moves the scroll region's content down by n rows.
func (t *Terminal) scrollDown(n int) {
	for i := 0; i < n; i++ {
		copy(t.rows[t.scrollStart+1:t.scrollEnd+1], t.rows[t.scrollStart:t.scrollEnd])
		t.rows[t.scrollStart] = NewRow(t.colCount)
	}
}

// ScrollUp pages the viewport one row toward older output, pulling a row
// out of rowsAbove and pushing the row it displaces onto rowsBelow, per
// spec.md §3/§4.F's rows_below description. A no-op once scrollback is
// exhausted. Driven by the mouse wheel (see pane.Pane.MouseEvent).
func (t *Terminal) ScrollUp() {
	if len(t.rowsAbove) == 0 {
		return
	}
	last := len(t.rowsAbove) - 1
	pulled := t.rowsAbove[last]
	t.rowsAbove = t.rowsAbove[:last]

	t.rowsBelow = append(t.rowsBelow, t.rows[t.rowCount-1])
	copy(t.rows[1:], t.rows[:t.rowCount-1])
	t.rows[0] = pulled
}

// ScrollDown pages the viewport one row toward newer output, the inverse
// of ScrollUp. A no-op once rowsBelow is exhausted (the viewport is
// already showing the live bottom).
func (t *Terminal) ScrollDown() {
	if len(t.rowsBelow) == 0 {
		return
	}
	last := len(t.rowsBelow) - 1
	pulled := t.rowsBelow[last]
	t.rowsBelow = t.rowsBelow[:last]

	t.rowsAbove = append(t.rowsAbove, t.rows[0])
	copy(t.rows[:t.rowCount-1], t.rows[1:])
	t.rows[t.rowCount-1] = pulled
}

// scrollToBottom discards any viewport paging by returning every row
// parked in rowsBelow to the live grid, per spec.md §3: "rowsBelow is
// emptied on any output that writes a cell."
func (t *Terminal) scrollToBottom() {
	for len(t.rowsBelow) > 0 {
		t.ScrollDown()
	}
}

func (t *Terminal) pushRowsAbove(r Row) {
	t.rowsAbove = append(t.rowsAbove, r)
	if len(t.rowsAbove) > t.rowCount+scrollbackCapExtra {
		t.rowsAbove = t.rowsAbove[len(t.rowsAbove)-(t.rowCount+scrollbackCapExtra):]
	}
}

// insertLines implements IL: insert n blank lines at the cursor row,
// within the scroll region, shifting the rest of the region down and
// discarding overflow at scrollEnd.
func (t *Terminal) insertLines(n int) {
	if t.cursorRow < t.scrollStart || t.cursorRow > t.scrollEnd {
		return
	}
	t.scrollToBottom()
	for i := 0; i < n; i++ {
		copy(t.rows[t.cursorRow+1:t.scrollEnd+1], t.rows[t.cursorRow:t.scrollEnd])
		t.rows[t.cursorRow] = NewRow(t.colCount)
	}
}

// deleteLines implements DL: delete n lines at the cursor row, within the
// scroll region, shifting the rest of the region up and padding at
// scrollEnd with blank lines.
func (t *Terminal) deleteLines(n int) {
	if t.cursorRow < t.scrollStart || t.cursorRow > t.scrollEnd {
		return
	}
	t.scrollToBottom()
	for i := 0; i < n; i++ {
		copy(t.rows[t.cursorRow:t.scrollEnd], t.rows[t.cursorRow+1:t.scrollEnd+1])
		t.rows[t.scrollEnd] = NewRow(t.colCount)
	}
}

// setScrollRegion implements DECSTBM. The cursor moves to the origin of
// the viewport (0,0) rather than to the top of the new region.
func (t *Terminal) setScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= t.rowCount {
		bottom = t.rowCount - 1
	}
	if bottom-top < 1 {
		return
	}
	t.scrollStart, t.scrollEnd = top, bottom
	t.cursorRow, t.cursorCol = 0, 0
	t.overflowPending = false
}

// eraseInDisplay implements ED. mode: 0=cursor..end, 1=start..cursor, 2=all, 3=all+scrollback.
func (t *Terminal) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		t.eraseRowRange(t.cursorRow, t.cursorCol, t.cursorRow, t.colCount-1)
		for r := t.cursorRow + 1; r < t.rowCount; r++ {
			t.rows[r] = NewRow(t.colCount)
		}
	case 1:
		for r := 0; r < t.cursorRow; r++ {
			t.rows[r] = NewRow(t.colCount)
		}
		t.eraseRowRange(t.cursorRow, 0, t.cursorRow, t.cursorCol)
	case 2:
		for r := 0; r < t.rowCount; r++ {
			t.rows[r] = NewRow(t.colCount)
		}
	case 3:
		for r := 0; r < t.rowCount; r++ {
			t.rows[r] = NewRow(t.colCount)
		}
		t.rowsAbove = nil
		t.rowsBelow = nil
	}
}

// eraseInLine implements EL. mode: 0=cursor..end, 1=start..cursor, 2=whole line.
func (t *Terminal) eraseInLine(mode int) {
	switch mode {
	case 0:
		t.eraseRowRange(t.cursorRow, t.cursorCol, t.cursorRow, t.colCount-1)
	case 1:
		t.eraseRowRange(t.cursorRow, 0, t.cursorRow, t.cursorCol)
	case 2:
		t.eraseRowRange(t.cursorRow, 0, t.cursorRow, t.colCount-1)
	}
}

func (t *Terminal) eraseRowRange(row, startCol, endRow, endCol int) {
	if row != endRow || row < 0 || row >= t.rowCount {
		return
	}
	t.scrollToBottom()
	if startCol < 0 {
		startCol = 0
	}
	if endCol >= t.colCount {
		endCol = t.colCount - 1
	}
	for c := startCol; c <= endCol; c++ {
		cell := DefaultCell()
		cell.Rendition = t.sgr
		t.rows[row][c] = cell
	}
}

// insertChars implements ICH: shift n blank cells in at the cursor,
// pushing the rest of the line right and discarding overflow.
func (t *Terminal) insertChars(n int) {
	row := t.rows[t.cursorRow]
	if t.cursorCol >= len(row) {
		return
	}
	t.scrollToBottom()
	if n > t.colCount-t.cursorCol {
		n = t.colCount - t.cursorCol
	}
	end := t.colCount - n
	if end < t.cursorCol {
		end = t.cursorCol
	}
	copy(row[t.cursorCol+n:], row[t.cursorCol:end])
	for c := t.cursorCol; c < t.cursorCol+n && c < t.colCount; c++ {
		cell := DefaultCell()
		cell.Rendition = t.sgr
		row[c] = cell
	}
}

// deleteChars implements DCH: remove n cells at the cursor, shifting the
// rest of the line left and padding the tail with blanks.
func (t *Terminal) deleteChars(n int) {
	row := t.rows[t.cursorRow]
	if t.cursorCol >= len(row) {
		return
	}
	t.scrollToBottom()
	src := t.cursorCol + n
	if src > t.colCount {
		src = t.colCount
	}
	copy(row[t.cursorCol:], row[src:])
	for c := t.colCount - (src - t.cursorCol); c < t.colCount; c++ {
		cell := DefaultCell()
		cell.Rendition = t.sgr
		row[c] = cell
	}
}

// eraseChars implements ECH: overwrite n cells at the cursor with blanks
// without shifting anything.
func (t *Terminal) eraseChars(n int) {
	end := t.cursorCol + n - 1
	t.eraseRowRange(t.cursorRow, t.cursorCol, t.cursorRow, end)
}
