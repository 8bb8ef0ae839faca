package vt

// Resize changes the terminal's visible dimensions, preserving existing
// content by padding or truncating rows/columns, matching spec.md §4.F's
// requirement that a resize never panics regardless of cursor position
// or scroll region state. Pixel dimensions are synthesized at a fixed
// per-cell size; callers that know the real host pixel geometry should
// use ResizeWithPixels instead.
func (t *Terminal) Resize(rows, cols int) {
	t.ResizeWithPixels(rows, cols, 0, 0)
}

// ResizeWithPixels is Resize, but pxWidth/pxHeight (when positive) are
// recorded as this terminal's real pixel dimensions instead of the
// synthetic cols*8/rows*16 fallback, per spec.md §4.H's requirement that
// pixel dimensions be the proportional share of a real supplied total.
func (t *Terminal) ResizeWithPixels(rows, cols, pxWidth, pxHeight int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if pxWidth <= 0 {
		pxWidth = cols * 8
	}
	if pxHeight <= 0 {
		pxHeight = rows * 16
	}
	if rows == t.rowCount && cols == t.colCount {
		t.pixelWidth, t.pixelHeight = pxWidth, pxHeight
		return
	}

	if cols != t.colCount {
		for i := range t.rows {
			t.rows[i] = t.rows[i].Resize(cols)
		}
		for i := range t.rowsAbove {
			t.rowsAbove[i] = t.rowsAbove[i].Resize(cols)
		}
		for i := range t.rowsBelow {
			t.rowsBelow[i] = t.rowsBelow[i].Resize(cols)
		}
		for i, s := range t.tabStops {
			if s >= cols {
				t.tabStops = t.tabStops[:i]
				break
			}
		}
	}

	switch {
	case rows > t.rowCount:
		grow := rows - t.rowCount
		for grow > 0 && len(t.rowsAbove) > 0 {
			last := t.rowsAbove[len(t.rowsAbove)-1]
			t.rowsAbove = t.rowsAbove[:len(t.rowsAbove)-1]
			t.rows = append([]Row{last}, t.rows...)
			t.cursorRow++
			grow--
		}
		for grow > 0 {
			t.rows = append(t.rows, NewRow(cols))
			grow--
		}
	case rows < t.rowCount:
		shrink := t.rowCount - rows
		for shrink > 0 && len(t.rows) > rows {
			t.pushRowsAbove(t.rows[0])
			t.rows = t.rows[1:]
			t.cursorRow--
			shrink--
		}
	}

	t.rowCount, t.colCount = rows, cols
	t.scrollStart, t.scrollEnd = 0, rows-1
	t.clampCursor()
	t.pixelWidth, t.pixelHeight = pxWidth, pxHeight
	if len(t.tabStops) == 0 {
		t.tabStops = defaultTabStops(cols)
	}
}
