package vt

// Print writes a single printable code point at the cursor, handling
// line wrap, wide-character placeholder cells, and the autowrap-pending
// flag, per spec.md §4.F (wrap test) and §8.
func (t *Terminal) Print(r rune) {
	cell := DefaultCell()
	cell.Ch = r
	cell.Rendition = t.sgr
	width := cell.Width()
	if width == 0 {
		t.combineZeroWidth(r)
		return
	}

	t.scrollToBottom()

	if t.overflowPending {
		t.lineFeed()
		t.cursorCol = 0
		t.overflowPending = false
	}

	if t.cursorCol+width > t.colCount {
		if t.modes.AutoWrap {
			t.lineFeed()
			t.cursorCol = 0
		} else {
			t.cursorCol = t.colCount - width
			if t.cursorCol < 0 {
				t.cursorCol = 0
			}
		}
	}

	row := t.rows[t.cursorRow]
	if t.modes.InsertMode {
		end := t.colCount - width
		if end > t.cursorCol {
			copy(row[t.cursorCol+width:], row[t.cursorCol:end])
		}
	}
	row[t.cursorCol] = cell
	if width == 2 && t.cursorCol+1 < t.colCount {
		placeholder := DefaultCell()
		placeholder.Rendition = t.sgr
		placeholder.WidePlaceholder = true
		row[t.cursorCol+1] = placeholder
	}

	t.cursorCol += width
	if t.cursorCol >= t.colCount {
		t.cursorCol = t.colCount - 1
		if t.modes.AutoWrap {
			t.overflowPending = true
		}
	}
}

// combineZeroWidth merges a zero-width code point (e.g. a combining
// diacritic) onto the cell immediately behind the cursor (or, with a
// wrap pending, the cell under it), matching the original
// implementation's handling of combining marks.
func (t *Terminal) combineZeroWidth(r rune) {
	col := t.cursorCol - 1
	if t.overflowPending {
		col = t.cursorCol
	}
	row := t.cursorRow
	if col < 0 {
		if t.overflowPending {
			col = t.colCount - 1
		} else {
			return
		}
	}
	cell := &t.rows[row][col]
	if cell.WidePlaceholder && col > 0 {
		cell = &t.rows[row][col-1]
	}
	cell.Combining = append(cell.Combining, r)
}

// controlCharacter handles a single C0/C1 control code. wasInEscape is
// true when the control arrived immediately after a lone ESC (the
// "ESC control-char" admissible form some emulators pass through).
func (t *Terminal) controlCharacter(r rune, wasInEscape bool) {
	switch r {
	case 0x07: // BEL
		// No bell side effect is modeled.
	case 0x08: // BS
		if t.cursorCol > 0 {
			t.cursorCol--
		}
		t.overflowPending = false
	case 0x09: // HT
		t.cursorCol = t.nextTabStop(t.cursorCol)
	case 0x0A: // LF
		t.lineFeed()
		t.overflowPending = false
	case 0x0B: // VT
		t.lineFeed()
		t.overflowPending = false
	case 0x0C: // FF
		t.lineFeed()
		t.overflowPending = false
	case 0x0D: // CR
		t.cursorCol = 0
		t.overflowPending = false
	case 0x84: // IND
		t.lineFeed()
	case 0x85: // NEL
		t.lineFeed()
		t.cursorCol = 0
	case 0x88: // HTS
		t.setTabStop(t.cursorCol)
	case 0x8D: // RI
		t.reverseLineFeed()
	}
}

func (t *Terminal) nextTabStop(from int) int {
	for _, s := range t.tabStops {
		if s > from {
			if s >= t.colCount {
				return t.colCount - 1
			}
			return s
		}
	}
	return t.colCount - 1
}

func (t *Terminal) setTabStop(col int) {
	for _, s := range t.tabStops {
		if s == col {
			return
		}
	}
	t.tabStops = append(t.tabStops, col)
	for i := len(t.tabStops) - 1; i > 0 && t.tabStops[i-1] > t.tabStops[i]; i-- {
		t.tabStops[i-1], t.tabStops[i] = t.tabStops[i], t.tabStops[i-1]
	}
}

func (t *Terminal) clearTabStop(col int) {
	out := t.tabStops[:0]
	for _, s := range t.tabStops {
		if s != col {
			out = append(out, s)
		}
	}
	t.tabStops = out
}

func (t *Terminal) clearAllTabStops() {
	t.tabStops = nil
}
