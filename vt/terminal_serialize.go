package vt

import "strings"

// StateAsEscapeSequences renders this Terminal's entire observable state
// as a single byte stream that, fed into a fresh Terminal of the same
// size, reconstructs it: cell grid, SGR, modes, tab stops, cursor, and
// pending x-overflow, per spec.md §4.F's "State serialization"
// subsection and the §8 round-trip invariant. No code in this module
// calls it; the renderer repaints from the cell grid.
//
// Ordering follows spec.md §4.F exactly: reset, main-buffer state (only
// if the alternate buffer is active) then DECSET 1049, then the current
// buffer's state. Scrollback (rowsAbove/rowsBelow) is not part of the
// reconstructed byte stream: there is no escape sequence that drives the
// viewport-paging rowsAbove/rowsBelow split (only the mouse wheel does,
// via pane.Pane.MouseEvent/Terminal.ScrollUp/ScrollDown), so this always
// describes the live grid exactly as t.rows holds it right now,
// regardless of whether the viewport happens to be paged up at the
// moment of serialization.
func (t *Terminal) StateAsEscapeSequences() []byte {
	var b strings.Builder

	b.WriteString("\x1bc")

	if t.modes.InAlternateScreenBuffer && t.saved != nil {
		writeBufferContent(&b, t.saved.rows, t.saved.cursorRow, t.saved.cursorCol, t.rowCount, t.colCount, t.pixelWidth, t.pixelHeight, t.modes.Columns132, t.modes.Allow80132)
		b.WriteString("\x1b[?1049h")
	}

	writeBufferContent(&b, t.rows, t.cursorRow, t.cursorCol, t.rowCount, t.colCount, t.pixelWidth, t.pixelHeight, t.modes.Columns132, t.modes.Allow80132)

	writeTabStops(&b, t.tabStops, t.colCount)

	b.WriteString("\x1b[")
	b.WriteString(itoa(t.scrollStart + 1))
	b.WriteByte(';')
	b.WriteString(itoa(t.scrollEnd + 1))
	b.WriteByte('r')

	writeDECMode(&b, 7, t.modes.AutoWrap)
	writeDECMode(&b, 6, t.modes.OriginMode)
	writeDECMode(&b, 1, t.modes.ApplicationCursorKeys)

	for _, flags := range t.keyFlagsStack {
		b.WriteString("\x1b[>")
		b.WriteString(itoa(paramFromFlags(flags)))
		b.WriteByte('u')
	}

	writeDECMode(&b, 1007, t.modes.AlternateScrollMode)
	writeMouseModeSequences(&b, t.modes)
	writeDECMode(&b, 1004, t.modes.FocusEventMode)
	writeDECMode(&b, 2004, t.modes.BracketedPasteMode)

	b.WriteString("\x1b[")
	b.WriteString(itoa(int(t.CursorStyle())))
	b.WriteString(" q")

	cursorRow := t.cursorRow + 1
	if t.modes.OriginMode {
		cursorRow = t.cursorRow - t.scrollStart + 1
	}
	b.WriteString("\x1b[")
	b.WriteString(itoa(cursorRow))
	b.WriteByte(';')
	b.WriteString(itoa(t.cursorCol + 1))
	b.WriteByte('H')

	if t.modes.CursorVisible {
		b.WriteString("\x1b[?25h")
	} else {
		b.WriteString("\x1b[?25l")
	}

	if t.overflowPending && t.cursorCol >= 0 && t.cursorCol < t.colCount {
		last := t.rows[t.cursorRow][t.cursorCol]
		b.WriteString("\x1b[")
		b.WriteString(last.Rendition.AsCSIParams().String())
		b.WriteByte('m')
		if last.Ch == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(last.Ch)
		}
		for _, comb := range last.Combining {
			b.WriteRune(comb)
		}
	}

	b.WriteString("\x1b[")
	b.WriteString(t.sgr.AsCSIParams().String())
	b.WriteByte('m')

	return []byte(b.String())
}

// writeBufferContent emits one buffer's pixel/cell size, 80/132-column
// mode, and cell-by-cell content (autowrap forced off for the duration,
// SGR differentials only, wide-placeholder columns skipped), per
// spec.md §4.F.
func writeBufferContent(b *strings.Builder, rows []Row, cursorRow, cursorCol, rowCount, colCount, pixelWidth, pixelHeight int, columns132, allow80132 bool) {
	b.WriteString("\x1b[4;")
	b.WriteString(itoa(pixelHeight))
	b.WriteByte(';')
	b.WriteString(itoa(pixelWidth))
	b.WriteString("t")
	b.WriteString("\x1b[8;")
	b.WriteString(itoa(rowCount))
	b.WriteByte(';')
	b.WriteString(itoa(colCount))
	b.WriteString("t")

	writeDECMode(b, 40, allow80132)
	writeDECMode(b, 3, columns132)

	b.WriteString("\x1b[?7l\x1b[2J\x1b[H\x1b[0m")

	cur := GraphicsRendition{}
	for r := 0; r < rowCount && r < len(rows); r++ {
		if r > 0 {
			b.WriteString("\r\n")
		}
		row := rows[r]
		for c := 0; c < len(row); c++ {
			cell := row[c]
			if cell.WidePlaceholder {
				continue
			}
			if cell.Rendition != cur {
				b.WriteString("\x1b[")
				b.WriteString(cell.Rendition.AsCSIParams().String())
				b.WriteByte('m')
				cur = cell.Rendition
			}
			if cell.Ch == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteRune(cell.Ch)
			}
			for _, comb := range cell.Combining {
				b.WriteRune(comb)
			}
		}
	}
	b.WriteString("\x1b[0m")
}

// writeTabStops clears every tab stop and re-sets exactly the ones in
// stops, using a temporary cursor move plus the 7-bit HTS equivalent
// (ESC H) for each; the cursor position set here is superseded later by
// StateAsEscapeSequences' own cursor-position step.
func writeTabStops(b *strings.Builder, stops []int, colCount int) {
	b.WriteString("\x1b[3g")
	for _, c := range stops {
		if c < 0 || c >= colCount {
			continue
		}
		b.WriteString("\x1b[1;")
		b.WriteString(itoa(c + 1))
		b.WriteByte('H')
		b.WriteString("\x1bH")
	}
}

func writeMouseModeSequences(b *strings.Builder, m Modes) {
	switch m.MouseProtocol {
	case MouseProtocolX10:
		writeDECMode(b, 9, true)
	case MouseProtocolVT200:
		writeDECMode(b, 1000, true)
	case MouseProtocolBtnEvent:
		writeDECMode(b, 1002, true)
	case MouseProtocolAnyEvent:
		writeDECMode(b, 1003, true)
	}
	switch m.MouseEncoding {
	case MouseEncodingUTF8:
		writeDECMode(b, 1005, true)
	case MouseEncodingSGR:
		writeDECMode(b, 1006, true)
	case MouseEncodingURXVT:
		writeDECMode(b, 1015, true)
	case MouseEncodingSGRPixels:
		writeDECMode(b, 1016, true)
	}
}

func writeDECMode(b *strings.Builder, code int, enabled bool) {
	b.WriteString("\x1b[?")
	b.WriteString(itoa(code))
	if enabled {
		b.WriteByte('h')
	} else {
		b.WriteByte('l')
	}
}
