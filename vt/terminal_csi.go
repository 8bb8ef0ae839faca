package vt

// dispatchCSI routes a parsed CSI event to the appropriate control
// operation, per the table in spec.md §4.F. Unknown or malformed
// sequences are silently ignored (spec.md §7, ProtocolMalformed).
func (t *Terminal) dispatchCSI(ev Event) {
	p := ev.Params
	switch ev.Terminator {
	case 'A':
		t.moveCursor(-int(p.Get(0, 1)), 0)
	case 'B':
		t.moveCursor(int(p.Get(0, 1)), 0)
	case 'C':
		t.moveCursor(0, int(p.Get(0, 1)))
	case 'D':
		t.moveCursor(0, -int(p.Get(0, 1)))
	case 'E':
		t.moveCursor(int(p.Get(0, 1)), 0)
		t.cursorCol = 0
	case 'F':
		t.moveCursor(-int(p.Get(0, 1)), 0)
		t.cursorCol = 0
	case 'G', '`':
		t.cursorCol = clampInt(int(p.Get(0, 1))-1, 0, t.colCount-1)
		t.overflowPending = false
	case 'd':
		t.cursorRow = clampInt(int(p.Get(0, 1))-1, 0, t.rowCount-1)
		t.overflowPending = false
	case 'H', 'f':
		t.cursorUp(p)
	case 'I':
		for i, n := 0, int(p.Get(0, 1)); i < n; i++ {
			t.cursorCol = t.nextTabStop(t.cursorCol)
		}
	case 'Z':
		for i, n := 0, int(p.Get(0, 1)); i < n; i++ {
			t.cursorCol = t.prevTabStop(t.cursorCol)
		}
	case 'J':
		t.eraseInDisplay(int(p.Get(0, 0)))
	case 'K':
		t.eraseInLine(int(p.Get(0, 0)))
	case 'L':
		t.insertLines(int(p.Get(0, 1)))
	case 'M':
		t.deleteLines(int(p.Get(0, 1)))
	case 'P':
		t.deleteChars(int(p.Get(0, 1)))
	case '@':
		t.insertChars(int(p.Get(0, 1)))
	case 'X':
		t.eraseChars(int(p.Get(0, 1)))
	case 'S':
		t.scrollUp(int(p.Get(0, 1)))
	case 'T':
		t.scrollDown(int(p.Get(0, 1)))
	case 'c':
		t.dispatchDA(ev.Intermediate)
	case 'n':
		t.dispatchDSR(ev.Intermediate, p)
	case 'r':
		t.setScrollRegion(int(p.Get(0, 1))-1, int(p.Get(1, uint32(t.rowCount)))-1)
	case 'm':
		t.sgr.Apply(p)
	case 'h':
		t.setMode(ev.Intermediate, p, true)
	case 'l':
		t.setMode(ev.Intermediate, p, false)
	case 'q':
		if ev.Intermediate == ' ' {
			t.setCursorStyle(int(p.Get(0, 0)))
		}
	case 's':
		t.savedCursorRow, t.savedCursorCol = t.cursorRow, t.cursorCol
		t.hasSavedCursor = true
	case 'u':
		t.dispatchU(ev.Intermediate, p)
	case 'g':
		t.dispatchTBC(int(p.Get(0, 0)))
	case 't':
		t.dispatchWinOps(p)
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t *Terminal) moveCursor(dRow, dCol int) {
	t.cursorRow = clampInt(t.cursorRow+dRow, 0, t.rowCount-1)
	t.cursorCol = clampInt(t.cursorCol+dCol, 0, t.colCount-1)
	t.overflowPending = false
}

func (t *Terminal) cursorUp(p *Params) {
	row := int(p.Get(0, 1)) - 1
	col := int(p.Get(1, 1)) - 1
	rowLo, rowHi := 0, t.rowCount-1
	if t.modes.OriginMode {
		row += t.scrollStart
		rowLo, rowHi = t.scrollStart, t.scrollEnd
	}
	t.cursorRow = clampInt(row, rowLo, rowHi)
	t.cursorCol = clampInt(col, 0, t.colCount-1)
	t.overflowPending = false
}

func (t *Terminal) prevTabStop(from int) int {
	best := 0
	for _, s := range t.tabStops {
		if s < from {
			best = s
		}
	}
	return best
}

// dispatchDA answers Device Attributes queries. marker is 0 for DA1,
// '>' for DA2, '=' for DA3.
func (t *Terminal) dispatchDA(marker byte) {
	var reply string
	switch marker {
	case 0:
		reply = "\x1b[?1;0c"
	case '>':
		reply = "\x1b[>010;0c"
	case '=':
		reply = "\x1bP!|00000000\x1b\\"
	default:
		return
	}
	t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte(reply)})
}

func (t *Terminal) dispatchDSR(marker byte, p *Params) {
	code := int(p.Get(0, 0))
	if marker != '?' {
		if code == 6 {
			reply := cursorPositionReport(t.cursorRow, t.cursorCol, t.modes.OriginMode, t.scrollStart)
			t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte(reply)})
		} else if code == 5 {
			t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte("\x1b[0n")})
		}
		return
	}
	// DEC-specific status reports (CSI ? n) are not answered.
}

func cursorPositionReport(row, col int, originMode bool, scrollStart int) string {
	r := row + 1
	if originMode {
		r = row - scrollStart + 1
	}
	return "\x1b[" + itoa(r) + ";" + itoa(col+1) + "R"
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (t *Terminal) dispatchTBC(mode int) {
	switch mode {
	case 0:
		t.clearTabStop(t.cursorCol)
	case 3:
		t.clearAllTabStops()
	}
}

// dispatchU handles both RCP (CSI u, no marker) and the kitty
// progressive-enhancement keyboard protocol (CSI > flags u push,
// CSI < n u pop, CSI = flags ; mode u set, CSI ? u query).
func (t *Terminal) dispatchU(marker byte, p *Params) {
	switch marker {
	case 0:
		if t.hasSavedCursor {
			t.cursorRow, t.cursorCol = t.savedCursorRow, t.savedCursorCol
			t.clampCursor()
		}
	case '>':
		if len(t.keyFlagsStack) >= maxKeyReportingStack {
			t.keyFlagsStack = t.keyFlagsStack[1:]
		}
		t.keyFlagsStack = append(t.keyFlagsStack, flagsFromParam(int(p.Get(0, 0))))
		t.modes.KeyFlags = t.keyFlagsStack[len(t.keyFlagsStack)-1]
	case '<':
		n := int(p.Get(0, 1))
		if n > len(t.keyFlagsStack) {
			n = len(t.keyFlagsStack)
		}
		t.keyFlagsStack = t.keyFlagsStack[:len(t.keyFlagsStack)-n]
		if len(t.keyFlagsStack) > 0 {
			t.modes.KeyFlags = t.keyFlagsStack[len(t.keyFlagsStack)-1]
		} else {
			t.modes.KeyFlags = KeyReportingFlags{}
		}
	case '=':
		flags := flagsFromParam(int(p.Get(0, 0)))
		switch p.Get(1, 1) {
		case 2:
			t.modes.KeyFlags = orFlags(t.modes.KeyFlags, flags)
		case 3:
			t.modes.KeyFlags = andNotFlags(t.modes.KeyFlags, flags)
		default:
			t.modes.KeyFlags = flags
		}
		if len(t.keyFlagsStack) > 0 {
			t.keyFlagsStack[len(t.keyFlagsStack)-1] = t.modes.KeyFlags
		}
	case '?':
		reply := "\x1b[?" + itoa(paramFromFlags(t.modes.KeyFlags)) + "u"
		t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte(reply)})
	}
}

func flagsFromParam(v int) KeyReportingFlags {
	return KeyReportingFlags{
		Disambiguate:         v&1 != 0,
		ReportEvents:         v&2 != 0,
		ReportAlternateKeys:  v&4 != 0,
		ReportAllAsEscape:    v&8 != 0,
		ReportAssociatedText: v&16 != 0,
	}
}

func paramFromFlags(f KeyReportingFlags) int {
	v := 0
	if f.Disambiguate {
		v |= 1
	}
	if f.ReportEvents {
		v |= 2
	}
	if f.ReportAlternateKeys {
		v |= 4
	}
	if f.ReportAllAsEscape {
		v |= 8
	}
	if f.ReportAssociatedText {
		v |= 16
	}
	return v
}

func orFlags(a, b KeyReportingFlags) KeyReportingFlags {
	return KeyReportingFlags{
		Disambiguate:         a.Disambiguate || b.Disambiguate,
		ReportEvents:         a.ReportEvents || b.ReportEvents,
		ReportAlternateKeys:  a.ReportAlternateKeys || b.ReportAlternateKeys,
		ReportAllAsEscape:    a.ReportAllAsEscape || b.ReportAllAsEscape,
		ReportAssociatedText: a.ReportAssociatedText || b.ReportAssociatedText,
	}
}

func andNotFlags(a, b KeyReportingFlags) KeyReportingFlags {
	return KeyReportingFlags{
		Disambiguate:         a.Disambiguate && !b.Disambiguate,
		ReportEvents:         a.ReportEvents && !b.ReportEvents,
		ReportAlternateKeys:  a.ReportAlternateKeys && !b.ReportAlternateKeys,
		ReportAllAsEscape:    a.ReportAllAsEscape && !b.ReportAllAsEscape,
		ReportAssociatedText: a.ReportAssociatedText && !b.ReportAssociatedText,
	}
}

func (t *Terminal) setCursorStyle(v int) {
	if v == 0 {
		t.modes.CursorStyle = CursorStyleBlinkingBlock
		return
	}
	t.modes.CursorStyle = CursorStyle(v)
}

// dispatchWinOps handles the XTWINOPS subset this terminal answers:
// 14/16/18 report pixel/cell sizes, 4/8 optionally force a resize when
// the pane owner has opted in via SetAllowForceTerminalSize.
func (t *Terminal) dispatchWinOps(p *Params) {
	switch p.Get(0, 0) {
	case 14:
		t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte(
			"\x1b[4;" + itoa(t.pixelHeight) + ";" + itoa(t.pixelWidth) + "t")})
	case 16:
		t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte("\x1b[6;16;8t")})
	case 18:
		t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte(
			"\x1b[8;" + itoa(t.rowCount) + ";" + itoa(t.colCount) + "t")})
	case 4:
		if t.allowForceTerminalSize {
			h := clampInt(int(p.Get(1, uint32(t.pixelHeight))), 1, maxForcedPixels)
			w := clampInt(int(p.Get(2, uint32(t.pixelWidth))), 1, maxForcedPixels)
			t.pixelHeight, t.pixelWidth = h, w
		}
	case 8:
		if t.allowForceTerminalSize {
			rows := clampInt(int(p.Get(1, uint32(t.rowCount))), 1, maxForcedCells)
			cols := clampInt(int(p.Get(2, uint32(t.colCount))), 1, maxForcedCells)
			t.Resize(rows, cols)
		}
	}
}
