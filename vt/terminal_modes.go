package vt

// setMode applies SM/RM (marker 0) or DECSET/DECRST (marker '?') for
// every parameter group in p, per the mode table in spec.md §4.F.
func (t *Terminal) setMode(marker byte, p *Params, enable bool) {
	for i := 0; i < p.Size(); i++ {
		code := int(p.Get(i, 0))
		if marker == '?' {
			t.setPrivateMode(code, enable)
		} else {
			t.setANSIMode(code, enable)
		}
	}
}

func (t *Terminal) setANSIMode(code int, enable bool) {
	switch code {
	case 4:
		t.modes.InsertMode = enable
	}
}

func (t *Terminal) setPrivateMode(code int, enable bool) {
	switch code {
	case 1:
		t.modes.ApplicationCursorKeys = enable
	case 3:
		if t.modes.Allow80132 {
			t.modes.Columns132 = enable
			if enable {
				t.Resize(t.rowCount, 132)
			} else {
				t.Resize(t.rowCount, 80)
			}
		}
	case 6:
		t.modes.OriginMode = enable
		t.cursorRow, t.cursorCol = 0, 0
	case 7:
		t.modes.AutoWrap = enable
	case 9:
		if enable {
			t.modes.MouseProtocol = MouseProtocolX10
		} else if t.modes.MouseProtocol == MouseProtocolX10 {
			t.modes.MouseProtocol = MouseProtocolNone
		}
	case 25:
		t.modes.CursorVisible = enable
	case 40:
		t.modes.Allow80132 = enable
	case 1000:
		t.setMouseProtocol(MouseProtocolVT200, enable)
	case 1002:
		t.setMouseProtocol(MouseProtocolBtnEvent, enable)
	case 1003:
		t.setMouseProtocol(MouseProtocolAnyEvent, enable)
	case 1004:
		t.modes.FocusEventMode = enable
	case 1005:
		t.setMouseEncoding(MouseEncodingUTF8, enable)
	case 1006:
		t.setMouseEncoding(MouseEncodingSGR, enable)
	case 1015:
		t.setMouseEncoding(MouseEncodingURXVT, enable)
	case 1016:
		t.setMouseEncoding(MouseEncodingSGRPixels, enable)
	case 1047:
		t.setAlternateScreenBuffer(enable, false)
	case 1048:
		if enable {
			t.savedCursorRow, t.savedCursorCol = t.cursorRow, t.cursorCol
			t.hasSavedCursor = true
		} else if t.hasSavedCursor {
			t.cursorRow, t.cursorCol = t.savedCursorRow, t.savedCursorCol
			t.clampCursor()
		}
	case 1049:
		t.setAlternateScreenBuffer(enable, true)
	case 1007:
		t.modes.AlternateScrollMode = enable
	case 2004:
		t.modes.BracketedPasteMode = enable
	case 2026:
		t.modes.SynchronizedOutput = enable
	}
}

func (t *Terminal) setMouseProtocol(proto MouseProtocol, enable bool) {
	if enable {
		t.modes.MouseProtocol = proto
	} else if t.modes.MouseProtocol == proto {
		t.modes.MouseProtocol = MouseProtocolNone
	}
}

func (t *Terminal) setMouseEncoding(enc MouseEncoding, enable bool) {
	if enable {
		t.modes.MouseEncoding = enc
	} else if t.modes.MouseEncoding == enc {
		t.modes.MouseEncoding = MouseEncodingX10
	}
}

// setAlternateScreenBuffer implements DECSET/DECRST 1047 (bare swap) and
// 1049 (swap + save/restore cursor + clear), per spec.md §4.F and the
// §8 round-trip test.
func (t *Terminal) setAlternateScreenBuffer(enable, withCursor bool) {
	if enable == t.modes.InAlternateScreenBuffer {
		return
	}
	if enable {
		t.saved = &savedState{
			rows:         t.rows,
			rowsAbove:    t.rowsAbove,
			rowsBelow:    t.rowsBelow,
			cursorRow:    t.cursorRow,
			cursorCol:    t.cursorCol,
			overflow:     t.overflowPending,
			sgr:          t.sgr,
			cursorHidden: !t.modes.CursorVisible,
		}
		t.rows = make([]Row, t.rowCount)
		for i := range t.rows {
			t.rows[i] = NewRow(t.colCount)
		}
		t.rowsAbove, t.rowsBelow = nil, nil
		t.sgr = GraphicsRendition{}
		if withCursor {
			t.cursorRow, t.cursorCol = 0, 0
			t.overflowPending = false
		}
		t.modes.InAlternateScreenBuffer = true
		return
	}

	if t.saved != nil {
		t.rows = t.saved.rows
		t.rowsAbove = t.saved.rowsAbove
		t.rowsBelow = t.saved.rowsBelow
		if withCursor {
			t.cursorRow, t.cursorCol = t.saved.cursorRow, t.saved.cursorCol
			t.overflowPending = t.saved.overflow
			t.sgr = t.saved.sgr
			t.modes.CursorVisible = !t.saved.cursorHidden
		}
		t.saved = nil
	}
	t.modes.InAlternateScreenBuffer = false
	t.clampCursor()
}
