package vt

// MouseButton identifies which button a mouse event concerns; motion-only
// events (no button change) use MouseButtonNone.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseWheelUp
	MouseWheelDown
	MouseButtonExtra8
	MouseButtonExtra9
	MouseButtonExtra10
	MouseButtonExtra11
)

// MouseEventAction distinguishes press, release, and drag/motion.
type MouseEventAction int

const (
	MousePress MouseEventAction = iota
	MouseRelease
	MouseMotion
)

// MouseEvent is a single pointer input, in 1-based terminal cell
// coordinates (and, for the pixel-reporting encodings, pixel
// coordinates).
type MouseEvent struct {
	Button    MouseButton
	Action    MouseEventAction
	Row, Col  int
	PixelRow, PixelCol int
	Modifiers KeyModifiers
}

// EncodeMouseEvent returns the bytes to send to the child for ev, or nil
// if the current mouse protocol would not report this event at all, per
// spec.md §4.D.
func EncodeMouseEvent(ev MouseEvent, modes Modes) []byte {
	if !mouseEventReportable(ev, modes.MouseProtocol) {
		return nil
	}

	code := mouseButtonCode(ev)
	if ev.Modifiers&ModShift != 0 {
		code |= 4
	}
	if ev.Modifiers&ModAlt != 0 {
		code |= 8
	}
	if ev.Modifiers&ModCtrl != 0 {
		code |= 16
	}
	if ev.Action == MouseMotion {
		code |= 32
	}

	switch modes.MouseEncoding {
	case MouseEncodingSGR:
		final := byte('M')
		if ev.Action == MouseRelease {
			final = 'm'
		}
		return []byte("\x1b[<" + itoa(code) + ";" + itoa(ev.Col) + ";" + itoa(ev.Row) + string(final))
	case MouseEncodingSGRPixels:
		final := byte('M')
		if ev.Action == MouseRelease {
			final = 'm'
		}
		return []byte("\x1b[<" + itoa(code) + ";" + itoa(ev.PixelCol) + ";" + itoa(ev.PixelRow) + string(final))
	case MouseEncodingURXVT:
		return []byte("\x1b[" + itoa(code+32) + ";" + itoa(ev.Col) + ";" + itoa(ev.Row) + "M")
	default: // X10 / UTF8 share the same legacy layout, differing only in byte width
		if ev.Action == MouseRelease {
			code = 3
		}
		return encodeLegacyMouse(code, ev.Col, ev.Row, modes.MouseEncoding == MouseEncodingUTF8)
	}
}

// DecodeMouseEvent turns one CSI event, decoded from host input, into a
// MouseEvent. Only the SGR encoding (CSI < code ; col ; row M/m) is
// recognized, since that is the only encoding ttx's own host setup
// sequence enables (§6 step 5). Returns ok=false for any other CSI.
func DecodeMouseEvent(ev Event) (MouseEvent, bool) {
	if ev.Intermediate != '<' || (ev.Terminator != 'M' && ev.Terminator != 'm') {
		return MouseEvent{}, false
	}
	code := int(ev.Params.Get(0, 0))
	col := int(ev.Params.Get(1, 1))
	row := int(ev.Params.Get(2, 1))

	out := MouseEvent{Row: row, Col: col, PixelRow: row, PixelCol: col}

	if code&32 != 0 {
		out.Action = MouseMotion
	} else if ev.Terminator == 'm' {
		out.Action = MouseRelease
	} else {
		out.Action = MousePress
	}

	out.Button = mouseButtonFromCode(code &^ (4 | 8 | 16 | 32))
	if code&4 != 0 {
		out.Modifiers |= ModShift
	}
	if code&8 != 0 {
		out.Modifiers |= ModAlt
	}
	if code&16 != 0 {
		out.Modifiers |= ModCtrl
	}
	return out, true
}

func mouseButtonFromCode(code int) MouseButton {
	switch code {
	case 0:
		return MouseButtonLeft
	case 1:
		return MouseButtonMiddle
	case 2:
		return MouseButtonRight
	case 64:
		return MouseWheelUp
	case 65:
		return MouseWheelDown
	case 128:
		return MouseButtonExtra8
	case 129:
		return MouseButtonExtra9
	case 130:
		return MouseButtonExtra10
	case 131:
		return MouseButtonExtra11
	default:
		return MouseButtonNone
	}
}

// DecodeFocusEvent turns one CSI event into a FocusEvent. Terminator 'I'
// is focus-in, 'O' is focus-out; both take no parameters.
func DecodeFocusEvent(ev Event) (FocusEvent, bool) {
	switch ev.Terminator {
	case 'I':
		return FocusEvent{Focused: true}, true
	case 'O':
		return FocusEvent{Focused: false}, true
	}
	return FocusEvent{}, false
}

func mouseButtonCode(ev MouseEvent) int {
	switch ev.Button {
	case MouseButtonLeft:
		return 0
	case MouseButtonMiddle:
		return 1
	case MouseButtonRight:
		return 2
	case MouseWheelUp:
		return 64
	case MouseWheelDown:
		return 65
	case MouseButtonExtra8:
		return 128
	case MouseButtonExtra9:
		return 129
	case MouseButtonExtra10:
		return 130
	case MouseButtonExtra11:
		return 131
	default:
		return 3
	}
}

func mouseEventReportable(ev MouseEvent, proto MouseProtocol) bool {
	switch proto {
	case MouseProtocolNone:
		return false
	case MouseProtocolX10:
		return ev.Action == MousePress
	case MouseProtocolVT200:
		return ev.Action != MouseMotion
	case MouseProtocolBtnEvent:
		return ev.Action != MouseMotion || ev.Button != MouseButtonNone
	case MouseProtocolAnyEvent:
		return true
	}
	return false
}

func encodeLegacyMouse(code, col, row int, utf8Encoding bool) []byte {
	out := []byte{0x1B, '[', 'M'}
	encodeLegacyByte := func(v int) byte {
		return byte(32 + v)
	}
	out = append(out, encodeLegacyByte(code))
	if utf8Encoding {
		out = appendUTF8Coord(out, col)
		out = appendUTF8Coord(out, row)
	} else {
		out = append(out, clampLegacyByte(col), clampLegacyByte(row))
	}
	return out
}

func clampLegacyByte(v int) byte {
	v += 32
	if v > 255 {
		v = 255
	}
	return byte(v)
}

func appendUTF8Coord(out []byte, v int) []byte {
	return append(out, []byte(string(rune(32+v)))...)
}

// FocusEvent reports a host-terminal focus gain/loss, per spec.md §4.D.
type FocusEvent struct {
	Focused bool
}

// EncodeFocusEvent returns the bytes to send for ev, or nil if focus
// reporting is not enabled.
func EncodeFocusEvent(ev FocusEvent, modes Modes) []byte {
	if !modes.FocusEventMode {
		return nil
	}
	if ev.Focused {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}

// PasteEvent is a block of pasted text, to be wrapped in bracketed-paste
// markers when that mode is enabled.
type PasteEvent struct {
	Text string
}

// EncodePasteEvent returns the bytes to send for ev, wrapping it in
// bracketed-paste markers when modes.BracketedPasteMode is set (spec.md
// §4.D, §4.E).
func EncodePasteEvent(ev PasteEvent, modes Modes) []byte {
	if !modes.BracketedPasteMode {
		return []byte(ev.Text)
	}
	return []byte("\x1b[200~" + ev.Text + "\x1b[201~")
}
