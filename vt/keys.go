package vt

// KeyCode identifies a key independent of the modifiers held with it.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeyModifiers is a bitset of held modifiers, using the xterm/kitty
// encoding where 1 means "no modifiers" once added to the bitset value.
type KeyModifiers int

const (
	ModShift KeyModifiers = 1 << 0
	ModAlt   KeyModifiers = 1 << 1
	ModCtrl  KeyModifiers = 1 << 2
	ModSuper KeyModifiers = 1 << 3
)

// KeyAction distinguishes press/repeat/release for the kitty protocol's
// ReportEvents flag; ignored otherwise.
type KeyAction int

const (
	KeyPress KeyAction = iota
	KeyRepeat
	KeyRelease
)

// KeyEvent is a single keyboard input, decoded from the host PTY (by the
// supervisor, from input.TerminalInputParser's events) and encoded to
// child-facing bytes here.
type KeyEvent struct {
	Code      KeyCode
	Rune      rune
	Modifiers KeyModifiers
	Action    KeyAction
	Text      string // associated text, used only when ReportAssociatedText is set
}

var legacyArrowFinal = map[KeyCode]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
	KeyHome: 'H', KeyEnd: 'F',
}

var kittyFunctionalCode = map[KeyCode]int{
	KeyInsert: 2, KeyDelete: 3, KeyPageUp: 5, KeyPageDown: 6,
	KeyF1: 11, KeyF2: 12, KeyF3: 13, KeyF4: 14, KeyF5: 15,
	KeyF6: 17, KeyF7: 18, KeyF8: 19, KeyF9: 20, KeyF10: 21,
	KeyF11: 23, KeyF12: 24,
}

// EncodeKeyEvent produces the bytes to write to the child for a key
// event, honoring the kitty progressive-enhancement flags currently
// active in modes.KeyFlags and falling back to legacy VT/xterm encoding
// otherwise, per spec.md §4.D.
func EncodeKeyEvent(ev KeyEvent, modes Modes) []byte {
	if ev.Action == KeyRelease && !modes.KeyFlags.ReportEvents {
		return nil
	}
	if kittyEncodingActive(modes.KeyFlags) {
		return encodeKittyKey(ev, modes.KeyFlags)
	}
	return encodeLegacyKey(ev, modes)
}

func kittyEncodingActive(f KeyReportingFlags) bool {
	return f.Disambiguate || f.ReportEvents || f.ReportAlternateKeys || f.ReportAllAsEscape || f.ReportAssociatedText
}

func modifierParam(m KeyModifiers) int {
	return int(m) + 1
}

func encodeKittyKey(ev KeyEvent, flags KeyReportingFlags) []byte {
	mod := modifierParam(ev.Modifiers)

	if code, ok := kittyFunctionalCode[ev.Code]; ok {
		return kittyCSIu(code, mod, ev.Action, flags)
	}
	switch ev.Code {
	case KeyUp, KeyDown, KeyRight, KeyLeft, KeyHome, KeyEnd:
		return kittyArrow(ev, mod, flags)
	case KeyEnter:
		return kittyCSIu(13, mod, ev.Action, flags)
	case KeyTab:
		return kittyCSIu(9, mod, ev.Action, flags)
	case KeyBackspace:
		return kittyCSIu(127, mod, ev.Action, flags)
	case KeyEscape:
		return kittyCSIu(27, mod, ev.Action, flags)
	case KeyRune:
		return kittyCSIu(int(ev.Rune), mod, ev.Action, flags)
	}
	return nil
}

func kittyArrow(ev KeyEvent, mod int, flags KeyReportingFlags) []byte {
	final := legacyArrowFinal[ev.Code]
	if mod == 1 && ev.Action == KeyPress && !flags.ReportEvents {
		return []byte{0x1B, '[', final}
	}
	out := "\x1b[1;" + itoa(mod)
	out += actionSuffix(ev.Action, flags)
	return []byte(out + string(final))
}

func kittyCSIu(code, mod int, action KeyAction, flags KeyReportingFlags) []byte {
	out := "\x1b[" + itoa(code)
	if mod != 1 || (action != KeyPress && flags.ReportEvents) {
		out += ";" + itoa(mod)
		out += actionSuffix(action, flags)
	}
	return []byte(out + "u")
}

func actionSuffix(action KeyAction, flags KeyReportingFlags) string {
	if !flags.ReportEvents || action == KeyPress {
		return ""
	}
	switch action {
	case KeyRepeat:
		return ":2"
	case KeyRelease:
		return ":3"
	}
	return ""
}

func encodeLegacyKey(ev KeyEvent, modes Modes) []byte {
	switch ev.Code {
	case KeyUp:
		return legacyCursorKey(modes, 'A')
	case KeyDown:
		return legacyCursorKey(modes, 'B')
	case KeyRight:
		return legacyCursorKey(modes, 'C')
	case KeyLeft:
		return legacyCursorKey(modes, 'D')
	case KeyHome:
		return []byte("\x1b[H")
	case KeyEnd:
		return []byte("\x1b[F")
	case KeyPageUp:
		return []byte("\x1b[5~")
	case KeyPageDown:
		return []byte("\x1b[6~")
	case KeyInsert:
		return []byte("\x1b[2~")
	case KeyDelete:
		return []byte("\x1b[3~")
	case KeyBackspace:
		return []byte{0x7F}
	case KeyTab:
		if ev.Modifiers&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte{0x09}
	case KeyEnter:
		return []byte{0x0D}
	case KeyEscape:
		return []byte{0x1B}
	case KeyF1, KeyF2, KeyF3, KeyF4:
		return []byte{0x1B, 'O', byte('P' + int(ev.Code-KeyF1))}
	case KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		codes := map[KeyCode]string{
			KeyF5: "15", KeyF6: "17", KeyF7: "18", KeyF8: "19",
			KeyF9: "20", KeyF10: "21", KeyF11: "23", KeyF12: "24",
		}
		return []byte("\x1b[" + codes[ev.Code] + "~")
	case KeyRune:
		if ev.Modifiers&ModCtrl != 0 {
			if b := ctrlEncode(ev.Rune); b >= 0 {
				return []byte{byte(b)}
			}
		}
		if ev.Modifiers&ModAlt != 0 {
			return append([]byte{0x1B}, []byte(string(ev.Rune))...)
		}
		return []byte(string(ev.Rune))
	}
	return nil
}

func legacyCursorKey(modes Modes, final byte) []byte {
	if modes.ApplicationCursorKeys {
		return []byte{0x1B, 'O', final}
	}
	return []byte{0x1B, '[', final}
}

func ctrlEncode(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 1
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 1
	case r == '?':
		return 0x7F
	case r == ' ':
		return 0
	}
	return -1
}
