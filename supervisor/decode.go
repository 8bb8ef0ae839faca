package supervisor

import "github.com/ColeTrammer/ttx/vt"

var csiArrowKey = map[byte]vt.KeyCode{
	'A': vt.KeyUp, 'B': vt.KeyDown, 'C': vt.KeyRight, 'D': vt.KeyLeft,
	'H': vt.KeyHome, 'F': vt.KeyEnd,
}

var ss3Key = map[byte]vt.KeyCode{
	'A': vt.KeyUp, 'B': vt.KeyDown, 'C': vt.KeyRight, 'D': vt.KeyLeft,
	'H': vt.KeyHome, 'F': vt.KeyEnd,
	'P': vt.KeyF1, 'Q': vt.KeyF2, 'R': vt.KeyF3, 'S': vt.KeyF4,
}

var tildeKey = map[uint32]vt.KeyCode{
	2: vt.KeyInsert, 3: vt.KeyDelete, 5: vt.KeyPageUp, 6: vt.KeyPageDown,
	15: vt.KeyF5, 17: vt.KeyF6, 18: vt.KeyF7, 19: vt.KeyF8,
	20: vt.KeyF9, 21: vt.KeyF10, 23: vt.KeyF11, 24: vt.KeyF12,
}

// decodeHostEvent turns one escape-sequence-parser Event, decoded from
// the host terminal's own keyboard encoding, into a logical KeyEvent.
// It is a method (not a free function) because a bare "ESC O" is a
// complete Escape event on its own terms (O is a valid final byte) and
// the SS3 letter that actually names the key arrives as a separate
// event right after it; decoding it correctly requires carrying that
// "awaiting an SS3 letter" state across calls.
func (s *Supervisor) decodeHostEvent(ev vt.Event) (vt.KeyEvent, bool) {
	if s.ss3Pending {
		s.ss3Pending = false
		if code, ok := ss3Key[byte(ev.CodePoint)]; ok && ev.Kind == vt.EventPrintable {
			return vt.KeyEvent{Code: code}, true
		}
		// Not a recognized SS3 letter: fall through and decode ev normally.
	}

	switch ev.Kind {
	case vt.EventPrintable:
		return vt.KeyEvent{Code: vt.KeyRune, Rune: ev.CodePoint}, true

	case vt.EventControl:
		return decodeControl(ev.CodePoint)

	case vt.EventEscape:
		if ev.Intermediate == 0 && ev.Terminator == 'O' {
			s.ss3Pending = true
			return vt.KeyEvent{}, false
		}
		if ev.Terminator >= 'a' && ev.Terminator <= 'z' {
			return vt.KeyEvent{Code: vt.KeyRune, Rune: rune(ev.Terminator), Modifiers: vt.ModAlt}, true
		}
		return vt.KeyEvent{}, false

	case vt.EventCSI:
		return decodeCSI(ev)
	}
	return vt.KeyEvent{}, false
}

func decodeControl(cp rune) (vt.KeyEvent, bool) {
	switch cp {
	case 0x1B:
		return vt.KeyEvent{Code: vt.KeyEscape}, true
	case 0x0D:
		return vt.KeyEvent{Code: vt.KeyEnter}, true
	case 0x09:
		return vt.KeyEvent{Code: vt.KeyTab}, true
	case 0x7F, 0x08:
		return vt.KeyEvent{Code: vt.KeyBackspace}, true
	}
	if cp >= 1 && cp <= 26 {
		return vt.KeyEvent{Code: vt.KeyRune, Rune: cp, Modifiers: vt.ModCtrl}, true
	}
	return vt.KeyEvent{}, false
}

func decodeCSI(ev vt.Event) (vt.KeyEvent, bool) {
	mods := modsFromParam(ev.Params.Get(1, 1))

	if code, ok := csiArrowKey[ev.Terminator]; ok {
		return vt.KeyEvent{Code: code, Modifiers: mods}, true
	}
	if ev.Terminator == '~' {
		if code, ok := tildeKey[ev.Params.Get(0, 0)]; ok {
			return vt.KeyEvent{Code: code, Modifiers: mods}, true
		}
	}
	if ev.Terminator == 'Z' {
		return vt.KeyEvent{Code: vt.KeyTab, Modifiers: vt.ModShift}, true
	}
	if ev.Terminator == 'u' && ev.Intermediate == 0 {
		// Kitty-protocol plain keypress report: CSI codepoint ; mod u.
		r := rune(ev.Params.Get(0, 0))
		if r != 0 {
			return vt.KeyEvent{Code: vt.KeyRune, Rune: r, Modifiers: mods}, true
		}
	}
	return vt.KeyEvent{}, false
}

func modsFromParam(v uint32) vt.KeyModifiers {
	if v <= 1 {
		return 0
	}
	return vt.KeyModifiers(v - 1)
}
