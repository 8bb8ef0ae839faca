package vt

import "testing"

func TestEncodeMouseEventSGR(t *testing.T) {
	modes := Modes{MouseProtocol: MouseProtocolVT200, MouseEncoding: MouseEncodingSGR}
	ev := MouseEvent{Button: MouseButtonLeft, Action: MousePress, Row: 5, Col: 10}
	got := EncodeMouseEvent(ev, modes)
	if string(got) != "\x1b[<0;10;5M" {
		t.Errorf("SGR press = %q, want %q", got, "\x1b[<0;10;5M")
	}
}

func TestEncodeMouseEventSGRRelease(t *testing.T) {
	modes := Modes{MouseProtocol: MouseProtocolVT200, MouseEncoding: MouseEncodingSGR}
	ev := MouseEvent{Button: MouseButtonLeft, Action: MouseRelease, Row: 1, Col: 1}
	got := EncodeMouseEvent(ev, modes)
	if string(got) != "\x1b[<0;1;1m" {
		t.Errorf("SGR release = %q, want %q", got, "\x1b[<0;1;1m")
	}
}

func TestEncodeMouseEventNoneProtocolSuppressesEverything(t *testing.T) {
	modes := Modes{MouseProtocol: MouseProtocolNone}
	ev := MouseEvent{Button: MouseButtonLeft, Action: MousePress, Row: 1, Col: 1}
	if got := EncodeMouseEvent(ev, modes); got != nil {
		t.Errorf("MouseProtocolNone should report nothing, got %q", got)
	}
}

func TestEncodeMouseEventX10ProtocolIgnoresMotion(t *testing.T) {
	modes := Modes{MouseProtocol: MouseProtocolX10, MouseEncoding: MouseEncodingSGR}
	ev := MouseEvent{Action: MouseMotion, Row: 1, Col: 1}
	if got := EncodeMouseEvent(ev, modes); got != nil {
		t.Errorf("X10 protocol should not report motion, got %q", got)
	}
}

func TestEncodeFocusEvent(t *testing.T) {
	modes := Modes{FocusEventMode: true}
	if got := EncodeFocusEvent(FocusEvent{Focused: true}, modes); string(got) != "\x1b[I" {
		t.Errorf("focus-in = %q, want %q", got, "\x1b[I")
	}
	if got := EncodeFocusEvent(FocusEvent{Focused: false}, modes); string(got) != "\x1b[O" {
		t.Errorf("focus-out = %q, want %q", got, "\x1b[O")
	}
	if got := EncodeFocusEvent(FocusEvent{Focused: true}, Modes{}); got != nil {
		t.Errorf("focus events should be suppressed when FocusEventMode is off, got %q", got)
	}
}

func TestEncodePasteEventBracketed(t *testing.T) {
	modes := Modes{BracketedPasteMode: true}
	got := EncodePasteEvent(PasteEvent{Text: "hi"}, modes)
	if string(got) != "\x1b[200~hi\x1b[201~" {
		t.Errorf("bracketed paste = %q", got)
	}
	if got := EncodePasteEvent(PasteEvent{Text: "hi"}, Modes{}); string(got) != "hi" {
		t.Errorf("unbracketed paste should pass text through unchanged, got %q", got)
	}
}
