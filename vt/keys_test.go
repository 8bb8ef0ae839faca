package vt

import "testing"

func TestEncodeKeyEventLegacyArrow(t *testing.T) {
	got := EncodeKeyEvent(KeyEvent{Code: KeyUp}, Modes{})
	if string(got) != "\x1b[A" {
		t.Errorf("legacy up arrow = %q, want %q", got, "\x1b[A")
	}
}

func TestEncodeKeyEventApplicationCursorKeys(t *testing.T) {
	got := EncodeKeyEvent(KeyEvent{Code: KeyUp}, Modes{ApplicationCursorKeys: true})
	if string(got) != "\x1bOA" {
		t.Errorf("application-mode up arrow = %q, want %q", got, "\x1bOA")
	}
}

func TestEncodeKeyEventCtrlRune(t *testing.T) {
	got := EncodeKeyEvent(KeyEvent{Code: KeyRune, Rune: 'a', Modifiers: ModCtrl}, Modes{})
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("Ctrl+A = %v, want [1]", got)
	}
}

func TestEncodeKeyEventKittyDisambiguate(t *testing.T) {
	modes := Modes{KeyFlags: KeyReportingFlags{Disambiguate: true}}
	got := EncodeKeyEvent(KeyEvent{Code: KeyRune, Rune: 'a'}, modes)
	if string(got) != "\x1b[97u" {
		t.Errorf("kitty plain 'a' = %q, want %q", got, "\x1b[97u")
	}
}

func TestEncodeKeyEventKittyFunctionalKey(t *testing.T) {
	modes := Modes{KeyFlags: KeyReportingFlags{Disambiguate: true}}
	got := EncodeKeyEvent(KeyEvent{Code: KeyF1}, modes)
	if string(got) != "\x1b[11u" {
		t.Errorf("kitty F1 = %q, want %q", got, "\x1b[11u")
	}
}

func TestEncodeKeyEventReleaseDroppedWithoutReportEvents(t *testing.T) {
	got := EncodeKeyEvent(KeyEvent{Code: KeyRune, Rune: 'a', Action: KeyRelease}, Modes{})
	if got != nil {
		t.Errorf("release without ReportEvents should be dropped, got %q", got)
	}
}
