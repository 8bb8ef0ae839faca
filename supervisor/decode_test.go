package supervisor

import (
	"testing"

	"github.com/ColeTrammer/ttx/vt"
)

func decodeOne(s *Supervisor, events []vt.Event) (vt.KeyEvent, bool) {
	var last vt.KeyEvent
	var ok bool
	for _, ev := range events {
		last, ok = s.decodeHostEvent(ev)
	}
	return last, ok
}

func TestDecodeControlCtrlA(t *testing.T) {
	s := &Supervisor{}
	p := vt.NewParser(vt.ModeInput)
	events := p.Feed(rune(prefixKey))
	events = append(events, p.Flush()...)
	key, ok := decodeOne(s, events)
	if !ok || key.Code != vt.KeyRune || key.Rune != prefixKey || key.Modifiers&vt.ModCtrl == 0 {
		t.Fatalf("unexpected decode of Ctrl+A: %+v ok=%v", key, ok)
	}
}

func TestDecodeSS3StitchesAcrossTwoEvents(t *testing.T) {
	s := &Supervisor{}
	p := vt.NewParser(vt.ModeInput)
	var events []vt.Event
	for _, r := range "\x1bOP" { // SS3 F1
		events = append(events, p.Feed(r)...)
	}
	events = append(events, p.Flush()...)
	if len(events) != 2 {
		t.Fatalf("expected the parser to split ESC O P into 2 events, got %d", len(events))
	}

	first, ok := s.decodeHostEvent(events[0])
	if ok {
		t.Fatalf("the bare ESC O half should not resolve to a key on its own, got %+v", first)
	}
	if !s.ss3Pending {
		t.Fatal("expected ss3Pending to be set after the ESC O half")
	}

	second, ok := s.decodeHostEvent(events[1])
	if !ok || second.Code != vt.KeyF1 {
		t.Fatalf("expected the second half to resolve to KeyF1, got %+v ok=%v", second, ok)
	}
	if s.ss3Pending {
		t.Fatal("ss3Pending should be cleared after resolving")
	}
}

func TestDecodeCSIArrowWithShiftModifier(t *testing.T) {
	s := &Supervisor{}
	p := vt.NewParser(vt.ModeInput)
	var events []vt.Event
	for _, r := range "\x1b[1;2A" { // Shift+Up
		events = append(events, p.Feed(r)...)
	}
	key, ok := decodeOne(s, events)
	if !ok || key.Code != vt.KeyUp || key.Modifiers != vt.ModShift {
		t.Fatalf("unexpected decode: %+v ok=%v", key, ok)
	}
}

func TestDecodeTildeFunctionKey(t *testing.T) {
	s := &Supervisor{}
	p := vt.NewParser(vt.ModeInput)
	var events []vt.Event
	for _, r := range "\x1b[3~" { // Delete
		events = append(events, p.Feed(r)...)
	}
	key, ok := decodeOne(s, events)
	if !ok || key.Code != vt.KeyDelete {
		t.Fatalf("unexpected decode: %+v ok=%v", key, ok)
	}
}
