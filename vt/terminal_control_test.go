package vt

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestOSCSetsWindowTitle(t *testing.T) {
	term := NewTerminal(2, 2)
	feed(term, "\x1b]2;my title\x1b\\")
	if term.Title() != "my title" {
		t.Errorf("Title() = %q, want %q", term.Title(), "my title")
	}
}

func TestOSC52SetClipboardProducesOutgoingEvent(t *testing.T) {
	term := NewTerminal(2, 2)
	payload := base64.StdEncoding.EncodeToString([]byte("copied text"))
	feed(term, "\x1b]52;c;"+payload+"\x1b\\")
	events := term.TakeOutgoingEvents()
	if len(events) != 1 || events[0].Kind != OutgoingSetClipboard {
		t.Fatalf("expected one OutgoingSetClipboard event, got %+v", events)
	}
	if string(events[0].Data) != "copied text" {
		t.Errorf("clipboard payload = %q", events[0].Data)
	}
}

func TestOSC52ReadRequestIsUnanswered(t *testing.T) {
	term := NewTerminal(2, 2)
	feed(term, "\x1b]52;c;?\x1b\\")
	if events := term.TakeOutgoingEvents(); len(events) != 0 {
		t.Errorf("OSC 52 read request should produce no outgoing event, got %+v", events)
	}
}

func TestDECRQSSRepliesWithCurrentSGR(t *testing.T) {
	term := NewTerminal(2, 2)
	feed(term, "\x1b[1m")     // bold
	feed(term, "\x1bP$q m\x1b\\") // DECRQSS for SGR
	events := term.TakeOutgoingEvents()
	if len(events) != 1 {
		t.Fatalf("expected one device reply, got %+v", events)
	}
	reply := string(events[0].Data)
	if !strings.HasPrefix(reply, "\x1bP1$r") || !strings.Contains(reply, "1") {
		t.Errorf("unexpected DECRQSS reply: %q", reply)
	}
}

func TestDECALNFillsScreenWithE(t *testing.T) {
	term := NewTerminal(2, 2)
	feed(term, "\x1b#8")
	if term.Row(0)[0].Ch != 'E' || term.Row(1)[1].Ch != 'E' {
		t.Errorf("DECALN should fill every cell with 'E'")
	}
}

func TestFullResetClearsGridAndModes(t *testing.T) {
	term := NewTerminal(2, 2)
	feed(term, "ab")
	feed(term, "\x1b[1m") // bold
	feed(term, "\x1bc")   // RIS
	if term.Row(0)[0].Ch != ' ' {
		t.Errorf("full reset should clear the grid")
	}
	if term.SGR() != (GraphicsRendition{}) {
		t.Errorf("full reset should clear SGR state")
	}
}
