package input

import (
	"testing"

	"github.com/ColeTrammer/ttx/vt"
)

func TestFeedPlainKeypress(t *testing.T) {
	p := NewTerminalInputParser()
	events := p.Feed([]byte("a"))
	if len(events) != 1 || events[0].Kind != vt.EventPrintable || events[0].CodePoint != 'a' {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestFeedExtractsBracketedPaste(t *testing.T) {
	p := NewTerminalInputParser()
	events := p.Feed([]byte("\x1b[200~hello\x1b[201~"))
	if len(events) != 1 || events[0].Kind != vt.EventAPC {
		t.Fatalf("expected a single APC paste event, got %+v", events)
	}
	if string(events[0].Data) != "hello" {
		t.Errorf("paste payload = %q, want %q", events[0].Data, "hello")
	}
}

func TestFeedPasteSplitAcrossReads(t *testing.T) {
	p := NewTerminalInputParser()
	first := p.Feed([]byte("\x1b[200~par"))
	if len(first) != 0 {
		t.Fatalf("expected no events before the paste end marker arrives, got %+v", first)
	}
	second := p.Feed([]byte("tial\x1b[201~"))
	if len(second) != 1 || string(second[0].Data) != "partial" {
		t.Fatalf("expected the full paste reassembled across reads, got %+v", second)
	}
}

func TestFeedPasteDoesNotMisfireAsKeypress(t *testing.T) {
	p := NewTerminalInputParser()
	// A pasted arrow-key escape sequence must stay inside the paste's raw
	// APC payload, never reach the escape-sequence parser, and so never be
	// reported as a decoded EventCSI keypress.
	events := p.Feed([]byte("\x1b[200~\x1b[A\x1b[201~"))
	if len(events) != 1 || events[0].Kind != vt.EventAPC {
		t.Fatalf("expected the pasted bytes wrapped as a single APC event, got %+v", events)
	}
	if string(events[0].Data) != "\x1b[A" {
		t.Fatalf("paste payload = %q, want the raw escape sequence bytes", events[0].Data)
	}
}

func TestFeedFlushesLoneEscapeImmediately(t *testing.T) {
	p := NewTerminalInputParser()
	events := p.Feed([]byte{0x1B})
	if len(events) != 1 || events[0].Kind != vt.EventControl || events[0].CodePoint != 0x1B {
		t.Fatalf("a lone ESC in one read should flush as EventControl, got %+v", events)
	}
}
