package vt

import "testing"

func feedString(p *Parser, s string) []Event {
	var out []Event
	for _, r := range s {
		out = append(out, p.Feed(r)...)
	}
	return out
}

func TestParserPlainText(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "hi")
	if len(events) != 2 || events[0].Kind != EventPrintable || events[0].CodePoint != 'h' {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestParserCSIWithParams(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b[1;2H")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Kind != EventCSI || ev.Terminator != 'H' {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if got := ev.Params.Get(0, 0); got != 1 {
		t.Errorf("param 0 = %d, want 1", got)
	}
	if got := ev.Params.Get(1, 0); got != 2 {
		t.Errorf("param 1 = %d, want 2", got)
	}
}

func TestParserCSIPrivateMarker(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b[?25h")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Intermediate != '?' {
		t.Errorf("expected '?' marker, got %q", events[0].Intermediate)
	}
}

func TestParserOSCTerminatedByST(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b]0;title\x1b\\")
	if len(events) != 1 || events[0].Kind != EventOSC {
		t.Fatalf("unexpected events: %+v", events)
	}
	if string(events[0].Data) != "0;title" {
		t.Errorf("OSC data = %q", events[0].Data)
	}
}

func TestParserOSCTerminatedByBEL(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b]0;title\x07")
	if len(events) != 1 || events[0].Kind != EventOSC {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestParserDCSPassthrough(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1bP$q m\x1b\\")
	if len(events) != 1 || events[0].Kind != EventDCS {
		t.Fatalf("unexpected events: %+v", events)
	}
	if events[0].Terminator != 'q' {
		t.Errorf("terminator = %q, want 'q'", events[0].Terminator)
	}
	if string(events[0].Data) != " m" {
		t.Errorf("DCS data = %q", events[0].Data)
	}
}

func TestParserAPCCapturesData(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b_Gsomething\x1b\\")
	if len(events) != 1 || events[0].Kind != EventAPC {
		t.Fatalf("unexpected events: %+v", events)
	}
	if string(events[0].Data) != "Gsomething" {
		t.Errorf("APC data = %q", events[0].Data)
	}
}

// TestParserSS3SplitAcrossEvents documents the two-event SS3 shape (ESC O
// is itself a complete EventEscape since 'O' is a valid final byte; the
// function-key letter that follows arrives as a separate event), which
// the supervisor's decodeHostEvent must stitch back together.
func TestParserSS3SplitAcrossEvents(t *testing.T) {
	p := NewParser(ModeInput)
	events := feedString(p, "\x1bOP")
	if len(events) != 2 {
		t.Fatalf("expected 2 events for ESC O P, got %d: %+v", len(events), events)
	}
	if events[0].Kind != EventEscape || events[0].Terminator != 'O' {
		t.Fatalf("first event should be EventEscape{Terminator:'O'}, got %+v", events[0])
	}
	if events[1].Kind != EventPrintable || events[1].CodePoint != 'P' {
		t.Fatalf("second event should be EventPrintable 'P', got %+v", events[1])
	}
}

func TestParserFlushReportsLoneEscape(t *testing.T) {
	p := NewParser(ModeInput)
	p.Feed(0x1B)
	events := p.Flush()
	if len(events) != 1 || events[0].Kind != EventControl || events[0].CodePoint != 0x1B {
		t.Fatalf("Flush should report a lone ESC as EventControl, got %+v", events)
	}
}
