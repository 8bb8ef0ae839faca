package vt

import "testing"

// feed runs s through a fresh application-mode parser straight into the
// terminal's control dispatch, the same path Pane.readLoop uses.
func feed(term *Terminal, s string) {
	p := NewParser(ModeApplication)
	for _, r := range s {
		term.OnParserEvents(p.Feed(r))
	}
}

func TestPrintWrapsAtLineEnd(t *testing.T) {
	term := NewTerminal(3, 4)
	feed(term, "abcd")
	row, col, overflow := term.Cursor()
	if row != 0 || col != 3 || !overflow {
		t.Fatalf("after filling the line: row=%d col=%d overflow=%v", row, col, overflow)
	}
	feed(term, "e")
	row, col, _ = term.Cursor()
	if row != 1 || col != 1 {
		t.Fatalf("next printable should wrap to next line: row=%d col=%d", row, col)
	}
	if term.Row(0)[3].Ch != 'd' || term.Row(1)[0].Ch != 'e' {
		t.Fatalf("unexpected grid contents: row0=%q row1=%q", string(term.Row(0)[3].Ch), string(term.Row(1)[0].Ch))
	}
}

func TestPrintCombinesZeroWidthDiacritic(t *testing.T) {
	term := NewTerminal(3, 10)
	feed(term, "é") // e + combining acute accent
	cell := term.Row(0)[0]
	if cell.Ch != 'e' {
		t.Fatalf("base cell should keep 'e', got %q", string(cell.Ch))
	}
	if len(cell.Combining) != 1 || cell.Combining[0] != '́' {
		t.Fatalf("expected combining mark folded onto base cell, got %+v", cell.Combining)
	}
	_, col, _ := term.Cursor()
	if col != 1 {
		t.Errorf("zero-width mark should not advance the cursor, col=%d", col)
	}
}

func TestInsertLinesWithinScrollRegion(t *testing.T) {
	term := NewTerminal(5, 4)
	feed(term, "1\r\n2\r\n3\r\n4\r\n5")
	feed(term, "\x1b[2;4r") // DECSTBM rows 2-4 (1-based)
	feed(term, "\x1b[2;1H") // move into the region
	feed(term, "\x1b[1L")  // IL 1: insert a blank line at row 2 (0-based row 1)

	if term.Row(1)[0].Ch != ' ' {
		t.Errorf("inserted line should be blank, got %q", string(term.Row(1)[0].Ch))
	}
	// row that was "3" (0-based row 2) should have shifted down to row 3.
	if term.Row(3)[0].Ch != '3' {
		t.Errorf("row below the insertion point should have shifted down, got %q at row 3", string(term.Row(3)[0].Ch))
	}
	// row 0 and row 4 are outside the scroll region and untouched.
	if term.Row(0)[0].Ch != '1' {
		t.Errorf("row above the scroll region must be untouched, got %q", string(term.Row(0)[0].Ch))
	}
}

func TestAlternateScreenBufferRoundTrip(t *testing.T) {
	term := NewTerminal(3, 5)
	feed(term, "main")
	feed(term, "\x1b[?1049h") // enter alt screen
	if !term.Modes().InAlternateScreenBuffer {
		t.Fatal("expected alternate screen buffer active")
	}
	if term.Row(0)[0].Ch != ' ' {
		t.Fatalf("alt screen should start blank, got %q", string(term.Row(0)[0].Ch))
	}
	feed(term, "alt")
	feed(term, "\x1b[?1049l") // leave alt screen
	if term.Modes().InAlternateScreenBuffer {
		t.Fatal("expected alternate screen buffer inactive after restore")
	}
	if term.Row(0)[0].Ch != 'm' {
		t.Fatalf("main screen content should be restored, got %q", string(term.Row(0)[0].Ch))
	}
}

func TestDECSTBMMovesCursorToOrigin(t *testing.T) {
	term := NewTerminal(10, 10)
	feed(term, "\x1b[5;3H") // move cursor away from origin first
	feed(term, "\x1b[2;8r") // DECSTBM
	row, col, _ := term.Cursor()
	if row != 0 || col != 0 {
		t.Errorf("DECSTBM should move cursor to (0,0), got (%d,%d)", row, col)
	}
}

func TestEraseInLineModes(t *testing.T) {
	term := NewTerminal(2, 5)
	feed(term, "abcde")
	feed(term, "\x1b[3G")   // CHA to column 3 (1-based)
	feed(term, "\x1b[0K")   // erase cursor..end
	row := term.Row(0)
	if row[0].Ch != 'a' || row[1].Ch != 'b' || row[2].Ch != ' ' {
		t.Fatalf("unexpected row after EL 0: %q%q%q", string(row[0].Ch), string(row[1].Ch), string(row[2].Ch))
	}
}

func TestCursorStyleDefaultsToSteadyBlock(t *testing.T) {
	term := NewTerminal(2, 2)
	if term.CursorStyle() != CursorStyleSteadyBlock {
		t.Errorf("default cursor style should be steady block, got %v", term.CursorStyle())
	}
}

func TestDECSCUSRZeroIsBlinkingBlock(t *testing.T) {
	term := NewTerminal(2, 2)
	feed(term, "\x1b[0 q")
	if term.CursorStyle() != CursorStyleBlinkingBlock {
		t.Errorf("DECSCUSR 0 should select blinking block, got %v", term.CursorStyle())
	}
}

func TestResizeGrowPullsFromScrollback(t *testing.T) {
	term := NewTerminal(2, 4)
	feed(term, "1\r\n2\r\n3") // scrolls "1" into rowsAbove
	term.Resize(3, 4)
	if term.Row(0)[0].Ch != '1' {
		t.Errorf("growing rows should pull history back in, got %q", string(term.Row(0)[0].Ch))
	}
}

func TestKittyKeyboardFlagPushPop(t *testing.T) {
	term := NewTerminal(2, 2)
	feed(term, "\x1b[>1u") // push Disambiguate
	feed(term, "\x1b[>2u") // push ReportEvents
	feed(term, "\x1b[<1u") // pop one level
	if len(term.keyFlagsStack) != 1 {
		t.Fatalf("expected 1 stack entry after one pop, got %d", len(term.keyFlagsStack))
	}
	if !term.keyFlagsStack[0].Disambiguate {
		t.Errorf("remaining entry should be the Disambiguate push")
	}
}
