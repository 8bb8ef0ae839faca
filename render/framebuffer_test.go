package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ColeTrammer/ttx/vt"
)

func TestFinishFirstFrameIsFullRepaint(t *testing.T) {
	var buf bytes.Buffer
	fb := NewFrameBuffer(&buf, 2, 5)
	fb.Start()
	fb.SetBound(0, 0)
	fb.PutText(0, 0, []vt.Cell{{Ch: 'h'}, {Ch: 'i'}})
	if err := fb.Finish(0, 2, true, vt.CursorStyleSteadyBlock); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b[2J") {
		t.Errorf("first frame should clear the screen, got %q", out)
	}
	if !strings.Contains(out, "hi") {
		t.Errorf("expected painted text in output, got %q", out)
	}
}

func TestFinishSkipsUnchangedRows(t *testing.T) {
	var buf bytes.Buffer
	fb := NewFrameBuffer(&buf, 2, 5)

	fb.Start()
	fb.SetBound(0, 0)
	fb.PutText(0, 0, []vt.Cell{{Ch: 'a'}})
	fb.PutText(1, 0, []vt.Cell{{Ch: 'b'}})
	if err := fb.Finish(0, 0, true, vt.CursorStyleSteadyBlock); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	fb.Start()
	fb.SetBound(0, 0)
	fb.PutText(0, 0, []vt.Cell{{Ch: 'a'}}) // row 0 unchanged
	fb.PutText(1, 0, []vt.Cell{{Ch: 'c'}}) // row 1 changed
	if err := fb.Finish(0, 0, true, vt.CursorStyleSteadyBlock); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Contains(out, "a") {
		t.Errorf("unchanged row 0 should not be repainted, got %q", out)
	}
	if !strings.Contains(out, "c") {
		t.Errorf("changed row should be repainted, got %q", out)
	}
	if !strings.Contains(out, "\x1b[2;1H") {
		t.Errorf("expected a cursor move to row 2, got %q", out)
	}
}

func TestFinishSkipsWidePlaceholderColumn(t *testing.T) {
	var buf bytes.Buffer
	fb := NewFrameBuffer(&buf, 1, 4)
	fb.Start()
	fb.SetBound(0, 0)
	fb.PutCell(0, 0, vt.Cell{Ch: '中'})
	fb.PutCell(0, 1, vt.Cell{WidePlaceholder: true})
	if err := fb.Finish(0, 0, false, vt.CursorStyleSteadyBlock); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "中") != 1 {
		t.Errorf("expected the wide rune written exactly once, got %q", out)
	}
}

func TestFinishCoalescesSGRAcrossUnchangedRun(t *testing.T) {
	var buf bytes.Buffer
	fb := NewFrameBuffer(&buf, 1, 3)
	fb.Start()
	fb.SetBound(0, 0)
	bold := vt.GraphicsRendition{Weight: vt.WeightBold}
	fb.PutCell(0, 0, vt.Cell{Ch: 'a', Rendition: bold})
	fb.PutCell(0, 1, vt.Cell{Ch: 'b', Rendition: bold})
	fb.PutCell(0, 2, vt.Cell{Ch: 'c', Rendition: bold})
	if err := fb.Finish(0, 0, false, vt.CursorStyleSteadyBlock); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "\x1b[0;1m") > 1 {
		t.Errorf("same SGR across a contiguous run should be emitted once, got %q", out)
	}
}
