package pane

import (
	"testing"
	"time"

	"github.com/ColeTrammer/ttx/vt"
)

func TestSpawnEchoesOutputIntoTerminal(t *testing.T) {
	done := make(chan struct{}, 64)
	var gotOutput bool
	p, err := Spawn(1, []string{"cat"}, 24, 80, nil, func(*Pane) {
		gotOutput = true
		done <- struct{}{}
	}, nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer p.Close()

	if err := p.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pane output")
	}
	if !gotOutput {
		t.Fatal("onOutput was never called")
	}

	var found bool
	p.WithTerminal(func(term *vt.Terminal) {
		row := term.Row(0)
		if len(row) > 0 && row[0].Ch == 'h' {
			found = true
		}
	})
	if !found {
		t.Error("expected echoed text to appear in the terminal grid")
	}
}

func TestCloseSignalsDone(t *testing.T) {
	p, err := Spawn(2, []string{"cat"}, 10, 10, nil, nil, nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	p.Close()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Close should unblock Done()")
	}
}

func TestResizePropagatesToTerminal(t *testing.T) {
	p, err := Spawn(3, []string{"cat"}, 10, 10, nil, nil, nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer p.Close()

	if err := p.Resize(20, 30, 0, 0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	var rows, cols int
	p.WithTerminal(func(term *vt.Terminal) {
		rows, cols = term.RowCount(), term.ColCount()
	})
	if rows != 20 || cols != 30 {
		t.Errorf("terminal size after resize = %dx%d, want 20x30", rows, cols)
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	p, err := Spawn(4, []string{"cat"}, 5, 5, nil, nil, nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer p.Close()

	p.SetSelection(Selection{Active: true, StartRow: 1, StartCol: 2, EndRow: 3, EndCol: 4})
	got := p.Selection()
	if !got.Active || got.StartRow != 1 || got.EndCol != 4 {
		t.Errorf("unexpected selection after set: %+v", got)
	}
	p.ClearSelection()
	if p.Selection().Active {
		t.Error("ClearSelection should deactivate the selection")
	}
}
