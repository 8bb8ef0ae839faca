// Package pane owns one PTY-backed child process and the vt.Terminal
// that models its screen, mirroring the reader/waiter goroutine split
// the original ttx pane used, adapted from texelterm's pty.StartWithSize
// + background reader loop.
package pane

import (
	"bufio"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"

	"github.com/ColeTrammer/ttx/vt"
)

const readBufferSize = 16 * 1024

// Pane owns one PTY controller file, one vt.Terminal (guarded by mu),
// and the goroutines that keep the terminal in sync with the child.
type Pane struct {
	mu sync.Mutex

	id       int
	terminal *vt.Terminal
	parser   *vt.Parser

	ptmx *os.File
	cmd  *exec.Cmd

	title string

	selection Selection

	done        chan struct{}
	onExit      func(*Pane)
	onOutput    func(*Pane)
	onSelection func(*Pane, []byte)

	closeOnce sync.Once
}

// Selection models a pane-local text selection, in visible-grid
// coordinates (row/col pairs), used by copy-mode and mouse drag.
type Selection struct {
	Active             bool
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Coordinate is a single visible-grid row/col position.
type Coordinate struct {
	Row, Col int
}

func coordLess(a, b Coordinate) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// InSelection reports whether coord falls lexicographically within
// [min(start,end), max(start,end)), i.e. the start endpoint is inside
// the selection but the end endpoint is not.
func (s Selection) InSelection(coord Coordinate) bool {
	if !s.Active {
		return false
	}
	start := Coordinate{Row: s.StartRow, Col: s.StartCol}
	end := Coordinate{Row: s.EndRow, Col: s.EndCol}
	if coordLess(end, start) {
		start, end = end, start
	}
	return !coordLess(coord, start) && coordLess(coord, end)
}

// Spawn starts command (argv[0] plus any args) attached to a new PTY
// sized rows x cols, and begins reading its output into a fresh
// vt.Terminal. onOutput, if non-nil, is called (off the reader goroutine
// is fine; callers must not block) whenever new output has been applied
// to the terminal. onExit is called once the child exits.
func Spawn(id int, command []string, rows, cols int, extraEnv []string, onOutput, onExit func(*Pane)) (*Pane, error) {
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Env = append(append([]string{}, os.Environ()...), extraEnv...)
	cmd.Env = append(cmd.Env, "TERM=xterm-256color", "COLORTERM=truecolor")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}

	p := &Pane{
		id:       id,
		terminal: vt.NewTerminal(rows, cols),
		parser:   vt.NewParser(vt.ModeApplication),
		ptmx:     ptmx,
		cmd:      cmd,
		done:     make(chan struct{}),
		onOutput: onOutput,
		onExit:   onExit,
	}

	go p.readLoop()
	go p.waitLoop()

	return p, nil
}

func (p *Pane) readLoop() {
	reader := bufio.NewReaderSize(p.ptmx, readBufferSize)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			if err != io.EOF {
				log.Printf("pane %d: read error: %v", p.id, err)
			}
			return
		}

		p.mu.Lock()
		events := p.parser.Feed(r)
		if len(events) > 0 {
			p.terminal.OnParserEvents(events)
		}
		outgoing := p.terminal.TakeOutgoingEvents()
		p.mu.Unlock()

		p.handleOutgoing(outgoing)

		if p.onOutput != nil {
			p.onOutput(p)
		}
	}
}

func (p *Pane) handleOutgoing(events []vt.OutgoingEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case vt.OutgoingDeviceReply:
			if _, err := p.ptmx.Write(ev.Data); err != nil {
				log.Printf("pane %d: write device reply: %v", p.id, err)
			}
		case vt.OutgoingSetClipboard:
			// The supervisor owns the system clipboard; hand the decoded
			// payload to it through the same callback a finished mouse
			// selection uses.
			p.mu.Lock()
			onSelection := p.onSelection
			p.mu.Unlock()
			if onSelection != nil {
				onSelection(p, ev.Data)
			}
		}
	}
}

func (p *Pane) waitLoop() {
	err := p.cmd.Wait()
	if err != nil {
		log.Printf("pane %d: process exited: %v", p.id, err)
	}
	p.closeOnce.Do(func() { close(p.done) })
	if p.onExit != nil {
		p.onExit(p)
	}
}

// ID returns the pane's supervisor-assigned identifier.
func (p *Pane) ID() int { return p.id }

// SetOnSelection installs the callback invoked with the assembled
// selection text when a mouse drag finishes over this pane, and with the
// payload of each OSC 52 clipboard set the child sends (the original's
// did_selection, spec.md §4.G).
func (p *Pane) SetOnSelection(fn func(*Pane, []byte)) {
	p.mu.Lock()
	p.onSelection = fn
	p.mu.Unlock()
}

// Terminal returns the pane's terminal, for read-only access. Callers
// that mutate terminal state must hold WithTerminal instead.
func (p *Pane) Terminal() *vt.Terminal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminal
}

// WithTerminal runs fn with the pane's mutex held, so fn can safely read
// or mutate terminal state (e.g. to render a frame) without racing the
// reader goroutine.
func (p *Pane) WithTerminal(fn func(*vt.Terminal)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.terminal)
}

// Write sends bytes to the child (keyboard/mouse/paste input already
// encoded by the vt event encoders).
func (p *Pane) Write(b []byte) error {
	_, err := p.ptmx.Write(b)
	return err
}

// Resize propagates a new size to both the PTY (so the child's ioctl
// queries and SIGWINCH see it) and the terminal grid. pxWidth/pxHeight
// are this pane's proportional share of the host terminal's real pixel
// geometry (0 if unknown, in which case the terminal synthesizes one).
func (p *Pane) Resize(rows, cols, pxWidth, pxHeight int) error {
	p.mu.Lock()
	p.terminal.ResizeWithPixels(rows, cols, pxWidth, pxHeight)
	p.mu.Unlock()
	return pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: uint16(rows), Cols: uint16(cols),
		X: uint16(pxWidth), Y: uint16(pxHeight),
	})
}

// Selection returns a copy of the current selection state.
func (p *Pane) Selection() Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selection
}

// SetSelection replaces the current selection state.
func (p *Pane) SetSelection(s Selection) {
	p.mu.Lock()
	p.selection = s
	p.mu.Unlock()
}

// ClearSelection drops any active selection.
func (p *Pane) ClearSelection() {
	p.SetSelection(Selection{})
}

// SelectionText assembles the text currently covered by the pane's
// selection, one visible-grid row at a time, trimming trailing
// whitespace off each line and joining lines with "\n". Returns "" if
// there is no active selection.
func (p *Pane) SelectionText() string {
	sel := p.Selection()
	if !sel.Active {
		return ""
	}
	start := Coordinate{Row: sel.StartRow, Col: sel.StartCol}
	end := Coordinate{Row: sel.EndRow, Col: sel.EndCol}
	if coordLess(end, start) {
		start, end = end, start
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var lines []string
	for r := start.Row; r <= end.Row; r++ {
		row := p.terminal.Row(r)
		from, to := 0, len(row)-1
		if r == start.Row {
			from = start.Col
		}
		if r == end.Row {
			to = end.Col - 1
		}
		if to < from {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, strings.TrimRight(row.TextRange(from, to), " "))
	}
	return strings.Join(lines, "\n")
}

// Done returns a channel closed once the child process has exited.
func (p *Pane) Done() <-chan struct{} { return p.done }

// KeyEvent delivers a decoded keystroke to the child, per spec.md
// §4.G's event() dispatch: any keypress clears an in-progress
// selection before being encoded and written.
func (p *Pane) KeyEvent(ev vt.KeyEvent) {
	p.ClearSelection()
	var modes vt.Modes
	p.WithTerminal(func(t *vt.Terminal) { modes = t.Modes() })
	if b := vt.EncodeKeyEvent(ev, modes); b != nil {
		p.Write(b)
	}
}

// MouseEvent delivers a decoded pointer event, per spec.md §4.G. If the
// active mouse protocol would report the event, it is encoded and sent
// to the child. Otherwise a wheel event either pages the viewport's
// scrollback (the default) or is translated to an arrow keypress (when
// the child has opted into alternate-scroll-as-arrows inside the
// alternate screen buffer), and a Left-button drag drives local text
// selection, finalizing into onSelection on release.
func (p *Pane) MouseEvent(ev vt.MouseEvent) {
	var modes vt.Modes
	p.WithTerminal(func(t *vt.Terminal) { modes = t.Modes() })

	if b := vt.EncodeMouseEvent(ev, modes); b != nil {
		p.Write(b)
		return
	}

	if ev.Button == vt.MouseWheelUp || ev.Button == vt.MouseWheelDown {
		if ev.Action != vt.MousePress {
			return
		}
		if modes.AlternateScrollMode && modes.InAlternateScreenBuffer {
			code := vt.KeyDown
			if ev.Button == vt.MouseWheelUp {
				code = vt.KeyUp
			}
			if b := vt.EncodeKeyEvent(vt.KeyEvent{Code: code}, modes); b != nil {
				p.Write(b)
			}
			return
		}
		p.WithTerminal(func(t *vt.Terminal) {
			if ev.Button == vt.MouseWheelUp {
				t.ScrollUp()
			} else {
				t.ScrollDown()
			}
		})
		return
	}

	if ev.Button != vt.MouseButtonLeft {
		p.ClearSelection()
		return
	}

	coord := Coordinate{Row: ev.Row - 1, Col: ev.Col - 1}
	switch ev.Action {
	case vt.MousePress:
		p.SetSelection(Selection{Active: true, StartRow: coord.Row, StartCol: coord.Col, EndRow: coord.Row, EndCol: coord.Col})
	case vt.MouseMotion:
		p.mu.Lock()
		if p.selection.Active {
			p.selection.EndRow, p.selection.EndCol = coord.Row, coord.Col
		}
		p.mu.Unlock()
	case vt.MouseRelease:
		p.mu.Lock()
		if p.selection.Active {
			p.selection.EndRow, p.selection.EndCol = coord.Row, coord.Col
		}
		active := p.selection.Active
		onSelection := p.onSelection
		p.mu.Unlock()
		if active {
			if text := p.SelectionText(); text != "" && onSelection != nil {
				onSelection(p, []byte(text))
			}
			p.ClearSelection()
		}
	}
}

// FocusEvent delivers a host focus gain/loss to the child, if the
// child has requested focus reporting.
func (p *Pane) FocusEvent(ev vt.FocusEvent) {
	var modes vt.Modes
	p.WithTerminal(func(t *vt.Terminal) { modes = t.Modes() })
	if b := vt.EncodeFocusEvent(ev, modes); b != nil {
		p.Write(b)
	}
}

// PasteEvent delivers pasted text to the child, wrapped in bracketed
// paste markers if the child has requested them.
func (p *Pane) PasteEvent(ev vt.PasteEvent) {
	var modes vt.Modes
	p.WithTerminal(func(t *vt.Terminal) { modes = t.Modes() })
	p.Write(vt.EncodePasteEvent(ev, modes))
}

// Close terminates the child (SIGHUP via PTY close, per the original
// pane's teardown) and waits until the waiter goroutine has seen the
// child exit; it does not wait for the reader goroutine.
func (p *Pane) Close() error {
	err := p.ptmx.Close()
	<-p.done
	return err
}
