// Package supervisor runs the top-level event loop: it owns the host
// terminal, the pane layout tree, the differential renderer, and the
// key-binding state machine that switches between sending keystrokes to
// the focused pane and interpreting them as pane-management commands,
// adapted from the teacher's Screen.Run/handleEvent loop.
package supervisor

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/ColeTrammer/ttx/input"
	"github.com/ColeTrammer/ttx/layout"
	"github.com/ColeTrammer/ttx/pane"
	"github.com/ColeTrammer/ttx/render"
	"github.com/ColeTrammer/ttx/vt"
)

// BindingMode is the key-binding state machine's current mode.
type BindingMode int

const (
	ModeInsert BindingMode = iota // keystrokes go to the focused pane
	ModeSwitch                    // the prefix key arrived; the next keystroke is a command
	ModeResize                    // arrow keys resize the focused pane's split until Escape/Enter
)

// prefixKey is Ctrl+A, matching the teacher's keySwitchPane binding.
const prefixKey = 0x01

const resizeStep = 0.05

// Supervisor owns the host terminal and every pane attached to it.
type Supervisor struct {
	mu sync.Mutex

	hostIn  *os.File
	hostOut *os.File
	oldState *term.State

	tree *layout.Tree
	fb   *render.FrameBuffer

	inputParser *input.TerminalInputParser

	mode       BindingMode
	ss3Pending bool

	nextPaneID int
	shellCmd   []string

	quit    chan struct{}
	refresh chan struct{}

	closeOnce sync.Once
}

// New creates a Supervisor that will run shellCmd in its first pane.
// Start must be called before Run.
func New(shellCmd []string) *Supervisor {
	return &Supervisor{
		hostIn:  os.Stdin,
		hostOut: os.Stdout,
		shellCmd: shellCmd,
		quit:    make(chan struct{}),
		refresh: make(chan struct{}, 1),
	}
}

// Start puts the host terminal into raw mode, spawns the first pane, and
// builds the initial layout tree and frame buffer. Run (or Close, on
// early failure) must be called afterward to restore the terminal.
func (s *Supervisor) Start() error {
	oldState, err := term.MakeRaw(int(s.hostIn.Fd()))
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	s.oldState = oldState

	cols, rows, pxW, pxH, err := querySize(s.hostOut)
	if err != nil {
		cols, rows, pxW, pxH = 80, 24, 0, 0
	}

	p, err := s.spawnPane(rows, cols)
	if err != nil {
		term.Restore(int(s.hostIn.Fd()), oldState)
		return err
	}

	s.tree = layout.NewTree(p)
	s.tree.Resize(0, 0, cols, rows, pxW, pxH)
	s.fb = render.NewFrameBuffer(s.hostOut, rows, cols)
	s.inputParser = input.NewTerminalInputParser()

	fmt.Fprint(s.hostOut, hostSetupSequence)

	return nil
}

// hostSetupSequence is the 7-step host-terminal setup emitted on Start,
// per spec.md §6 (step 1, raw mode, happens in Go via term.MakeRaw
// above rather than as an escape sequence). Close emits
// hostTeardownSequence, its exact reverse.
const hostSetupSequence = "" +
	"\x1b[?1049h\x1b[H\x1b[2J" + // 2: alternate buffer, home+clear
	"\x1b[?7l" + // 3: disable autowrap
	"\x1b[>31u" + // 4: push kitty keyboard flags
	"\x1b[?1003h\x1b[?1006h" + // 5: any-event mouse + SGR encoding
	"\x1b[?1004h" + // 6: focus events
	"\x1b[?2004h" // 7: bracketed paste

const hostTeardownSequence = "" +
	"\x1b[?2004l" + // 7
	"\x1b[?1004l" + // 6
	"\x1b[?1006l\x1b[?1003l" + // 5
	"\x1b[<1u" + // 4: pop kitty keyboard flags
	"\x1b[?7h" + // 3: restore autowrap
	"\x1b[?1049l" // 2: leave alternate buffer

func (s *Supervisor) spawnPane(rows, cols int) (*pane.Pane, error) {
	s.nextPaneID++
	id := s.nextPaneID
	onOutput := func(*pane.Pane) { s.requestRefresh() }
	onExit := func(p *pane.Pane) { s.handlePaneExit(p) }
	p, err := pane.Spawn(id, s.shellCmd, rows, cols, nil, onOutput, onExit)
	if err != nil {
		return nil, err
	}
	p.SetOnSelection(s.onPaneSelection)
	return p, nil
}

// onPaneSelection forwards a finished mouse-drag selection (or a
// child's own OSC 52 request, passed on by the pane's onSelection
// callback) to the real
// host terminal's clipboard via the same OSC 52 sequence, since ttx
// itself runs inside one.
func (s *Supervisor) onPaneSelection(_ *pane.Pane, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	fmt.Fprintf(s.hostOut, "\x1b]52;c;%s\x1b\\", encoded)
}

func (s *Supervisor) requestRefresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Run drives the supervisor's main loop until the tree empties or the
// host signals a quit, then restores the terminal.
func (s *Supervisor) Run() error {
	defer s.Close()

	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	defer signal.Stop(sigwinch)

	stdinBytes := make(chan []byte, 16)
	go s.readHostInput(stdinBytes)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	dirty := true
	s.renderFrame()

	for {
		select {
		case <-s.quit:
			return nil
		case <-sigwinch:
			s.handleHostResize()
			dirty = true
		case buf, ok := <-stdinBytes:
			if !ok {
				return nil
			}
			s.handleHostInput(buf)
			dirty = true
		case <-s.refresh:
			dirty = true
		case <-ticker.C:
			if dirty {
				s.renderFrame()
				dirty = false
			}
		}
	}
}

func (s *Supervisor) readHostInput(out chan<- []byte) {
	buf := make([]byte, 4096)
	for {
		n, err := s.hostIn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			close(out)
			return
		}
	}
}

func (s *Supervisor) handleHostResize() {
	cols, rows, pxW, pxH, err := querySize(s.hostOut)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.tree.Resize(0, 0, cols, rows, pxW, pxH)
	s.fb.Resize(rows, cols)
	s.mu.Unlock()
}

// querySize reads f's TIOCGWINSZ window size, including the pixel-
// geometry fields golang.org/x/term's GetSize doesn't expose, via the
// same ioctl creack/pty already wraps for pane sizing.
func querySize(f *os.File) (cols, rows, pxW, pxH int, err error) {
	ws, err := pty.GetsizeFull(f)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(ws.Cols), int(ws.Rows), int(ws.X), int(ws.Y), nil
}

func (s *Supervisor) handlePaneExit(p *pane.Pane) {
	s.mu.Lock()
	node := s.tree.FindNodeWithPane(p)
	if node == s.tree.Root && node.Parent == nil {
		s.mu.Unlock()
		s.closeOnce.Do(func() { close(s.quit) })
		return
	}
	pxW, pxH := s.tree.Root.Bounds.PxW, s.tree.Root.Bounds.PxH
	s.tree.Active = node
	s.tree.CloseActive()
	cols, rows, _ := term.GetSize(int(s.hostOut.Fd()))
	s.tree.Resize(0, 0, cols, rows, pxW, pxH)
	s.mu.Unlock()
	s.requestRefresh()
}

// Close restores the host terminal to its original mode and tears down
// every pane. Safe to call more than once.
func (s *Supervisor) Close() error {
	s.closeOnce.Do(func() { close(s.quit) })
	if s.tree != nil {
		s.tree.Traverse(func(n *layout.Node) {
			if n.Pane != nil {
				n.Pane.Close()
			}
		})
	}
	fmt.Fprint(s.hostOut, hostTeardownSequence)
	if s.oldState != nil {
		return term.Restore(int(s.hostIn.Fd()), s.oldState)
	}
	return nil
}

// drawSeparators paints the 1-cell separator line between each pair of
// consecutive children of an internal node: a vertical bar for a
// left-right split, a horizontal bar for a top-bottom split.
func drawSeparators(fb *render.FrameBuffer, n *layout.Node) {
	fb.SetBound(0, 0)
	for i := 0; i+1 < len(n.Children); i++ {
		left := n.Children[i].Bounds
		if n.Split == layout.Vertical {
			col := left.X + left.W
			for row := left.Y; row < left.Y+left.H; row++ {
				fb.PutCell(row, col, vt.Cell{Ch: '│'})
			}
		} else {
			row := left.Y + left.H
			for col := left.X; col < left.X+left.W; col++ {
				fb.PutCell(row, col, vt.Cell{Ch: '─'})
			}
		}
	}
}

func (s *Supervisor) renderFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fb := s.fb
	fb.Start()

	var activeRow, activeCol int
	var activeVisible bool
	var activeStyle vt.CursorStyle

	s.tree.Traverse(func(n *layout.Node) {
		if n.Pane != nil {
			b := n.Bounds
			fb.SetBound(b.X, b.Y)
			n.Pane.WithTerminal(func(t *vt.Terminal) {
				for r := 0; r < t.RowCount() && r < b.H; r++ {
					fb.PutText(r, 0, t.Row(r))
				}
				if n == s.tree.Active {
					row, col, _ := t.Cursor()
					activeRow, activeCol = b.Y+row, b.X+col
					activeVisible = t.CursorVisible()
					activeStyle = t.CursorStyle()
				}
			})
			return
		}
		drawSeparators(fb, n)
	})

	if err := fb.Finish(activeRow, activeCol, activeVisible, activeStyle); err != nil {
		log.Printf("supervisor: render: %v", err)
	}
}
