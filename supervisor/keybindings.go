package supervisor

import (
	"github.com/ColeTrammer/ttx/layout"
	"github.com/ColeTrammer/ttx/vt"
)

// handleHostInput decodes one host read into logical key/paste events
// and runs them through the prefix-key state machine: ModeInsert passes
// keys straight to the focused pane, a prefix keypress (Ctrl+A) enters
// ModeSwitch for exactly one further keystroke, and 'r' from ModeSwitch
// enters ModeResize until Escape or Enter.
func (s *Supervisor) handleHostInput(buf []byte) {
	events := s.inputParser.Feed(buf)
	for _, ev := range events {
		if ev.Kind == vt.EventAPC {
			s.deliverPaste(string(ev.Data))
			continue
		}
		if ev.Kind == vt.EventCSI {
			if mouse, ok := vt.DecodeMouseEvent(ev); ok {
				s.deliverMouse(mouse)
				continue
			}
			if focus, ok := vt.DecodeFocusEvent(ev); ok {
				s.deliverFocus(focus)
				continue
			}
		}
		key, ok := s.decodeHostEvent(ev)
		if !ok {
			continue
		}
		s.dispatchKey(key)
	}
}

func (s *Supervisor) dispatchKey(key vt.KeyEvent) {
	s.mu.Lock()
	mode := s.mode
	s.mu.Unlock()

	switch mode {
	case ModeInsert:
		if key.Code == vt.KeyRune && key.Rune == prefixKey {
			s.setMode(ModeSwitch)
			return
		}
		s.deliverKey(key)
	case ModeSwitch:
		s.setMode(ModeInsert)
		s.handleSwitchKey(key)
	case ModeResize:
		s.handleResizeKey(key)
	}
}

func (s *Supervisor) setMode(m BindingMode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

func (s *Supervisor) handleSwitchKey(key vt.KeyEvent) {
	switch {
	case key.Code == vt.KeyUp:
		s.moveOrSplitOrSwap(layout.DirUp, key.Modifiers)
	case key.Code == vt.KeyDown:
		s.moveOrSplitOrSwap(layout.DirDown, key.Modifiers)
	case key.Code == vt.KeyLeft:
		s.moveOrSplitOrSwap(layout.DirLeft, key.Modifiers)
	case key.Code == vt.KeyRight:
		s.moveOrSplitOrSwap(layout.DirRight, key.Modifiers)
	case key.Code == vt.KeyRune && key.Rune == 'x':
		s.closeActivePane()
	case key.Code == vt.KeyRune && key.Rune == 'r':
		s.setMode(ModeResize)
	case key.Code == vt.KeyRune && key.Rune == prefixKey:
		s.deliverKey(key)
	}
}

func (s *Supervisor) moveOrSplitOrSwap(dir layout.Direction, mods vt.KeyModifiers) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case mods&vt.ModCtrl != 0:
		split := layout.Vertical
		if dir == layout.DirUp || dir == layout.DirDown {
			split = layout.Horizontal
		}
		cols, rows, pxW, pxH := hostSize(s)
		p, err := s.spawnPane(rows, cols)
		if err == nil {
			if s.tree.SplitActive(split, p) == nil {
				p.Close()
			} else {
				s.tree.Resize(0, 0, cols, rows, pxW, pxH)
			}
		}
	case mods&vt.ModShift != 0:
		neighbor := s.tree.FindNeighbor(dir)
		if neighbor != nil {
			s.tree.Active.Pane, neighbor.Pane = neighbor.Pane, s.tree.Active.Pane
			s.tree.Active = neighbor
		}
	default:
		s.tree.MoveActive(dir)
	}
	s.requestRefresh()
}

func hostSize(s *Supervisor) (cols, rows, pxW, pxH int) {
	if s.tree == nil || s.tree.Root == nil {
		return 80, 24, 0, 0
	}
	b := s.tree.Root.Bounds
	return b.W, b.H, b.PxW, b.PxH
}

func (s *Supervisor) closeActivePane() {
	s.mu.Lock()
	p := s.tree.Active.Pane
	cols, rows, pxW, pxH := hostSize(s)
	s.tree.CloseActive()
	s.tree.Resize(0, 0, cols, rows, pxW, pxH)
	s.mu.Unlock()
	if p != nil {
		p.Close()
	}
	s.requestRefresh()
}

func (s *Supervisor) handleResizeKey(key vt.KeyEvent) {
	switch key.Code {
	case vt.KeyEscape, vt.KeyEnter:
		s.setMode(ModeInsert)
		return
	case vt.KeyUp, vt.KeyDown, vt.KeyLeft, vt.KeyRight:
		s.adjustActiveSplit(key.Code)
		s.requestRefresh()
	}
}

// adjustActiveSplit nudges the split ratio between the active leaf and
// its next sibling, within its parent's split axis.
func (s *Supervisor) adjustActiveSplit(code vt.KeyCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.tree.Active
	if active == nil || active.Parent == nil {
		return
	}
	parent := active.Parent
	idx := -1
	for i, c := range parent.Children {
		if c == active {
			idx = i
			break
		}
	}
	if idx == -1 || len(parent.SplitRatios) != len(parent.Children) {
		return
	}

	var delta float64
	switch {
	case parent.Split == layout.Vertical && code == vt.KeyRight:
		delta = resizeStep
	case parent.Split == layout.Vertical && code == vt.KeyLeft:
		delta = -resizeStep
	case parent.Split == layout.Horizontal && code == vt.KeyDown:
		delta = resizeStep
	case parent.Split == layout.Horizontal && code == vt.KeyUp:
		delta = -resizeStep
	default:
		return
	}

	partner := idx + 1
	if partner >= len(parent.Children) {
		partner = idx - 1
	}
	if partner < 0 {
		return
	}

	const minRatio = 0.05
	if parent.SplitRatios[idx]+delta < minRatio || parent.SplitRatios[partner]-delta < minRatio {
		return
	}
	parent.SplitRatios[idx] += delta
	parent.SplitRatios[partner] -= delta

	cols, rows, pxW, pxH := hostSize(s)
	s.tree.Resize(0, 0, cols, rows, pxW, pxH)
}

func (s *Supervisor) deliverKey(key vt.KeyEvent) {
	s.mu.Lock()
	active := s.tree.Active
	s.mu.Unlock()
	if active == nil || active.Pane == nil {
		return
	}
	active.Pane.KeyEvent(key)
}

func (s *Supervisor) deliverPaste(text string) {
	s.mu.Lock()
	active := s.tree.Active
	s.mu.Unlock()
	if active == nil || active.Pane == nil {
		return
	}
	active.Pane.PasteEvent(vt.PasteEvent{Text: text})
}

// deliverMouse routes a decoded mouse event to the leaf pane under the
// pointer, translating host-terminal coordinates to the pane's local
// grid and focusing that pane on press (spec.md §4.G).
func (s *Supervisor) deliverMouse(ev vt.MouseEvent) {
	s.mu.Lock()
	node := s.tree.FindLeafAt(ev.Col-1, ev.Row-1)
	if node != nil && ev.Action == vt.MousePress {
		s.tree.Active = node
	}
	s.mu.Unlock()
	if node == nil || node.Pane == nil {
		return
	}
	local := ev
	local.Row -= node.Bounds.Y
	local.Col -= node.Bounds.X
	node.Pane.MouseEvent(local)
}

// deliverFocus routes a host focus gain/loss to the currently active pane.
func (s *Supervisor) deliverFocus(ev vt.FocusEvent) {
	s.mu.Lock()
	active := s.tree.Active
	s.mu.Unlock()
	if active == nil || active.Pane == nil {
		return
	}
	active.Pane.FocusEvent(ev)
}
