package supervisor

import (
	"testing"

	"github.com/ColeTrammer/ttx/vt"
)

func TestDispatchKeyPrefixEntersSwitchMode(t *testing.T) {
	s := &Supervisor{}
	s.dispatchKey(vt.KeyEvent{Code: vt.KeyRune, Rune: prefixKey, Modifiers: vt.ModCtrl})
	if s.mode != ModeSwitch {
		t.Fatalf("prefix keypress should enter ModeSwitch, got %v", s.mode)
	}
}

func TestDispatchKeyRReturnsToResizeMode(t *testing.T) {
	s := &Supervisor{mode: ModeSwitch, tree: nil}
	// handleSwitchKey's 'r' branch only touches mode state, not the tree.
	s.handleSwitchKey(vt.KeyEvent{Code: vt.KeyRune, Rune: 'r'})
	if s.mode != ModeResize {
		t.Fatalf("'r' from switch mode should enter ModeResize, got %v", s.mode)
	}
}

func TestHandleResizeKeyEscapeReturnsToInsert(t *testing.T) {
	s := &Supervisor{mode: ModeResize}
	s.handleResizeKey(vt.KeyEvent{Code: vt.KeyEscape})
	if s.mode != ModeInsert {
		t.Fatalf("Escape from resize mode should return to ModeInsert, got %v", s.mode)
	}
}
