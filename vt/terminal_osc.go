package vt

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// dispatchOSC handles the Operating System Commands this terminal acts
// on: 0/1/2 (title) and 52 (clipboard), per spec.md §4.F.
func (t *Terminal) dispatchOSC(data []byte) {
	s := string(data)
	code, rest, found := strings.Cut(s, ";")
	if !found {
		return
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return
	}
	switch n {
	case 0, 1, 2:
		t.title = rest
	case 52:
		t.handleClipboard(rest)
	}
}

// handleClipboard parses "Pc;Pd" from an OSC 52 request. Pc (the
// selection target) is accepted but not distinguished. A read request
// (Pd == "?") is left unanswered: per the spec's resolution of its OSC
// 52 open question, clipboard contents are never echoed back to the
// child, only ever set from it.
func (t *Terminal) handleClipboard(rest string) {
	_, pd, found := strings.Cut(rest, ";")
	if !found {
		return
	}
	if pd == "?" {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(pd)
	if err != nil {
		return
	}
	t.pushOutgoing(OutgoingEvent{Kind: OutgoingSetClipboard, Data: decoded})
}
