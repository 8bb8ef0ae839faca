// Package vt implements the terminal emulator engine: parameter lists,
// graphics rendition, the escape-sequence state machine, the cell grid,
// and the mode-aware key/mouse/focus/paste event codecs.
package vt

import "strconv"

// Params is an ordered list of CSI/DCS parameter groups, each an ordered
// list of sub-parameter integers (the colon-separated form, e.g. "4:3").
// Groups themselves are semicolon-separated on the wire.
type Params struct {
	groups [][]uint16
}

// NewParams returns an empty Params value.
func NewParams() *Params {
	return &Params{}
}

// AddParam starts a new group containing a single value.
func (p *Params) AddParam(u uint16) {
	p.groups = append(p.groups, []uint16{u})
}

// AddSubParams starts a new group containing every value of seq as
// colon-separated sub-parameters.
func (p *Params) AddSubParams(seq []uint16) {
	group := make([]uint16, len(seq))
	copy(group, seq)
	p.groups = append(p.groups, group)
}

// addSubParam appends a sub-parameter to the last group, creating one if
// none exists yet. Used by the parser while scanning a CSI/DCS sequence.
func (p *Params) addSubParam(u uint16) {
	if len(p.groups) == 0 {
		p.groups = append(p.groups, []uint16{})
	}
	last := len(p.groups) - 1
	p.groups[last] = append(p.groups[last], u)
}

// Size returns the number of parameter groups.
func (p *Params) Size() int {
	return len(p.groups)
}

// Get returns the first sub-parameter of the group at index, or def if the
// group is absent or its first sub-parameter is zero.
func (p *Params) Get(index int, def uint32) uint32 {
	if index < 0 || index >= len(p.groups) || len(p.groups[index]) == 0 {
		return def
	}
	v := p.groups[index][0]
	if v == 0 {
		return def
	}
	return uint32(v)
}

// SubParam returns sub-parameter subIndex of the group at index, or def if
// absent or zero. subIndex 0 is the main parameter value itself.
func (p *Params) SubParam(index, subIndex int, def uint32) uint32 {
	if index < 0 || index >= len(p.groups) {
		return def
	}
	g := p.groups[index]
	if subIndex < 0 || subIndex >= len(g) || g[subIndex] == 0 {
		return def
	}
	return uint32(g[subIndex])
}

// SubParamCount returns the number of sub-parameters in the group at index.
func (p *Params) SubParamCount(index int) int {
	if index < 0 || index >= len(p.groups) {
		return 0
	}
	return len(p.groups[index])
}

// String renders Params back to wire format: semicolon-separated groups,
// colon-separated sub-parameters within a group.
func (p *Params) String() string {
	out := make([]byte, 0, 16)
	for i, g := range p.groups {
		if i > 0 {
			out = append(out, ';')
		}
		for j, v := range g {
			if j > 0 {
				out = append(out, ':')
			}
			out = strconv.AppendUint(out, uint64(v), 10)
		}
	}
	return string(out)
}
