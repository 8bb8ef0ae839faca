package vt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is a single grid position: one code point, its rendition, a Dirty
// flag (no code in this module sets or reads it), a marker for
// the placeholder column trailing a wide character, and any zero-width
// combining marks folded onto this cell.
type Cell struct {
	Ch              rune
	Rendition       GraphicsRendition
	Dirty           bool
	WidePlaceholder bool
	Combining       []rune
}

// blankCell is the blank cell used to pad rows and clear regions.
var blankCell = Cell{Ch: ' '}

// DefaultCell returns a fresh blank cell.
func DefaultCell() Cell {
	return blankCell
}

// Width reports how many host-terminal columns this cell's code point
// occupies: 0 for zero-width combining marks (which are folded onto the
// preceding cell's Ch instead of occupying their own column), 1 for
// ordinary text, 2 for wide CJK/emoji code points.
func (c Cell) Width() int {
	if c.Ch == 0 {
		return 1
	}
	return runewidth.RuneWidth(c.Ch)
}

// Row is an ordered sequence of Cells; its length is always the terminal's
// current column count.
type Row []Cell

// NewRow returns a row of cols default cells.
func NewRow(cols int) Row {
	r := make(Row, cols)
	for i := range r {
		r[i] = DefaultCell()
	}
	return r
}

// Resize truncates or pads r with default cells to match cols.
func (r Row) Resize(cols int) Row {
	if len(r) == cols {
		return r
	}
	if len(r) > cols {
		return r[:cols]
	}
	out := make(Row, cols)
	copy(out, r)
	for i := len(r); i < cols; i++ {
		out[i] = DefaultCell()
	}
	return out
}

// Text renders the entire row as a string, skipping wide-character
// placeholder columns and appending any combining marks onto their
// owning cell.
func (r Row) Text() string {
	return r.TextRange(0, len(r)-1)
}

// TextRange renders columns [from, to] (inclusive) of r as a string,
// skipping wide-character placeholder columns and appending any
// combining marks onto their owning cell. Used to assemble selection
// text a row at a time.
func (r Row) TextRange(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to >= len(r) {
		to = len(r) - 1
	}
	var b strings.Builder
	for c := from; c <= to; c++ {
		cell := r[c]
		if cell.WidePlaceholder {
			continue
		}
		if cell.Ch == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(cell.Ch)
		}
		for _, comb := range cell.Combining {
			b.WriteRune(comb)
		}
	}
	return b.String()
}

// Clone returns a deep copy of r, including each cell's Combining slice,
// so the clone and original never alias through append.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	for i, c := range out {
		if len(c.Combining) > 0 {
			out[i].Combining = append([]rune(nil), c.Combining...)
		}
	}
	return out
}
