// Package render implements the differential renderer that paints the
// supervisor's composited view of all panes onto the host terminal,
// emitting only the escape sequences needed to repaint cells that
// actually changed since the previous frame, adapted from the teacher's
// tcell-based blit/blitDiff composite step.
package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/ColeTrammer/ttx/vt"
)

// FrameBuffer accumulates one frame's worth of cells into an
// absolute-coordinate grid sized to the host terminal, then diffs it
// against the previous frame on Finish, emitting a minimal escape
// sequence stream.
type FrameBuffer struct {
	out io.Writer

	rows, cols int
	next       [][]vt.Cell
	last       [][]vt.Cell
	touched    []bool // per-row: did this frame write anything into it

	boundX, boundY int

	cursorRow, cursorCol int // host cursor position assumed after last write
	cursorKnown          bool
	curSGR               vt.GraphicsRendition
	sgrKnown             bool
}

// NewFrameBuffer returns a FrameBuffer that writes to out, sized rows x
// cols (the host terminal's current dimensions).
func NewFrameBuffer(out io.Writer, rows, cols int) *FrameBuffer {
	fb := &FrameBuffer{out: out}
	fb.Resize(rows, cols)
	return fb
}

// Resize changes the host terminal size the FrameBuffer targets,
// discarding the previous frame so the next one is a full repaint.
func (fb *FrameBuffer) Resize(rows, cols int) {
	fb.rows, fb.cols = rows, cols
	fb.next = makeGrid(rows, cols)
	fb.last = nil
	fb.touched = make([]bool, rows)
	fb.cursorKnown = false
	fb.sgrKnown = false
}

func makeGrid(rows, cols int) [][]vt.Cell {
	g := make([][]vt.Cell, rows)
	for r := range g {
		g[r] = make([]vt.Cell, cols)
		for c := range g[r] {
			g[r][c] = vt.DefaultCell()
		}
	}
	return g
}

// Start begins a new frame: the cell grid is cleared to blanks and every
// row is marked untouched, so SetBound/PutCell calls that follow build
// up exactly what should appear this frame.
func (fb *FrameBuffer) Start() {
	for r := 0; r < fb.rows; r++ {
		row := fb.next[r]
		for c := range row {
			row[c] = vt.DefaultCell()
		}
		fb.touched[r] = false
	}
}

// SetBound fixes the absolute host-terminal origin that subsequent
// PutCell row/col arguments are relative to, i.e. a pane's top-left
// corner.
func (fb *FrameBuffer) SetBound(x, y int) {
	fb.boundX, fb.boundY = x, y
}

// PutCell writes one cell at (row, col) relative to the current bound.
// Out-of-range writes are silently clipped.
func (fb *FrameBuffer) PutCell(row, col int, cell vt.Cell) {
	ar, ac := fb.boundY+row, fb.boundX+col
	if ar < 0 || ar >= fb.rows || ac < 0 || ac >= fb.cols {
		return
	}
	fb.next[ar][ac] = cell
	fb.touched[ar] = true
}

// PutText writes a run of cells starting at (row, col), advancing one
// column per cell (wide cells still occupy a single column argument;
// callers that also need the placeholder column write it separately).
func (fb *FrameBuffer) PutText(row, col int, cells []vt.Cell) {
	for i, c := range cells {
		fb.PutCell(row, col+i, c)
	}
}

// Finish diffs the accumulated frame against the previous one, writes
// the minimal escape sequence stream needed to bring the host terminal
// from the old frame to the new one, and promotes the new frame to
// "last" for the next diff.
func (fb *FrameBuffer) Finish(cursorRow, cursorCol int, cursorVisible bool, style vt.CursorStyle) error {
	w := bufio.NewWriter(fb.out)

	if fb.last == nil {
		w.WriteString("\x1b[2J")
		fb.cursorKnown = false
		fb.sgrKnown = false
	}

	for r := 0; r < fb.rows; r++ {
		if fb.last != nil && !fb.touched[r] && rowEqual(fb.next[r], fb.last[r]) {
			continue
		}
		fb.writeRow(w, r)
	}

	fb.moveCursor(w, cursorRow, cursorCol)
	if cursorVisible {
		w.WriteString("\x1b[?25h")
	} else {
		w.WriteString("\x1b[?25l")
	}
	w.WriteString("\x1b[")
	w.WriteString(strconv.Itoa(int(style)))
	w.WriteString(" q")

	if err := w.Flush(); err != nil {
		return err
	}

	fb.last = fb.next
	fb.next = makeGrid(fb.rows, fb.cols)
	return nil
}

func rowEqual(a, b []vt.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Ch != b[i].Ch || a[i].Rendition != b[i].Rendition || a[i].WidePlaceholder != b[i].WidePlaceholder {
			return false
		}
		if len(a[i].Combining) != len(b[i].Combining) {
			return false
		}
	}
	return true
}

func (fb *FrameBuffer) writeRow(w *bufio.Writer, r int) {
	row := fb.next[r]
	var oldRow []vt.Cell
	if fb.last != nil {
		oldRow = fb.last[r]
	}

	unchanged := func(c int) bool {
		return oldRow != nil && c < len(oldRow) && cellEqual(row[c], oldRow[c])
	}

	c := 0
	for c < len(row) {
		if row[c].WidePlaceholder || unchanged(c) {
			c++
			continue
		}

		fb.moveCursor(w, r, c)
		for c < len(row) && !unchanged(c) {
			cell := row[c]
			if cell.WidePlaceholder {
				c++
				continue
			}
			fb.writeSGR(w, cell.Rendition)
			if cell.Ch == 0 {
				w.WriteByte(' ')
			} else {
				w.WriteRune(cell.Ch)
			}
			for _, comb := range cell.Combining {
				w.WriteRune(comb)
			}
			c++
		}
		fb.cursorRow, fb.cursorCol = r, c
	}
}

func cellEqual(a, b vt.Cell) bool {
	if a.Ch != b.Ch || a.Rendition != b.Rendition || a.WidePlaceholder != b.WidePlaceholder {
		return false
	}
	return len(a.Combining) == len(b.Combining)
}

func (fb *FrameBuffer) writeSGR(w *bufio.Writer, g vt.GraphicsRendition) {
	if fb.sgrKnown && g == fb.curSGR {
		return
	}
	w.WriteString("\x1b[")
	w.WriteString(g.AsCSIParams().String())
	w.WriteByte('m')
	fb.curSGR = g
	fb.sgrKnown = true
}

func (fb *FrameBuffer) moveCursor(w *bufio.Writer, row, col int) {
	if fb.cursorKnown && row == fb.cursorRow && col == fb.cursorCol {
		return
	}
	w.WriteString("\x1b[")
	w.WriteString(strconv.Itoa(row + 1))
	w.WriteByte(';')
	w.WriteString(strconv.Itoa(col + 1))
	w.WriteByte('H')
	fb.cursorRow, fb.cursorCol = row, col
	fb.cursorKnown = true
}
