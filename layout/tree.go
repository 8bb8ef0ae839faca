// Package layout implements the recursive split tree that arranges
// panes on screen: proportional horizontal/vertical splits, hit
// testing, directional neighbor lookup, and sibling collapse on pane
// removal, adapted from the original ttx/texelation pane tree.
package layout

import (
	"log"

	"github.com/ColeTrammer/ttx/pane"
)

// SplitType is the axis along which a Node's children are arranged.
type SplitType int

const (
	Vertical SplitType = iota // children arranged left-to-right
	Horizontal                // children arranged top-to-bottom
)

// Direction is a navigation direction for neighbor lookup and pane
// movement.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Rect is an absolute, cell-granularity rectangle. PxW/PxH are this
// rectangle's proportional share of the host terminal's real pixel
// geometry, scaled by cell count per spec.md §4.H.
type Rect struct {
	X, Y, W, H int
	PxW, PxH   int
}

// Node is either a leaf (Pane != nil) holding one pane, or an internal
// node holding a SplitType, per-child SplitRatios, and Children.
type Node struct {
	Parent      *Node
	Split       SplitType
	SplitRatios []float64
	Children    []*Node
	Pane        *pane.Pane
	Bounds      Rect
}

// IsLeaf reports whether n holds a pane directly.
func (n *Node) IsLeaf() bool { return n.Pane != nil }

// Tree manages the node hierarchy for one supervisor window.
type Tree struct {
	Root   *Node
	Active *Node
}

// NewTree returns a tree whose root is a single leaf holding p.
func NewTree(p *pane.Pane) *Tree {
	leaf := &Node{Pane: p}
	return &Tree{Root: leaf, Active: leaf}
}

func ratiosAreEqual(ratios []float64) bool {
	if len(ratios) == 0 {
		return true
	}
	first := ratios[0]
	for _, r := range ratios[1:] {
		if r != first {
			return false
		}
	}
	return true
}

// SplitActive splits the active leaf along dir, inserting newPane as a
// new sibling (or, if the active leaf's parent already uses the same
// split direction with equal ratios, appending newPane to that group
// instead of nesting another level), per the original tree's two-case
// split logic.
func (t *Tree) SplitActive(dir SplitType, newPane *pane.Pane) *Node {
	active := t.Active
	if active == nil {
		log.Printf("layout: SplitActive called with no active leaf")
		return nil
	}
	axisLen := active.Bounds.W
	if dir == Horizontal {
		axisLen = active.Bounds.H
	}
	if axisLen > 0 && axisLen < 3 {
		// Splitting would leave at least one side zero cells wide once the
		// 1-cell separator is reserved; reject rather than produce an
		// unusable pane.
		log.Printf("layout: SplitActive rejected, resulting rectangle would have zero area")
		return nil
	}

	parent := active.Parent
	if parent != nil && parent.Split == dir && ratiosAreEqual(parent.SplitRatios) {
		newNode := &Node{Parent: parent, Pane: newPane}
		parent.Children = append(parent.Children, newNode)
		n := len(parent.Children)
		parent.SplitRatios = make([]float64, n)
		for i := range parent.SplitRatios {
			parent.SplitRatios[i] = 1.0 / float64(n)
		}
		t.Active = newNode
		return newNode
	}

	originalPane := active.Pane
	active.Pane = nil
	active.Split = dir
	active.SplitRatios = []float64{0.5, 0.5}
	child1 := &Node{Parent: active, Pane: originalPane}
	child2 := &Node{Parent: active, Pane: newPane}
	active.Children = []*Node{child1, child2}
	t.Active = child2
	return child2
}

// CloseActive removes the active leaf from the tree, collapsing its
// parent into the remaining sibling when only one is left, and returns
// the node that becomes active next (or nil if the tree is now empty).
// Closing the root leaf when it is the tree's only node is a no-op: the
// caller must tear the whole tree down instead.
func (t *Tree) CloseActive() *Node {
	leaf := t.Active
	if leaf == nil || leaf.Parent == nil {
		return t.Active
	}

	parent := leaf.Parent
	idx := -1
	for i, c := range parent.Children {
		if c == leaf {
			idx = i
			break
		}
	}
	if idx == -1 {
		return t.Active
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)

	var next *Node
	if len(parent.Children) == 1 {
		remaining := parent.Children[0]
		grandparent := parent.Parent

		if grandparent != nil && len(remaining.Children) > 0 && remaining.Split == grandparent.Split {
			next = flattenIntoGrandparent(grandparent, parent, remaining)
		} else {
			remaining.Parent = grandparent
			if grandparent == nil {
				t.Root = remaining
			} else {
				for i, c := range grandparent.Children {
					if c == parent {
						grandparent.Children[i] = remaining
						break
					}
				}
			}
			next = firstLeaf(remaining)
		}
	} else {
		if idx < len(parent.SplitRatios) {
			parent.SplitRatios = append(parent.SplitRatios[:idx], parent.SplitRatios[idx+1:]...)
			normalizeRatios(parent.SplitRatios)
		}
		n := idx
		if n >= len(parent.Children) {
			n = len(parent.Children) - 1
		}
		next = firstLeaf(parent.Children[n])
	}

	t.Active = next
	return next
}

// flattenIntoGrandparent splices remaining's children directly into
// grandparent's child list in parent's former slot, merging
// direction-compatible siblings per spec.md §4.H ("flattens
// H(H(a,b), c) to H(a,b,c)"). The merged group's ratios reset to equal
// shares, the same policy SplitActive uses when appending a same-
// direction sibling to an already-equal-ratio group.
func flattenIntoGrandparent(grandparent, parent, remaining *Node) *Node {
	for _, c := range remaining.Children {
		c.Parent = grandparent
	}
	for i, c := range grandparent.Children {
		if c != parent {
			continue
		}
		merged := append([]*Node{}, grandparent.Children[:i]...)
		merged = append(merged, remaining.Children...)
		merged = append(merged, grandparent.Children[i+1:]...)
		grandparent.Children = merged
		break
	}

	n := len(grandparent.Children)
	grandparent.SplitRatios = make([]float64, n)
	for i := range grandparent.SplitRatios {
		grandparent.SplitRatios[i] = 1.0 / float64(n)
	}
	return firstLeaf(remaining)
}

// normalizeRatios rescales ratios in place to sum to 1, a no-op if they
// already do (or if the slice is empty).
func normalizeRatios(ratios []float64) {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	if sum == 0 {
		return
	}
	for i := range ratios {
		ratios[i] /= sum
	}
}

func firstLeaf(n *Node) *Node {
	for n != nil && len(n.Children) > 0 {
		n = n.Children[0]
	}
	return n
}

// MoveActive moves the active leaf pointer to the neighbor in dir, if
// one exists.
func (t *Tree) MoveActive(dir Direction) {
	if neighbor := t.FindNeighbor(dir); neighbor != nil {
		t.Active = neighbor
	}
}

// Traverse calls f for every node (internal and leaf) in depth-first order.
func (t *Tree) Traverse(f func(*Node)) {
	traverse(t.Root, f)
}

func traverse(n *Node, f func(*Node)) {
	if n == nil {
		return
	}
	f(n)
	for _, c := range n.Children {
		traverse(c, f)
	}
}

// FindNodeWithPane returns the leaf node holding p, or nil.
func (t *Tree) FindNodeWithPane(p *pane.Pane) *Node {
	var found *Node
	t.Traverse(func(n *Node) {
		if found == nil && n.Pane == p {
			found = n
		}
	})
	return found
}

// FindNeighbor walks up from the active leaf looking for an adjacent
// sibling in dir, per the original tree's ancestor-walk algorithm:
// siblings are only adjacent along the axis their shared parent splits
// on, so a direction with no match at one level is retried one level up.
func (t *Tree) FindNeighbor(dir Direction) *Node {
	curr := t.Active
	for curr != nil && curr.Parent != nil {
		parent := curr.Parent
		idx := -1
		for i, c := range parent.Children {
			if c == curr {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil
		}

		switch dir {
		case DirRight:
			if parent.Split == Vertical && idx+1 < len(parent.Children) {
				return firstLeaf(parent.Children[idx+1])
			}
		case DirLeft:
			if parent.Split == Vertical && idx-1 >= 0 {
				return firstLeaf(parent.Children[idx-1])
			}
		case DirDown:
			if parent.Split == Horizontal && idx+1 < len(parent.Children) {
				return firstLeaf(parent.Children[idx+1])
			}
		case DirUp:
			if parent.Split == Horizontal && idx-1 >= 0 {
				return firstLeaf(parent.Children[idx-1])
			}
		}
		curr = parent
	}
	return nil
}

// FindLeafAt returns the leaf whose bounds contain (x, y), or nil.
func (t *Tree) FindLeafAt(x, y int) *Node {
	return findLeafAt(t.Root, x, y)
}

func findLeafAt(n *Node, x, y int) *Node {
	if n == nil {
		return nil
	}
	if n.Pane != nil {
		b := n.Bounds
		if x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H {
			return n
		}
		return nil
	}
	for _, c := range n.Children {
		if hit := findLeafAt(c, x, y); hit != nil {
			return hit
		}
	}
	return nil
}

// Resize recomputes every node's Bounds for a root rectangle of (x, y,
// w, h) and propagates each leaf's resulting size to its pane. pxW/pxH
// are the host terminal's real total pixel dimensions for that
// rectangle (0 if unknown); each node's own pixel share is scaled from
// them proportionally to its cell dimensions, per spec.md §4.H.
func (t *Tree) Resize(x, y, w, h, pxW, pxH int) {
	if t.Root == nil {
		return
	}
	var cellPxW, cellPxH float64
	if w > 0 {
		cellPxW = float64(pxW) / float64(w)
	}
	if h > 0 {
		cellPxH = float64(pxH) / float64(h)
	}
	resizeNode(t.Root, x, y, w, h, cellPxW, cellPxH)
}

func resizeNode(n *Node, x, y, w, h int, cellPxW, cellPxH float64) {
	if n == nil {
		return
	}
	n.Bounds = Rect{
		X: x, Y: y, W: w, H: h,
		PxW: int(float64(w) * cellPxW), PxH: int(float64(h) * cellPxH),
	}

	if n.Pane != nil {
		if w > 0 && h > 0 {
			if err := n.Pane.Resize(h, w, n.Bounds.PxW, n.Bounds.PxH); err != nil {
				log.Printf("layout: resize pane %d to %dx%d: %v", n.Pane.ID(), w, h, err)
			}
		}
		return
	}

	numChildren := len(n.Children)
	if numChildren == 0 || len(n.SplitRatios) != numChildren {
		return
	}

	if n.Split == Vertical {
		widths := distributeAxis(w, n.SplitRatios)
		cx := x
		for i, child := range n.Children {
			resizeNode(child, cx, y, widths[i], h, cellPxW, cellPxH)
			cx += widths[i] + 1
		}
	} else {
		heights := distributeAxis(h, n.SplitRatios)
		cy := y
		for i, child := range n.Children {
			resizeNode(child, x, cy, w, heights[i], cellPxW, cellPxH)
			cy += heights[i] + 1
		}
	}
}

// distributeAxis divides an axis_length-(N-1) budget (one cell per
// separator between N children) across children by ratio, as evenly as
// possible with any remainder going to the leading children, per the
// original tree's layout rule.
func distributeAxis(length int, ratios []float64) []int {
	n := len(ratios)
	available := length - (n - 1)
	if available < n {
		available = n // degrade gracefully rather than produce negative sizes
	}
	sizes := make([]int, n)
	assigned := 0
	for i, r := range ratios {
		sizes[i] = int(float64(available) * r)
		assigned += sizes[i]
	}
	remainder := available - assigned
	for i := 0; i < n && remainder > 0; i++ {
		sizes[i]++
		remainder--
	}
	return sizes
}
