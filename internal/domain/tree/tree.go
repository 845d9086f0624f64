package tree

import (
	"github.com/google/uuid"

	"github.com/igomimu/online-go-school/internal/domain/engine"
)

// MarkerKind совпадает с тегом SGF, которым маркер сериализуется.
type MarkerKind string

const (
	MarkTriangle MarkerKind = "TR"
	MarkCircle   MarkerKind = "CR"
	MarkSquare   MarkerKind = "SQ"
	MarkCross    MarkerKind = "MA"
	MarkLabel    MarkerKind = "LB"
)

// Valid reports whether the kind is one of the known marker tags.
func (k MarkerKind) Valid() bool {
	switch k {
	case MarkTriangle, MarkCircle, MarkSquare, MarkCross, MarkLabel:
		return true
	}
	return false
}

// Marker is a display annotation tied to a board point. Text is only
// meaningful for labels.
type Marker struct {
	X    int        `json:"x"`
	Y    int        `json:"y"`
	Kind MarkerKind `json:"kind"`
	Text string     `json:"text,omitempty"`
}

// Setup is a position edit carried by a node: a stone added outside
// normal play (AB/AW), or an erased point when Color is Empty (AE).
// Setup stones carry no move number.
type Setup struct {
	Point engine.Point
	Color engine.Color
}

// Node is one position in the branching move tree. Children own their
// subtrees; Parent is a non-owning back-reference used for navigation
// only. Nodes are never deleted — the full history stays available for
// replay and branching.
type Node struct {
	ID         string
	Parent     *Node
	Children   []*Node
	Board      engine.Board
	Move       *engine.Move // nil на корне и на setup-узлах
	Setup      []Setup
	NextNumber int // номер, который получит следующий ход
	Size       int
	Markers    []Marker
}

// NewRoot creates a tree root over an empty board.
func NewRoot(size int) *Node {
	return &Node{
		ID:         uuid.NewString(),
		Board:      engine.NewBoard(size),
		NextNumber: 1,
		Size:       size,
	}
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// AddMove appends a child produced by playing the move against this
// node's board. If a child with the identical (x, y, color) move
// already exists it is returned unchanged, so replayed messages never
// spawn redundant siblings. A second distinct child starts a variation.
func (n *Node) AddMove(m engine.Move) *Node {
	for _, child := range n.Children {
		if child.Move != nil && *child.Move == m && len(child.Setup) == 0 {
			return child
		}
	}
	mv := m
	return n.AddNode(&mv, nil)
}

// AddNode appends a child carrying an optional move and optional setup
// edits. The child's board is derived from this node's board: setup is
// applied first, then the move runs through the capture engine.
func (n *Node) AddNode(move *engine.Move, setup []Setup) *Node {
	child := &Node{
		ID:     uuid.NewString(),
		Parent: n,
		Size:   n.Size,
		Setup:  setup,
	}
	if move != nil {
		mv := *move
		child.Move = &mv
	}
	child.Board, child.NextNumber = derive(n.Board, n.NextNumber, child)
	n.Children = append(n.Children, child)
	return child
}

// ApplySetup returns a new board with the edits applied.
func ApplySetup(b engine.Board, setup []Setup) engine.Board {
	for _, s := range setup {
		if s.Color == engine.Empty {
			b = b.Remove(s.Point.X, s.Point.Y)
		} else {
			b = b.Place(s.Point.X, s.Point.Y, engine.Stone{Color: s.Color})
		}
	}
	return b
}

// derive computes a node's board and next move number from its parent
// board. Passes copy the board untouched.
func derive(b engine.Board, nextNumber int, n *Node) (engine.Board, int) {
	b = ApplySetup(b, n.Setup)
	if n.Move == nil {
		return b, nextNumber
	}
	m := *n.Move
	if m.IsPass() {
		return b, nextNumber + 1
	}
	if !b.InBounds(m.X, m.Y) {
		return b, nextNumber
	}
	placed := b.Place(m.X, m.Y, engine.Stone{Color: m.Color, Number: nextNumber})
	after, _ := engine.CheckCapture(placed, m.X, m.Y, m.Color)
	return after, nextNumber + 1
}

// Recalculate recomputes every descendant's cached board by reapplying
// its setup and move against the (possibly just-changed) parent board.
// Needed after an ancestor's board is edited externally, e.g. new
// setup stones loaded onto an existing root.
func Recalculate(n *Node) {
	for _, child := range n.Children {
		child.Size = n.Size
		child.Board, child.NextNumber = derive(n.Board, n.NextNumber, child)
		Recalculate(child)
	}
}

// Cursor tracks the "current" node during lesson navigation. Movement
// never modifies the tree.
type Cursor struct {
	Root    *Node
	Current *Node
}

// NewCursor positions a cursor at the tree root.
func NewCursor(root *Node) *Cursor {
	return &Cursor{Root: root, Current: root}
}

// ToRoot rewinds to the root node.
func (c *Cursor) ToRoot() {
	c.Current = c.Root
}

// StepBack moves to the parent. No-op at the root.
func (c *Cursor) StepBack() {
	if c.Current.Parent != nil {
		c.Current = c.Current.Parent
	}
}

// StepForward follows the first child — the main-line convention when
// several variations exist. No-op on a leaf.
func (c *Cursor) StepForward() {
	if len(c.Current.Children) > 0 {
		c.Current = c.Current.Children[0]
	}
}

// JumpToVariation descends into the i-th child. Invalid indexes are
// ignored.
func (c *Cursor) JumpToVariation(i int) {
	if i >= 0 && i < len(c.Current.Children) {
		c.Current = c.Current.Children[i]
	}
}

// FastForwardToEnd follows first children until a leaf is reached.
func (c *Cursor) FastForwardToEnd() {
	for len(c.Current.Children) > 0 {
		c.Current = c.Current.Children[0]
	}
}
