package engine

// Color занимаемой точки: пусто, чёрные или белые.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Opponent returns the other playing color. Empty stays Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Stone is a placed marker. Number is the display move number,
// zero for setup/handicap stones.
type Stone struct {
	Color  Color
	Number int
}

// Point is a 1-indexed board intersection.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Move is a played stone, 1-indexed. X=0,Y=0 is the pass sentinel.
type Move struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color Color `json:"color"`
}

// Pass builds the pass move for the given color.
func Pass(c Color) Move {
	return Move{X: 0, Y: 0, Color: c}
}

func (m Move) IsPass() bool {
	return m.X == 0 && m.Y == 0
}

// Board is a value-like snapshot of a square grid. Every mutation
// returns a new Board; the receiver is never changed, so move-tree
// nodes and sessions can safely hold old snapshots.
type Board struct {
	size   int
	points []Stone
}

// NewBoard creates an empty board with the given side length.
func NewBoard(size int) Board {
	if size < 1 {
		size = 1
	}
	return Board{
		size:   size,
		points: make([]Stone, size*size),
	}
}

func (b Board) Size() int {
	return b.size
}

// InBounds reports whether (x, y) lies on the board (1-indexed).
func (b Board) InBounds(x, y int) bool {
	return x >= 1 && x <= b.size && y >= 1 && y <= b.size
}

// At returns the stone at (x, y). Off-board points read as empty.
func (b Board) At(x, y int) Stone {
	if !b.InBounds(x, y) {
		return Stone{}
	}
	return b.points[(y-1)*b.size+(x-1)]
}

// Clone returns a deep copy whose points can be written independently.
func (b Board) Clone() Board {
	cp := Board{
		size:   b.size,
		points: make([]Stone, len(b.points)),
	}
	copy(cp.points, b.points)
	return cp
}

// Place returns a new board with the stone set at (x, y).
// Out-of-range placements return the board unchanged.
func (b Board) Place(x, y int, s Stone) Board {
	if !b.InBounds(x, y) {
		return b
	}
	cp := b.Clone()
	cp.points[(y-1)*b.size+(x-1)] = s
	return cp
}

// Remove returns a new board with (x, y) emptied.
func (b Board) Remove(x, y int) Board {
	return b.Place(x, y, Stone{})
}

// set mutates in place. Only for boards that are private clones.
func (b Board) set(x, y int, s Stone) {
	b.points[(y-1)*b.size+(x-1)] = s
}

// StoneCount returns the number of occupied intersections.
func (b Board) StoneCount() int {
	n := 0
	for _, s := range b.points {
		if s.Color != Empty {
			n++
		}
	}
	return n
}
