package sgf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/tree"
)

// mainLine collects the move sequence along first children.
func mainLine(root *tree.Node) []engine.Move {
	var moves []engine.Move
	for n := root; len(n.Children) > 0; {
		n = n.Children[0]
		if n.Move != nil {
			moves = append(moves, *n.Move)
		}
	}
	return moves
}

func TestParseSimpleGame(t *testing.T) {
	rec := Parse("(;GM[1]SZ[9];B[ee];W[dd])")

	require.Equal(t, 9, rec.Size)
	moves := mainLine(rec.Root)
	require.Len(t, moves, 2)
	assert.Equal(t, engine.Move{X: 5, Y: 5, Color: engine.Black}, moves[0])
	assert.Equal(t, engine.Move{X: 4, Y: 4, Color: engine.White}, moves[1])

	// доски посчитаны сверху вниз, номера ходов проставлены
	leaf := rec.Root.Children[0].Children[0]
	assert.Equal(t, 1, leaf.Board.At(5, 5).Number)
	assert.Equal(t, 2, leaf.Board.At(4, 4).Number)
}

func TestParseSizeFallback(t *testing.T) {
	tests := []struct {
		name string
		sgf  string
		want int
	}{
		{"отсутствует SZ", "(;GM[1];B[aa])", 19},
		{"битый SZ", "(;SZ[zz];B[aa])", 19},
		{"нулевой SZ", "(;SZ[0];B[aa])", 19},
		{"нормальный", "(;SZ[13];B[aa])", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.sgf).Size)
		})
	}
}

func TestParseMetadata(t *testing.T) {
	rec := Parse(`(;GM[1]FF[4]SZ[19]PB[Honinbo Shusaku]BR[4d]PW[Gennan Inseki]WR[8d]
		KM[0.0]HA[2]RE[B+2]DT[1846-07-21]PC[Osaka]GN[Ear-reddening game];B[qd])`)

	m := rec.Meta
	assert.Equal(t, "Honinbo Shusaku", m.PlayerBlack)
	assert.Equal(t, "4d", m.BlackRank)
	assert.Equal(t, "Gennan Inseki", m.PlayerWhite)
	assert.Equal(t, "8d", m.WhiteRank)
	assert.Equal(t, "0.0", m.Komi)
	assert.Equal(t, "2", m.Handicap)
	assert.Equal(t, "B+2", m.Result)
	assert.Equal(t, "1846-07-21", m.Date)
	assert.Equal(t, "Osaka", m.Place)
	assert.Equal(t, "Ear-reddening game", m.GameName)
}

func TestParseSetupStones(t *testing.T) {
	rec := Parse("(;SZ[9]AB[cc][gc]AW[ee];W[dd])")

	assert.Equal(t, engine.Black, rec.Root.Board.At(3, 3).Color)
	assert.Equal(t, engine.Black, rec.Root.Board.At(7, 3).Color)
	assert.Equal(t, engine.White, rec.Root.Board.At(5, 5).Color)
	// установочные камни без номеров
	assert.Equal(t, 0, rec.Root.Board.At(3, 3).Number)

	require.Len(t, rec.Root.Children, 1)
	assert.Equal(t, engine.Move{X: 4, Y: 4, Color: engine.White}, *rec.Root.Children[0].Move)
}

func TestParsePass(t *testing.T) {
	rec := Parse("(;SZ[9];B[cc];W[];B[tt])")

	moves := mainLine(rec.Root)
	require.Len(t, moves, 3)
	assert.False(t, moves[0].IsPass())
	assert.True(t, moves[1].IsPass())
	assert.Equal(t, engine.White, moves[1].Color)
	// tt — историческая запись паса
	assert.True(t, moves[2].IsPass())
}

func TestParseDropsInvalidCoordinates(t *testing.T) {
	// kk = (11,11) вне доски 9x9, ход опускается
	rec := Parse("(;SZ[9];B[kk];W[dd])")

	moves := mainLine(rec.Root)
	require.Len(t, moves, 1)
	assert.Equal(t, engine.Move{X: 4, Y: 4, Color: engine.White}, moves[0])
}

func TestParseUnknownPropertiesSkipped(t *testing.T) {
	rec := Parse("(;SZ[9]XX[junk]ZZ[more];B[cc]QQ[?])")

	moves := mainLine(rec.Root)
	require.Len(t, moves, 1)
	assert.Equal(t, engine.Move{X: 3, Y: 3, Color: engine.Black}, moves[0])
}

func TestParseGarbageNeverPanics(t *testing.T) {
	for _, s := range []string{"", "(", ")", "(;", "hello", "(;B[", "(;B[a]", "(((;;;)))"} {
		rec := Parse(s)
		require.NotNil(t, rec, "input %q", s)
		require.NotNil(t, rec.Root, "input %q", s)
	}
}

func TestParseVariations(t *testing.T) {
	rec := Parse("(;SZ[9];B[cc](;W[dd];B[ee])(;W[gg]))")

	require.Len(t, rec.Root.Children, 1)
	first := rec.Root.Children[0]
	require.Len(t, first.Children, 2, "two variation blocks spawn two children")

	assert.Equal(t, engine.Move{X: 4, Y: 4, Color: engine.White}, *first.Children[0].Move)
	assert.Equal(t, engine.Move{X: 7, Y: 7, Color: engine.White}, *first.Children[1].Move)
	require.Len(t, first.Children[0].Children, 1)
	assert.Equal(t, engine.Move{X: 5, Y: 5, Color: engine.Black}, *first.Children[0].Children[0].Move)
}

func TestParseMarkers(t *testing.T) {
	rec := Parse("(;SZ[9];B[cc]TR[cc]LB[dd:A][ee:next]CR[ff])")

	node := rec.Root.Children[0]
	require.Len(t, node.Markers, 4)
	assert.Equal(t, tree.Marker{X: 3, Y: 3, Kind: tree.MarkTriangle}, node.Markers[0])
	assert.Equal(t, tree.Marker{X: 4, Y: 4, Kind: tree.MarkLabel, Text: "A"}, node.Markers[1])
	assert.Equal(t, tree.Marker{X: 5, Y: 5, Kind: tree.MarkLabel, Text: "next"}, node.Markers[2])
	assert.Equal(t, tree.Marker{X: 6, Y: 6, Kind: tree.MarkCircle}, node.Markers[3])
}

func TestParseFirstNodeMoveKeepsMarkers(t *testing.T) {
	// первый узел несёт сразу и корневые свойства, и ход с маркером
	rec := Parse("(;GM[1]SZ[9]B[cc]TR[cc];W[ee])")

	assert.Empty(t, rec.Root.Markers, "markers belong to the move, not the root")
	require.Len(t, rec.Root.Children, 1)
	child := rec.Root.Children[0]
	require.NotNil(t, child.Move)
	assert.Equal(t, engine.Move{X: 3, Y: 3, Color: engine.Black}, *child.Move)
	require.Len(t, child.Markers, 1)
	assert.Equal(t, tree.Marker{X: 3, Y: 3, Kind: tree.MarkTriangle}, child.Markers[0])
}

func TestParseCapturesOnBoard(t *testing.T) {
	// Белый камень в углу снимается по ходу партии.
	rec := Parse("(;SZ[9];W[aa];B[ba];B[ab])")

	moves := mainLine(rec.Root)
	require.Len(t, moves, 3)
	leaf := rec.Root.Children[0].Children[0].Children[0]
	assert.Equal(t, engine.Empty, leaf.Board.At(1, 1).Color)
}

func TestGenerateSingleLineHasNoInnerParens(t *testing.T) {
	root := tree.NewRoot(9)
	n := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	n.AddMove(engine.Move{X: 4, Y: 4, Color: engine.White})

	out := Generate(&Record{Size: 9, Root: root})

	assert.Equal(t, 1, strings.Count(out, "("), "no redundant nesting on a single line")
	assert.Contains(t, out, ";B[cc];W[dd]")
}

func TestGenerateBranchPoints(t *testing.T) {
	root := tree.NewRoot(9)
	n := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	n.AddMove(engine.Move{X: 4, Y: 4, Color: engine.White})
	n.AddMove(engine.Move{X: 5, Y: 5, Color: engine.White})

	out := Generate(&Record{Size: 9, Root: root})

	assert.Contains(t, out, "(;W[dd])")
	assert.Contains(t, out, "(;W[ee])")
}

func TestGeneratePassAndMetadata(t *testing.T) {
	root := tree.NewRoot(9)
	n := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	n.AddMove(engine.Pass(engine.White))

	rec := &Record{
		Size: 9,
		Meta: Metadata{PlayerBlack: "teacher", PlayerWhite: "student", Komi: "6.5", Result: "Draw"},
		Root: root,
	}
	out := Generate(rec)

	assert.True(t, strings.HasPrefix(out, "(;GM[1]FF[4]SZ[9]"))
	assert.Contains(t, out, "PB[teacher]")
	assert.Contains(t, out, "PW[student]")
	assert.Contains(t, out, "KM[6.5]")
	assert.Contains(t, out, "RE[Draw]")
	assert.Contains(t, out, "W[]")
}

func TestGenerateEscapesBrackets(t *testing.T) {
	rec := &Record{
		Size: 9,
		Meta: Metadata{GameName: `lesson [3] \ intro`},
		Root: tree.NewRoot(9),
	}
	out := Generate(rec)
	assert.Contains(t, out, `GN[lesson [3\] \\ intro]`)

	back := Parse(out)
	assert.Equal(t, `lesson [3] \ intro`, back.Meta.GameName)
}

// treesEquivalent compares move sequence, branch topology and markers.
func treesEquivalent(t *testing.T, a, b *tree.Node) {
	t.Helper()
	require.Equal(t, len(a.Children), len(b.Children))
	if a.Move == nil {
		assert.Nil(t, b.Move)
	} else {
		require.NotNil(t, b.Move)
		assert.Equal(t, *a.Move, *b.Move)
	}
	assert.Equal(t, a.Markers, b.Markers)
	for i := range a.Children {
		treesEquivalent(t, a.Children[i], b.Children[i])
	}
}

func TestRoundTrip(t *testing.T) {
	root := tree.NewRoot(13)
	n1 := root.AddMove(engine.Move{X: 4, Y: 4, Color: engine.Black})
	n1.Markers = append(n1.Markers,
		tree.Marker{X: 4, Y: 4, Kind: tree.MarkTriangle},
		tree.Marker{X: 10, Y: 10, Kind: tree.MarkLabel, Text: "A"},
	)
	n2 := n1.AddMove(engine.Move{X: 10, Y: 10, Color: engine.White})
	n2.AddMove(engine.Move{X: 4, Y: 10, Color: engine.Black})
	alt := n1.AddMove(engine.Move{X: 10, Y: 4, Color: engine.White})
	alt.AddMove(engine.Pass(engine.Black))

	rec := &Record{
		Size: 13,
		Meta: Metadata{PlayerBlack: "b", PlayerWhite: "w", Komi: "7.5"},
		Root: root,
	}

	parsed := Parse(Generate(rec))
	require.Equal(t, 13, parsed.Size)
	assert.Equal(t, rec.Meta.Komi, parsed.Meta.Komi)
	treesEquivalent(t, root, parsed.Root)
}

func TestRoundTripHandicapSetup(t *testing.T) {
	root := tree.NewRoot(9)
	setup := []tree.Setup{
		{Point: engine.Point{X: 7, Y: 3}, Color: engine.Black},
		{Point: engine.Point{X: 3, Y: 7}, Color: engine.Black},
	}
	root.Setup = setup
	root.Board = tree.ApplySetup(root.Board, setup)
	root.AddMove(engine.Move{X: 5, Y: 5, Color: engine.White})

	out := Generate(&Record{Size: 9, Root: root})
	assert.Contains(t, out, "AB[gc][cg]")

	parsed := Parse(out)
	assert.Equal(t, engine.Black, parsed.Root.Board.At(7, 3).Color)
	assert.Equal(t, engine.Black, parsed.Root.Board.At(3, 7).Color)
	treesEquivalent(t, root, parsed.Root)
}
