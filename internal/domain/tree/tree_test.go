package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igomimu/online-go-school/internal/domain/engine"
)

func TestAddMoveAppliesCaptures(t *testing.T) {
	root := NewRoot(9)
	n1 := root.AddMove(engine.Move{X: 1, Y: 1, Color: engine.White})
	n2 := n1.AddMove(engine.Move{X: 2, Y: 1, Color: engine.Black})
	n3 := n2.AddMove(engine.Move{X: 1, Y: 2, Color: engine.Black})

	assert.Equal(t, engine.Empty, n3.Board.At(1, 1).Color, "corner stone captured")
	// предок хранит позицию до взятия
	assert.Equal(t, engine.White, n2.Board.At(1, 1).Color)
	assert.Equal(t, 4, n3.NextNumber)
}

func TestAddMoveNumbersStones(t *testing.T) {
	root := NewRoot(9)
	n1 := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	n2 := n1.AddMove(engine.Move{X: 4, Y: 4, Color: engine.White})

	assert.Equal(t, 1, n1.Board.At(3, 3).Number)
	assert.Equal(t, 2, n2.Board.At(4, 4).Number)
}

func TestAddMoveDeduplicatesReplay(t *testing.T) {
	root := NewRoot(9)
	m := engine.Move{X: 3, Y: 3, Color: engine.Black}

	first := root.AddMove(m)
	second := root.AddMove(m)

	assert.Same(t, first, second, "identical move must land on the same child")
	assert.Len(t, root.Children, 1)
}

func TestAddMoveBranches(t *testing.T) {
	root := NewRoot(9)
	a := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	b := root.AddMove(engine.Move{X: 5, Y: 5, Color: engine.Black})

	assert.NotSame(t, a, b)
	require.Len(t, root.Children, 2)
	// порядок вставки = порядок вариантов, первый ребёнок — главная линия
	assert.Same(t, a, root.Children[0])
	assert.Same(t, b, root.Children[1])
}

func TestAddMovePass(t *testing.T) {
	root := NewRoot(9)
	n1 := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	n2 := n1.AddMove(engine.Pass(engine.White))

	assert.Equal(t, n1.Board, n2.Board)
	assert.Equal(t, n1.NextNumber+1, n2.NextNumber)
}

func TestCursorNavigation(t *testing.T) {
	root := NewRoot(9)
	n1 := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	n2 := n1.AddMove(engine.Move{X: 4, Y: 4, Color: engine.White})
	alt := n1.AddMove(engine.Move{X: 5, Y: 5, Color: engine.White})

	c := NewCursor(root)
	c.StepForward()
	assert.Same(t, n1, c.Current)

	c.StepForward() // главная линия — первый ребёнок
	assert.Same(t, n2, c.Current)

	c.StepBack()
	c.JumpToVariation(1)
	assert.Same(t, alt, c.Current)

	c.JumpToVariation(5) // нет такого варианта — no-op
	assert.Same(t, alt, c.Current)

	c.ToRoot()
	assert.Same(t, root, c.Current)

	c.StepBack() // у корня no-op
	assert.Same(t, root, c.Current)

	c.FastForwardToEnd()
	assert.Same(t, n2, c.Current)
}

func TestRecalculatePropagatesRootEdit(t *testing.T) {
	root := NewRoot(9)
	n1 := root.AddMove(engine.Move{X: 3, Y: 3, Color: engine.Black})
	n2 := n1.AddMove(engine.Move{X: 4, Y: 4, Color: engine.White})

	// преподаватель догружает установочный камень в корень
	setup := []Setup{{Point: engine.Point{X: 7, Y: 7}, Color: engine.White}}
	root.Setup = append(root.Setup, setup...)
	root.Board = ApplySetup(root.Board, setup)
	Recalculate(root)

	assert.Equal(t, engine.White, n1.Board.At(7, 7).Color)
	assert.Equal(t, engine.White, n2.Board.At(7, 7).Color)
	// свои ходы на месте
	assert.Equal(t, engine.Black, n2.Board.At(3, 3).Color)
	assert.Equal(t, engine.White, n2.Board.At(4, 4).Color)
}

func TestApplySetupErase(t *testing.T) {
	b := engine.NewBoard(9)
	b = ApplySetup(b, []Setup{
		{Point: engine.Point{X: 3, Y: 3}, Color: engine.Black},
		{Point: engine.Point{X: 4, Y: 4}, Color: engine.White},
	})
	b = ApplySetup(b, []Setup{{Point: engine.Point{X: 3, Y: 3}, Color: engine.Empty}})

	assert.Equal(t, engine.Empty, b.At(3, 3).Color)
	assert.Equal(t, engine.White, b.At(4, 4).Color)
}

func TestAddNodeWithSetupAndMove(t *testing.T) {
	root := NewRoot(9)
	mv := engine.Move{X: 1, Y: 2, Color: engine.Black}
	n := root.AddNode(&mv, []Setup{
		{Point: engine.Point{X: 1, Y: 1}, Color: engine.White},
		{Point: engine.Point{X: 2, Y: 1}, Color: engine.Black},
	})

	// установка применяется до хода: ход может снять камень установки
	assert.Equal(t, engine.Black, n.Board.At(2, 1).Color)
	assert.Equal(t, engine.Black, n.Board.At(1, 2).Color)
	assert.Equal(t, engine.Empty, n.Board.At(1, 1).Color, "setup stone captured by the move")
}

func TestMarkerKindValid(t *testing.T) {
	for _, k := range []MarkerKind{MarkTriangle, MarkCircle, MarkSquare, MarkCross, MarkLabel} {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, MarkerKind("FOO").Valid())
	assert.False(t, MarkerKind("").Valid())
	assert.False(t, MarkerKind("tr").Valid(), "kind is normalized to upper case before validation")
}
