package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeAll(b Board, color Color, points ...Point) Board {
	for _, p := range points {
		b = b.Place(p.X, p.Y, Stone{Color: color})
	}
	return b
}

func TestCheckCaptureCornerStone(t *testing.T) {
	// Белый камень в углу, чёрные завершают окружение.
	b := NewBoard(9)
	b = placeAll(b, White, Point{1, 1})
	b = placeAll(b, Black, Point{2, 1})

	b = b.Place(1, 2, Stone{Color: Black})
	after, captured := CheckCapture(b, 1, 2, Black)

	assert.Equal(t, 1, captured)
	assert.Equal(t, Empty, after.At(1, 1).Color)
	// атакующие камни остались
	assert.Equal(t, Black, after.At(2, 1).Color)
	assert.Equal(t, Black, after.At(1, 2).Color)
}

func TestCheckCaptureRemovesWholeGroupOnly(t *testing.T) {
	// Группа из трёх белых камней в углу.
	b := NewBoard(9)
	b = placeAll(b, White, Point{1, 1}, Point{2, 1}, Point{1, 2})
	b = placeAll(b, Black, Point{3, 1}, Point{2, 2})

	before := b.Place(1, 3, Stone{Color: Black})
	after, captured := CheckCapture(before, 1, 3, Black)

	require.Equal(t, 3, captured)
	assert.Equal(t, Empty, after.At(1, 1).Color)
	assert.Equal(t, Empty, after.At(2, 1).Color)
	assert.Equal(t, Empty, after.At(1, 2).Color)
	// ровно группа: общее число камней уменьшилось на её размер
	assert.Equal(t, before.StoneCount()-3, after.StoneCount())
}

func TestCheckCaptureNoLibertyLoss(t *testing.T) {
	// Белая группа с дыханием не снимается.
	b := NewBoard(9)
	b = placeAll(b, White, Point{5, 5}, Point{5, 6})
	b = placeAll(b, Black, Point{4, 5}, Point{6, 5}, Point{5, 4})

	placed := b.Place(4, 6, Stone{Color: Black})
	after, captured := CheckCapture(placed, 4, 6, Black)

	assert.Equal(t, 0, captured)
	assert.Equal(t, White, after.At(5, 5).Color)
	assert.Equal(t, White, after.At(5, 6).Color)
}

func TestCheckCaptureDoesNotMutateInput(t *testing.T) {
	b := NewBoard(5)
	b = placeAll(b, White, Point{1, 1})
	b = placeAll(b, Black, Point{2, 1})
	placed := b.Place(1, 2, Stone{Color: Black})

	_, captured := CheckCapture(placed, 1, 2, Black)

	require.Equal(t, 1, captured)
	assert.Equal(t, White, placed.At(1, 1).Color, "input board must stay intact")
}

func TestCheckCaptureMultipleGroups(t *testing.T) {
	// Один ход снимает два отдельных белых камня с разных сторон.
	b := NewBoard(5)
	b = placeAll(b, White, Point{2, 1}, Point{2, 3})
	b = placeAll(b, Black, Point{1, 1}, Point{3, 1}, Point{1, 3}, Point{3, 3}, Point{2, 4})

	placed := b.Place(2, 2, Stone{Color: Black})
	after, captured := CheckCapture(placed, 2, 2, Black)

	assert.Equal(t, 2, captured)
	assert.Equal(t, Empty, after.At(2, 1).Color)
	assert.Equal(t, Empty, after.At(2, 3).Color)
}

func TestHasLiberties(t *testing.T) {
	b := NewBoard(9)
	b = placeAll(b, White, Point{1, 1}, Point{2, 1})
	b = placeAll(b, Black, Point{3, 1}, Point{1, 2})

	alive, _ := HasLiberties(b, 1, 1, White)
	assert.True(t, alive, "(2,2) is still open")

	b = placeAll(b, Black, Point{2, 2})
	alive, group := HasLiberties(b, 1, 1, White)
	assert.False(t, alive)
	// при отрицательном ответе группа перечислена целиком
	assert.Len(t, group, 2)
}

func TestHasLibertiesWrongColor(t *testing.T) {
	b := NewBoard(9)
	b = placeAll(b, White, Point{1, 1})

	alive, group := HasLiberties(b, 1, 1, Black)
	assert.False(t, alive)
	assert.Empty(t, group)
}

func TestBoardSnapshots(t *testing.T) {
	b := NewBoard(9)
	b2 := b.Place(3, 3, Stone{Color: Black, Number: 1})

	assert.Equal(t, Empty, b.At(3, 3).Color, "original snapshot untouched")
	assert.Equal(t, Black, b2.At(3, 3).Color)
	assert.Equal(t, 1, b2.At(3, 3).Number)

	b3 := b2.Remove(3, 3)
	assert.Equal(t, Black, b2.At(3, 3).Color)
	assert.Equal(t, Empty, b3.At(3, 3).Color)
}

func TestBoardOutOfRange(t *testing.T) {
	b := NewBoard(9)
	assert.Equal(t, Stone{}, b.At(0, 0))
	assert.Equal(t, Stone{}, b.At(10, 5))

	same := b.Place(0, 0, Stone{Color: Black})
	assert.Equal(t, 0, same.StoneCount())
}
