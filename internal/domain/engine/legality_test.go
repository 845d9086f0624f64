package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLegalMoveOccupied(t *testing.T) {
	b := NewBoard(9)
	b = b.Place(3, 3, Stone{Color: Black})

	assert.False(t, IsLegalMove(b, 3, 3, White, ""))
	assert.False(t, IsLegalMove(b, 3, 3, Black, ""))
	assert.True(t, IsLegalMove(b, 4, 3, White, ""))
}

func TestIsLegalMoveOffBoard(t *testing.T) {
	b := NewBoard(9)
	assert.False(t, IsLegalMove(b, 0, 5, Black, ""))
	assert.False(t, IsLegalMove(b, 10, 5, Black, ""))
}

func TestIsLegalMoveSuicide(t *testing.T) {
	// Точка (1,1) полностью окружена чёрными.
	b := NewBoard(9)
	b = placeAll(b, Black, Point{2, 1}, Point{1, 2})

	assert.False(t, IsLegalMove(b, 1, 1, White, ""), "suicide")
	assert.True(t, IsLegalMove(b, 1, 1, Black, ""), "own eye fill is pointless but legal")
}

func TestIsLegalMoveSuicideWithCapture(t *testing.T) {
	// Ход в безликую точку легален, если он сам снимает группу.
	b := NewBoard(9)
	b = placeAll(b, Black, Point{2, 1}, Point{1, 2})
	b = placeAll(b, White, Point{3, 1}, Point{2, 2}, Point{1, 3})

	// белые зажали чёрную пару, (1,1) снимает её
	assert.True(t, IsLegalMove(b, 1, 1, White, ""))
}

// koBoard строит классическую позицию ко на 5x5: чёрный камень (3,2)
// снимается ходом белых в (2,2).
func koBoard() Board {
	b := NewBoard(5)
	b = placeAll(b, Black, Point{2, 1}, Point{1, 2}, Point{2, 3}, Point{3, 2})
	b = placeAll(b, White, Point{3, 1}, Point{4, 2}, Point{3, 3})
	return b
}

func TestSimpleKo(t *testing.T) {
	b := koBoard()
	preWhiteHash := BoardHash(b)

	require.True(t, IsLegalMove(b, 2, 2, White, ""))
	placed := b.Place(2, 2, Stone{Color: White})
	after, captured := CheckCapture(placed, 2, 2, White)
	require.Equal(t, 1, captured)
	require.Equal(t, Empty, after.At(3, 2).Color)

	// немедленный обратный захват запрещён
	assert.False(t, IsLegalMove(after, 3, 2, Black, preWhiteHash))
	// без снимка ко тот же ход легален
	assert.True(t, IsLegalMove(after, 3, 2, Black, ""))

	// после хода в другом месте позиция уже другая — можно
	elsewhere := after.Place(5, 5, Stone{Color: White})
	assert.True(t, IsLegalMove(elsewhere, 3, 2, Black, BoardHash(after)))
}

func TestBoardHashIgnoresMoveNumbers(t *testing.T) {
	a := NewBoard(5).Place(2, 2, Stone{Color: Black, Number: 7})
	b := NewBoard(5).Place(2, 2, Stone{Color: Black, Number: 42})
	c := NewBoard(5).Place(2, 2, Stone{Color: White})

	assert.Equal(t, BoardHash(a), BoardHash(b))
	assert.NotEqual(t, BoardHash(a), BoardHash(c))
}

func TestBoardHashShape(t *testing.T) {
	b := NewBoard(3)
	b = b.Place(1, 1, Stone{Color: Black})
	b = b.Place(3, 2, Stone{Color: White})

	assert.Equal(t, "b../..w/...", BoardHash(b))
}
