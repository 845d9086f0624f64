package engine

// Таблицы хоси для форовых камней. Порядок важен: срез
// positions[0:handicap] даёт корректный набор для форы от 2 до 9.
var handicapPoints = map[int][]Point{
	9: {
		{X: 7, Y: 3}, {X: 3, Y: 7},
		{X: 3, Y: 3}, {X: 7, Y: 7},
		{X: 5, Y: 5},
		{X: 3, Y: 5}, {X: 7, Y: 5},
		{X: 5, Y: 3}, {X: 5, Y: 7},
	},
	13: {
		{X: 10, Y: 4}, {X: 4, Y: 10},
		{X: 4, Y: 4}, {X: 10, Y: 10},
		{X: 7, Y: 7},
		{X: 4, Y: 7}, {X: 10, Y: 7},
		{X: 7, Y: 4}, {X: 7, Y: 10},
	},
	19: {
		{X: 16, Y: 4}, {X: 4, Y: 16},
		{X: 4, Y: 4}, {X: 16, Y: 16},
		{X: 10, Y: 10},
		{X: 4, Y: 10}, {X: 16, Y: 10},
		{X: 10, Y: 4}, {X: 10, Y: 16},
	},
}

// HandicapStones returns the star points to seed for the given board
// size and handicap count, in placement order. Unsupported sizes and
// handicap below 2 yield nothing; handicap above 9 is capped at 9.
func HandicapStones(size, handicap int) []Point {
	points, ok := handicapPoints[size]
	if !ok || handicap < 2 {
		return nil
	}
	if handicap > len(points) {
		handicap = len(points)
	}
	out := make([]Point, handicap)
	copy(out, points[:handicap])
	return out
}
