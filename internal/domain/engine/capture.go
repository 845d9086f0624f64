package engine

// neighbors перечисляет четыре ортогональных соседа точки.
func neighbors(x, y int) [4]Point {
	return [4]Point{
		{X: x - 1, Y: y},
		{X: x + 1, Y: y},
		{X: x, Y: y - 1},
		{X: x, Y: y + 1},
	}
}

// HasLiberties reports whether the same-color group containing (x, y)
// has at least one liberty, and returns the visited part of the group.
// When the result is true the returned group may be incomplete: the
// search stops at the first empty neighbor, which is fine because no
// removal follows a true result. When the result is false the whole
// connected group has been enumerated.
func HasLiberties(b Board, x, y int, color Color) (bool, []Point) {
	if !b.InBounds(x, y) || b.At(x, y).Color != color {
		return false, nil
	}

	visited := make(map[Point]bool)
	group := make([]Point, 0, 4)
	stack := []Point{{X: x, Y: y}}
	visited[Point{X: x, Y: y}] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, p)

		for _, n := range neighbors(p.X, p.Y) {
			if !b.InBounds(n.X, n.Y) || visited[n] {
				continue
			}
			switch b.At(n.X, n.Y).Color {
			case Empty:
				return true, group
			case color:
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}

	return false, group
}

// CheckCapture — given a board where placedColor has just occupied
// (x, y), removes every adjacent opponent group left without liberties
// and returns the resulting board plus the number of captured stones.
// Входная доска не изменяется.
func CheckCapture(b Board, x, y int, placedColor Color) (Board, int) {
	opponent := placedColor.Opponent()
	result := b.Clone()
	captured := 0

	for _, n := range neighbors(x, y) {
		if !result.InBounds(n.X, n.Y) || result.At(n.X, n.Y).Color != opponent {
			continue
		}
		alive, group := HasLiberties(result, n.X, n.Y, opponent)
		if alive {
			continue
		}
		for _, p := range group {
			result.set(p.X, p.Y, Stone{})
		}
		captured += len(group)
	}

	return result, captured
}
