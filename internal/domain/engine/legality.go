package engine

import "strings"

// BoardHash is the canonical, order-stable encoding of stone colors
// only. Move numbers and display annotations never influence it, so
// two boards with identical stones always hash identically.
func BoardHash(b Board) string {
	var sb strings.Builder
	sb.Grow(b.size*b.size + b.size)
	for y := 1; y <= b.size; y++ {
		if y > 1 {
			sb.WriteByte('/')
		}
		for x := 1; x <= b.size; x++ {
			switch b.At(x, y).Color {
			case Black:
				sb.WriteByte('b')
			case White:
				sb.WriteByte('w')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// IsLegalMove classifies a candidate move: occupied points, suicide and
// simple ko are rejected. lastBoardHash is the hash of the board as it
// stood before the opponent's last move; pass "" to skip the ko check.
// Нелегальный ход — не ошибка, просто false.
func IsLegalMove(b Board, x, y int, color Color, lastBoardHash string) bool {
	if !b.InBounds(x, y) {
		return false
	}
	if b.At(x, y).Color != Empty {
		return false
	}

	placed := b.Place(x, y, Stone{Color: color})
	after, captured := CheckCapture(placed, x, y, color)

	if captured == 0 {
		if alive, _ := HasLiberties(after, x, y, color); !alive {
			return false // suicide
		}
	}

	if lastBoardHash != "" && BoardHash(after) == lastBoardHash {
		return false // simple ko: recreates the pre-capture position
	}

	return true
}
