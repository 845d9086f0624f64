package sgf

import (
	"fmt"
	"strings"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/tree"
)

// Generate serializes a record back to SGF text. Parentheses are
// emitted only at actual branch points, so single-line records stay
// free of redundant nesting while every variation remains losslessly
// representable. Точного текстового равенства с исходником не
// гарантируется — только те же ходы, топология и маркеры.
func Generate(rec *Record) string {
	var sb strings.Builder

	sb.WriteString("(;GM[1]FF[4]")
	fmt.Fprintf(&sb, "SZ[%d]", rec.Size)

	for _, t := range metadataTags {
		if v := *t.field(&rec.Meta); v != "" {
			sb.WriteString(t.tag)
			sb.WriteByte('[')
			sb.WriteString(escape(v))
			sb.WriteByte(']')
		}
	}

	if rec.Root != nil {
		writeBoardSetup(&sb, rec.Root.Board)
		writeMarkers(&sb, rec.Root.Markers)
		writeDescendants(&sb, rec.Root)
	}

	sb.WriteByte(')')
	return sb.String()
}

// writeBoardSetup emits AB/AW for the un-numbered stones sitting on
// the root board (handicap and lesson setup stones).
func writeBoardSetup(sb *strings.Builder, b engine.Board) {
	var black, white []string
	for y := 1; y <= b.Size(); y++ {
		for x := 1; x <= b.Size(); x++ {
			s := b.At(x, y)
			if s.Color == engine.Empty || s.Number != 0 {
				continue
			}
			coord, ok := pointToCoord(x, y)
			if !ok {
				continue
			}
			if s.Color == engine.Black {
				black = append(black, coord)
			} else {
				white = append(white, coord)
			}
		}
	}
	writeCoordList(sb, "AB", black)
	writeCoordList(sb, "AW", white)
}

func writeCoordList(sb *strings.Builder, tag string, coords []string) {
	if len(coords) == 0 {
		return
	}
	sb.WriteString(tag)
	for _, c := range coords {
		sb.WriteByte('[')
		sb.WriteString(c)
		sb.WriteByte(']')
	}
}

// writeDescendants applies the branch-point rule: zero children stop,
// exactly one child continues the current line inline, two or more
// wrap each child's entire subtree in its own (...) block.
func writeDescendants(sb *strings.Builder, n *tree.Node) {
	switch len(n.Children) {
	case 0:
	case 1:
		writeNode(sb, n.Children[0])
		writeDescendants(sb, n.Children[0])
	default:
		for _, child := range n.Children {
			sb.WriteByte('(')
			writeNode(sb, child)
			writeDescendants(sb, child)
			sb.WriteByte(')')
		}
	}
}

func writeNode(sb *strings.Builder, n *tree.Node) {
	sb.WriteByte(';')
	writeSetupProps(sb, n.Setup)
	if n.Move != nil {
		m := *n.Move
		tag := "B"
		if m.Color == engine.White {
			tag = "W"
		}
		sb.WriteString(tag)
		sb.WriteByte('[')
		if !m.IsPass() {
			if coord, ok := pointToCoord(m.X, m.Y); ok {
				sb.WriteString(coord)
			}
		}
		sb.WriteByte(']')
	}
	writeMarkers(sb, n.Markers)
}

func writeSetupProps(sb *strings.Builder, setup []tree.Setup) {
	var black, white, erased []string
	for _, s := range setup {
		coord, ok := pointToCoord(s.Point.X, s.Point.Y)
		if !ok {
			continue
		}
		switch s.Color {
		case engine.Black:
			black = append(black, coord)
		case engine.White:
			white = append(white, coord)
		default:
			erased = append(erased, coord)
		}
	}
	writeCoordList(sb, "AB", black)
	writeCoordList(sb, "AW", white)
	writeCoordList(sb, "AE", erased)
}

func writeMarkers(sb *strings.Builder, markers []tree.Marker) {
	for _, m := range markers {
		coord, ok := pointToCoord(m.X, m.Y)
		if !ok {
			continue
		}
		sb.WriteString(string(m.Kind))
		sb.WriteByte('[')
		sb.WriteString(coord)
		if m.Kind == tree.MarkLabel {
			sb.WriteByte(':')
			sb.WriteString(escape(m.Text))
		}
		sb.WriteByte(']')
	}
}

// pointToCoord encodes a 1-indexed point as two lowercase letters.
// Values above 26 have no SGF letter and are dropped.
func pointToCoord(x, y int) (string, bool) {
	if x < 1 || x > 26 || y < 1 || y > 26 {
		return "", false
	}
	return string([]byte{byte('a' + x - 1), byte('a' + y - 1)}), true
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `]`, `\]`)
	return s
}
