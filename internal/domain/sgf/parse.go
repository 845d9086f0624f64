package sgf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/tree"
)

// DefaultBoardSize подставляется при отсутствующем или битом SZ.
const DefaultBoardSize = 19

// Record is a parsed SGF document: the branching move tree plus the
// flat metadata extracted once for the whole game.
type Record struct {
	Size int
	Meta Metadata
	Root *tree.Node
}

var (
	sizePattern      = regexp.MustCompile(`(?:^|[^A-Z])SZ\[(\d+)\]`)
	metadataPatterns = func() map[string]*regexp.Regexp {
		m := make(map[string]*regexp.Regexp, len(metadataTags))
		for _, t := range metadataTags {
			// Предыдущий символ не должен быть буквой тега (иначе
			// RE совпадёт внутри ARE и т.п.).
			m[t.tag] = regexp.MustCompile(`(?:^|[^A-Z])` + t.tag + `\[((?:\\.|[^\]\\])*)\]`)
		}
		return m
	}()
)

// Parse builds a Record from SGF text. Malformed input is handled by
// omission, never by failing: unknown properties are skipped, invalid
// coordinates are dropped, a missing or invalid SZ falls back to 19,
// and the worst possible outcome is a record with an empty tree.
func Parse(text string) *Record {
	text = strings.TrimSpace(text)

	rec := &Record{
		Size: parseSize(text),
		Meta: extractMetadata(text),
	}
	rec.Root = tree.NewRoot(rec.Size)

	p := &parser{src: text, size: rec.Size}
	if !p.skipTo('(') {
		return rec
	}
	p.pos++
	p.parseSequence(rec.Root, true)

	return rec
}

func parseSize(text string) int {
	m := sizePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultBoardSize
	}
	size, err := strconv.Atoi(m[1])
	if err != nil || size < 1 {
		return DefaultBoardSize
	}
	return size
}

// extractMetadata is a flat first-occurrence lookup over the raw text;
// metadata tags are assumed to appear once near the root.
func extractMetadata(text string) Metadata {
	var meta Metadata
	for _, t := range metadataTags {
		if m := metadataPatterns[t.tag].FindStringSubmatch(text); m != nil {
			*t.field(&meta) = unescape(m[1])
		}
	}
	return meta
}

type parser struct {
	src  string
	size int
	pos  int
}

// parseSequence walks ;-delimited nodes and (...)-delimited sibling
// variations. A node followed by another ';' continues the main line;
// each '(...)' block spawns a child branch of the node before it.
func (p *parser) parseSequence(cur *tree.Node, atRoot bool) {
	first := atRoot
	for p.pos < len(p.src) {
		p.skipWhitespace()
		if p.pos >= len(p.src) {
			return
		}
		switch p.src[p.pos] {
		case ';':
			p.pos++
			cur = p.parseNode(cur, first)
			first = false
		case '(':
			p.pos++
			p.parseSequence(cur, false)
		case ')':
			p.pos++
			return
		default:
			p.pos++
		}
	}
}

// parseNode consumes one node's property block (everything up to the
// next ';', '(' or ')') and attaches the result to the tree. The very
// first node of the document applies onto the root instead of
// creating a child.
func (p *parser) parseNode(cur *tree.Node, isRoot bool) *tree.Node {
	var move *engine.Move
	var setup []tree.Setup
	var markers []tree.Marker

	for p.pos < len(p.src) {
		p.skipWhitespace()
		if p.pos >= len(p.src) {
			break
		}
		c := p.src[p.pos]
		if c == ';' || c == '(' || c == ')' {
			break
		}
		if c < 'A' || c > 'Z' {
			p.pos++
			continue
		}

		name, values := p.parseProperty()

		switch name {
		case "B", "W":
			color := engine.Black
			if name == "W" {
				color = engine.White
			}
			if len(values) > 0 {
				if pt, ok := p.coord(values[0]); ok {
					move = &engine.Move{X: pt.X, Y: pt.Y, Color: color}
				} else if values[0] == "" || values[0] == "tt" {
					m := engine.Pass(color)
					move = &m
				}
				// прочее — битая координата, ход отбрасывается
			}
		case "AB":
			setup = p.appendSetup(setup, values, engine.Black)
		case "AW":
			setup = p.appendSetup(setup, values, engine.White)
		case "AE":
			setup = p.appendSetup(setup, values, engine.Empty)
		case "TR", "CR", "SQ", "MA":
			for _, v := range values {
				if pt, ok := p.coord(v); ok {
					markers = append(markers, tree.Marker{X: pt.X, Y: pt.Y, Kind: tree.MarkerKind(name)})
				}
			}
		case "LB":
			for _, v := range values {
				coord, label, found := strings.Cut(v, ":")
				if !found {
					continue
				}
				if pt, ok := p.coord(coord); ok {
					markers = append(markers, tree.Marker{X: pt.X, Y: pt.Y, Kind: tree.MarkLabel, Text: label})
				}
			}
		default:
			// unknown property, skipped
		}
	}

	if isRoot {
		if len(setup) > 0 {
			cur.Setup = append(cur.Setup, setup...)
			cur.Board = tree.ApplySetup(cur.Board, setup)
			tree.Recalculate(cur)
		}
		// маркеры первого узла относятся к ходу, если он есть
		if move != nil {
			child := cur.AddMove(*move)
			child.Markers = append(child.Markers, markers...)
			return child
		}
		cur.Markers = append(cur.Markers, markers...)
		return cur
	}

	if move == nil && len(setup) == 0 {
		// annotation-only node folds into the current one
		cur.Markers = append(cur.Markers, markers...)
		return cur
	}

	var child *tree.Node
	if len(setup) == 0 {
		child = cur.AddMove(*move)
	} else {
		child = cur.AddNode(move, setup)
	}
	child.Markers = append(child.Markers, markers...)
	return child
}

func (p *parser) appendSetup(setup []tree.Setup, values []string, color engine.Color) []tree.Setup {
	for _, v := range values {
		if pt, ok := p.coord(v); ok {
			setup = append(setup, tree.Setup{Point: pt, Color: color})
		}
	}
	return setup
}

// parseProperty scans an identifier plus its bracketed values. At
// least the identifier character under the cursor is always consumed,
// so the caller's loop makes progress even on malformed input.
func (p *parser) parseProperty() (string, []string) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= 'A' && p.src[p.pos] <= 'Z' {
		p.pos++
	}
	name := p.src[start:p.pos]

	var values []string
	for p.pos < len(p.src) {
		p.skipWhitespace()
		if p.pos >= len(p.src) || p.src[p.pos] != '[' {
			break
		}
		p.pos++
		valueStart := p.pos
		escaped := false
		for p.pos < len(p.src) {
			if escaped {
				escaped = false
			} else if p.src[p.pos] == '\\' {
				escaped = true
			} else if p.src[p.pos] == ']' {
				break
			}
			p.pos++
		}
		values = append(values, unescape(p.src[valueStart:p.pos]))
		if p.pos < len(p.src) {
			p.pos++ // закрывающая ']'
		}
	}

	return name, values
}

// coord decodes a two-letter SGF coordinate into a 1-indexed point.
// Letters outside a..z or points outside the board are invalid.
func (p *parser) coord(s string) (engine.Point, bool) {
	if len(s) != 2 {
		return engine.Point{}, false
	}
	if s[0] < 'a' || s[0] > 'z' || s[1] < 'a' || s[1] > 'z' {
		return engine.Point{}, false
	}
	pt := engine.Point{X: int(s[0]-'a') + 1, Y: int(s[1]-'a') + 1}
	if pt.X > p.size || pt.Y > p.size {
		return engine.Point{}, false
	}
	return pt, true
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) skipTo(ch byte) bool {
	for p.pos < len(p.src) {
		if p.src[p.pos] == ch {
			return true
		}
		p.pos++
	}
	return false
}

func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	escaped := false
	for i := 0; i < len(s); i++ {
		if !escaped && s[i] == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteByte(s[i])
	}
	return sb.String()
}
