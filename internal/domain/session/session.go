package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/igomimu/online-go-school/internal/domain/engine"
)

type Status string

const (
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// ResultDraw — нейтральный результат после двух пасов подряд; финальный
// подсчёт очков остаётся за людьми.
const ResultDraw = "Draw"

// Session is one live match between two identities. Unlike the move
// tree it keeps a linear history: variations belong to lessons and
// reviews, not to actual play. All state lives in this one value; the
// arbiter applies requests to it sequentially.
type Session struct {
	ID            string        `json:"id"`
	PlayerBlack   string        `json:"player_black"`
	PlayerWhite   string        `json:"player_white"`
	BoardSize     int           `json:"board_size"`
	Handicap      int           `json:"handicap"`
	Komi          float64       `json:"komi"`
	Status        Status        `json:"status"`
	Board         engine.Board  `json:"-"`
	Current       engine.Color  `json:"current"`
	History       []engine.Move `json:"history"`
	CapturedBlack int           `json:"captured_black"` // stones captured BY black
	CapturedWhite int           `json:"captured_white"`
	MoveNumber    int           `json:"move_number"`
	Result        string        `json:"result,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`

	// хэш доски перед последним ходом соперника, для проверки ко
	lastBoardHash string
}

// New creates a session. For handicap of 2 or more on a supported size
// the star points are pre-seeded with un-numbered black stones and
// White opens; otherwise Black opens.
func New(black, white string, size, handicap int, komi float64) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		PlayerBlack: black,
		PlayerWhite: white,
		BoardSize:   size,
		Handicap:    handicap,
		Komi:        komi,
		Status:      StatusPlaying,
		Board:       engine.NewBoard(size),
		Current:     engine.Black,
		MoveNumber:  1,
		CreatedAt:   time.Now(),
	}

	if seeded := engine.HandicapStones(size, handicap); len(seeded) > 0 {
		b := s.Board
		for _, p := range seeded {
			b = b.Place(p.X, p.Y, engine.Stone{Color: engine.Black})
		}
		s.Board = b
		s.Current = engine.White
	}

	return s
}

// LastBoardHash exposes the stored ko snapshot, e.g. for persistence.
func (s *Session) LastBoardHash() string {
	return s.lastBoardHash
}

// Move applies a stone placement. It returns false — with no state
// change at all — when the session is over, it is not c's turn, or the
// move is illegal (occupied, suicide, simple ko).
func (s *Session) Move(c engine.Color, x, y int) bool {
	if s.Status != StatusPlaying || c != s.Current {
		return false
	}
	if !engine.IsLegalMove(s.Board, x, y, c, s.lastBoardHash) {
		return false
	}

	preHash := engine.BoardHash(s.Board)
	placed := s.Board.Place(x, y, engine.Stone{Color: c, Number: s.MoveNumber})
	after, captured := engine.CheckCapture(placed, x, y, c)

	s.Board = after
	if c == engine.Black {
		s.CapturedBlack += captured
	} else {
		s.CapturedWhite += captured
	}
	s.History = append(s.History, engine.Move{X: x, Y: y, Color: c})
	s.lastBoardHash = preHash
	s.MoveNumber++
	s.Current = c.Opponent()
	return true
}

// Pass records a pass. Two consecutive passes by alternating colors
// finish the session with the neutral result.
func (s *Session) Pass(c engine.Color) bool {
	if s.Status != StatusPlaying || c != s.Current {
		return false
	}

	prevWasPass := len(s.History) > 0 && s.History[len(s.History)-1].IsPass()

	s.History = append(s.History, engine.Pass(c))
	s.Current = c.Opponent()

	if prevWasPass {
		s.Status = StatusFinished
		s.Result = ResultDraw
	}
	return true
}

// Resign finishes the session immediately in the opponent's favor.
func (s *Session) Resign(c engine.Color) bool {
	if s.Status != StatusPlaying {
		return false
	}
	if c != engine.Black && c != engine.White {
		return false
	}

	s.Status = StatusFinished
	if c == engine.Black {
		s.Result = "W+R"
	} else {
		s.Result = "B+R"
	}
	return true
}

// ColorOf returns the color a participant plays, or Empty for
// identities that are not part of this session.
func (s *Session) ColorOf(playerID string) engine.Color {
	switch playerID {
	case s.PlayerBlack:
		return engine.Black
	case s.PlayerWhite:
		return engine.White
	default:
		return engine.Empty
	}
}
