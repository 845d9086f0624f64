package arbiter

import (
	"encoding/json"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/session"
)

// Apply validates one incoming request against the session and applies
// it. It returns the outgoing message to rebroadcast and whether the
// request was applied. Requests that fail validation — wrong turn,
// illegal move, sender not a participant, wrong message type — are
// dropped silently: (nil, false) and no state change. Никаких ответов
// об отказе контракт не предусматривает.
//
// The caller is the single authoritative writer and must apply
// requests sequentially, in receipt order.
func Apply(s *session.Session, msg GameMessage) (*GameMessage, bool) {
	if s == nil {
		return nil, false
	}

	switch msg.Type {
	case TypeMove:
		var p MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, false
		}
		color := s.ColorOf(p.Player)
		if color == engine.Empty || !s.Move(color, p.X, p.Y) {
			return nil, false
		}
		return boardUpdate(s), true

	case TypePass:
		var p PassPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, false
		}
		color := s.ColorOf(p.Player)
		if color == engine.Empty || !s.Pass(color) {
			return nil, false
		}
		if s.Status == session.StatusFinished {
			return ended(s, p.GameKey), true
		}
		return boardUpdate(s), true

	case TypeResign:
		var p ResignPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, false
		}
		color := s.ColorOf(p.Player)
		if color == engine.Empty || !s.Resign(color) {
			return nil, false
		}
		return ended(s, p.GameKey), true

	default:
		return nil, false
	}
}

// boardUpdate snapshots the session into the broadcast payload.
func boardUpdate(s *session.Session) *GameMessage {
	msg := NewGameMessage(TypeBoardUpdate, BoardUpdatePayload{
		BoardState: engine.BoardHash(s.Board),
		BoardSize:  s.BoardSize,
		NextColor:  s.Current.String(),
		MoveNumber: s.MoveNumber,
	})
	return &msg
}

func ended(s *session.Session, gameKey string) *GameMessage {
	msg := NewGameMessage(TypeEnded, EndedPayload{
		GameKey: gameKey,
		Result:  s.Result,
	})
	return &msg
}

// ListSync builds the list-sync snapshot broadcast to lobby watchers.
func ListSync(games []GameSummary) GameMessage {
	return NewGameMessage(TypeListSync, ListSyncPayload{Games: games})
}
