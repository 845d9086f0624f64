package arbiter

import (
	"encoding/json"

	"github.com/igomimu/online-go-school/internal/domain/session"
	"github.com/igomimu/online-go-school/internal/domain/tree"
)

// MessageType перечисляет таксономию игровых сообщений внешнего
// транспорта.
type MessageType string

const (
	TypeCreate      MessageType = "create"
	TypeMove        MessageType = "move"
	TypeBoardUpdate MessageType = "board_update"
	TypePass        MessageType = "pass"
	TypeResign      MessageType = "resign"
	TypeEnded       MessageType = "ended"
	TypeListSync    MessageType = "list_sync"
)

// GameMessage is the envelope carried over the external transport.
// Payload is decoded per Type; the arbiter never performs I/O itself.
type GameMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewGameMessage wraps a typed payload into an envelope. A payload
// that cannot be marshalled yields an envelope without payload; the
// payload types below all marshal cleanly.
func NewGameMessage(t MessageType, payload any) GameMessage {
	data, err := json.Marshal(payload)
	if err != nil {
		return GameMessage{Type: t}
	}
	return GameMessage{Type: t, Payload: data}
}

type CreatePayload struct {
	GameKey   string  `json:"game_key"`
	Black     string  `json:"black"`
	White     string  `json:"white"`
	BoardSize int     `json:"board_size"`
	Handicap  int     `json:"handicap"`
	Komi      float64 `json:"komi"`
}

type MovePayload struct {
	GameKey string `json:"game_key"`
	Player  string `json:"player"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

type PassPayload struct {
	GameKey string `json:"game_key"`
	Player  string `json:"player"`
}

type ResignPayload struct {
	GameKey string `json:"game_key"`
	Player  string `json:"player"`
}

// BoardUpdatePayload mirrors the canonical board encoding plus the
// display state a rendering layer needs.
type BoardUpdatePayload struct {
	BoardState string        `json:"board_state"`
	BoardSize  int           `json:"board_size"`
	NextColor  string        `json:"next_color"`
	Markers    []tree.Marker `json:"markers,omitempty"`
	MoveNumber int           `json:"move_number"`
}

type EndedPayload struct {
	GameKey string `json:"game_key"`
	Result  string `json:"result"`
}

// GameSummary is one entry of a list-sync snapshot.
type GameSummary struct {
	GameKey     string         `json:"game_key"`
	PlayerBlack string         `json:"player_black"`
	PlayerWhite string         `json:"player_white"`
	BoardSize   int            `json:"board_size"`
	Status      session.Status `json:"status"`
}

type ListSyncPayload struct {
	Games []GameSummary `json:"games"`
}
