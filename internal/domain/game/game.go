package game

import (
	"time"
)

// Record — архивная запись партии или урока: то, что уезжает в Mongo,
// когда сессия закончилась или преподаватель сохранил разбор.
type Record struct {
	GameKeySecret string    `json:"game_key_secret" bson:"game_key_secret"`
	GameKeyPublic string    `json:"game_key_public" bson:"game_key_public"`
	PlayerBlack   string    `json:"player_black" bson:"player_black"`
	PlayerWhite   string    `json:"player_white" bson:"player_white"`
	BoardSize     int       `json:"board_size" bson:"board_size"`
	Handicap      int       `json:"handicap" bson:"handicap"`
	Komi          float64   `json:"komi" bson:"komi"`
	Status        string    `json:"status" bson:"status"`
	Result        string    `json:"result,omitempty" bson:"result,omitempty"`
	Sgf           string    `json:"sgf,omitempty" bson:"sgf,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	FinishedAt    time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}

type CreateGameRequest struct {
	Opponent  string  `json:"opponent"`
	BoardSize int     `json:"board_size"`
	Handicap  int     `json:"handicap"`
	Komi      float64 `json:"komi"`
	// создатель играет чёрными, если не задано иное
	IsCreatorWhite bool `json:"is_creator_white"`
}

type GameCreateResponse struct {
	GameKeyPublic string `json:"game_key_public"`
	GameKeySecret string `json:"game_key_secret"`
}
