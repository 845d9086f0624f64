package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/session"
	errs "github.com/igomimu/online-go-school/internal/errors"
)

// RedisSessionStorage хранит горячие снимки живых сессий, чтобы
// арбитр мог восстановить партию после рестарта.
type RedisSessionStorage struct {
	client *redis.Client
}

func NewSessionRedisStorage(redis *redis.Client) *RedisSessionStorage {
	c := &RedisSessionStorage{
		client: redis,
	}
	return c
}

// sessionSnapshot is the wire form: the board is rebuilt by replaying
// the handicap seeding and the move history, so only scalar state and
// the history go to Redis.
type sessionSnapshot struct {
	ID          string        `json:"id"`
	PlayerBlack string        `json:"player_black"`
	PlayerWhite string        `json:"player_white"`
	BoardSize   int           `json:"board_size"`
	Handicap    int           `json:"handicap"`
	Komi        float64       `json:"komi"`
	Status      string        `json:"status"`
	Result      string        `json:"result,omitempty"`
	History     []engine.Move `json:"history"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (r *RedisSessionStorage) StoreSession(ctx context.Context, gameKey string, s *session.Session) error {
	snap := sessionSnapshot{
		ID:          s.ID,
		PlayerBlack: s.PlayerBlack,
		PlayerWhite: s.PlayerWhite,
		BoardSize:   s.BoardSize,
		Handicap:    s.Handicap,
		Komi:        s.Komi,
		Status:      string(s.Status),
		Result:      s.Result,
		History:     s.History,
		CreatedAt:   s.CreatedAt,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, liveRedisKey(gameKey), data, 48*time.Hour).Err()
}

// LoadSession восстанавливает сессию повторным проигрыванием истории
// через движок. Снимок с нелегальным ходом восстановится до него.
func (r *RedisSessionStorage) LoadSession(ctx context.Context, gameKey string) (*session.Session, error) {
	v, err := r.client.Get(ctx, liveRedisKey(gameKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, err
	}

	var snap sessionSnapshot
	if err := json.Unmarshal([]byte(v), &snap); err != nil {
		return nil, err
	}

	s := session.New(snap.PlayerBlack, snap.PlayerWhite, snap.BoardSize, snap.Handicap, snap.Komi)
	s.ID = snap.ID
	s.CreatedAt = snap.CreatedAt
	for _, m := range snap.History {
		if m.IsPass() {
			s.Pass(m.Color)
		} else {
			s.Move(m.Color, m.X, m.Y)
		}
	}
	if snap.Status == string(session.StatusFinished) && s.Status != session.StatusFinished {
		s.Status = session.StatusFinished
		s.Result = snap.Result
	}
	return s, nil
}

func (r *RedisSessionStorage) DeleteSession(ctx context.Context, gameKey string) error {
	return r.client.Del(ctx, liveRedisKey(gameKey)).Err()
}

func liveRedisKey(gameKey string) string {
	return "live:" + gameKey
}
