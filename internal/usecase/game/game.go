package game

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/arbiter"
	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/game"
	"github.com/igomimu/online-go-school/internal/domain/session"
	"github.com/igomimu/online-go-school/internal/domain/sgf"
	"github.com/igomimu/online-go-school/internal/domain/tree"
	"github.com/igomimu/online-go-school/internal/errors"
	"github.com/igomimu/online-go-school/internal/statuses"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error)
	PutGame(ctx context.Context, rec game.Record) error
	FinishGame(ctx context.Context, gameKeySecret string, result string, sgfText string) error
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error)
	GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Record, error)
	GetActiveGames(ctx context.Context) ([]game.Record, error)
	SaveSGFToRedis(ctx context.Context, key string, sgfText string) error
	LoadSGFFromRedis(ctx context.Context, key string) (string, error)
}

type SessionStore interface {
	StoreSession(ctx context.Context, gameKey string, s *session.Session) error
	LoadSession(ctx context.Context, gameKey string) (*session.Session, error)
	DeleteSession(ctx context.Context, gameKey string) error
}

type GameUseCase struct {
	store    GameStore
	sessions SessionStore
	log      *zap.SugaredLogger
}

func NewGameUseCase(store GameStore, sessions SessionStore, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{store: store, sessions: sessions, log: log}
}

// CreateGame provisions a new live match: keys, the seeded session
// (handicap stones shift the opening turn to White), the archive stub
// and the hot snapshot in Redis.
func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest, creatorID string) (*session.Session, game.GameCreateResponse, error) {
	gameKeySecret, gameKeyPublic, err := g.store.GenerateGameKeys(ctx)
	if err != nil {
		g.log.Errorf("failed to generate game keys: %v", err)
		return nil, game.GameCreateResponse{}, errors.ErrCreateGameFailed
	}

	black, white := creatorID, req.Opponent
	if req.IsCreatorWhite {
		black, white = req.Opponent, creatorID
	}

	s := session.New(black, white, req.BoardSize, req.Handicap, req.Komi)

	rec := game.Record{
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		PlayerBlack:   black,
		PlayerWhite:   white,
		BoardSize:     req.BoardSize,
		Handicap:      req.Handicap,
		Komi:          req.Komi,
		Status:        statuses.StatusActive,
		CreatedAt:     s.CreatedAt,
	}
	if req.Opponent == "" {
		rec.Status = statuses.StatusWaitOpponent
	}

	if err := g.store.PutGame(ctx, rec); err != nil {
		return nil, game.GameCreateResponse{}, errors.ErrCreateGameFailed
	}
	if err := g.sessions.StoreSession(ctx, gameKeySecret, s); err != nil {
		g.log.Errorf("failed to store session snapshot: %v", err)
	}
	if err := g.store.SaveSGFToRedis(ctx, gameKeySecret, ExportSGF(s)); err != nil {
		g.log.Errorf("failed to cache sgf: %v", err)
	}

	resp := game.GameCreateResponse{
		GameKeyPublic: gameKeyPublic,
		GameKeySecret: gameKeySecret,
	}
	return s, resp, nil
}

// JoinGame fills the empty seat of a waiting game.
func (g *GameUseCase) JoinGame(ctx context.Context, gameKeySecret string, s *session.Session, userID string) error {
	if s.PlayerBlack != "" && s.PlayerWhite != "" {
		return errors.ErrCreateGameFailed
	}
	if s.PlayerBlack == "" {
		s.PlayerBlack = userID
	} else {
		s.PlayerWhite = userID
	}

	if err := g.sessions.StoreSession(ctx, gameKeySecret, s); err != nil {
		return err
	}
	return nil
}

// ResumeSession loads the hot snapshot for a game key, replaying the
// history through the engine.
func (g *GameUseCase) ResumeSession(ctx context.Context, gameKeySecret string) (*session.Session, error) {
	return g.sessions.LoadSession(ctx, gameKeySecret)
}

// ApplyMessage runs one transport request through the arbiter. Applied
// requests refresh the snapshot and the cached SGF; a finishing
// request also closes the archive record. Отклонённые запросы молча
// опускаются — ответа об отказе нет.
func (g *GameUseCase) ApplyMessage(ctx context.Context, gameKeySecret string, s *session.Session, msg arbiter.GameMessage) (*arbiter.GameMessage, bool) {
	out, applied := arbiter.Apply(s, msg)
	if !applied {
		return nil, false
	}

	if err := g.sessions.StoreSession(ctx, gameKeySecret, s); err != nil {
		g.log.Errorf("failed to store session snapshot: %v", err)
	}
	sgfText := ExportSGF(s)
	if err := g.store.SaveSGFToRedis(ctx, gameKeySecret, sgfText); err != nil {
		g.log.Errorf("failed to cache sgf: %v", err)
	}

	if s.Status == session.StatusFinished {
		if err := g.store.FinishGame(ctx, gameKeySecret, s.Result, sgfText); err != nil {
			g.log.Errorf("failed to archive finished game: %v", err)
		}
		if err := g.sessions.DeleteSession(ctx, gameKeySecret); err != nil {
			g.log.Errorf("failed to drop live snapshot: %v", err)
		}
	}

	return out, true
}

func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error) {
	rec, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Record{}, err
	}
	if rec.GameKeySecret == "" {
		return game.Record{}, errors.ErrGameNotFound
	}

	if rec.Sgf == "" {
		if sgfText, err := g.store.LoadSGFFromRedis(ctx, rec.GameKeySecret); err == nil {
			rec.Sgf = sgfText
		}
	}
	return rec, nil
}

func (g *GameUseCase) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Record, error) {
	rec, err := g.store.GetGameBySecretKey(ctx, gameKeySecret)
	if err != nil {
		return game.Record{}, err
	}
	if rec.GameKeySecret == "" {
		return game.Record{}, errors.ErrGameNotFound
	}
	return rec, nil
}

func (g *GameUseCase) GetSgfByGameKey(ctx context.Context, gameKeySecret string) (string, error) {
	return g.store.LoadSGFFromRedis(ctx, gameKeySecret)
}

// ListActiveGames builds the list-sync snapshot for lobby watchers.
func (g *GameUseCase) ListActiveGames(ctx context.Context) ([]arbiter.GameSummary, error) {
	records, err := g.store.GetActiveGames(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]arbiter.GameSummary, 0, len(records))
	for _, rec := range records {
		status := session.StatusPlaying
		if rec.Status == statuses.StatusCompleted {
			status = session.StatusFinished
		}
		summaries = append(summaries, arbiter.GameSummary{
			GameKey:     rec.GameKeyPublic,
			PlayerBlack: rec.PlayerBlack,
			PlayerWhite: rec.PlayerWhite,
			BoardSize:   rec.BoardSize,
			Status:      status,
		})
	}
	return summaries, nil
}

// ExportSGF replays the session's linear history into a move tree and
// serializes it, handicap stones included as root setup.
func ExportSGF(s *session.Session) string {
	rec := &sgf.Record{
		Size: s.BoardSize,
		Meta: sgf.Metadata{
			PlayerBlack: s.PlayerBlack,
			PlayerWhite: s.PlayerWhite,
			Komi:        strconv.FormatFloat(s.Komi, 'f', 1, 64),
			Result:      s.Result,
			Date:        s.CreatedAt.Format("2006-01-02"),
		},
	}
	if s.Handicap >= 2 {
		rec.Meta.Handicap = strconv.Itoa(s.Handicap)
	}

	rec.Root = tree.NewRoot(s.BoardSize)
	if seeded := engine.HandicapStones(s.BoardSize, s.Handicap); len(seeded) > 0 {
		setup := make([]tree.Setup, 0, len(seeded))
		for _, p := range seeded {
			setup = append(setup, tree.Setup{Point: p, Color: engine.Black})
		}
		rec.Root.Setup = setup
		rec.Root.Board = tree.ApplySetup(rec.Root.Board, setup)
	}

	cur := rec.Root
	for _, m := range s.History {
		cur = cur.AddMove(m)
	}

	return sgf.Generate(rec)
}
