package game

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/adapters"
	"github.com/igomimu/online-go-school/internal/arbiter"
	"github.com/igomimu/online-go-school/internal/bootstrap"
	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/game"
	"github.com/igomimu/online-go-school/internal/domain/session"
	"github.com/igomimu/online-go-school/internal/httpresponse"
	repo "github.com/igomimu/online-go-school/internal/repository"
	gameuc "github.com/igomimu/online-go-school/internal/usecase/game"
	"github.com/igomimu/online-go-school/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveGame держит единственного арбитра партии: один мьютекс, значит
// запросы применяются строго последовательно, в порядке получения.
type liveGame struct {
	gameKey string
	session *session.Session

	mu    sync.Mutex
	conns map[string]*websocket.Conn // playerID -> соединение
}

var activeGames = make(map[string]*liveGame)
var activeGamesMu sync.Mutex

// participantColor читает состав игроков под мьютексом арбитра: сессию
// конкурентно меняет HandleJoinGame.
func (lg *liveGame) participantColor(playerID string) engine.Color {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	return lg.session.ColorOf(playerID)
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis) *GameHandler {
	store := repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)
	sessions := repo.NewSessionRedisStorage(redisAdapter.GetClient())
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameuc.NewGameUseCase(store, sessions, log),
	}
}

// userID достаёт идентификатор участника. Аутентификация — внешний
// слой; сюда приходит уже проверенный идентификатор.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("user_id")
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("Only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	creatorID := userID(r)
	if creatorID == "" {
		g.log.Error("отсутствует идентификатор создателя")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "missing user id"})
		return
	}

	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if req.BoardSize < 1 {
		req.BoardSize = 19
	}
	if req.Komi == 0 {
		req.Komi = g.cfg.DefaultKomi
	}

	ctx := r.Context()
	s, resp, err := g.gameUC.CreateGame(ctx, req, creatorID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	activeGamesMu.Lock()
	activeGames[resp.GameKeySecret] = &liveGame{
		gameKey: resp.GameKeySecret,
		session: s,
		conns:   make(map[string]*websocket.Conn),
	}
	activeGamesMu.Unlock()

	g.log.Info("New game created with key: " + resp.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

type joinRequest struct {
	GameKey string `json:"game_key"`
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("Only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	joinerID := userID(r)
	var req joinRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}
	if req.GameKey == "" || joinerID == "" {
		g.log.Error("неверный json")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key and user id are required"})
		return
	}

	ctx := r.Context()
	lg, err := g.liveGameByKey(ctx, req.GameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	lg.mu.Lock()
	err = g.gameUC.JoinGame(ctx, req.GameKey, lg.session, joinerID)
	lg.mu.Unlock()
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, "юзер успешно добавлен")
}

// HandleStartGame upgrades the participant to a websocket and runs the
// arbiter loop: read a request, validate it against the session, apply
// and rebroadcast the resulting state. Невалидные запросы просто
// игнорируются, без ответов об отказе.
func (g *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameKey := r.URL.Query().Get("game_key")
	playerID := userID(r)

	if gameKey == "" || playerID == "" {
		g.log.Error("отсутствуют поля game_key или user_id")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key and user id are required"})
		return
	}

	lg, err := g.liveGameByKey(ctx, gameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	if lg.participantColor(playerID) == engine.Empty {
		g.log.Error("пользователь не в игре: ", playerID)
		httpresponse.WriteResponseWithStatus(w, http.StatusForbidden,
			httpresponse.ErrorResponse{ErrorDescription: "user is not a participant"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}

	lg.mu.Lock()
	if old, ok := lg.conns[playerID]; ok && old != nil {
		old.Close()
	}
	lg.conns[playerID] = conn
	lg.mu.Unlock()

	defer func() {
		conn.Close()
		lg.mu.Lock()
		if lg.conns[playerID] == conn {
			delete(lg.conns, playerID)
		}
		lg.mu.Unlock()
	}()

	for {
		var msg arbiter.GameMessage
		if err := conn.ReadJSON(&msg); err != nil {
			g.log.Error("read error: ", err)
			return
		}

		lg.mu.Lock()
		out, applied := g.gameUC.ApplyMessage(ctx, gameKey, lg.session, msg)
		finished := lg.session.Status == session.StatusFinished
		if applied && out != nil {
			for _, c := range lg.conns {
				if err := c.WriteJSON(out); err != nil {
					g.log.Error("write error: ", err)
				}
			}
		}
		lg.mu.Unlock()

		if finished {
			activeGamesMu.Lock()
			delete(activeGames, gameKey)
			activeGamesMu.Unlock()
			return
		}
	}
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameKeyPublic := r.URL.Query().Get("game_key")
	if gameKeyPublic == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	rec, err := g.gameUC.GetGameByPublicKey(r.Context(), gameKeyPublic)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

func (g *GameHandler) HandleExportSGF(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	sgfText, err := g.gameUC.GetSgfByGameKey(r.Context(), gameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: "sgf not found"})
		return
	}

	w.Header().Set("Content-Type", "application/x-go-sgf")
	_, _ = w.Write([]byte(sgfText))
}

// HandleListGames отдаёт list-sync снапшот для лобби.
func (g *GameHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	summaries, err := g.gameUC.ListActiveGames(r.Context())
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, arbiter.ListSync(summaries))
}

// liveGameByKey finds the in-memory arbiter for a game, falling back
// to the Redis snapshot after a restart.
func (g *GameHandler) liveGameByKey(ctx context.Context, gameKey string) (*liveGame, error) {
	activeGamesMu.Lock()
	defer activeGamesMu.Unlock()

	if lg, ok := activeGames[gameKey]; ok {
		return lg, nil
	}

	s, err := g.gameUC.ResumeSession(ctx, gameKey)
	if err != nil {
		return nil, err
	}
	lg := &liveGame{
		gameKey: gameKey,
		session: s,
		conns:   make(map[string]*websocket.Conn),
	}
	activeGames[gameKey] = lg
	return lg, nil
}
