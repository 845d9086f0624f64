package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/adapters"
	"github.com/igomimu/online-go-school/internal/bootstrap"
	authDelivery "github.com/igomimu/online-go-school/internal/delivery/auth"
	gameDelivery "github.com/igomimu/online-go-school/internal/delivery/game"
	problemsDelivery "github.com/igomimu/online-go-school/internal/delivery/problems"
	reviewDelivery "github.com/igomimu/online-go-school/internal/delivery/review"
	ownMiddleware "github.com/igomimu/online-go-school/internal/middleware"
)

type mainDeliveryHandler struct {
	auth     *authDelivery.AuthHandler
	game     *gameDelivery.GameHandler
	review   *reviewDelivery.ReviewHandler
	problems *problemsDelivery.ProblemHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	defer databaseAdapters.mongoAdapter.Close(ctx)
	defer databaseAdapters.redisAdapter.Close(ctx)

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	port := cfg.ServerPort
	if port == "" {
		port = ":8080"
	}
	logger.Infof("Server is running on port %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/register", h.auth.HandleRegister)
	r.Post("/login", h.auth.HandleLogin)
	r.Post("/logout", h.auth.HandleLogout)
	r.Get("/me", h.auth.HandleMe)

	r.Post("/NewGame", h.game.HandleNewGame)
	r.Post("/JoinGame", h.game.HandleJoinGame)
	r.Get("/startGame", h.game.HandleStartGame)
	r.Get("/getGame", h.game.HandleGetGame)
	r.Get("/listGames", h.game.HandleListGames)
	r.Get("/exportSGF", h.game.HandleExportSGF)

	r.Post("/review/start", h.review.HandleStartReview)
	r.Post("/review/navigate", h.review.HandleNavigate)
	r.Post("/review/move", h.review.HandleAddMove)
	r.Post("/review/marker", h.review.HandleAddMarker)
	r.Get("/review/export", h.review.HandleExportSGF)

	r.Get("/problems/import", h.problems.HandleImport)
	r.Get("/problems/list", h.problems.HandleList)
	r.Post("/problems/solve", h.problems.HandleSolve)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(&cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Не удалось инициализировать MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Не удалось инициализировать Redis", zap.Error(err))
	}

	log.Info("Адаптеры баз данных инициализированы")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	authDeliveryHandler := authDelivery.NewAuthHandler(log, databaseAdapters.mongoAdapter, databaseAdapters.redisAdapter)
	gameDeliveryHandler := gameDelivery.NewGameHandler(cfg, log, databaseAdapters.mongoAdapter, databaseAdapters.redisAdapter)
	reviewDeliveryHandler := reviewDelivery.NewReviewHandler(log)
	problemsDeliveryHandler := problemsDelivery.NewProblemHandler(log, cfg, databaseAdapters.mongoAdapter)

	return &mainDeliveryHandler{
		auth:     authDeliveryHandler,
		game:     gameDeliveryHandler,
		review:   reviewDeliveryHandler,
		problems: problemsDeliveryHandler,
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
	time.Sleep(1 * time.Second) // дать время закрыть соединения
}
