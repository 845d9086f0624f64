package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/bootstrap"
	"github.com/igomimu/online-go-school/internal/domain/game"
	errs "github.com/igomimu/online-go-school/internal/errors"
	"github.com/igomimu/online-go-school/internal/statuses"
)

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

const maxKeyAttempts = 10

// GenerateGameKeys выдаёт пару ключей: секретный uuid для участников и
// короткий публичный код для зрителей.
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (string, string, error) {
	return generateKeys(func(public string) bool {
		return g.CheckPublicKeyIsUniq(ctx, public)
	})
}

// generateKeys перебирает ключи до уникального публичного кода. Попытки
// ограничены: недоступная база не должна превращаться в вечный цикл.
func generateKeys(isUniq func(string) bool) (string, string, error) {
	for i := 0; i < maxKeyAttempts; i++ {
		gameKeySecret := uuid.New().String()
		gameKeyPublic := generateHash(gameKeySecret)
		if isUniq(gameKeyPublic) {
			return gameKeySecret, gameKeyPublic, nil
		}
	}
	return "", "", errs.ErrCreateGameFailed
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"game_key_public": gameKeyPublic,
	}
	err := collection.FindOne(ctx, filter).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (g *GameRepository) PutGame(ctx context.Context, rec game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	_, err := collection.InsertOne(ctx, rec)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return err
	}

	g.log.Infof("game inserted successfully with key: %s", rec.GameKeySecret)
	return nil
}

// FinishGame закрывает архивную запись: статус, результат и итоговый SGF.
func (g *GameRepository) FinishGame(ctx context.Context, gameKeySecret string, result string, sgfText string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	filter := bson.M{"game_key_secret": gameKeySecret}
	update := bson.M{
		"$set": bson.M{
			"status":      statuses.StatusCompleted,
			"result":      result,
			"sgf":         sgfText,
			"finished_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(false)
	res, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		g.log.Errorf("failed to finish game %s: %v", gameKeySecret, err)
		return err
	}
	if res.MatchedCount == 0 {
		g.log.Infof("игра с ключом %s не найдена", gameKeySecret)
	}
	return nil
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_public": gameKeyPublic}

	foundGame := game.Record{}

	err := collection.FindOne(ctx, filter).Decode(&foundGame)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return foundGame, nil
	} else if err != nil {
		g.log.Error(err)
		return foundGame, err
	}

	return foundGame, nil
}

func (g *GameRepository) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKeySecret}

	var result game.Record
	err := collection.FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return result, nil
	} else if err != nil {
		g.log.Error(err)
		return result, err
	}

	return result, nil
}

// GetActiveGames возвращает срез незавершённых партий для list-sync
// рассылки в лобби.
func (g *GameRepository) GetActiveGames(ctx context.Context) ([]game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"status": bson.M{
			"$ne": statuses.StatusCompleted,
		},
	}

	var result []game.Record
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		g.log.Error(err)
		return result, err
	}

	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var rec game.Record
		if err = cursor.Decode(&rec); err != nil {
			g.log.Error(err)
			return result, err
		}
		result = append(result, rec)
	}

	return result, nil
}

func (g *GameRepository) SaveSGFToRedis(ctx context.Context, key string, sgfText string) error {
	return g.redis.Set(ctx, sgfRedisKey(key), sgfText, 0).Err()
}

func (g *GameRepository) LoadSGFFromRedis(ctx context.Context, key string) (string, error) {
	return g.redis.Get(ctx, sgfRedisKey(key)).Result()
}

func sgfRedisKey(gameKey string) string {
	return "sgf:" + gameKey
}
