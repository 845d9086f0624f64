package repo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/domain/account"
	errs "github.com/igomimu/online-go-school/internal/errors"
)

const accountsCollection = "accounts"

type MongoAccountStorage struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewMongoAccountStorage(log *zap.SugaredLogger, mongo *mongo.Database) *MongoAccountStorage {
	return &MongoAccountStorage{log: log, mongo: mongo}
}

func (m *MongoAccountStorage) GetByUsername(ctx context.Context, username string) (account.Account, bool) {
	filter := bson.D{{Key: "username", Value: username}}

	var result account.Account
	err := m.mongo.Collection(accountsCollection).FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			m.log.Error("GetByUsername: ", err)
		}
		return account.Account{}, false
	}
	return result, true
}

func (m *MongoAccountStorage) GetByID(ctx context.Context, id string) (account.Account, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return account.Account{}, false
	}

	var result account.Account
	err = m.mongo.Collection(accountsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			m.log.Error("GetByID: ", err)
		}
		return account.Account{}, false
	}
	result.ID = id
	return result, true
}

// Create регистрирует аккаунт. Пароль хранится как sha256(соль+пароль),
// соль — случайный uuid на каждый аккаунт.
func (m *MongoAccountStorage) Create(ctx context.Context, username, email, password, role string) (account.Account, error) {
	if _, found := m.GetByUsername(ctx, username); found {
		return account.Account{}, errs.ErrUserExists
	}
	if role != account.RoleTeacher {
		role = account.RoleStudent
	}

	salt := uuid.NewString()
	now := time.Now()
	acc := account.Account{
		Username:     username,
		Email:        email,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
		PasswordHash: HashPassword(salt, password),
		PasswordSalt: salt,
	}

	result, err := m.mongo.Collection(accountsCollection).InsertOne(ctx, acc)
	if err != nil {
		m.log.Error("Create account: ", err)
		return account.Account{}, errs.ErrInternal
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		acc.ID = oid.Hex()
	}
	return acc, nil
}

// RecordResult обновляет статистику игрока по результату партии.
func (m *MongoAccountStorage) RecordResult(ctx context.Context, id string, field string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrUserNotFound
	}
	update := bson.M{
		"$inc": bson.M{"statistic." + field: 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	_, err = m.mongo.Collection(accountsCollection).UpdateByID(ctx, oid, update)
	return err
}

func HashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
