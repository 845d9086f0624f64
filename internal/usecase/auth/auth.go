package auth

import (
	"context"

	"github.com/igomimu/online-go-school/internal/domain/account"
	errs "github.com/igomimu/online-go-school/internal/errors"
	repo "github.com/igomimu/online-go-school/internal/repository"
	"github.com/igomimu/online-go-school/internal/utils"
)

const sessionIDLength = 64

type AccountStorage interface {
	GetByUsername(ctx context.Context, username string) (account.Account, bool)
	GetByID(ctx context.Context, id string) (account.Account, bool)
	Create(ctx context.Context, username, email, password, role string) (account.Account, error)
}

type SessionStorage interface {
	StoreSession(ctx context.Context, sessionID, accountID string) error
	GetAccountIDBySession(ctx context.Context, sessionID string) (string, bool)
	DeleteSession(ctx context.Context, sessionID string) bool
}

type AuthUseCase struct {
	accounts AccountStorage
	sessions SessionStorage
}

func NewAuthUseCase(accounts AccountStorage, sessions SessionStorage) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, sessions: sessions}
}

// Register создаёт аккаунт и сразу открывает логин-сессию.
func (a *AuthUseCase) Register(ctx context.Context, username, email, password, role string) (string, error) {
	acc, err := a.accounts.Create(ctx, username, email, password, role)
	if err != nil {
		return "", err
	}
	return a.openSession(ctx, acc.ID)
}

func (a *AuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	acc, found := a.accounts.GetByUsername(ctx, username)
	if !found {
		return "", errs.ErrUserNotFound
	}
	if repo.HashPassword(acc.PasswordSalt, password) != acc.PasswordHash {
		return "", errs.ErrWrongPassword
	}
	return a.openSession(ctx, acc.ID)
}

func (a *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if _, ok := a.sessions.GetAccountIDBySession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	if !a.sessions.DeleteSession(ctx, sessionID) {
		return errs.ErrSessionNotFound
	}
	return nil
}

// AccountBySession возвращает аккаунт по логин-сессии.
func (a *AuthUseCase) AccountBySession(ctx context.Context, sessionID string) (account.Account, error) {
	id, ok := a.sessions.GetAccountIDBySession(ctx, sessionID)
	if !ok {
		return account.Account{}, errs.ErrSessionNotFound
	}
	acc, found := a.accounts.GetByID(ctx, id)
	if !found {
		return account.Account{}, errs.ErrUserNotFound
	}
	return acc, nil
}

func (a *AuthUseCase) AccountIDBySession(ctx context.Context, sessionID string) (string, bool) {
	return a.sessions.GetAccountIDBySession(ctx, sessionID)
}

func (a *AuthUseCase) openSession(ctx context.Context, accountID string) (string, error) {
	sessionID := utils.RandString(sessionIDLength)
	if err := a.sessions.StoreSession(ctx, sessionID, accountID); err != nil {
		return "", errs.ErrInternal
	}
	return sessionID, nil
}
