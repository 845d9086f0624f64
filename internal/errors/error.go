package errors

import "errors"

var (
	ErrCreateGameFailed = errors.New("create game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFinished     = errors.New("game already finished")
	ErrNotParticipant   = errors.New("user is not a participant of this game")
	ErrRecordNotFound   = errors.New("game record was not found")
	ErrSessionNotFound  = errors.New("session was not found")
	ErrUserExists       = errors.New("user with provided username already exists")
	ErrUserNotFound     = errors.New("user with provided username was not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrProblemNotFound  = errors.New("problem was not found")
	ErrInternal         = errors.New("internal error")
)
