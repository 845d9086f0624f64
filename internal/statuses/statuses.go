package statuses

// Статусы жизненного цикла игры в архиве и лобби.
const (
	StatusWaitOpponent = "wait_opponent"
	StatusActive       = "active"
	StatusCompleted    = "completed"
)
