package common

import "errors"

// Configuration errors. These are fatal: the server surfaces them and the host
// program is expected to stop.
var (
	ErrNotEnoughPlayers  = errors.New("not enough players")
	ErrInvalidCap        = errors.New("level cap must be positive")
	ErrUnknownRewardType = errors.New("unknown reward type")
	ErrUnknownMechanism  = errors.New("unknown mechanism")
	ErrUnknownSampler    = errors.New("unknown outcome sampler")
	ErrUnknownAgent      = errors.New("unknown agent kind")
	ErrSkillsLength      = errors.New("skill vector length does not match player count")
	ErrNegativeSkill     = errors.New("skill values must be non-negative")

	// Raised while a game is running.
	ErrFriendIsKing  = errors.New("king picked itself as friend")
	ErrInvalidFriend = errors.New("friend index out of range")
	ErrGameOver      = errors.New("game already over")
)
