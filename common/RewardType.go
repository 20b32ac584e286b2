package common

import (
	"fmt"
	"strings"
)

// RewardType selects how the server distributes rewards at the end of a round.
type RewardType string

const (
	// WinnerTakeAll (WINNERTAKEALL): +cap to every player at or above the cap,
	// -cap to everyone else, nothing before the terminal round.
	WinnerTakeAll RewardType = "WINNERTAKEALL"

	// Proportional (PROPORTIONAL): each player gets level / sum(levels) on the
	// terminal round.
	Proportional RewardType = "PROPORTIONAL"

	// Ranked (RANKED): each player starts at numPlayers and loses 1 for every
	// strictly higher-levelled opponent.
	Ranked RewardType = "RANKED"

	// WinOrTurn (WOT): the king gets its own level delta every round, and the
	// terminal round pays out like WinnerTakeAll.
	WinOrTurn RewardType = "WOT"
)

var rewardTypes = []RewardType{WinnerTakeAll, Proportional, Ranked, WinOrTurn}

// ParseRewardType accepts the reward selector case-insensitively.
func ParseRewardType(s string) (RewardType, error) {
	candidate := RewardType(strings.ToUpper(strings.TrimSpace(s)))
	for _, rt := range rewardTypes {
		if rt == candidate {
			return rt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRewardType, s)
}

func (rt RewardType) Valid() bool {
	_, err := ParseRewardType(string(rt))
	return err == nil
}
