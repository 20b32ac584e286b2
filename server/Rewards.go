package gameServer

import (
	"github.com/samber/lo"

	"github.com/ADimoska/KingshipSim/common"
)

// payRewards hands out the round's rewards and returns them indexed by player.
// Before the cap is reached only the king hears back (done=false). On the
// terminal round every player is paid with done=true.
func (gs *GameServer) payRewards(king int, oldLevels, newLevels []int) []float64 {
	rewards := make([]float64, len(gs.players))

	if !common.ReachedCap(newLevels, gs.cap) {
		if gs.rewardType == common.WinOrTurn {
			rewards[king] = float64(newLevels[king] - oldLevels[king])
		}
		gs.players[king].AcceptReward(rewards[king], false, common.CopyLevels(newLevels), gs.cap)
		return rewards
	}

	copy(rewards, TerminalRewards(gs.rewardType, newLevels, gs.cap))
	for i, player := range gs.players {
		player.AcceptReward(rewards[i], true, common.CopyLevels(newLevels), gs.cap)
	}
	return rewards
}

// TerminalRewards computes what each player earns once someone reached cap.
func TerminalRewards(rewardType common.RewardType, levels []int, cap int) []float64 {
	rewards := make([]float64, len(levels))
	switch rewardType {
	case common.WinnerTakeAll, common.WinOrTurn:
		for i, level := range levels {
			if level >= cap {
				rewards[i] = float64(cap)
			} else {
				rewards[i] = -float64(cap)
			}
		}
	case common.Proportional:
		total := lo.Sum(levels)
		if total > 0 {
			for i, level := range levels {
				rewards[i] = float64(level) / float64(total)
			}
		}
	case common.Ranked:
		for i, level := range levels {
			higher := lo.CountBy(levels, func(other int) bool { return other > level })
			rewards[i] = float64(len(levels) - higher)
		}
	}
	return rewards
}
