package mechanisms

import (
	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
)

type BaselineMechanism struct {
	roundDraw
	P float64
}

func CreateBaselineMechanism(p float64, sampler common.OutcomeSampler, rng *rand.Rand) *BaselineMechanism {
	return &BaselineMechanism{
		roundDraw: newRoundDraw(sampler, rng),
		P:         p,
	}
}

func (bm *BaselineMechanism) Play(king int, players []common.IKingshipAgent, levels []int, cap int) (common.RoundOutcome, error) {
	friend, err := askKing(king, players, levels, cap, nil)
	if err != nil {
		return common.RoundOutcome{}, err
	}
	return bm.settle(levels, king, friend, bm.P, false), nil
}

func (bm *BaselineMechanism) InputDim(numPlayers int) int {
	return levelsInputDim(numPlayers)
}

func (bm *BaselineMechanism) OutputDim(numPlayers int) int {
	return partnerOutputDim(numPlayers)
}

func (bm *BaselineMechanism) Name() string {
	return "baseline"
}
