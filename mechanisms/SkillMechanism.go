package mechanisms

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/ADimoska/KingshipSim/common"
)

type SkillMechanism struct {
	roundDraw
	skills []float64
	total  float64
}

func CreateSkillMechanism(skills []float64, sampler common.OutcomeSampler, rng *rand.Rand) (*SkillMechanism, error) {
	if err := checkSkills(skills); err != nil {
		return nil, err
	}
	owned := make([]float64, len(skills))
	copy(owned, skills)
	return &SkillMechanism{
		roundDraw: newRoundDraw(sampler, rng),
		skills:    owned,
		total:     floats.Sum(owned),
	}, nil
}

func (sm *SkillMechanism) Skills() []float64 {
	out := make([]float64, len(sm.skills))
	copy(out, sm.skills)
	return out
}

func (sm *SkillMechanism) Play(king int, players []common.IKingshipAgent, levels []int, cap int) (common.RoundOutcome, error) {
	if len(levels) != len(sm.skills) {
		return common.RoundOutcome{}, fmt.Errorf("%w: %d skills for %d players", common.ErrSkillsLength, len(sm.skills), len(levels))
	}
	friend, err := askKing(king, players, levels, cap, sm.Skills())
	if err != nil {
		return common.RoundOutcome{}, err
	}

	p := ratio(sm.skills[king]+sm.skills[friend], sm.total)
	return sm.settle(levels, king, friend, p, false), nil
}

func (sm *SkillMechanism) InputDim(numPlayers int) int {
	return skillsInputDim(numPlayers)
}

func (sm *SkillMechanism) OutputDim(numPlayers int) int {
	return partnerOutputDim(numPlayers)
}

func (sm *SkillMechanism) Name() string {
	return "skill"
}

func checkSkills(skills []float64) error {
	for i, s := range skills {
		if s < 0 {
			return fmt.Errorf("%w: skill[%d] = %v", common.ErrNegativeSkill, i, s)
		}
	}
	return nil
}

// ratio is num/den with an all-zero skill vector meaning no chance of success.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
