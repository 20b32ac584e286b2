package mechanisms

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
)

// SabotageMechanism is the skill mechanism with the friend allowed to opt out
// of contributing its skill.
type SabotageMechanism struct {
	*SkillMechanism
}

func CreateSabotageMechanism(skills []float64, sampler common.OutcomeSampler, rng *rand.Rand) (*SabotageMechanism, error) {
	sm, err := CreateSkillMechanism(skills, sampler, rng)
	if err != nil {
		return nil, err
	}
	return &SabotageMechanism{SkillMechanism: sm}, nil
}

func (sb *SabotageMechanism) Play(king int, players []common.IKingshipAgent, levels []int, cap int) (common.RoundOutcome, error) {
	if len(levels) != len(sb.skills) {
		return common.RoundOutcome{}, fmt.Errorf("%w: %d skills for %d players", common.ErrSkillsLength, len(sb.skills), len(levels))
	}
	friend, err := askKing(king, players, levels, cap, sb.Skills())
	if err != nil {
		return common.RoundOutcome{}, err
	}

	sabotaged := players[friend].DecideSabotage(king, common.CopyLevels(levels), cap, sb.Skills())
	var p float64
	if sabotaged {
		p = ratio(sb.skills[king], sb.total-sb.skills[friend])
		slog.Debug("friend sabotaged the round", "king", king, "friend", friend, "p", p)
	} else {
		p = ratio(sb.skills[king]+sb.skills[friend], sb.total)
	}

	// the increment goes to the friend even when it sabotaged
	return sb.settle(levels, king, friend, p, sabotaged), nil
}

func (sb *SabotageMechanism) Name() string {
	return "sabotage"
}
