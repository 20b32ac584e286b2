package agents

import (
	"log/slog"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
)

// MarginFunc decides how far behind the king a candidate of a given skill gap
// must be before the king is willing to carry them.
type MarginFunc func(skillGap float64, cap int) float64

// SkillGapMargin scales the candidate's skill advantage: (skill_c - own) * factor.
func SkillGapMargin(factor float64) MarginFunc {
	return func(skillGap float64, _ int) float64 {
		return skillGap * factor
	}
}

// CapFractionMargin ignores skill and uses a fixed cap / divisor.
func CapFractionMargin(divisor float64) MarginFunc {
	return func(_ float64, cap int) float64 {
		return float64(cap) / divisor
	}
}

const defaultMarginFactor = 10

type SkilledConfig struct {
	// Margin defaults to SkillGapMargin(10) when nil.
	Margin MarginFunc
}

// SkilledAgent prefers the most skilled partner that is not already ahead of
// it by more than the margin, falling back to the lowest levelled player.
type SkilledAgent struct {
	*BaseAgent
	margin MarginFunc
}

func CreateSkilledAgent(id int, rng *rand.Rand, agentConfig AgentConfig, skilledConfig SkilledConfig) *SkilledAgent {
	return createSkilledAgent(id, "SkilledAgent", rng, agentConfig, skilledConfig)
}

func createSkilledAgent(id int, kind string, rng *rand.Rand, agentConfig AgentConfig, skilledConfig SkilledConfig) *SkilledAgent {
	margin := skilledConfig.Margin
	if margin == nil {
		margin = SkillGapMargin(defaultMarginFactor)
	}
	return &SkilledAgent{
		BaseAgent: GetBaseAgent(id, kind, rng, agentConfig),
		margin:    margin,
	}
}

func (sa *SkilledAgent) PickFriend(levels []int, cap int, skills []float64) int {
	return sa.selectFriend(levels, cap, skills)
}

// selectFriend is shared with the bandit strategies, which pass their own
// estimates as skills.
func (sa *SkilledAgent) selectFriend(levels []int, cap int, skills []float64) int {
	ownLevel := float64(levels[sa.id])
	ownSkill := common.SkillAt(skills, sa.id)

	bySkill := sa.others(len(levels))
	sort.SliceStable(bySkill, func(i, j int) bool {
		return common.SkillAt(skills, bySkill[i]) > common.SkillAt(skills, bySkill[j])
	})

	for _, candidate := range bySkill {
		margin := sa.margin(common.SkillAt(skills, candidate)-ownSkill, cap)
		if float64(levels[candidate])+margin <= ownLevel {
			return candidate
		}
	}

	byLevel := sa.others(len(levels))
	sort.SliceStable(byLevel, func(i, j int) bool {
		return levels[byLevel[i]] < levels[byLevel[j]]
	})
	if sa.VerboseLevel > 8 {
		slog.Debug("no candidate within margin, falling back to lowest level",
			"agent", sa.id, "friend", byLevel[0])
	}
	return byLevel[0]
}
