package agents

import (
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// LowestLevelAgent helps whoever is furthest behind. Ties are broken uniformly
// at random, not by index.
type LowestLevelAgent struct {
	*BaseAgent
}

func CreateLowestLevelAgent(id int, rng *rand.Rand, agentConfig AgentConfig) *LowestLevelAgent {
	return &LowestLevelAgent{
		BaseAgent: GetBaseAgent(id, "LowestLevelAgent", rng, agentConfig),
	}
}

func (la *LowestLevelAgent) PickFriend(levels []int, cap int, skills []float64) int {
	candidates := la.others(len(levels))
	lowest := lo.Min(lo.Map(candidates, func(c int, _ int) int {
		return levels[c]
	}))
	tied := lo.Filter(candidates, func(c int, _ int) bool {
		return levels[c] == lowest
	})

	friend := tied[la.rng.Intn(len(tied))]
	if la.VerboseLevel > 8 {
		slog.Debug("lowest level pick", "agent", la.id, "tied", tied, "friend", friend)
	}
	return friend
}
