package agents

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// AgentConfig holds the settings shared by every strategy.
type AgentConfig struct {
	InitLevel    int
	VerboseLevel int
}

// BaseAgent is the first tier of composition. Strategies embed it and
// override PickFriend (and optionally DecideSabotage / AcceptReward).
type BaseAgent struct {
	id    int
	level int
	kind  string

	// shared randomness context, owned by the server
	rng *rand.Rand

	VerboseLevel int
}

func GetBaseAgent(id int, kind string, rng *rand.Rand, agentConfig AgentConfig) *BaseAgent {
	return &BaseAgent{
		id:           id,
		level:        agentConfig.InitLevel,
		kind:         kind,
		rng:          rng,
		VerboseLevel: agentConfig.VerboseLevel,
	}
}

// ----------------------- Getters / Setters -----------------------

func (mi *BaseAgent) GetID() int {
	return mi.id
}

func (mi *BaseAgent) GetLevel() int {
	return mi.level
}

func (mi *BaseAgent) SetLevel(level int) {
	mi.level = level
}

// ----------------------- Default behaviour -----------------------

// No strategy in this package sabotages. The hook stays so that new strategies
// only need to override it.
func (mi *BaseAgent) DecideSabotage(king int, levels []int, cap int, skills []float64) bool {
	return false
}

func (mi *BaseAgent) AcceptReward(reward float64, done bool, levels []int, cap int) {
	if mi.id < len(levels) {
		mi.level = levels[mi.id]
	}
	if mi.VerboseLevel > 8 {
		slog.Debug("agent accepted reward", "agent", mi.id, "reward", reward, "done", done)
	}
}

func (mi *BaseAgent) String() string {
	return fmt.Sprintf("ID %d, %s, Level %d", mi.id, mi.kind, mi.level)
}

// others returns every player index except the agent's own, in index order.
func (mi *BaseAgent) others(numPlayers int) []int {
	return lo.Without(lo.Range(numPlayers), mi.id)
}
