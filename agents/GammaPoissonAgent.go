package agents

import (
	"log/slog"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func DefaultGammaPoissonConfig() BanditConfig {
	return BanditConfig{Alpha: 1, Beta: 2}
}

// GammaPoissonAgent estimates a latent success rate per partner with a
// Gamma(alpha, beta) prior. Update cadence is the same as BetaBinomialAgent.
type GammaPoissonAgent struct {
	*SkilledAgent
	memory   *banditMemory
	ownSkill float64
	alpha    float64
	beta     float64
}

func CreateGammaPoissonAgent(id int, rng *rand.Rand, agentConfig AgentConfig, skilledConfig SkilledConfig, banditConfig BanditConfig) *GammaPoissonAgent {
	return &GammaPoissonAgent{
		SkilledAgent: createSkilledAgent(id, "GammaPoissonAgent", rng, agentConfig, skilledConfig),
		memory:       newBanditMemory(),
		ownSkill:     banditConfig.OwnSkill,
		alpha:        banditConfig.Alpha,
		beta:         banditConfig.Beta,
	}
}

// estimate with r = alpha + successes and p = 1 / (1 + beta + trials) is
// p*r/(1-p) = r / (beta + trials), the mean of Gamma(r, beta + trials).
func (gp *GammaPoissonAgent) estimate(trials, successes int) float64 {
	posterior := distuv.Gamma{
		Alpha: gp.alpha + float64(successes),
		Beta:  gp.beta + float64(trials),
	}
	return posterior.Mean()
}

func (gp *GammaPoissonAgent) Estimates(numPlayers int) []float64 {
	return gp.memory.relativeSkills(numPlayers, gp.ownSkill, gp.estimate)
}

func (gp *GammaPoissonAgent) PickFriend(levels []int, cap int, skills []float64) int {
	gp.memory.attributeOutcome(gp.id, levels)
	estimates := gp.Estimates(len(levels))
	friend := gp.selectFriend(levels, cap, estimates)
	gp.memory.recordTrial(gp.id, friend, levels)

	if gp.VerboseLevel > 8 {
		slog.Debug("gamma-poisson pick", "agent", gp.id, "estimates", estimates, "friend", friend)
	}
	return friend
}

func (gp *GammaPoissonAgent) AcceptReward(reward float64, done bool, levels []int, cap int) {
	gp.BaseAgent.AcceptReward(reward, done, levels, cap)
	if done {
		gp.memory.forgetLastPick()
	}
}
