package agents

import (
	"log/slog"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// BanditConfig configures the conjugate-prior strategies.
type BanditConfig struct {
	// OwnSkill is subtracted from every partner estimate.
	OwnSkill float64
	Alpha    float64
	Beta     float64
}

func DefaultBetaBinomialConfig() BanditConfig {
	return BanditConfig{Alpha: 1, Beta: 1}
}

// BetaBinomialAgent estimates each partner's success probability with a
// Beta(alpha, beta) prior and feeds the estimates to the skilled selection.
type BetaBinomialAgent struct {
	*SkilledAgent
	memory   *banditMemory
	ownSkill float64
	alpha    float64
	beta     float64
}

func CreateBetaBinomialAgent(id int, rng *rand.Rand, agentConfig AgentConfig, skilledConfig SkilledConfig, banditConfig BanditConfig) *BetaBinomialAgent {
	return &BetaBinomialAgent{
		SkilledAgent: createSkilledAgent(id, "BetaBinomialAgent", rng, agentConfig, skilledConfig),
		memory:       newBanditMemory(),
		ownSkill:     banditConfig.OwnSkill,
		alpha:        banditConfig.Alpha,
		beta:         banditConfig.Beta,
	}
}

// estimate is the posterior mean (successes + alpha) / (trials + alpha + beta).
func (bb *BetaBinomialAgent) estimate(trials, successes int) float64 {
	posterior := distuv.Beta{
		Alpha: float64(successes) + bb.alpha,
		Beta:  float64(trials-successes) + bb.beta,
	}
	return posterior.Mean()
}

// Estimates returns the relative skill vector the agent would use right now.
func (bb *BetaBinomialAgent) Estimates(numPlayers int) []float64 {
	return bb.memory.relativeSkills(numPlayers, bb.ownSkill, bb.estimate)
}

// skills from the mechanism are ignored, the agent relies on its own estimates
func (bb *BetaBinomialAgent) PickFriend(levels []int, cap int, skills []float64) int {
	bb.memory.attributeOutcome(bb.id, levels)
	estimates := bb.Estimates(len(levels))
	friend := bb.selectFriend(levels, cap, estimates)
	bb.memory.recordTrial(bb.id, friend, levels)

	if bb.VerboseLevel > 8 {
		slog.Debug("beta-binomial pick", "agent", bb.id, "estimates", estimates, "friend", friend)
	}
	return friend
}

func (bb *BetaBinomialAgent) AcceptReward(reward float64, done bool, levels []int, cap int) {
	bb.BaseAgent.AcceptReward(reward, done, levels, cap)
	if done {
		bb.memory.forgetLastPick()
	}
}
