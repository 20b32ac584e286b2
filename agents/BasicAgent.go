package agents

import "golang.org/x/exp/rand"

// BasicAgent picks a friend uniformly at random among the other players.
type BasicAgent struct {
	*BaseAgent
}

func CreateBasicAgent(id int, rng *rand.Rand, agentConfig AgentConfig) *BasicAgent {
	return &BasicAgent{
		BaseAgent: GetBaseAgent(id, "BasicAgent", rng, agentConfig),
	}
}

func (ba *BasicAgent) PickFriend(levels []int, cap int, skills []float64) int {
	n := len(levels)
	// offset in [1, n-1] skips our own index
	return (ba.rng.Intn(n-1) + 1 + ba.id) % n
}
