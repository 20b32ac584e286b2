package agents

import (
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
)

type QLearningConfig struct {
	Epsilon float64 // exploration rate
	Alpha   float64 // learning rate
	Gamma   float64 // discount factor

	// OutputDim is the number of actions, usually the mechanism's OutputDim.
	// 0 means numPlayers-1.
	OutputDim int
}

func DefaultQLearningConfig() QLearningConfig {
	return QLearningConfig{
		Epsilon: 0.1,
		Alpha:   0.05,
		Gamma:   0.9,
	}
}

// qKey addresses one cell of the value table. state is the serialised tuple of
// every player's level.
type qKey struct {
	state  string
	action int
}

// QLearningAgent is a tabular epsilon-greedy learner. Action a selects the
// partner (id + 1 + a) mod N, so the agent can never pick itself.
type QLearningAgent struct {
	*BaseAgent
	epsilon   float64
	alpha     float64
	gamma     float64
	outputDim int

	// persists across episodes
	qTable map[qKey]float64

	// episode scoped
	hasLast    bool
	lastState  string
	lastAction int
	lastReward float64
	steps      int
}

func CreateQLearningAgent(id int, rng *rand.Rand, agentConfig AgentConfig, qConfig QLearningConfig) *QLearningAgent {
	return &QLearningAgent{
		BaseAgent: GetBaseAgent(id, "QLearningAgent", rng, agentConfig),
		epsilon:   qConfig.Epsilon,
		alpha:     qConfig.Alpha,
		gamma:     qConfig.Gamma,
		outputDim: qConfig.OutputDim,
		qTable:    make(map[qKey]float64),
	}
}

// GetQ returns the tabulated value, 0 for pairs never seen.
func (ql *QLearningAgent) GetQ(levels []int, action int) float64 {
	return ql.qTable[qKey{state: common.LevelsKey(levels), action: action}]
}

func (ql *QLearningAgent) TableSize() int {
	return len(ql.qTable)
}

func (ql *QLearningAgent) Steps() int {
	return ql.steps
}

func (ql *QLearningAgent) PickFriend(levels []int, cap int, skills []float64) int {
	state := common.LevelsKey(levels)
	numActions := ql.actionCount(len(levels))

	if ql.hasLast {
		ql.update(ql.lastState, ql.lastAction, ql.lastReward, ql.maxQ(state, numActions))
	}

	action := ql.chooseAction(state, numActions)
	ql.hasLast = true
	ql.lastState = state
	ql.lastAction = action
	ql.lastReward = 0
	ql.steps++

	friend := (ql.id + 1 + action) % len(levels)
	if ql.VerboseLevel > 8 {
		slog.Debug("q-learning pick", "agent", ql.id, "state", state, "action", action, "friend", friend)
	}
	return friend
}

// AcceptReward accumulates rewards until the next pick. On done the last action
// is closed off against a terminal value of 0 and the episode state is cleared.
func (ql *QLearningAgent) AcceptReward(reward float64, done bool, levels []int, cap int) {
	ql.BaseAgent.AcceptReward(reward, done, levels, cap)

	if ql.hasLast {
		ql.lastReward += reward
		if done {
			ql.update(ql.lastState, ql.lastAction, ql.lastReward, 0)
		}
	}
	if done {
		ql.ResetEpisode()
	}
}

// ResetEpisode clears the episode scoped fields. The value table is kept.
func (ql *QLearningAgent) ResetEpisode() {
	ql.hasLast = false
	ql.lastState = ""
	ql.lastAction = 0
	ql.lastReward = 0
	ql.steps = 0
}

func (ql *QLearningAgent) actionCount(numPlayers int) int {
	if ql.outputDim > 0 && ql.outputDim < numPlayers-1 {
		return ql.outputDim
	}
	return numPlayers - 1
}

// update applies Q(s,a) += alpha * (reward + gamma*nextMax - Q(s,a)). A pair
// seen for the first time takes the observed reward directly.
func (ql *QLearningAgent) update(state string, action int, reward float64, nextMax float64) {
	key := qKey{state: state, action: action}
	old, seen := ql.qTable[key]
	if !seen {
		ql.qTable[key] = reward
		return
	}
	ql.qTable[key] = old + ql.alpha*(reward+ql.gamma*nextMax-old)
}

func (ql *QLearningAgent) maxQ(state string, numActions int) float64 {
	best := ql.qTable[qKey{state: state, action: 0}]
	for a := 1; a < numActions; a++ {
		if v := ql.qTable[qKey{state: state, action: a}]; v > best {
			best = v
		}
	}
	return best
}

func (ql *QLearningAgent) chooseAction(state string, numActions int) int {
	if ql.rng.Float64() < ql.epsilon {
		return ql.rng.Intn(numActions)
	}

	best := ql.maxQ(state, numActions)
	var tied []int
	for a := 0; a < numActions; a++ {
		if ql.qTable[qKey{state: state, action: a}] == best {
			tied = append(tied, a)
		}
	}
	return tied[ql.rng.Intn(len(tied))]
}
