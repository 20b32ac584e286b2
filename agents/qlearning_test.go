package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two states, two actions, deterministic rewards:
//
//	A --a0 (r=1)--> B      B --a0 (r=0)--> end
//	A --a1 (r=0)--> B      B --a1 (r=2)--> end
//
// With gamma 0.9 the optimal values are Q(B,0)=0, Q(B,1)=2,
// Q(A,0)=1+0.9*2=2.8 and Q(A,1)=0+0.9*2=1.8.
func TestQLearningConvergesOnToyEnvironment(t *testing.T) {
	stateA := []int{0, 0, 0}
	stateB := []int{1, 1, 0}
	rewardA := []float64{1, 0}
	rewardB := []float64{0, 2}

	agent := CreateQLearningAgent(0, testRand(17), AgentConfig{}, QLearningConfig{
		Epsilon: 0.1,
		Alpha:   0.1,
		Gamma:   0.9,
	})

	// friend = (id + 1 + action) % 3, so action = friend - 1 for id 0
	for range 5000 {
		actionA := agent.PickFriend(stateA, 10, nil) - 1
		agent.AcceptReward(rewardA[actionA], false, stateA, 10)

		actionB := agent.PickFriend(stateB, 10, nil) - 1
		agent.AcceptReward(rewardB[actionB], true, stateB, 10)
	}

	assert.InDelta(t, 2.8, agent.GetQ(stateA, 0), 0.01)
	assert.InDelta(t, 1.8, agent.GetQ(stateA, 1), 0.01)
	assert.InDelta(t, 0.0, agent.GetQ(stateB, 0), 0.01)
	assert.InDelta(t, 2.0, agent.GetQ(stateB, 1), 0.01)
}

func TestQLearningUnseenPairTakesReward(t *testing.T) {
	agent := CreateQLearningAgent(0, testRand(2), AgentConfig{}, QLearningConfig{Alpha: 0.05, Gamma: 0.9})

	levels := []int{0, 0, 0}
	action := agent.PickFriend(levels, 10, nil) - 1
	agent.AcceptReward(5, true, levels, 10)

	assert.Equal(t, 5.0, agent.GetQ(levels, action))
}

func TestQLearningSumsRewardsBetweenPicks(t *testing.T) {
	agent := CreateQLearningAgent(0, testRand(2), AgentConfig{}, QLearningConfig{Alpha: 0.05, Gamma: 0.9})

	first := []int{0, 0, 0}
	action := agent.PickFriend(first, 10, nil) - 1
	agent.AcceptReward(1, false, first, 10)
	agent.AcceptReward(2, false, first, 10)
	agent.PickFriend([]int{1, 1, 0}, 10, nil)

	assert.Equal(t, 3.0, agent.GetQ(first, action))
}

func TestQLearningIncrementalUpdate(t *testing.T) {
	agent := CreateQLearningAgent(0, testRand(2), AgentConfig{}, QLearningConfig{Epsilon: 0, Alpha: 0.5, Gamma: 0.9})

	levels := []int{0, 0, 0}
	action := agent.PickFriend(levels, 10, nil) - 1
	agent.AcceptReward(4, true, levels, 10)
	require.Equal(t, 4.0, agent.GetQ(levels, action))

	// greedy now picks the same action again; terminal value is 0
	again := agent.PickFriend(levels, 10, nil) - 1
	require.Equal(t, action, again)
	agent.AcceptReward(2, true, levels, 10)
	assert.InDelta(t, 4.0+0.5*(2.0-4.0), agent.GetQ(levels, action), 1e-12)
}

func TestQLearningEpisodeResetKeepsTable(t *testing.T) {
	agent := CreateQLearningAgent(1, testRand(8), AgentConfig{}, DefaultQLearningConfig())

	agent.PickFriend([]int{0, 0, 0, 0}, 10, nil)
	agent.AcceptReward(0, false, nil, 10)
	agent.PickFriend([]int{1, 1, 0, 0}, 10, nil)
	require.Equal(t, 2, agent.Steps())

	agent.AcceptReward(-10, true, []int{1, 1, 10, 0}, 10)
	assert.Equal(t, 0, agent.Steps())
	assert.Equal(t, 2, agent.TableSize())

	// a done signal with nothing pending must not touch the table
	agent.AcceptReward(10, true, nil, 10)
	assert.Equal(t, 2, agent.TableSize())
}

func TestQLearningGetQDefaultsToZero(t *testing.T) {
	agent := CreateQLearningAgent(0, testRand(1), AgentConfig{}, DefaultQLearningConfig())
	assert.Zero(t, agent.GetQ([]int{9, 9, 9}, 1))
}

func TestQLearningRespectsOutputDim(t *testing.T) {
	agent := CreateQLearningAgent(2, testRand(6), AgentConfig{}, QLearningConfig{Epsilon: 1, OutputDim: 1})
	for range 100 {
		// only action 0 exists: (2 + 1 + 0) % 5
		assert.Equal(t, 3, agent.PickFriend([]int{0, 0, 0, 0, 0}, 10, nil))
	}
}
