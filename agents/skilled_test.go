package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkilledPrefersMostSkilledNotFarAhead(t *testing.T) {
	agent := CreateSkilledAgent(0, testRand(1), agentConfig, SkilledConfig{})

	// candidate 1 is the most skilled but 6 + (0.9-0.5)*10 > 5,
	// candidate 2 passes with 2 + (0.7-0.5)*10 <= 5
	friend := agent.PickFriend([]int{5, 6, 2, 1}, 20, []float64{0.5, 0.9, 0.7, 0.1})
	assert.Equal(t, 2, friend)
}

func TestSkilledFallsBackToLowestLevel(t *testing.T) {
	agent := CreateSkilledAgent(0, testRand(1), agentConfig, SkilledConfig{})

	friend := agent.PickFriend([]int{0, 3, 1, 2}, 20, []float64{0.1, 0.9, 0.8, 0.7})
	assert.Equal(t, 2, friend)
}

func TestSkilledFallbackTieUsesIndexOrder(t *testing.T) {
	agent := CreateSkilledAgent(3, testRand(1), agentConfig, SkilledConfig{})

	for range 20 {
		friend := agent.PickFriend([]int{1, 1, 4, 0}, 20, []float64{0.8, 0.9, 0.7, 0.1})
		assert.Equal(t, 0, friend)
	}
}

func TestSkilledCapFractionMargin(t *testing.T) {
	agent := CreateSkilledAgent(0, testRand(1), agentConfig, SkilledConfig{Margin: CapFractionMargin(10)})

	// margin is 20/10 = 2 for everyone
	friend := agent.PickFriend([]int{3, 2, 1, 5}, 20, []float64{0, 0.9, 0.5, 0.1})
	assert.Equal(t, 2, friend)
}

func TestSkilledWithoutSkills(t *testing.T) {
	agent := CreateSkilledAgent(1, testRand(1), agentConfig, SkilledConfig{})

	// every skill is 0 so the margin is 0: first candidate not ahead of us
	assert.Equal(t, 2, agent.PickFriend([]int{3, 2, 1}, 10, nil))
	assert.Equal(t, 0, agent.PickFriend([]int{2, 2, 1}, 10, nil))
}

func TestSkillGapMarginFactor(t *testing.T) {
	assert.InDelta(t, 4.0, SkillGapMargin(10)(0.4, 100), 1e-12)
	assert.InDelta(t, -1.0, SkillGapMargin(5)(-0.2, 100), 1e-12)
	assert.InDelta(t, 2.5, CapFractionMargin(4)(0.9, 10), 1e-12)
}
