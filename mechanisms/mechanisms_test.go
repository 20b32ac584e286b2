package mechanisms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/agents"
	"github.com/ADimoska/KingshipSim/common"
)

// scriptedAgent always picks the same friend and records what it was shown.
type scriptedAgent struct {
	*agents.BaseAgent
	friend   int
	sabotage bool

	seenSkills []float64
	seenKing   int
}

func newScriptedAgent(id int, friend int, sabotage bool) *scriptedAgent {
	return &scriptedAgent{
		BaseAgent: agents.GetBaseAgent(id, "ScriptedAgent", nil, agents.AgentConfig{}),
		friend:    friend,
		sabotage:  sabotage,
		seenKing:  -1,
	}
}

func (sa *scriptedAgent) PickFriend(levels []int, cap int, skills []float64) int {
	sa.seenSkills = skills
	return sa.friend
}

func (sa *scriptedAgent) DecideSabotage(king int, levels []int, cap int, skills []float64) bool {
	sa.seenKing = king
	return sa.sabotage
}

func players(agentList ...*scriptedAgent) []common.IKingshipAgent {
	out := make([]common.IKingshipAgent, len(agentList))
	for i, a := range agentList {
		out[i] = a
	}
	return out
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestBaselineCertainSuccess(t *testing.T) {
	mech := CreateBaselineMechanism(1.0, common.SampleBernoulli, testRand(1))
	ps := players(newScriptedAgent(0, 2, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false))

	levels := []int{0, 0, 0}
	outcome, err := mech.Play(0, ps, levels, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, outcome.Levels)
	assert.Equal(t, 2, outcome.Friend)
	assert.Equal(t, 1, outcome.Increment)
	assert.Equal(t, []int{0, 0, 0}, levels, "input must not be mutated")
}

func TestBaselineCertainFailureReturnsCopy(t *testing.T) {
	mech := CreateBaselineMechanism(0.0, nil, testRand(1))
	ps := players(newScriptedAgent(0, 1, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false))

	levels := []int{2, 1, 0}
	outcome, err := mech.Play(0, ps, levels, 5)
	require.NoError(t, err)
	assert.Equal(t, levels, outcome.Levels)

	outcome.Levels[0] = 99
	assert.Equal(t, 2, levels[0])
}

func TestFriendIsKingFailsLoudly(t *testing.T) {
	mech := CreateBaselineMechanism(1.0, nil, testRand(1))
	ps := players(newScriptedAgent(0, 0, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false))

	_, err := mech.Play(0, ps, []int{0, 0, 0}, 5)
	assert.ErrorIs(t, err, common.ErrFriendIsKing)
}

func TestFriendOutOfRange(t *testing.T) {
	mech := CreateBaselineMechanism(1.0, nil, testRand(1))
	ps := players(newScriptedAgent(0, 7, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false))

	_, err := mech.Play(0, ps, []int{0, 0, 0}, 5)
	assert.ErrorIs(t, err, common.ErrInvalidFriend)
}

func TestSkillProbability(t *testing.T) {
	skills := []float64{1, 2, 3, 4}
	mech, err := CreateSkillMechanism(skills, common.SampleBernoulli, testRand(1))
	require.NoError(t, err)

	king := newScriptedAgent(0, 3, false)
	ps := players(king, newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false), newScriptedAgent(3, 0, false))

	outcome, err := mech.Play(0, ps, []int{0, 0, 0, 0}, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, outcome.Probability, 1e-12)
	assert.Equal(t, skills, king.seenSkills)
	assert.False(t, outcome.Sabotaged)
}

func TestSkillEmpiricalRate(t *testing.T) {
	mech, err := CreateSkillMechanism([]float64{1, 1, 2}, common.SampleBernoulli, testRand(13))
	require.NoError(t, err)
	ps := players(newScriptedAgent(0, 1, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false))

	const trials = 20000
	hits := 0
	for range trials {
		outcome, err := mech.Play(0, ps, []int{0, 0, 0}, 5)
		require.NoError(t, err)
		hits += outcome.Increment
	}
	assert.InDelta(t, 0.5, float64(hits)/trials, 0.02)
}

func TestSabotageExcludesFriendSkill(t *testing.T) {
	mech, err := CreateSabotageMechanism([]float64{1, 2, 3, 4}, common.SampleBernoulli, testRand(1))
	require.NoError(t, err)

	friend := newScriptedAgent(3, 0, true)
	ps := players(newScriptedAgent(0, 3, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false), friend)

	outcome, err := mech.Play(0, ps, []int{0, 0, 0, 0}, 5)
	require.NoError(t, err)
	assert.True(t, outcome.Sabotaged)
	assert.InDelta(t, 1.0/6.0, outcome.Probability, 1e-12)
	assert.Equal(t, 0, friend.seenKing)
}

func TestSaboteurStillGainsOnSuccess(t *testing.T) {
	// with the friend's skill removed the king alone makes up the whole pool
	mech, err := CreateSabotageMechanism([]float64{1, 0, 0}, common.SampleBernoulli, testRand(1))
	require.NoError(t, err)
	ps := players(newScriptedAgent(0, 1, false), newScriptedAgent(1, 0, true), newScriptedAgent(2, 0, false))

	outcome, err := mech.Play(0, ps, []int{0, 0, 0}, 5)
	require.NoError(t, err)
	assert.True(t, outcome.Sabotaged)
	assert.Equal(t, 1.0, outcome.Probability)
	assert.Equal(t, []int{1, 1, 0}, outcome.Levels)
}

func TestSabotageWithoutSabotageMatchesSkill(t *testing.T) {
	mech, err := CreateSabotageMechanism([]float64{1, 2, 3, 4}, nil, testRand(1))
	require.NoError(t, err)
	ps := players(newScriptedAgent(0, 2, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false), newScriptedAgent(3, 0, false))

	outcome, err := mech.Play(0, ps, []int{0, 0, 0, 0}, 5)
	require.NoError(t, err)
	assert.False(t, outcome.Sabotaged)
	assert.InDelta(t, 0.4, outcome.Probability, 1e-12)
}

func TestSkillVectorChecks(t *testing.T) {
	_, err := CreateSkillMechanism([]float64{1, -1, 2}, nil, testRand(1))
	assert.ErrorIs(t, err, common.ErrNegativeSkill)

	mech, err := CreateSkillMechanism([]float64{1, 1}, nil, testRand(1))
	require.NoError(t, err)
	ps := players(newScriptedAgent(0, 1, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false))
	_, err = mech.Play(0, ps, []int{0, 0, 0}, 5)
	assert.ErrorIs(t, err, common.ErrSkillsLength)
}

func TestZeroSkillsNeverSucceed(t *testing.T) {
	mech, err := CreateSkillMechanism([]float64{0, 0, 0}, nil, testRand(1))
	require.NoError(t, err)
	ps := players(newScriptedAgent(0, 1, false), newScriptedAgent(1, 0, false), newScriptedAgent(2, 0, false))

	outcome, err := mech.Play(0, ps, []int{0, 0, 0}, 5)
	require.NoError(t, err)
	assert.Zero(t, outcome.Probability)
	assert.Equal(t, []int{0, 0, 0}, outcome.Levels)
}

func TestDimensions(t *testing.T) {
	baseline := CreateBaselineMechanism(0.5, nil, testRand(1))
	skill, err := CreateSkillMechanism([]float64{1, 1, 1, 1}, nil, testRand(1))
	require.NoError(t, err)
	sabotage, err := CreateSabotageMechanism([]float64{1, 1, 1, 1}, nil, testRand(1))
	require.NoError(t, err)

	assert.Equal(t, 5, baseline.InputDim(4))
	assert.Equal(t, 9, skill.InputDim(4))
	assert.Equal(t, 9, sabotage.InputDim(4))
	for _, m := range []common.IMechanism{baseline, skill, sabotage} {
		assert.Equal(t, 3, m.OutputDim(4), m.Name())
	}
}

func TestLevelsNeverDecrease(t *testing.T) {
	rng := testRand(99)
	skills := []float64{0.2, 0.5, 0.9, 0.4}
	ps := make([]common.IKingshipAgent, len(skills))
	for i := range ps {
		ps[i] = agents.CreateBasicAgent(i, rng, agents.AgentConfig{})
	}

	for _, name := range []string{NameBaseline, NameSkill, NameSabotage} {
		for _, sampler := range []common.OutcomeSampler{common.SampleBernoulli, common.SamplePoisson} {
			mech, err := CreateMechanism(name, 0.6, skills, sampler, rng)
			require.NoError(t, err)

			levels := make([]int, len(skills))
			for round := 0; round < 200; round++ {
				outcome, err := mech.Play(round%len(ps), ps, levels, 1000)
				require.NoError(t, err)
				for i := range levels {
					require.GreaterOrEqual(t, outcome.Levels[i], levels[i])
				}
				levels = outcome.Levels
			}
		}
	}
}

func TestCreateMechanismUnknown(t *testing.T) {
	_, err := CreateMechanism("lottery", 0.5, nil, nil, testRand(1))
	assert.ErrorIs(t, err, common.ErrUnknownMechanism)
}
