package mechanisms

/*
Mechanisms decide what a round is worth.

Every round the king picks one friend. The mechanism turns that choice into a
probability (or a rate, depending on the sampler), draws exactly one outcome
and adds the drawn increment to both the king and the friend.

-- Baseline:  fixed probability p.
-- Skill:     (skill[king] + skill[friend]) / sum(skills).
-- Sabotage:  as Skill, but the friend may withhold its skill, in which case
              p = skill[king] / (sum(skills) - skill[friend]). A saboteur still
              gains the increment when the roll succeeds.

Mechanisms never modify the level vector they are given.
*/

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
)

// roundDraw carries the pieces every mechanism shares: the sampler and the
// randomness context it draws from.
type roundDraw struct {
	sampler common.OutcomeSampler
	rng     *rand.Rand
}

func newRoundDraw(sampler common.OutcomeSampler, rng *rand.Rand) roundDraw {
	if sampler == nil {
		sampler = common.SampleBernoulli
	}
	return roundDraw{sampler: sampler, rng: rng}
}

// askKing gets the friend from the king and checks it.
func askKing(king int, players []common.IKingshipAgent, levels []int, cap int, skills []float64) (int, error) {
	friend := players[king].PickFriend(common.CopyLevels(levels), cap, skills)
	if friend == king {
		return friend, fmt.Errorf("%w: player %d", common.ErrFriendIsKing, king)
	}
	if friend < 0 || friend >= len(levels) {
		return friend, fmt.Errorf("%w: player %d picked %d", common.ErrInvalidFriend, king, friend)
	}
	return friend, nil
}

// settle draws the outcome and builds the new level vector.
func (rd roundDraw) settle(levels []int, king int, friend int, p float64, sabotaged bool) common.RoundOutcome {
	increment := rd.sampler(rd.rng, p)
	newLevels := common.CopyLevels(levels)
	newLevels[king] += increment
	newLevels[friend] += increment

	return common.RoundOutcome{
		Levels:      newLevels,
		Friend:      friend,
		Sabotaged:   sabotaged,
		Probability: p,
		Increment:   increment,
	}
}

// levels + cap
func levelsInputDim(numPlayers int) int {
	return numPlayers + 1
}

// levels + skills + cap
func skillsInputDim(numPlayers int) int {
	return 2*numPlayers + 1
}

// one selection weight per possible partner
func partnerOutputDim(numPlayers int) int {
	return numPlayers - 1
}
