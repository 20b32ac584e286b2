package agents

// banditMemory is the per-partner bookkeeping shared by the Beta-Binomial and
// Gamma-Poisson strategies.
type banditMemory struct {
	trials    map[int]int
	successes map[int]int

	// state cached at the last pick, used to attribute a success next time
	lastFriend      int
	lastFriendLevel int
	lastLevel       int
}

func newBanditMemory() *banditMemory {
	return &banditMemory{
		trials:     make(map[int]int),
		successes:  make(map[int]int),
		lastFriend: -1,
	}
}

// attributeOutcome counts a success for the previous partner when both its
// level and ours went up since we picked it.
func (bm *banditMemory) attributeOutcome(self int, levels []int) {
	if bm.lastFriend < 0 || bm.lastFriend >= len(levels) {
		return
	}
	if levels[bm.lastFriend] > bm.lastFriendLevel && levels[self] > bm.lastLevel {
		bm.successes[bm.lastFriend]++
	}
}

func (bm *banditMemory) recordTrial(self int, friend int, levels []int) {
	bm.trials[friend]++
	if _, ok := bm.successes[friend]; !ok {
		bm.successes[friend] = 0
	}
	bm.lastFriend = friend
	bm.lastFriendLevel = levels[friend]
	bm.lastLevel = levels[self]
}

// forgetLastPick drops the cached pick so that nothing is attributed across an
// episode boundary. Counters are kept.
func (bm *banditMemory) forgetLastPick() {
	bm.lastFriend = -1
}

// relativeSkills builds an index-aligned vector of estimate - ownSkill for every
// partner tried at least once. Untried partners (and self) stay at 0.
func (bm *banditMemory) relativeSkills(numPlayers int, ownSkill float64, estimate func(trials, successes int) float64) []float64 {
	relative := make([]float64, numPlayers)
	for partner, trials := range bm.trials {
		if trials < 1 || partner >= numPlayers {
			continue
		}
		relative[partner] = estimate(trials, bm.successes[partner]) - ownSkill
	}
	return relative
}
