package common

// IKingshipAgent is the contract every player strategy satisfies. The server
// only ever talks to players through this interface.
type IKingshipAgent interface {
	// Getters
	GetID() int
	GetLevel() int

	// Setters
	SetLevel(level int)

	// Strategic decisions (functions that each strategy can implement their own)

	// PickFriend returns the index of the partner chosen by this agent while it
	// is king. The returned index is never the agent's own id. skills may be nil
	// for mechanisms that do not use them.
	PickFriend(levels []int, cap int, skills []float64) int
	// DecideSabotage is asked of the chosen friend. true withholds the friend's
	// skill from the round's success probability.
	DecideSabotage(king int, levels []int, cap int, skills []float64) bool
	// AcceptReward delivers the reward the server computed for this agent.
	// done is true on the terminal round of an episode. levels may be nil.
	AcceptReward(reward float64, done bool, levels []int, cap int)

	// Info
	String() string
}
