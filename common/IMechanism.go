package common

// RoundOutcome is what a mechanism produces for one round. Levels is always a
// fresh slice, the input level vector is never modified.
type RoundOutcome struct {
	Levels      []int
	Friend      int
	Sabotaged   bool
	Probability float64
	Increment   int
}

// IMechanism turns the king's partner choice into a level transition.
type IMechanism interface {
	Play(king int, players []IKingshipAgent, levels []int, cap int) (RoundOutcome, error)

	// InputDim is the size of the observation a learning agent would consume
	// under this mechanism, OutputDim the size of its partner-selection output.
	InputDim(numPlayers int) int
	OutputDim(numPlayers int) int

	Name() string
}
