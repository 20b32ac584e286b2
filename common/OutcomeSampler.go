package common

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// OutcomeSampler turns a probability or rate into a level increment. Every
// mechanism calls its sampler exactly once per round.
type OutcomeSampler func(rng *rand.Rand, param float64) int

// SampleBernoulli draws one uniform deviate and returns 1 if it falls below p.
// 0 <= p <= 1 is the caller's responsibility.
func SampleBernoulli(rng *rand.Rand, p float64) int {
	return int(distuv.Bernoulli{P: p, Src: rng}.Rand())
}

// SamplePoisson returns a Poisson distributed increment with the given mean.
func SamplePoisson(rng *rand.Rand, rate float64) int {
	// gonum requires Lambda > 0
	if rate <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: rate, Src: rng}.Rand())
}

// SamplerByName maps a configuration name to a sampler.
func SamplerByName(name string) (OutcomeSampler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bernoulli":
		return SampleBernoulli, nil
	case "poisson":
		return SamplePoisson, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSampler, name)
	}
}
