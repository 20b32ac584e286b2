package agents

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
)

// Agent kinds accepted by CreateAgent.
const (
	KindBasic        = "basic"
	KindLowestLevel  = "lowest"
	KindSkilled      = "skilled"
	KindBetaBinomial = "beta"
	KindGammaPoisson = "gamma"
	KindQLearning    = "qlearning"
)

var AgentKinds = []string{KindBasic, KindLowestLevel, KindSkilled, KindBetaBinomial, KindGammaPoisson, KindQLearning}

// AgentOptions bundles every strategy's configuration so the server can build
// a mixed population from a list of kind names.
type AgentOptions struct {
	AgentConfig  AgentConfig
	Skilled      SkilledConfig
	BetaBinomial BanditConfig
	GammaPoisson BanditConfig
	QLearning    QLearningConfig
}

func DefaultAgentOptions() AgentOptions {
	return AgentOptions{
		AgentConfig:  AgentConfig{InitLevel: 0, VerboseLevel: 0},
		BetaBinomial: DefaultBetaBinomialConfig(),
		GammaPoisson: DefaultGammaPoissonConfig(),
		QLearning:    DefaultQLearningConfig(),
	}
}

func CreateAgent(kind string, id int, rng *rand.Rand, options AgentOptions) (common.IKingshipAgent, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindBasic:
		return CreateBasicAgent(id, rng, options.AgentConfig), nil
	case KindLowestLevel:
		return CreateLowestLevelAgent(id, rng, options.AgentConfig), nil
	case KindSkilled:
		return CreateSkilledAgent(id, rng, options.AgentConfig, options.Skilled), nil
	case KindBetaBinomial:
		return CreateBetaBinomialAgent(id, rng, options.AgentConfig, options.Skilled, options.BetaBinomial), nil
	case KindGammaPoisson:
		return CreateGammaPoissonAgent(id, rng, options.AgentConfig, options.Skilled, options.GammaPoisson), nil
	case KindQLearning:
		return CreateQLearningAgent(id, rng, options.AgentConfig, options.QLearning), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownAgent, kind)
	}
}
