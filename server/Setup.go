package gameServer

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/agents"
	"github.com/ADimoska/KingshipSim/common"
	"github.com/ADimoska/KingshipSim/config"
	"github.com/ADimoska/KingshipSim/mechanisms"
)

// MakeGameServer wires a complete game from configuration. Every random draw in
// the game (kings, outcomes, agent choices) comes from one source seeded with
// cfg.Seed, so the same config replays the same trajectory.
func MakeGameServer(cfg config.Config, logger *slog.Logger) (*GameServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	sampler, err := common.SamplerByName(cfg.Sampler)
	if err != nil {
		return nil, err
	}
	mechanism, err := mechanisms.CreateMechanism(cfg.Mechanism, cfg.P, cfg.Skills, sampler, rng)
	if err != nil {
		return nil, fmt.Errorf("creating mechanism: %w", err)
	}

	players := make([]common.IKingshipAgent, 0, len(cfg.Agents))
	for id, kind := range cfg.Agents {
		agent, err := agents.CreateAgent(kind, id, rng, AgentOptionsFor(cfg, id, mechanism.OutputDim(len(cfg.Agents))))
		if err != nil {
			return nil, fmt.Errorf("creating player %d: %w", id, err)
		}
		players = append(players, agent)
	}

	return CreateGameServer(players, mechanism, cfg.Cap, common.RewardType(cfg.RewardType), rng, logger)
}

// AgentOptionsFor builds the strategy settings for player id.
func AgentOptionsFor(cfg config.Config, id int, outputDim int) agents.AgentOptions {
	options := agents.DefaultAgentOptions()
	options.AgentConfig.VerboseLevel = cfg.VerboseLevel

	switch {
	case cfg.MarginDivisor > 0:
		options.Skilled.Margin = agents.CapFractionMargin(cfg.MarginDivisor)
	case cfg.MarginFactor > 0:
		options.Skilled.Margin = agents.SkillGapMargin(cfg.MarginFactor)
	}

	ownSkill := common.SkillAt(cfg.Skills, id)
	options.BetaBinomial = agents.BanditConfig{OwnSkill: ownSkill, Alpha: cfg.BetaAlpha, Beta: cfg.BetaBeta}
	options.GammaPoisson = agents.BanditConfig{OwnSkill: ownSkill, Alpha: cfg.GammaAlpha, Beta: cfg.GammaBeta}
	options.QLearning = agents.QLearningConfig{
		Epsilon:   cfg.QEpsilon,
		Alpha:     cfg.QAlpha,
		Gamma:     cfg.QGamma,
		OutputDim: outputDim,
	}
	return options
}
