package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ADimoska/KingshipSim/common"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by Load. Every key is optional.
const (
	EnvAgents        = "KINGSHIP_AGENTS"
	EnvCap           = "KINGSHIP_CAP"
	EnvMechanism     = "KINGSHIP_MECHANISM"
	EnvP             = "KINGSHIP_P"
	EnvSkills        = "KINGSHIP_SKILLS"
	EnvSampler       = "KINGSHIP_SAMPLER"
	EnvRewardType    = "KINGSHIP_REWARD_TYPE"
	EnvSeed          = "KINGSHIP_SEED"
	EnvIterations    = "KINGSHIP_ITERATIONS"
	EnvVerboseLevel  = "KINGSHIP_VERBOSE_LEVEL"
	EnvMarginFactor  = "KINGSHIP_MARGIN_FACTOR"
	EnvMarginDivisor = "KINGSHIP_MARGIN_DIVISOR"
	EnvQEpsilon      = "KINGSHIP_Q_EPSILON"
	EnvQAlpha        = "KINGSHIP_Q_ALPHA"
	EnvQGamma        = "KINGSHIP_Q_GAMMA"
	EnvBetaPrior     = "KINGSHIP_BETA_PRIOR"
	EnvGammaPrior    = "KINGSHIP_GAMMA_PRIOR"
	EnvLogLevel      = "KINGSHIP_LOG_LEVEL"
	EnvLogDir        = "KINGSHIP_LOG_DIR"
	EnvOutputDir     = "KINGSHIP_OUTPUT_DIR"
	EnvDBPath        = "KINGSHIP_DB_PATH"
)

type Config struct {
	// game
	Agents     []string
	Cap        int
	Mechanism  string
	P          float64
	Skills     []float64
	Sampler    string
	RewardType string
	Seed       uint64
	Iterations int

	// agents
	VerboseLevel  int
	MarginFactor  float64 // skill-gap margin factor, 0 keeps the agent default
	MarginDivisor float64 // when > 0 the margin is cap / divisor instead
	QEpsilon      float64
	QAlpha        float64
	QGamma        float64
	BetaAlpha     float64
	BetaBeta      float64
	GammaAlpha    float64
	GammaBeta     float64

	// output
	LogLevel  string
	LogDir    string
	OutputDir string // empty disables the CSV and HTML exports
	DBPath    string // empty disables the results database
}

func Default() Config {
	return Config{
		Agents:     []string{"basic", "basic", "basic"},
		Cap:        10,
		Mechanism:  "baseline",
		P:          0.5,
		Sampler:    "bernoulli",
		RewardType: string(common.WinnerTakeAll),
		Seed:       1,
		Iterations: 1,

		QEpsilon:   0.1,
		QAlpha:     0.05,
		QGamma:     0.9,
		BetaAlpha:  1,
		BetaBeta:   1,
		GammaAlpha: 1,
		GammaBeta:  2,

		LogLevel: "info",
		LogDir:   "logs",
	}
}

// Load starts from Default, loads the given .env files (missing files are
// skipped) and applies any KINGSHIP_* variables found in the environment.
func Load(envFiles ...string) (Config, error) {
	cfg := Default()
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return cfg, fmt.Errorf("loading %s: %w", file, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := os.LookupEnv(key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v))
				return
			}
			*dst = f
		}
	}
	prior := func(key string, a, b *float64) {
		if v, ok := os.LookupEnv(key); ok {
			values, err := ParseFloats(v)
			if err != nil || len(values) != 2 {
				errs = append(errs, fmt.Errorf("%w: %s=%q wants two numbers", ErrInvalidConfig, key, v))
				return
			}
			*a, *b = values[0], values[1]
		}
	}

	if v, ok := os.LookupEnv(EnvAgents); ok {
		cfg.Agents = ParseList(v)
	}
	if v, ok := os.LookupEnv(EnvSkills); ok {
		skills, err := ParseFloats(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSkills, err))
		} else {
			cfg.Skills = skills
		}
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSeed, v))
		} else {
			cfg.Seed = seed
		}
	}
	integer(EnvCap, &cfg.Cap)
	integer(EnvIterations, &cfg.Iterations)
	integer(EnvVerboseLevel, &cfg.VerboseLevel)
	str(EnvMechanism, &cfg.Mechanism)
	str(EnvSampler, &cfg.Sampler)
	str(EnvRewardType, &cfg.RewardType)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvLogDir, &cfg.LogDir)
	str(EnvOutputDir, &cfg.OutputDir)
	str(EnvDBPath, &cfg.DBPath)
	float(EnvP, &cfg.P)
	float(EnvMarginFactor, &cfg.MarginFactor)
	float(EnvMarginDivisor, &cfg.MarginDivisor)
	float(EnvQEpsilon, &cfg.QEpsilon)
	float(EnvQAlpha, &cfg.QAlpha)
	float(EnvQGamma, &cfg.QGamma)
	prior(EnvBetaPrior, &cfg.BetaAlpha, &cfg.BetaBeta)
	prior(EnvGammaPrior, &cfg.GammaAlpha, &cfg.GammaBeta)

	return errors.Join(errs...)
}

// Validate checks the values that can be checked without building the game.
// Player count and agent kinds are left to the server and agent factory.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.Cap <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", common.ErrInvalidCap, cfg.Cap))
	}
	if cfg.Iterations < 1 {
		errs = append(errs, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, cfg.Iterations))
	}
	if cfg.P < 0 {
		errs = append(errs, fmt.Errorf("%w: p must be non-negative, got %v", ErrInvalidConfig, cfg.P))
	}
	if _, err := common.ParseRewardType(cfg.RewardType); err != nil {
		errs = append(errs, err)
	}
	if _, err := common.SamplerByName(cfg.Sampler); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(cfg.Mechanism) {
	case "baseline":
	case "skill", "sabotage":
		if len(cfg.Skills) != len(cfg.Agents) {
			errs = append(errs, fmt.Errorf("%w: %d skills for %d players", common.ErrSkillsLength, len(cfg.Skills), len(cfg.Agents)))
		}
		for _, s := range cfg.Skills {
			if s < 0 {
				errs = append(errs, fmt.Errorf("%w: %v", common.ErrNegativeSkill, s))
				break
			}
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", common.ErrUnknownMechanism, cfg.Mechanism))
	}
	if cfg.QEpsilon < 0 || cfg.QEpsilon > 1 {
		errs = append(errs, fmt.Errorf("%w: epsilon must be in [0,1], got %v", ErrInvalidConfig, cfg.QEpsilon))
	}
	if cfg.BetaAlpha <= 0 || cfg.BetaBeta <= 0 || cfg.GammaAlpha <= 0 || cfg.GammaBeta <= 0 {
		errs = append(errs, fmt.Errorf("%w: bandit priors must be positive", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// ParseList splits a comma separated list, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseFloats parses a comma separated list of numbers, e.g. "1,2.5,3".
func ParseFloats(s string) ([]float64, error) {
	parts := ParseList(s)
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidConfig, part)
		}
		out = append(out, f)
	}
	return out, nil
}
