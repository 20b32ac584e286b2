package mechanisms

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
)

const (
	NameBaseline = "baseline"
	NameSkill    = "skill"
	NameSabotage = "sabotage"
)

// CreateMechanism builds a mechanism by name. p is only used by the baseline,
// skills by the other two.
func CreateMechanism(name string, p float64, skills []float64, sampler common.OutcomeSampler, rng *rand.Rand) (common.IMechanism, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameBaseline:
		return CreateBaselineMechanism(p, sampler, rng), nil
	case NameSkill:
		sm, err := CreateSkillMechanism(skills, sampler, rng)
		if err != nil {
			return nil, err
		}
		return sm, nil
	case NameSabotage:
		sb, err := CreateSabotageMechanism(skills, sampler, rng)
		if err != nil {
			return nil, err
		}
		return sb, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownMechanism, name)
	}
}
