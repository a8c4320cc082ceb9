package bandit

import (
	"fmt"
	"math"
	"math/rand"
)

type Policy interface {
	Name() string

	Run(r *rand.Rand, b *Bandit, pulls int) (*Agent, error)
}

type Kind int

const (
	KindRandom Kind = iota
	KindGreedyExplore
)

// Kinds lists every policy in report order.
var Kinds = []Kind{KindRandom, KindGreedyExplore}

func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "random"
	case KindGreedyExplore:
		return "greedy"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfiguration, s)
}

func NewPolicy(k Kind) (Policy, error) {
	switch k {
	case KindRandom:
		return PolicyRandom{}, nil
	case KindGreedyExplore:
		return PolicyGreedyExplore{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown policy %v", ErrInvalidConfiguration, k)
	}
}

// RunPolicy runs the policy of the given kind and returns its realized average reward.
func RunPolicy(r *rand.Rand, k Kind, b *Bandit, pulls int) (float64, error) {
	p, err := NewPolicy(k)
	if err != nil {
		return 0, err
	}
	agent, err := p.Run(r, b, pulls)
	if err != nil {
		return 0, err
	}
	return agent.AverageReward()
}

// PolicyRandom pulls an arm chosen uniformly at random every step.
type PolicyRandom struct{}

func (p PolicyRandom) Name() string {
	return KindRandom.String()
}

func (p PolicyRandom) Run(r *rand.Rand, b *Bandit, pulls int) (*Agent, error) {
	if pulls < 1 {
		return nil, fmt.Errorf("%w: %s policy with %d pulls", ErrDivisionUndefined, p.Name(), pulls)
	}
	agent := NewAgent(b, pulls)
	for i := 0; i < pulls; i++ {
		action := r.Intn(b.NumArms())
		agent.Step(action, b.Pull(r, action))
	}
	return agent, nil
}

// PolicyGreedyExplore pulls every arm once, then commits to the arm whose single
// exploratory reward was highest. A noisy outlier can lock it onto a worse arm.
type PolicyGreedyExplore struct{}

func (p PolicyGreedyExplore) Name() string {
	return KindGreedyExplore.String()
}

func (p PolicyGreedyExplore) Run(r *rand.Rand, b *Bandit, pulls int) (*Agent, error) {
	if pulls < b.NumArms() {
		return nil, fmt.Errorf("%w: %s policy needs %d pulls, got %d", ErrInsufficientBudget, p.Name(), b.NumArms(), pulls)
	}
	agent := NewAgent(b, pulls)

	bestArm, bestReward := 0, math.Inf(-1)
	for action := 0; action < b.NumArms(); action++ {
		reward := b.Pull(r, action)
		agent.Step(action, reward)
		// strict: ties keep the earliest arm
		if reward > bestReward {
			bestArm, bestReward = action, reward
		}
	}

	for i := b.NumArms(); i < pulls; i++ {
		agent.Step(bestArm, b.Pull(r, bestArm))
	}
	return agent, nil
}
