package bandit

import "fmt"

// Agent records what a policy did during one run.
type Agent struct {
	Bandit      *Bandit
	TotalReward float64
	Actions     []int
	Rewards     []float64
}

func NewAgent(b *Bandit, pulls int) *Agent {
	return &Agent{
		Bandit:  b,
		Actions: make([]int, 0, pulls),
		Rewards: make([]float64, 0, pulls),
	}
}

func (a *Agent) Step(action int, reward float64) {
	a.Actions = append(a.Actions, action)
	a.Rewards = append(a.Rewards, reward)
	a.TotalReward += reward
}

func (a *Agent) Pulls() int {
	return len(a.Actions)
}

func (a *Agent) AverageReward() (float64, error) {
	if len(a.Rewards) == 0 {
		return 0, fmt.Errorf("%w: average over zero pulls", ErrDivisionUndefined)
	}
	return a.TotalReward / float64(len(a.Rewards)), nil
}
