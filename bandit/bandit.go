package bandit

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultArmCount = 10

type GroundTruth int

const (
	// GroundTruthMean takes each arm's Mean parameter as its true reward.
	GroundTruthMean GroundTruth = iota
	// GroundTruthSampled estimates each arm's reward by averaging draws,
	// which makes the ground truth itself stochastic.
	GroundTruthSampled
)

type options struct {
	arm     Profile
	truth   GroundTruth
	samples int
}

type Option func(*options)

func WithProfile(p Profile) Option {
	return func(o *options) { o.arm = p }
}

// WithSampledGroundTruth replaces the arm means with the average of n sampled rewards.
func WithSampledGroundTruth(n int) Option {
	return func(o *options) {
		o.truth = GroundTruthSampled
		o.samples = n
	}
}

// Bandit is a fixed set of arms plus the ground truth derived from them.
type Bandit struct {
	Arms             []Arm
	EstimatedRewards []float64
	AverageReward    float64
	BestArm          int
	WorstArm         int
}

// NewBandit draws armCount independent arms.
func NewBandit(r *rand.Rand, armCount int, opts ...Option) (*Bandit, error) {
	o := options{arm: DefaultProfile()}
	for _, opt := range opts {
		opt(&o)
	}
	if armCount < 1 {
		return nil, fmt.Errorf("%w: arm count %d", ErrInvalidConfiguration, armCount)
	}
	if err := o.arm.Validate(); err != nil {
		return nil, err
	}
	if o.truth == GroundTruthSampled && o.samples < 1 {
		return nil, fmt.Errorf("%w: ground truth samples %d", ErrInvalidConfiguration, o.samples)
	}

	arms := make([]Arm, armCount)
	for i := range arms {
		arms[i] = CreateArm(r, o.arm)
	}

	estimated := make([]float64, armCount)
	for i, a := range arms {
		if o.truth == GroundTruthSampled {
			estimated[i] = sampleMean(r, a, o.samples)
		} else {
			estimated[i] = a.Mean
		}
	}
	return newBandit(arms, estimated), nil
}

// FromArms builds a bandit from explicit arms, using their means as ground truth.
func FromArms(arms []Arm) (*Bandit, error) {
	if len(arms) == 0 {
		return nil, fmt.Errorf("%w: no arms", ErrInvalidConfiguration)
	}
	estimated := make([]float64, len(arms))
	for i, a := range arms {
		if err := a.check(); err != nil {
			return nil, fmt.Errorf("arm %d: %w", i, err)
		}
		estimated[i] = a.Mean
	}
	return newBandit(append([]Arm(nil), arms...), estimated), nil
}

func newBandit(arms []Arm, estimated []float64) *Bandit {
	return &Bandit{
		Arms:             arms,
		EstimatedRewards: estimated,
		AverageReward:    stat.Mean(estimated, nil),
		BestArm:          floats.MaxIdx(estimated),
		WorstArm:         floats.MinIdx(estimated),
	}
}

func sampleMean(r *rand.Rand, a Arm, n int) float64 {
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += SampleReward(r, a)
	}
	return sum / float64(n)
}

func (b *Bandit) NumArms() int {
	return len(b.Arms)
}

// Best is the ground-truth reward of the best arm.
func (b *Bandit) Best() float64 {
	return b.EstimatedRewards[b.BestArm]
}

// Worst is the ground-truth reward of the worst arm.
func (b *Bandit) Worst() float64 {
	return b.EstimatedRewards[b.WorstArm]
}

func (b *Bandit) Pull(r *rand.Rand, arm int) float64 {
	return SampleReward(r, b.Arms[arm])
}

func (b *Bandit) Average() float64 {
	return b.AverageReward
}
