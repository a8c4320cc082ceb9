package bandit

import (
	"fmt"
	"math/rand"
)

type Quality int

const (
	Bad Quality = iota
	Normal
	Good
)

func (q Quality) String() string {
	switch q {
	case Bad:
		return "bad"
	case Normal:
		return "normal"
	case Good:
		return "good"
	default:
		return "?"
	}
}

// Range is a closed reward interval.
type Range struct {
	Lo float64
	Hi float64
}

func (r Range) width() float64 {
	return r.Hi - r.Lo
}

// Profile controls how arms are drawn. A quality indicator q ~ U[0,1) selects
// the bucket: q < Low is bad, q > High is good, anything else is normal.
type Profile struct {
	Low  float64
	High float64

	BadRange    Range
	NormalRange Range
	GoodRange   Range

	// Shrink is the fraction of the arm interval cut from each side before
	// drawing the mean.
	Shrink float64

	NoiseMin float64
	NoiseMax float64
}

// DefaultProfile gives 15/70/15 bad/normal/good arms.
func DefaultProfile() Profile {
	return Profile{
		Low:         0.15,
		High:        0.85,
		BadRange:    Range{0, 0.3},
		NormalRange: Range{0.3, 0.7},
		GoodRange:   Range{0.7, 1.0},
		Shrink:      0.1,
		NoiseMin:    0.1,
		NoiseMax:    0.5,
	}
}

func (p Profile) Validate() error {
	if !(p.Low >= 0 && p.High <= 1 && p.Low <= p.High) {
		return fmt.Errorf("%w: quality thresholds %v/%v", ErrInvalidConfiguration, p.Low, p.High)
	}
	for _, r := range []Range{p.BadRange, p.NormalRange, p.GoodRange} {
		if !(r.Lo < r.Hi) {
			return fmt.Errorf("%w: empty range [%v, %v]", ErrInvalidConfiguration, r.Lo, r.Hi)
		}
	}
	if !(p.Shrink >= 0 && p.Shrink < 0.5) {
		return fmt.Errorf("%w: shrink %v", ErrInvalidConfiguration, p.Shrink)
	}
	if !(p.NoiseMin >= 0 && p.NoiseMin <= p.NoiseMax) {
		return fmt.Errorf("%w: noise range [%v, %v]", ErrInvalidConfiguration, p.NoiseMin, p.NoiseMax)
	}
	return nil
}

func (p Profile) bucket(q float64) (Quality, Range) {
	switch {
	case q < p.Low:
		return Bad, p.BadRange
	case q > p.High:
		return Good, p.GoodRange
	default:
		return Normal, p.NormalRange
	}
}

// Arm is one reward-generating option. Its parameters never change after
// CreateArm returns.
type Arm struct {
	Quality Quality
	Lower   float64
	Upper   float64
	Mean    float64
	Noise   float64
}

func (a Arm) check() error {
	// positive form so NaN fails every comparison
	if !(a.Lower < a.Upper && a.Lower <= a.Mean && a.Mean <= a.Upper && a.Noise >= 0) {
		return fmt.Errorf("%w: arm [%v, %v] mean %v noise %v", ErrInvalidConfiguration, a.Lower, a.Upper, a.Mean, a.Noise)
	}
	return nil
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// CreateArm draws a new arm from the profile. The profile is assumed valid.
func CreateArm(r *rand.Rand, p Profile) Arm {
	quality, rng := p.bucket(r.Float64())

	// lower stays in the bottom third and upper in the top third, so lower < upper
	third := rng.width() / 3
	lower := uniform(r, rng.Lo, rng.Lo+third)
	upper := rng.Hi - third*r.Float64()

	cut := (upper - lower) * p.Shrink
	return Arm{
		Quality: quality,
		Lower:   lower,
		Upper:   upper,
		Mean:    uniform(r, lower+cut, upper-cut),
		Noise:   uniform(r, p.NoiseMin, p.NoiseMax),
	}
}

// SampleReward draws a noisy reward around the arm's mean, clamped into its interval.
func SampleReward(r *rand.Rand, a Arm) float64 {
	reward := a.Mean + a.Noise*r.NormFloat64()
	return clamp(reward, a.Lower, a.Upper)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
