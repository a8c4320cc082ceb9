package testbed

import (
	"fmt"

	"github.com/CodeStranger-Fred/narmbandit/bandit"
)

type Config struct {
	Arms    int
	Pulls   int
	Trials  int
	Seed    int64
	Workers int

	// SampledTruth > 0 estimates ground truth from that many draws per arm
	// instead of using the arm means.
	SampledTruth int

	Profile  bandit.Profile
	Policies []bandit.Kind
	Verbose  bool
}

func DefaultConfig() Config {
	return Config{
		Arms:     bandit.DefaultArmCount,
		Pulls:    1000,
		Trials:   100,
		Seed:     1,
		Workers:  1,
		Profile:  bandit.DefaultProfile(),
		Policies: bandit.Kinds,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Arms < 1:
		return fmt.Errorf("%w: arms must be positive, got %d", bandit.ErrInvalidConfiguration, c.Arms)
	case c.Pulls < 1:
		return fmt.Errorf("%w: pulls must be positive, got %d", bandit.ErrInvalidConfiguration, c.Pulls)
	case c.Trials < 1:
		return fmt.Errorf("%w: trials must be positive, got %d", bandit.ErrInvalidConfiguration, c.Trials)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", bandit.ErrInvalidConfiguration, c.Workers)
	case c.SampledTruth < 0:
		return fmt.Errorf("%w: sampled truth must not be negative, got %d", bandit.ErrInvalidConfiguration, c.SampledTruth)
	case len(c.Policies) == 0:
		return fmt.Errorf("%w: no policies", bandit.ErrInvalidConfiguration)
	}
	for _, k := range c.Policies {
		if _, err := bandit.NewPolicy(k); err != nil {
			return err
		}
	}
	return c.Profile.Validate()
}

// BanditOptions converts the config into options for bandit.NewBandit.
func (c Config) BanditOptions() []bandit.Option {
	opts := []bandit.Option{bandit.WithProfile(c.Profile)}
	if c.SampledTruth > 0 {
		opts = append(opts, bandit.WithSampledGroundTruth(c.SampledTruth))
	}
	return opts
}
