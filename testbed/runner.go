package testbed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/CodeStranger-Fred/narmbandit/bandit"
	"github.com/CodeStranger-Fred/narmbandit/performance"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Truth is the ground truth of one bandit instance, or its mean over trials.
type Truth struct {
	Best    float64
	Average float64
	Worst   float64
}

// PolicyResult aggregates one policy over all trials in which it ran.
type PolicyResult struct {
	Policy     bandit.Kind
	Runs       int
	Skipped    int
	MeanReward float64
	StdReward  float64
	Scores     performance.Scores
	// Curve[t] is the reward at step t averaged over runs.
	Curve []float64
}

func (p PolicyResult) Name() string {
	return p.Policy.String()
}

// NotRun reports that the policy never ran, e.g. every trial was under budget.
func (p PolicyResult) NotRun() bool {
	return p.Runs == 0
}

const (
	KeyMeanReward = "mean_reward"
	KeyStdReward  = "std_reward"
)

// Values flattens the result into metric name -> value for reporting.
func (p PolicyResult) Values() map[string]float64 {
	values := p.Scores.Map()
	values[KeyMeanReward] = p.MeanReward
	values[KeyStdReward] = p.StdReward
	return values
}

type Result struct {
	RunID    uuid.UUID
	Config   Config
	Truth    Truth
	Policies []PolicyResult
}

type Runner struct {
	Config  Config
	Logger  *log.Logger
	Metrics *Metrics
}

func NewRunner(cfg Config, reg prometheus.Registerer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		Config:  cfg,
		Logger:  log.Default(),
		Metrics: NewMetrics(reg),
	}, nil
}

type policyRun struct {
	ran     bool
	average float64
	scores  performance.Scores
	rewards []float64
}

type trialOutcome struct {
	truth Truth
	runs  []policyRun
}

// Run executes every trial and aggregates the outcomes. Trial i draws from its
// own source seeded with Seed+i, so the result does not depend on Workers.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.Config
	outcomes := make([]trialOutcome, cfg.Trials)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Trials; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.trial(i)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:  uuid.New(),
		Config: cfg,
		Truth:  meanTruth(outcomes),
	}
	for j, k := range cfg.Policies {
		res.Policies = append(res.Policies, aggregate(k, j, cfg.Pulls, outcomes))
	}
	r.Logger.Printf("[testbed] run %s: %d trials, %d arms, %d pulls", res.RunID, cfg.Trials, cfg.Arms, cfg.Pulls)
	return res, nil
}

func (r *Runner) trial(i int) (trialOutcome, error) {
	cfg := r.Config
	rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))

	b, err := bandit.NewBandit(rng, cfg.Arms, cfg.BanditOptions()...)
	if err != nil {
		return trialOutcome{}, err
	}
	out := trialOutcome{
		truth: Truth{Best: b.Best(), Average: b.Average(), Worst: b.Worst()},
		runs:  make([]policyRun, len(cfg.Policies)),
	}

	for j, k := range cfg.Policies {
		policy, err := bandit.NewPolicy(k)
		if err != nil {
			return trialOutcome{}, err
		}
		agent, err := policy.Run(rng, b, cfg.Pulls)
		if errors.Is(err, bandit.ErrInsufficientBudget) {
			r.Metrics.Skipped.WithLabelValues(policy.Name()).Inc()
			if cfg.Verbose {
				r.Logger.Printf("[testbed] trial %d: %s not run: %v", i, policy.Name(), err)
			}
			continue
		}
		if err != nil {
			return trialOutcome{}, err
		}
		avg, err := agent.AverageReward()
		if err != nil {
			return trialOutcome{}, err
		}

		r.Metrics.Pulls.WithLabelValues(policy.Name()).Add(float64(agent.Pulls()))
		r.Metrics.AverageReward.WithLabelValues(policy.Name()).Observe(avg)
		out.runs[j] = policyRun{
			ran:     true,
			average: avg,
			scores:  performance.Evaluate(avg, b),
			rewards: agent.Rewards,
		}
		if cfg.Verbose {
			r.Logger.Printf("[testbed] trial %d: %s average %.4f (best arm %d, %.4f)", i, policy.Name(), avg, b.BestArm, b.Best())
		}
	}
	r.Metrics.Trials.Inc()
	return out, nil
}

func meanTruth(outcomes []trialOutcome) Truth {
	var t Truth
	for _, o := range outcomes {
		t.Best += o.truth.Best
		t.Average += o.truth.Average
		t.Worst += o.truth.Worst
	}
	n := float64(len(outcomes))
	return Truth{Best: t.Best / n, Average: t.Average / n, Worst: t.Worst / n}
}

func aggregate(k bandit.Kind, j, pulls int, outcomes []trialOutcome) PolicyResult {
	res := PolicyResult{Policy: k}

	var averages, benchmark, relative, vsAverage []float64
	curve := make([]float64, pulls)
	for _, o := range outcomes {
		run := o.runs[j]
		if !run.ran {
			res.Skipped++
			continue
		}
		averages = append(averages, run.average)
		benchmark = append(benchmark, run.scores.Benchmark)
		relative = append(relative, run.scores.Relative)
		vsAverage = append(vsAverage, run.scores.VsAverage)
		for t, reward := range run.rewards {
			curve[t] += reward
		}
	}

	res.Runs = len(averages)
	if res.Runs == 0 {
		return res
	}
	res.MeanReward = stat.Mean(averages, nil)
	if res.Runs > 1 {
		res.StdReward = stat.StdDev(averages, nil)
	}
	res.Scores = performance.Scores{
		Benchmark: stat.Mean(benchmark, nil),
		Relative:  stat.Mean(relative, nil),
		VsAverage: stat.Mean(vsAverage, nil),
	}
	for t := range curve {
		curve[t] /= float64(res.Runs)
	}
	res.Curve = curve
	return res
}
