// Package report owns all display of simulation results: colored console
// tables and echarts HTML charts.
package report

import (
	"fmt"
	"io"

	"github.com/CodeStranger-Fred/narmbandit/bandit"
	"github.com/CodeStranger-Fred/narmbandit/performance"
	"github.com/CodeStranger-Fred/narmbandit/testbed"
	"github.com/logrusorgru/aurora"
)

type Console struct {
	Out io.Writer
	au  aurora.Aurora
}

func NewConsole(out io.Writer, color bool) *Console {
	return &Console{Out: out, au: aurora.NewAurora(color)}
}

var columns = []string{
	testbed.KeyMeanReward,
	testbed.KeyStdReward,
	performance.KeyBenchmark,
	performance.KeyRelative,
	performance.KeyAverage,
}

func (c *Console) Summary(res *testbed.Result) {
	cfg := res.Config
	fmt.Fprintf(c.Out, "%s %s\n", c.au.Bold("Run"), res.RunID)
	fmt.Fprintf(c.Out, "trials=%d arms=%d pulls=%d seed=%d\n", cfg.Trials, cfg.Arms, cfg.Pulls, cfg.Seed)
	fmt.Fprintf(c.Out, "%s best %.4f  average %.4f  worst %.4f\n\n",
		c.au.Bold("Ground truth:"), res.Truth.Best, res.Truth.Average, res.Truth.Worst)

	fmt.Fprint(c.Out, c.au.Bold(fmt.Sprintf("%-8s %6s %8s", "policy", "runs", "skipped")))
	for _, col := range columns {
		fmt.Fprint(c.Out, c.au.Bold(fmt.Sprintf(" %12s", col)))
	}
	fmt.Fprintln(c.Out)

	for _, p := range res.Policies {
		fmt.Fprint(c.Out, c.au.Cyan(fmt.Sprintf("%-8s", p.Name())))
		fmt.Fprintf(c.Out, " %6d %8d", p.Runs, p.Skipped)
		if p.NotRun() {
			fmt.Fprintln(c.Out, c.au.Red(fmt.Sprintf(" %12s", "not run")))
			continue
		}
		values := p.Values()
		for _, col := range columns {
			fmt.Fprint(c.Out, format(values[col]))
		}
		fmt.Fprintln(c.Out)
	}
}

// Arms lists one bandit's arms with the best arm in green and the worst in red.
func (c *Console) Arms(b *bandit.Bandit) {
	fmt.Fprintln(c.Out, c.au.Bold(fmt.Sprintf("%4s %-7s %16s %8s %8s %8s", "arm", "quality", "interval", "mean", "noise", "truth")))
	for i, a := range b.Arms {
		line := fmt.Sprintf("%4d %-7s [%6.4f,%6.4f] %8.4f %8.4f %8.4f",
			i, a.Quality, a.Lower, a.Upper, a.Mean, a.Noise, b.EstimatedRewards[i])
		switch i {
		case b.BestArm:
			fmt.Fprintln(c.Out, c.au.Green(line))
		case b.WorstArm:
			fmt.Fprintln(c.Out, c.au.Red(line))
		default:
			fmt.Fprintln(c.Out, line)
		}
	}
	fmt.Fprintf(c.Out, "average %.4f\n", b.AverageReward)
}

func format(x float64) string {
	return fmt.Sprintf(" %12.4f", x)
}
