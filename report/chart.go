package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/CodeStranger-Fred/narmbandit/testbed"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const ChartFile = "testbed.html"

// Chart renders the average reward per step of every policy that ran.
func Chart(res *testbed.Result, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "average reward per step",
			Subtitle: fmt.Sprintf("run %s, %d trials, %d arms", res.RunID, res.Config.Trials, res.Config.Arms),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	steps := make([]string, 0, res.Config.Pulls)
	for i := 0; i < res.Config.Pulls; i++ {
		steps = append(steps, fmt.Sprintf("%d", i))
	}
	line.SetXAxis(steps)

	for _, p := range res.Policies {
		if p.NotRun() {
			continue
		}
		items := make([]opts.LineData, 0, len(p.Curve))
		for _, r := range p.Curve {
			items = append(items, opts.LineData{Value: r})
		}
		line.AddSeries(p.Name(), items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

// WriteChart writes the chart to dir/testbed.html and returns the path.
func WriteChart(res *testbed.Result, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, ChartFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()

	if err := Chart(res, f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}
