package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type truth struct {
	best, worst, average float64
}

func (t truth) Best() float64    { return t.best }
func (t truth) Worst() float64   { return t.worst }
func (t truth) Average() float64 { return t.average }

func TestBenchmark(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		expected      float64
	}{
		{"top", 1, 0, 1, 100},
		{"bottom", 0, 0, 1, 0},
		{"middle", 0.25, 0, 1, 25},
		{"above clamps", 1.4, 0, 1, 100},
		{"below clamps", -0.2, 0, 1, 0},
		{"degenerate at max", 0.5, 0.5, 0.5, 100},
		{"degenerate above max", 0.7, 0.5, 0.5, 100},
		{"degenerate below max", 0.4, 0.5, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Benchmark(tt.value, tt.lo, tt.hi), 1e-9)
		})
	}
	assert.Equal(t, 100.0, BenchmarkUnit(1.0))
	assert.Equal(t, 0.0, BenchmarkUnit(0))
}

func TestRelativePerformance(t *testing.T) {
	assert.InDelta(t, 50, RelativePerformance(0.5, 0.2, 0.8), 1e-9)
	assert.Equal(t, 100.0, RelativePerformance(0.9, 0.2, 0.8))
	assert.Equal(t, 0.0, RelativePerformance(0.1, 0.2, 0.8))
}

func TestCompareToAverage(t *testing.T) {
	assert.Equal(t, 0.0, CompareToAverage(0.4, 0.4, 0.9))
	assert.Equal(t, 0.0, CompareToAverage(0.7, 0.4, 0.4))
	assert.InDelta(t, 100, CompareToAverage(0.9, 0.4, 0.9), 1e-9)
	assert.InDelta(t, -40, CompareToAverage(0.2, 0.4, 0.9), 1e-9)
	assert.InDelta(t, 120, CompareToAverage(1.0, 0.4, 0.9), 1e-9)
}

func TestEvaluate(t *testing.T) {
	s := Evaluate(0.65, truth{best: 0.9, worst: 0.1, average: 0.4})
	assert.InDelta(t, 65, s.Benchmark, 1e-9)
	assert.InDelta(t, 68.75, s.Relative, 1e-9)
	assert.InDelta(t, 50, s.VsAverage, 1e-9)

	m := s.Map()
	assert.Len(t, m, 3)
	assert.Equal(t, s.Benchmark, m[KeyBenchmark])
	assert.Equal(t, s.Relative, m[KeyRelative])
	assert.Equal(t, s.VsAverage, m[KeyAverage])
}
