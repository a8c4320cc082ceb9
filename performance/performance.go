// Package performance turns a realized average reward into percentage scores
// that can be compared across bandit instances.
package performance

const (
	MinBenchmark = 0.0
	MaxBenchmark = 1.0
)

const (
	KeyBenchmark = "benchmark"
	KeyRelative  = "relative"
	KeyAverage   = "vs_average"
)

// Benchmark scores value on a fixed scale, clamped to [0, 100].
func Benchmark(value, min, max float64) float64 {
	if max == min {
		if value >= max {
			return 100
		}
		return 0
	}
	return clamp((value-min)/(max-min)*100, 0, 100)
}

func BenchmarkUnit(value float64) float64 {
	return Benchmark(value, MinBenchmark, MaxBenchmark)
}

// RelativePerformance scores value against one instance's worst and best arm.
func RelativePerformance(value, localMin, localMax float64) float64 {
	return Benchmark(value, localMin, localMax)
}

// CompareToAverage is unclamped: negative below the population average,
// above 100 when noise pushed the realized reward past the best arm.
func CompareToAverage(value, populationAverage, bestValue float64) float64 {
	if bestValue == populationAverage {
		return 0
	}
	return (value - populationAverage) / (bestValue - populationAverage) * 100
}

// GroundTruth is what a score needs to know about a bandit instance.
type GroundTruth interface {
	Best() float64
	Worst() float64
	Average() float64
}

type Scores struct {
	Benchmark float64
	Relative  float64
	VsAverage float64
}

func Evaluate(value float64, truth GroundTruth) Scores {
	return Scores{
		Benchmark: BenchmarkUnit(value),
		Relative:  RelativePerformance(value, truth.Worst(), truth.Best()),
		VsAverage: CompareToAverage(value, truth.Average(), truth.Best()),
	}
}

func (s Scores) Map() map[string]float64 {
	return map[string]float64{
		KeyBenchmark: s.Benchmark,
		KeyRelative:  s.Relative,
		KeyAverage:   s.VsAverage,
	}
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
