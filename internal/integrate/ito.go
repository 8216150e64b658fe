package integrate

import (
	"fmt"
	"math"
	"math/rand"
)

// ItoResult aggregates the realized integral values across sample paths.
type ItoResult struct {
	Mean   float64
	StdDev float64
	// 95% confidence interval for the mean: mean ± 1.96·std/√paths.
	ConfidenceLow  float64
	ConfidenceHigh float64
	Paths          int
	Steps          int
}

// Ito approximates the Itô stochastic integral ∫ f(t, W_t) dW_t over
// [startTime, endTime] by Monte-Carlo simulation. For each of `paths`
// independent realizations a discretized Wiener path is built from i.i.d.
// increments dW ~ N(0, √dt), and the integrand is evaluated at the left
// endpoint of each step (the Itô, non-anticipating convention). The rng is
// an explicit dependency: pass a seeded source for reproducible runs.
func Ito(f Integrand2, startTime, endTime float64, paths, steps int, rng *rand.Rand) (ItoResult, error) {
	if paths <= 0 {
		return ItoResult{}, fmt.Errorf("%w: paths must be positive, got %d", ErrInvalidParameter, paths)
	}
	if steps <= 0 {
		return ItoResult{}, fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidParameter, steps)
	}
	if rng == nil {
		return ItoResult{}, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}

	dt := (endTime - startTime) / float64(steps)
	sqrtDt := math.Sqrt(math.Abs(dt))

	values := make([]float64, paths)
	for p := 0; p < paths; p++ {
		w := 0.0
		sum := 0.0
		for i := 0; i < steps; i++ {
			t := startTime + float64(i)*dt
			dW := rng.NormFloat64() * sqrtDt
			y, err := f(t, w)
			if err != nil {
				return ItoResult{}, err
			}
			sum += y * dW
			w += dW
		}
		values[p] = sum
	}

	mean := total(values) / float64(paths)
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(paths))
	margin := 1.96 * std / math.Sqrt(float64(paths))

	return ItoResult{
		Mean:           mean,
		StdDev:         std,
		ConfidenceLow:  mean - margin,
		ConfidenceHigh: mean + margin,
		Paths:          paths,
		Steps:          steps,
	}, nil
}
