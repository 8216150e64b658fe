package integrate

import "fmt"

// Stieltjes computes the Riemann-Stieltjes sum Σ f(s_i)·(g(x_{i+1})-g(x_i))
// over n uniform subintervals of [start, end], with the sample point s_i
// chosen by method: the left endpoint, the right endpoint, or the
// subinterval midpoint. With the identity integrator g(x) = x the midpoint
// method reduces exactly to the ordinary midpoint Riemann sum.
func Stieltjes(f, g Integrand, start, end float64, n int, method RiemannMethod) (float64, error) {
	points, err := Uniform(start, end, n)
	if err != nil {
		return 0, err
	}
	gs, err := sampleAt(g, points)
	if err != nil {
		return 0, err
	}

	samples := make([]float64, n)
	switch method {
	case Left:
		copy(samples, points[:n])
	case Right:
		copy(samples, points[1:])
	case Midpoint:
		for i := 0; i < n; i++ {
			samples[i] = (points[i] + points[i+1]) / 2
		}
	default:
		return 0, fmt.Errorf("%w: unknown method %q, choose left, right or midpoint",
			ErrInvalidParameter, method)
	}
	fs, err := sampleAt(f, samples)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += fs[i] * (gs[i+1] - gs[i])
	}
	return sum, nil
}
