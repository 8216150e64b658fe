package integrate

import "math"

// DarbouxResult holds the upper/lower sum pair with the midpoint estimate
// and half-gap error bound derived from them.
type DarbouxResult struct {
	UpperSum   float64
	LowerSum   float64
	Value      float64 // (upper + lower) / 2
	ErrorBound float64 // (upper - lower) / 2
}

// Darboux computes upper and lower Darboux sums of f over [start, end] with
// n uniform subintervals. The supremum and infimum on each subinterval are
// approximated by the max and min of the two endpoint samples, which is
// exact only when f is monotonic on the subinterval; for non-monotonic
// integrands the sums are biased toward the endpoint values. The invariant
// LowerSum <= UpperSum holds regardless.
func Darboux(f Integrand, start, end float64, n int) (DarbouxResult, error) {
	points, err := Uniform(start, end, n)
	if err != nil {
		return DarbouxResult{}, err
	}
	ys, err := sampleAt(f, points)
	if err != nil {
		return DarbouxResult{}, err
	}
	dx := (end - start) / float64(n)

	var upper, lower float64
	for i := 0; i < n; i++ {
		upper += math.Max(ys[i], ys[i+1]) * dx
		lower += math.Min(ys[i], ys[i+1]) * dx
	}

	return DarbouxResult{
		UpperSum:   upper,
		LowerSum:   lower,
		Value:      (upper + lower) / 2,
		ErrorBound: (upper - lower) / 2,
	}, nil
}
