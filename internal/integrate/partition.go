// Package integrate implements the discretized integral engine: uniform mesh
// construction plus the Riemann, Darboux, Riemann-Stieltjes, Lebesgue and
// Monte-Carlo Itô reducers. Every computation is a pure function of its
// inputs; nothing here outlives a single call.
package integrate

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter tags failures caused by out-of-range numeric
// parameters: non-positive subdivision counts, unknown method names, and the
// like. Callers branch on it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// Integrand is a scalar function of one real variable, as produced by the
// expression package. Evaluation may fail (domain errors and such).
type Integrand func(x float64) (float64, error)

// Integrand2 is a scalar function of two real variables, used by the Itô
// reducer for integrands f(t, w).
type Integrand2 func(t, w float64) (float64, error)

// Uniform returns the n+1 partition points start, start+Δx, ..., end with
// Δx = (end-start)/n. A degenerate interval (start == end) yields a
// zero-width partition rather than an error.
func Uniform(start, end float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: subdivisions must be positive, got %d", ErrInvalidParameter, n)
	}
	dx := (end - start) / float64(n)
	points := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		points[i] = start + float64(i)*dx
	}
	return points, nil
}

// Midpoints returns the n subinterval midpoints start+(i+0.5)·Δx.
func Midpoints(start, end float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: subdivisions must be positive, got %d", ErrInvalidParameter, n)
	}
	dx := (end - start) / float64(n)
	points := make([]float64, n)
	for i := 0; i < n; i++ {
		points[i] = start + (float64(i)+0.5)*dx
	}
	return points, nil
}

// sampleAt evaluates f at every point of the mesh.
func sampleAt(f Integrand, points []float64) ([]float64, error) {
	ys := make([]float64, len(points))
	for i, x := range points {
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		ys[i] = y
	}
	return ys, nil
}
