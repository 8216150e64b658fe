package integrate

import (
	"fmt"
	"math"
)

// RiemannMethod selects how sample points are chosen within each subinterval.
type RiemannMethod string

const (
	Left      RiemannMethod = "left"
	Right     RiemannMethod = "right"
	Midpoint  RiemannMethod = "midpoint"
	Trapezoid RiemannMethod = "trapezoid"
)

// RiemannResult bundles the sum with a diagnostic error estimate.
type RiemannResult struct {
	Value float64
	// ErrorEstimate compares against the half-resolution sum. It is a
	// diagnostic, not a rigorous bound.
	ErrorEstimate float64
	Method        RiemannMethod
}

// Riemann computes the Riemann sum of f over [start, end] with n uniform
// subintervals. Left and right sums converge O(1/n) for smooth integrands,
// midpoint and trapezoid O(1/n²).
func Riemann(f Integrand, start, end float64, n int, method RiemannMethod) (RiemannResult, error) {
	value, err := riemannSum(f, start, end, n, method)
	if err != nil {
		return RiemannResult{}, err
	}

	var estimate float64
	if half := n / 2; half > 0 {
		coarse, err := riemannSum(f, start, end, half, method)
		if err != nil {
			return RiemannResult{}, err
		}
		estimate = math.Abs(value - coarse)
	}

	return RiemannResult{Value: value, ErrorEstimate: estimate, Method: method}, nil
}

func riemannSum(f Integrand, start, end float64, n int, method RiemannMethod) (float64, error) {
	var mesh []float64
	var err error
	switch method {
	case Left, Right, Trapezoid:
		mesh, err = Uniform(start, end, n)
	case Midpoint:
		mesh, err = Midpoints(start, end, n)
	default:
		return 0, fmt.Errorf("%w: unknown method %q, choose left, right, midpoint or trapezoid",
			ErrInvalidParameter, method)
	}
	if err != nil {
		return 0, err
	}
	dx := (end - start) / float64(n)

	switch method {
	case Left:
		ys, err := sampleAt(f, mesh[:n])
		if err != nil {
			return 0, err
		}
		return total(ys) * dx, nil

	case Right:
		ys, err := sampleAt(f, mesh[1:])
		if err != nil {
			return 0, err
		}
		return total(ys) * dx, nil

	case Midpoint:
		ys, err := sampleAt(f, mesh)
		if err != nil {
			return 0, err
		}
		return total(ys) * dx, nil

	default: // Trapezoid
		ys, err := sampleAt(f, mesh)
		if err != nil {
			return 0, err
		}
		sum := ys[0] + ys[n]
		for i := 1; i < n; i++ {
			sum += 2 * ys[i]
		}
		return sum * dx / 2, nil
	}
}

func total(ys []float64) float64 {
	sum := 0.0
	for _, y := range ys {
		sum += y
	}
	return sum
}
