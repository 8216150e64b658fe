package integrate

import (
	"fmt"
	"math"
)

// QuadMethod selects the composite rule used by Quadrature.
type QuadMethod string

const (
	QuadTrapezoid QuadMethod = "trapezoid"
	QuadSimpson   QuadMethod = "simpson"
	QuadMidpoint  QuadMethod = "midpoint"
)

// QuadResult bundles the quadrature value with a half-resolution error
// estimate.
type QuadResult struct {
	Value         float64
	ErrorEstimate float64
	Method        QuadMethod
}

// Quadrature computes the definite integral of f over [start, end] with the
// chosen composite rule and `points` subintervals. Simpson's rule needs an
// even subinterval count and rounds an odd one up.
func Quadrature(f Integrand, start, end float64, points int, method QuadMethod) (QuadResult, error) {
	value, err := quadSum(f, start, end, points, method)
	if err != nil {
		return QuadResult{}, err
	}

	var estimate float64
	if half := points / 2; half > 0 {
		coarse, err := quadSum(f, start, end, half, method)
		if err != nil {
			return QuadResult{}, err
		}
		estimate = math.Abs(value - coarse)
	}

	return QuadResult{Value: value, ErrorEstimate: estimate, Method: method}, nil
}

func quadSum(f Integrand, start, end float64, n int, method QuadMethod) (float64, error) {
	switch method {
	case QuadTrapezoid:
		return riemannSum(f, start, end, n, Trapezoid)
	case QuadMidpoint:
		return riemannSum(f, start, end, n, Midpoint)
	case QuadSimpson:
		return simpson(f, start, end, n)
	default:
		return 0, fmt.Errorf("%w: unknown method %q, choose trapezoid, simpson or midpoint",
			ErrInvalidParameter, method)
	}
}

// composite Simpson: (h/3)·(y_0 + 4·y_1 + 2·y_2 + ... + 4·y_{n-1} + y_n)
func simpson(f Integrand, start, end float64, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: subdivisions must be positive, got %d", ErrInvalidParameter, n)
	}
	if n%2 != 0 {
		n++
	}
	points, err := Uniform(start, end, n)
	if err != nil {
		return 0, err
	}
	ys, err := sampleAt(f, points)
	if err != nil {
		return 0, err
	}
	h := (end - start) / float64(n)

	sum := ys[0] + ys[n]
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			sum += 4 * ys[i]
		} else {
			sum += 2 * ys[i]
		}
	}
	return sum * h / 3, nil
}
