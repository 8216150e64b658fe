package integrate

import "fmt"

// lebesgueSamples is the fixed number of domain samples used to estimate the
// measure of each level set, independent of the requested level count.
const lebesgueSamples = 1000

// LebesgueResult reports the level-set approximation and the number of range
// bands actually used.
type LebesgueResult struct {
	Value  float64
	Levels int
}

// Lebesgue approximates the Lebesgue integral of f over [start, end] by
// simple functions: the range [y_min, y_max] is split into `levels` equal
// bands, the measure of each band's preimage is estimated from a fixed grid
// of 1000 domain samples, and each measure is weighted by the band's lower
// level value. The approximation is biased low (each band contributes its
// floor) and its resolution is capped by the fixed sample count, so it does
// not converge to the exact integral as levels grows.
func Lebesgue(f Integrand, start, end float64, levels int) (LebesgueResult, error) {
	if levels < 2 {
		return LebesgueResult{}, fmt.Errorf("%w: levels must be at least 2, got %d",
			ErrInvalidParameter, levels)
	}

	points, err := Uniform(start, end, lebesgueSamples-1)
	if err != nil {
		return LebesgueResult{}, err
	}
	ys, err := sampleAt(f, points)
	if err != nil {
		return LebesgueResult{}, err
	}
	dx := (end - start) / float64(lebesgueSamples-1)

	yMin, yMax := ys[0], ys[0]
	for _, y := range ys[1:] {
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	band := (yMax - yMin) / float64(levels-1)

	// weight each band's preimage measure by the band's lower level; samples
	// exactly at yMax fall outside the top band, matching the documented bias
	value := 0.0
	for i := 0; i < levels-1; i++ {
		level := yMin + float64(i)*band
		next := yMin + float64(i+1)*band
		count := 0
		for _, y := range ys {
			if y >= level && y < next {
				count++
			}
		}
		value += level * float64(count) * dx
	}

	return LebesgueResult{Value: value, Levels: levels}, nil
}
