// Package finance holds the closed-form option pricing formulas exposed by
// the server: Black-Scholes prices and the standard Greeks.
package finance

import (
	"fmt"
	"math"
)

// OptionType is "call" or "put".
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// Greeks are the Black-Scholes sensitivities of an option price.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// BlackScholes returns the Black-Scholes price of a European option.
// price and strike are the asset and strike prices, expiry the time to
// expiration in years, rate the risk-free rate and vol the volatility.
func BlackScholes(price, strike, expiry, rate, vol float64, typ OptionType) (float64, error) {
	d1, d2, err := dTerms(price, strike, expiry, rate, vol)
	if err != nil {
		return 0, err
	}

	switch typ {
	case Call:
		return price*normCDF(d1) - strike*math.Exp(-rate*expiry)*normCDF(d2), nil
	case Put:
		return strike*math.Exp(-rate*expiry)*normCDF(-d2) - price*normCDF(-d1), nil
	default:
		return 0, fmt.Errorf("invalid option type %q, must be call or put", typ)
	}
}

// OptionGreeks returns the Black-Scholes Greeks for a European option.
func OptionGreeks(price, strike, expiry, rate, vol float64, typ OptionType) (Greeks, error) {
	d1, d2, err := dTerms(price, strike, expiry, rate, vol)
	if err != nil {
		return Greeks{}, err
	}

	sqrtT := math.Sqrt(expiry)
	discount := math.Exp(-rate * expiry)

	g := Greeks{
		Gamma: normPDF(d1) / (price * vol * sqrtT),
		Vega:  price * normPDF(d1) * sqrtT,
	}

	switch typ {
	case Call:
		g.Delta = normCDF(d1)
		g.Theta = -price*normPDF(d1)*vol/(2*sqrtT) - rate*strike*discount*normCDF(d2)
		g.Rho = strike * expiry * discount * normCDF(d2)
	case Put:
		g.Delta = normCDF(d1) - 1
		g.Theta = -price*normPDF(d1)*vol/(2*sqrtT) + rate*strike*discount*normCDF(-d2)
		g.Rho = -strike * expiry * discount * normCDF(-d2)
	default:
		return Greeks{}, fmt.Errorf("invalid option type %q, must be call or put", typ)
	}

	return g, nil
}

func dTerms(price, strike, expiry, rate, vol float64) (d1, d2 float64, err error) {
	if price <= 0 || strike <= 0 {
		return 0, 0, fmt.Errorf("asset and strike prices must be positive")
	}
	if expiry <= 0 {
		return 0, 0, fmt.Errorf("time to expiration must be positive")
	}
	if vol <= 0 {
		return 0, 0, fmt.Errorf("volatility must be positive")
	}

	d1 = (math.Log(price/strike) + (rate+vol*vol/2)*expiry) / (vol * math.Sqrt(expiry))
	d2 = d1 - vol*math.Sqrt(expiry)
	return d1, d2, nil
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
