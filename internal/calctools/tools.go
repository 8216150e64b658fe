package calctools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nbiish/mcp-calc-tools/internal/expression"
	"github.com/nbiish/mcp-calc-tools/internal/finance"
	"github.com/nbiish/mcp-calc-tools/internal/integrate"
)

// Tools returns one ProvidedTool per calculation operation. Success results
// are flat key-value JSON objects; every failure is reported through the MCP
// error result path and never as a raised error.
func (tb *Toolbox) Tools() []ProvidedTool {
	return []ProvidedTool{
		{
			mcp.NewTool("riemann_integral",
				mcp.WithDescription("Compute a Riemann integral using left, right, midpoint or trapezoid sums"),
				mcp.WithString("function", mcp.Required(),
					mcp.Description("Expression to integrate, e.g. 'x^2' or 'sin(x)'")),
				mcp.WithString("variable", mcp.DefaultString("x"),
					mcp.Description("Integration variable")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("Lower bound of integration")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Upper bound of integration")),
				mcp.WithNumber("subdivisions", mcp.DefaultNumber(1000),
					mcp.Description("Number of subintervals")),
				mcp.WithString("method", mcp.DefaultString("trapezoid"),
					mcp.Enum("left", "right", "midpoint", "trapezoid"),
					mcp.Description("Integration method")),
			), tb.handleRiemann,
		},
		{
			mcp.NewTool("darboux_integral",
				mcp.WithDescription("Compute upper and lower Darboux sums with a midpoint estimate and error bound"),
				mcp.WithString("function", mcp.Required(), mcp.Description("Expression to integrate")),
				mcp.WithString("variable", mcp.DefaultString("x"), mcp.Description("Integration variable")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("Lower bound of integration")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Upper bound of integration")),
				mcp.WithNumber("partitions", mcp.DefaultNumber(1000), mcp.Description("Number of partitions")),
			), tb.handleDarboux,
		},
		{
			mcp.NewTool("riemann_stieltjes",
				mcp.WithDescription("Compute a Riemann-Stieltjes integral of one function against another"),
				mcp.WithString("function", mcp.Required(), mcp.Description("Function to integrate (f)")),
				mcp.WithString("integrator", mcp.Required(), mcp.Description("Integrator function (g)")),
				mcp.WithString("variable", mcp.DefaultString("x"), mcp.Description("Shared variable of f and g")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("Lower bound of integration")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Upper bound of integration")),
				mcp.WithNumber("partitions", mcp.DefaultNumber(1000), mcp.Description("Number of partitions")),
				mcp.WithString("method", mcp.DefaultString("midpoint"),
					mcp.Enum("left", "right", "midpoint"),
					mcp.Description("Sample point selection")),
			), tb.handleStieltjes,
		},
		{
			mcp.NewTool("lebesgue_integral",
				mcp.WithDescription("Approximate a Lebesgue integral by range partitioning into simple functions"),
				mcp.WithString("function", mcp.Required(), mcp.Description("Function to integrate")),
				mcp.WithString("variable", mcp.DefaultString("x"), mcp.Description("Domain variable")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("Lower bound of the domain")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Upper bound of the domain")),
				mcp.WithNumber("levels", mcp.DefaultNumber(100),
					mcp.Description("Number of range levels for the simple function approximation")),
			), tb.handleLebesgue,
		},
		{
			mcp.NewTool("ito_integral",
				mcp.WithDescription("Compute an Itô stochastic integral by Monte-Carlo simulation of Wiener paths"),
				mcp.WithString("function", mcp.Required(),
					mcp.Description("Integrand f(t, w) of time t and Brownian motion w")),
				mcp.WithNumber("start_time", mcp.Required(), mcp.Description("Start time of integration")),
				mcp.WithNumber("end_time", mcp.Required(), mcp.Description("End time of integration")),
				mcp.WithNumber("paths", mcp.DefaultNumber(1000), mcp.Description("Number of sample paths")),
				mcp.WithNumber("steps", mcp.DefaultNumber(1000), mcp.Description("Number of time steps")),
				mcp.WithNumber("seed",
					mcp.Description("Optional RNG seed for reproducible runs; omitted means entropy-seeded")),
			), tb.handleIto,
		},
		{
			mcp.NewTool("numerical_integral",
				mcp.WithDescription("Numerically integrate with trapezoid, Simpson or midpoint rules, with an error estimate"),
				mcp.WithString("function", mcp.Required(), mcp.Description("Function to integrate")),
				mcp.WithString("variable", mcp.DefaultString("x"), mcp.Description("Integration variable")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("Lower bound of integration")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Upper bound of integration")),
				mcp.WithNumber("points", mcp.DefaultNumber(1000), mcp.Description("Number of subintervals")),
				mcp.WithString("method", mcp.DefaultString("trapezoid"),
					mcp.Enum("trapezoid", "simpson", "midpoint"),
					mcp.Description("Quadrature rule")),
			), tb.handleQuadrature,
		},
		{
			mcp.NewTool("black_scholes",
				mcp.WithDescription("Price a European option with the Black-Scholes formula"),
				mcp.WithNumber("price", mcp.Required(), mcp.Description("Current asset price")),
				mcp.WithNumber("strike", mcp.Required(), mcp.Description("Strike price")),
				mcp.WithNumber("expiry", mcp.Required(), mcp.Description("Time to expiration in years")),
				mcp.WithNumber("rate", mcp.Required(), mcp.Description("Risk-free interest rate")),
				mcp.WithNumber("volatility", mcp.Required(), mcp.Description("Asset volatility")),
				mcp.WithString("option_type", mcp.DefaultString("call"),
					mcp.Enum("call", "put"), mcp.Description("Option type")),
			), tb.handleBlackScholes,
		},
		{
			mcp.NewTool("option_greeks",
				mcp.WithDescription("Compute Black-Scholes Greeks for a European option"),
				mcp.WithNumber("price", mcp.Required(), mcp.Description("Current asset price")),
				mcp.WithNumber("strike", mcp.Required(), mcp.Description("Strike price")),
				mcp.WithNumber("expiry", mcp.Required(), mcp.Description("Time to expiration in years")),
				mcp.WithNumber("rate", mcp.Required(), mcp.Description("Risk-free interest rate")),
				mcp.WithNumber("volatility", mcp.Required(), mcp.Description("Asset volatility")),
				mcp.WithString("option_type", mcp.DefaultString("call"),
					mcp.Enum("call", "put"), mcp.Description("Option type")),
			), tb.handleGreeks,
		},
	}
}

// below are the handlers for the respective tools

func (tb *Toolbox) handleRiemann(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, start, end, err := integrandArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := request.GetInt("subdivisions", 1000)
	method := integrate.RiemannMethod(request.GetString("method", "trapezoid"))

	res, err := integrate.Riemann(f, start, end, n, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"result":         res.Value,
		"error_estimate": res.ErrorEstimate,
		"method":         string(res.Method),
		"interval":       []float64{start, end},
	})
}

func (tb *Toolbox) handleDarboux(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, start, end, err := integrandArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := request.GetInt("partitions", 1000)

	res, err := integrate.Darboux(f, start, end, n)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"upper_sum":      res.UpperSum,
		"lower_sum":      res.LowerSum,
		"integral_value": res.Value,
		"error_bound":    res.ErrorBound,
	})
}

func (tb *Toolbox) handleStieltjes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, start, end, err := integrandArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	gSrc, err := request.RequireString("integrator")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	g, err := compileIntegrand(gSrc, request.GetString("variable", "x"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := request.GetInt("partitions", 1000)
	method := integrate.RiemannMethod(request.GetString("method", "midpoint"))

	value, err := integrate.Stieltjes(f, g, start, end, n, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"result":     value,
		"partitions": n,
	})
}

func (tb *Toolbox) handleLebesgue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, start, end, err := integrandArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	levels := request.GetInt("levels", 100)

	res, err := integrate.Lebesgue(f, start, end, levels)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"result":      res.Value,
		"levels_used": res.Levels,
		"domain":      []float64{start, end},
	})
}

func (tb *Toolbox) handleIto(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fnSrc, err := request.RequireString("function")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startTime, err := request.RequireFloat("start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endTime, err := request.RequireFloat("end_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	paths := request.GetInt("paths", 1000)
	steps := request.GetInt("steps", 1000)

	f, err := expression.Compile(fnSrc, "t", "w")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	seed := time.Now().UnixNano()
	if _, seeded := request.GetArguments()["seed"]; seeded {
		s, err := request.RequireInt("seed")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		seed = int64(s)
	}

	res, err := integrate.Ito(f.At2, startTime, endTime, paths, steps, tb.newRand(seed))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"mean":                res.Mean,
		"std_dev":             res.StdDev,
		"confidence_interval": []float64{res.ConfidenceLow, res.ConfidenceHigh},
		"paths":               res.Paths,
		"steps":               res.Steps,
	})
}

func (tb *Toolbox) handleQuadrature(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, start, end, err := integrandArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	points := request.GetInt("points", 1000)
	method := integrate.QuadMethod(request.GetString("method", "trapezoid"))

	res, err := integrate.Quadrature(f, start, end, points, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"result": res.Value,
		"error":  res.ErrorEstimate,
		"method": string(res.Method),
	})
}

func (tb *Toolbox) handleBlackScholes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	price, strike, expiry, rate, vol, typ, err := optionArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	value, err := finance.BlackScholes(price, strike, expiry, rate, vol, typ)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"price":       value,
		"option_type": string(typ),
	})
}

func (tb *Toolbox) handleGreeks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	price, strike, expiry, rate, vol, typ, err := optionArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g, err := finance.OptionGreeks(price, strike, expiry, rate, vol, typ)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultJSON(map[string]any{
		"delta":       g.Delta,
		"gamma":       g.Gamma,
		"vega":        g.Vega,
		"theta":       g.Theta,
		"rho":         g.Rho,
		"option_type": string(typ),
	})
}

// integrandArgs pulls the shared (function, variable, start, end) argument
// block and compiles the integrand.
func integrandArgs(request mcp.CallToolRequest) (integrate.Integrand, float64, float64, error) {
	fnSrc, err := request.RequireString("function")
	if err != nil {
		return nil, 0, 0, err
	}
	start, err := request.RequireFloat("start")
	if err != nil {
		return nil, 0, 0, err
	}
	end, err := request.RequireFloat("end")
	if err != nil {
		return nil, 0, 0, err
	}
	f, err := compileIntegrand(fnSrc, request.GetString("variable", "x"))
	if err != nil {
		return nil, 0, 0, err
	}
	return f, start, end, nil
}

func compileIntegrand(src, variable string) (integrate.Integrand, error) {
	f, err := expression.Compile(src, variable)
	if err != nil {
		return nil, err
	}
	return f.At, nil
}

func optionArgs(request mcp.CallToolRequest) (price, strike, expiry, rate, vol float64, typ finance.OptionType, err error) {
	if price, err = request.RequireFloat("price"); err != nil {
		return
	}
	if strike, err = request.RequireFloat("strike"); err != nil {
		return
	}
	if expiry, err = request.RequireFloat("expiry"); err != nil {
		return
	}
	if rate, err = request.RequireFloat("rate"); err != nil {
		return
	}
	if vol, err = request.RequireFloat("volatility"); err != nil {
		return
	}
	typ = finance.OptionType(request.GetString("option_type", "call"))
	return
}

// resultJSON serializes a flat key-value result; an "error" key never appears
// here since failures take the NewToolResultError path instead.
func resultJSON(fields map[string]any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
