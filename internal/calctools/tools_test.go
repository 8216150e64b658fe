package calctools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// invoke runs the named tool's handler directly and decodes the flat JSON
// payload on success.
func invoke(t *testing.T, name string, args map[string]any) (map[string]any, *mcp.CallToolResult) {
	t.Helper()

	tb := NewToolbox()
	for _, pt := range tb.Tools() {
		if pt.GetName() != name {
			continue
		}
		res, err := pt.handler(context.Background(), callRequest(name, args))
		require.NoError(t, err)
		require.NotNil(t, res)
		if res.IsError {
			return nil, res
		}

		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok, "expected text content")
		var fields map[string]any
		require.NoError(t, json.Unmarshal([]byte(text.Text), &fields))
		return fields, res
	}
	t.Fatalf("no tool named %s", name)
	return nil, nil
}

func TestToolNames(t *testing.T) {
	want := []string{
		"riemann_integral", "darboux_integral", "riemann_stieltjes",
		"lebesgue_integral", "ito_integral", "numerical_integral",
		"black_scholes", "option_greeks",
	}

	tools := NewToolbox().Tools()
	require.Len(t, tools, len(want))
	for i, name := range want {
		assert.Equal(t, name, tools[i].GetName())
	}
}

func TestRiemannTool(t *testing.T) {
	assert := assert.New(t)

	fields, _ := invoke(t, "riemann_integral", map[string]any{
		"function": "x^2", "start": 0.0, "end": 1.0,
		"subdivisions": 100, "method": "left",
	})

	assert.InDelta(0.32835, fields["result"].(float64), 1e-9)
	assert.Equal("left", fields["method"])
	assert.NotContains(fields, "error")
}

func TestRiemannToolDefaultsToTrapezoid(t *testing.T) {
	fields, _ := invoke(t, "riemann_integral", map[string]any{
		"function": "x^2", "start": 0.0, "end": 1.0,
	})
	assert.Equal(t, "trapezoid", fields["method"])
	assert.InDelta(t, 1.0/3.0, fields["result"].(float64), 1e-4)
}

func TestRiemannToolErrors(t *testing.T) {
	for name, args := range map[string]map[string]any{
		"missing function":   {"start": 0.0, "end": 1.0},
		"malformed function": {"function": "x +* 2", "start": 0.0, "end": 1.0},
		"unknown variable":   {"function": "x + y", "start": 0.0, "end": 1.0},
		"zero subdivisions":  {"function": "x^2", "start": 0.0, "end": 1.0, "subdivisions": 0},
		"unknown method":     {"function": "x^2", "start": 0.0, "end": 1.0, "method": "simpson"},
		"domain error":       {"function": "log(x)", "start": -1.0, "end": 1.0},
	} {
		t.Run(name, func(t *testing.T) {
			fields, res := invoke(t, "riemann_integral", args)
			assert.Nil(t, fields)
			assert.True(t, res.IsError)
		})
	}
}

// A domain error mid-evaluation (log of a negative number yields NaN) must
// come back as a tagged tool error, never as a raised error.
func TestRiemannToolTagsDomainErrors(t *testing.T) {
	fields, res := invoke(t, "riemann_integral", map[string]any{
		"function": "log(x)", "start": -1.0, "end": 1.0,
	})

	assert.Nil(t, fields)
	require.True(t, res.IsError)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "non-finite")
}

func TestDarbouxTool(t *testing.T) {
	assert := assert.New(t)

	fields, _ := invoke(t, "darboux_integral", map[string]any{
		"function": "x^2", "start": 0.0, "end": 1.0, "partitions": 100,
	})

	upper := fields["upper_sum"].(float64)
	lower := fields["lower_sum"].(float64)
	assert.InDelta(0.33835, upper, 1e-9)
	assert.InDelta(0.32835, lower, 1e-9)
	assert.InDelta((upper+lower)/2, fields["integral_value"].(float64), 1e-12)
	assert.InDelta((upper-lower)/2, fields["error_bound"].(float64), 1e-12)
}

func TestStieltjesToolIdentityIntegrator(t *testing.T) {
	stieltjes, _ := invoke(t, "riemann_stieltjes", map[string]any{
		"function": "x^2", "integrator": "x",
		"start": 0.0, "end": 1.0, "partitions": 100, "method": "midpoint",
	})
	riemann, _ := invoke(t, "riemann_integral", map[string]any{
		"function": "x^2", "start": 0.0, "end": 1.0,
		"subdivisions": 100, "method": "midpoint",
	})

	assert.InDelta(t, riemann["result"].(float64), stieltjes["result"].(float64), 1e-12)
}

func TestLebesgueTool(t *testing.T) {
	fields, _ := invoke(t, "lebesgue_integral", map[string]any{
		"function": "x^2", "start": 0.0, "end": 1.0, "levels": 100,
	})
	assert.InDelta(t, 1.0/3.0, fields["result"].(float64), 1e-2)
	assert.EqualValues(t, 100, fields["levels_used"].(float64))
}

func TestItoToolSeededIsReproducible(t *testing.T) {
	args := map[string]any{
		"function": "1", "start_time": 0.0, "end_time": 1.0,
		"paths": 1000, "steps": 100, "seed": 42,
	}
	first, _ := invoke(t, "ito_integral", args)
	second, _ := invoke(t, "ito_integral", args)

	assert.Equal(t, first, second)
	assert.InDelta(t, 0.0, first["mean"].(float64), 0.1)

	ci := first["confidence_interval"].([]any)
	require.Len(t, ci, 2)
	assert.LessOrEqual(t, ci[0].(float64), first["mean"].(float64))
	assert.GreaterOrEqual(t, ci[1].(float64), first["mean"].(float64))
}

func TestItoToolRejectsBadCounts(t *testing.T) {
	_, res := invoke(t, "ito_integral", map[string]any{
		"function": "1", "start_time": 0.0, "end_time": 1.0, "paths": -1,
	})
	assert.True(t, res.IsError)
}

func TestQuadratureToolSimpson(t *testing.T) {
	fields, _ := invoke(t, "numerical_integral", map[string]any{
		"function": "x^3", "start": 0.0, "end": 2.0,
		"points": 10, "method": "simpson",
	})
	assert.InDelta(t, 4.0, fields["result"].(float64), 1e-10)
	assert.Equal(t, "simpson", fields["method"])
}

func TestBlackScholesTool(t *testing.T) {
	fields, _ := invoke(t, "black_scholes", map[string]any{
		"price": 100.0, "strike": 100.0, "expiry": 1.0,
		"rate": 0.05, "volatility": 0.2,
	})
	assert.InDelta(t, 10.4506, fields["price"].(float64), 1e-3)
	assert.Equal(t, "call", fields["option_type"])
}

func TestOptionGreeksTool(t *testing.T) {
	fields, _ := invoke(t, "option_greeks", map[string]any{
		"price": 100.0, "strike": 100.0, "expiry": 1.0,
		"rate": 0.05, "volatility": 0.2, "option_type": "put",
	})
	assert.InDelta(t, 0.6368-1, fields["delta"].(float64), 1e-3)
	assert.Greater(t, fields["gamma"].(float64), 0.0)
}

func TestOptionToolsRejectInvalidType(t *testing.T) {
	_, res := invoke(t, "black_scholes", map[string]any{
		"price": 100.0, "strike": 100.0, "expiry": 1.0,
		"rate": 0.05, "volatility": 0.2, "option_type": "straddle",
	})
	assert.True(t, res.IsError)
}
