// Package expression turns user-supplied expression strings into evaluable
// numeric functions of named variables. Compilation runs against a fixed
// allow-list of math functions and constants, so an expression can reference
// its declared variables and standard math — nothing else.
package expression

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ParseError reports an expression that could not be compiled against its
// declared variables, including references to unknown symbols.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse expression %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EvalError reports a failure while evaluating a compiled expression at a
// point.
type EvalError struct {
	Source string
	Err    error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("cannot evaluate expression %q: %v", e.Source, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Func is a compiled expression of one or more named real variables.
// Immutable once compiled; safe for concurrent use.
type Func struct {
	source  string
	vars    []string
	program *vm.Program
}

// allowedEnv returns the evaluation environment: the declared variables plus
// the math allow-list. Anything outside this map fails at compile time.
func allowedEnv(vars []string) map[string]any {
	env := map[string]any{
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"exp":   math.Exp,
		"log":   math.Log,
		"ln":    math.Log,
		"log10": math.Log10,
		"sqrt":  math.Sqrt,
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"pow":   math.Pow,
		"pi":    math.Pi,
		"e":     math.E,
	}
	for _, v := range vars {
		env[v] = float64(0)
	}
	return env
}

// Compile parses src as a function of the given variables. At least one
// variable name is required, and variable names may not shadow entries of the
// math allow-list.
func Compile(src string, vars ...string) (*Func, error) {
	if len(vars) == 0 {
		return nil, &ParseError{Source: src, Err: fmt.Errorf("no variables declared")}
	}
	env := allowedEnv(nil)
	for _, v := range vars {
		if v == "" {
			return nil, &ParseError{Source: src, Err: fmt.Errorf("empty variable name")}
		}
		if _, taken := env[v]; taken {
			return nil, &ParseError{Source: src, Err: fmt.Errorf("variable name %q collides with a builtin", v)}
		}
	}

	program, err := expr.Compile(src, expr.Env(allowedEnv(vars)))
	if err != nil {
		return nil, &ParseError{Source: src, Err: err}
	}
	return &Func{source: src, vars: vars, program: program}, nil
}

// Eval evaluates the function with one value per declared variable, in
// declaration order.
func (f *Func) Eval(vals ...float64) (float64, error) {
	if len(vals) != len(f.vars) {
		return 0, &EvalError{Source: f.source,
			Err: fmt.Errorf("expected %d values, got %d", len(f.vars), len(vals))}
	}
	env := allowedEnv(nil)
	for i, v := range f.vars {
		env[v] = vals[i]
	}
	out, err := expr.Run(f.program, env)
	if err != nil {
		return 0, &EvalError{Source: f.source, Err: err}
	}
	return toFloat(f.source, out)
}

// At evaluates a one-variable function at x. It is the shape the integration
// reducers consume.
func (f *Func) At(x float64) (float64, error) {
	return f.Eval(x)
}

// At2 evaluates a two-variable function, e.g. an Itô integrand f(t, w).
func (f *Func) At2(a, b float64) (float64, error) {
	return f.Eval(a, b)
}

// Source returns the original expression text.
func (f *Func) Source() string { return f.source }

// the vm returns whatever numeric type the expression arithmetic produced,
// so "2+3" comes back as an int while "x+1" is a float64
func toFloat(source string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, &EvalError{Source: source,
			Err: fmt.Errorf("expression produced %T, want a number", v)}
	}
	// math functions signal domain errors through NaN/Inf rather than by
	// failing, e.g. log(-1); reject them here so callers see a tagged error
	// instead of a non-finite value
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &EvalError{Source: source,
			Err: fmt.Errorf("expression produced a non-finite value")}
	}
	return f, nil
}
