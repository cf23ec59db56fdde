package stdlib

import (
	"math"

	"github.com/expr-lang/expr"

	"github.com/ardnew/dotcall/lang"
)

// Errors raised by native functions.
var (
	ErrDivisionByZero    = lang.NewError("division by zero")
	ErrNegativeDecimals  = lang.NewError("decimals must be a non-negative number")
	ErrUnsupportedResult = lang.NewError("unsupported expression result")
	ErrAlreadyCalled     = lang.NewError("may only be called once per document")
)

// Math returns the arithmetic functions.
func Math() lang.Library {
	return lang.Library{
		Name: "math",
		Functions: []*lang.Function{
			binary("sum", "b", "Returns a + b.",
				func(a, b float64) (float64, error) { return a + b, nil }),
			binary("subtract", "b", "Returns a - b.",
				func(a, b float64) (float64, error) { return a - b, nil }),
			binary("multiply", "by", "Returns a * by.",
				func(a, b float64) (float64, error) { return a * b, nil }),
			binary("divide", "by", "Returns a / by.",
				func(a, b float64) (float64, error) {
					if b == 0 {
						return 0, ErrDivisionByZero
					}

					return a / b, nil
				}),
			binary("rem", "b", "Returns the remainder of a / b.",
				func(a, b float64) (float64, error) {
					if b == 0 {
						return 0, ErrDivisionByZero
					}

					return math.Mod(a, b), nil
				}),
			lang.NewFunction("pow", invokePow,
				lang.Doc("Raises base to the power of the exponent."),
				lang.Param("base", lang.KindNumber),
				lang.Param("to", lang.KindNumber)),
			unary("abs", "Returns the absolute value of x.", math.Abs),
			unary("negate", "Returns -x.", func(x float64) float64 { return -x }),
			unary("sqrt", "Returns the square root of x.", math.Sqrt),
			unary("logn", "Returns the natural logarithm of x.", math.Log),
			unary("sin", "Returns the sine of x radians.", math.Sin),
			unary("cos", "Returns the cosine of x radians.", math.Cos),
			unary("tan", "Returns the tangent of x radians.", math.Tan),
			unary("round", "Rounds x to the nearest integer.", math.Round),
			lang.NewFunction("pi",
				func(*lang.Context, lang.Args) (lang.Value, error) {
					return lang.Number(math.Pi), nil
				},
				lang.Doc("Returns π.")),
			lang.NewFunction("truncate", invokeTruncate,
				lang.Doc("Truncates x to the given number of decimal places."),
				lang.Param("x", lang.KindNumber),
				lang.Param("decimals", lang.KindNumber)),
			lang.NewFunction("iseven",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(args.Int("x")%2 == 0), nil
				},
				lang.Doc("Reports whether the integer part of x is even."),
				lang.Param("x", lang.KindNumber)),
			lang.NewFunction("range", invokeRange,
				lang.Doc("Creates a range of integers. Either end may be left open."),
				lang.Param("from", lang.KindNumber, lang.Optional(nil)),
				lang.Param("to", lang.KindNumber, lang.Optional(nil))),
			lang.NewFunction("calc", invokeCalc,
				lang.Doc("Evaluates an arithmetic expression, e.g. 2 * (3 + pi)."),
				lang.Param("expression", lang.KindString)),
		},
	}
}

func binary(
	name, second, doc string,
	op func(a, b float64) (float64, error),
) *lang.Function {
	return lang.NewFunction(name,
		func(_ *lang.Context, args lang.Args) (lang.Value, error) {
			n, err := op(args.Number("a"), args.Number(second))
			if err != nil {
				return nil, err
			}

			return lang.Number(n), nil
		},
		lang.Doc(doc),
		lang.Param("a", lang.KindNumber),
		lang.Param(second, lang.KindNumber))
}

func unary(name, doc string, op func(float64) float64) *lang.Function {
	return lang.NewFunction(name,
		func(_ *lang.Context, args lang.Args) (lang.Value, error) {
			return lang.Number(op(args.Number("x"))), nil
		},
		lang.Doc(doc),
		lang.Param("x", lang.KindNumber))
}

func invokePow(_ *lang.Context, args lang.Args) (lang.Value, error) {
	return lang.Number(math.Pow(args.Number("base"), args.Number("to"))), nil
}

func invokeTruncate(_ *lang.Context, args lang.Args) (lang.Value, error) {
	x, decimals := args.Number("x"), args.Int("decimals")

	switch {
	case decimals < 0:
		return nil, ErrNegativeDecimals
	case decimals == 0:
		return lang.Number(math.Trunc(x)), nil
	}

	scale := math.Pow(10, float64(decimals))

	return lang.Number(math.Trunc(x*scale) / scale), nil
}

func invokeRange(_ *lang.Context, args lang.Args) (lang.Value, error) {
	var r lang.Range

	if args.Has("from") {
		r.Start, r.HasStart = args.Int("from"), true
	}

	if args.Has("to") {
		r.End, r.HasEnd = args.Int("to"), true
	}

	return r, nil
}

// calcEnv is the environment visible to .calc expressions.
var calcEnv = map[string]any{
	"pi":   math.Pi,
	"e":    math.E,
	"sqrt": math.Sqrt,
	"pow":  math.Pow,
	"log":  math.Log,
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
}

func invokeCalc(_ *lang.Context, args lang.Args) (lang.Value, error) {
	program, err := expr.Compile(args.Text("expression"), expr.Env(calcEnv))
	if err != nil {
		return nil, err
	}

	result, err := expr.Run(program, calcEnv)
	if err != nil {
		return nil, err
	}

	return fromNative(result)
}

// fromNative converts a Go value produced by an expression into a value.
func fromNative(v any) (lang.Value, error) {
	switch v := v.(type) {
	case nil:
		return lang.None{}, nil
	case bool:
		return lang.Boolean(v), nil
	case int:
		return lang.Number(v), nil
	case int64:
		return lang.Number(v), nil
	case float64:
		return lang.Number(v), nil
	case string:
		return lang.String(v), nil
	case []any:
		out := make(lang.Collection, len(v))
		for i, e := range v {
			ev, err := fromNative(e)
			if err != nil {
				return nil, err
			}

			out[i] = ev
		}

		return out, nil
	}

	return nil, ErrUnsupportedResult.Wrapf("%T", v)
}
