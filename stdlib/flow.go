package stdlib

import (
	"log/slog"

	"github.com/ardnew/dotcall/lang"
)

// Flow returns the control flow and declaration functions.
func Flow() lang.Library {
	return lang.Library{
		Name: "flow",
		Functions: []*lang.Function{
			lang.NewFunction("if",
				func(c *lang.Context, args lang.Args) (lang.Value, error) {
					return when(c, args.Bool("condition"), args.Lambda("body"))
				},
				lang.Doc("Evaluates body if condition is true."),
				lang.Param("condition", lang.KindBoolean),
				lang.Param("body", lang.KindLambda, lang.AsBody())),
			lang.NewFunction("ifnot",
				func(c *lang.Context, args lang.Args) (lang.Value, error) {
					return when(c, !args.Bool("condition"), args.Lambda("body"))
				},
				lang.Doc("Evaluates body if condition is false."),
				lang.Param("condition", lang.KindBoolean),
				lang.Param("body", lang.KindLambda, lang.AsBody())),
			lang.NewFunction("foreach",
				func(c *lang.Context, args lang.Args) (lang.Value, error) {
					return each(c, args.Collection("iterable"), args.Lambda("body"))
				},
				lang.Doc("Evaluates body once per element and collects the results."),
				lang.Param("iterable", lang.KindCollection),
				lang.Param("body", lang.KindLambda, lang.AsBody())),
			lang.NewFunction("repeat", invokeRepeat,
				lang.Doc("Evaluates body for each index from 1 to times."),
				lang.Param("times", lang.KindNumber),
				lang.Param("body", lang.KindLambda, lang.AsBody())),
			lang.NewFunction("function", invokeFunction,
				lang.Doc("Declares a function whose parameters are those of the body lambda."),
				lang.Param("context", lang.KindVoid, lang.Injected()),
				lang.Param("name", lang.KindString),
				lang.Param("body", lang.KindLambda, lang.AsBody())),
			lang.NewFunction("var", invokeVar,
				lang.Doc("Declares or reassigns a variable."),
				lang.Param("context", lang.KindVoid, lang.Injected()),
				lang.Param("name", lang.KindString),
				lang.Param("value", lang.KindDynamic)),
			lang.NewFunction("let",
				func(c *lang.Context, args lang.Args) (lang.Value, error) {
					return args.Lambda("body").Invoke(c, args.Get("value"))
				},
				lang.Doc("Evaluates body with value as its argument."),
				lang.Param("value", lang.KindDynamic),
				lang.Param("body", lang.KindLambda, lang.AsBody())),
			lang.NewFunction("lambda",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return args.Lambda("body"), nil
				},
				lang.Doc("Returns a lambda."),
				lang.Param("body", lang.KindLambda, lang.AsBody())),
		},
	}
}

func when(c *lang.Context, condition bool, body *lang.Lambda) (lang.Value, error) {
	if !condition {
		return lang.Void{}, nil
	}

	return body.Invoke(c)
}

func each(c *lang.Context, items lang.Collection, body *lang.Lambda) (lang.Value, error) {
	out := make(lang.Collection, 0, len(items))

	for _, item := range items {
		v, err := body.Invoke(c, item)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func invokeRepeat(c *lang.Context, args lang.Args) (lang.Value, error) {
	items, err := lang.Range{End: args.Int("times"), HasEnd: true}.Collection()
	if err != nil {
		return nil, err
	}

	return each(c, items, args.Lambda("body"))
}

func invokeFunction(c *lang.Context, args lang.Args) (lang.Value, error) {
	name, body := args.Text("name"), args.Lambda("body")

	opts := []lang.FunctionOption{lang.Declared(), lang.Doc("Declared by .function.")}
	for _, p := range body.Params {
		var popts []lang.ParamOption
		if p.Optional {
			popts = append(popts, lang.Optional(nil))
		}

		opts = append(opts, lang.Param(p.Name, lang.KindDynamic, popts...))
	}

	c.Define(lang.NewFunction(name,
		func(c *lang.Context, args lang.Args) (lang.Value, error) {
			return body.Invoke(c, args.Values()...)
		},
		opts...))

	return lang.Void{}, nil
}

func invokeVar(c *lang.Context, args lang.Args) (lang.Value, error) {
	name := args.Text("name")

	c.Assign(variable(name, args.Get("value")))

	c.Logger().DebugContext(c.Context(), "variable set",
		slog.String("name", name),
		slog.Int("scope", int(c.Scope())))

	return lang.Void{}, nil
}

// variable returns a function that yields v when called without arguments
// and reassigns the variable when called with one.
func variable(name string, v lang.Value) *lang.Function {
	return lang.NewFunction(name,
		func(c *lang.Context, args lang.Args) (lang.Value, error) {
			if next := args.Get("value"); !lang.IsNone(next) {
				c.Assign(variable(name, next))

				return lang.Void{}, nil
			}

			return v, nil
		},
		lang.Declared(),
		lang.Doc("Declared by .var."),
		lang.Param("value", lang.KindDynamic, lang.Optional(nil)))
}
