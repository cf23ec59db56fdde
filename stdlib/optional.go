package stdlib

import "github.com/ardnew/dotcall/lang"

// Optionality returns the functions handling absent values.
func Optionality() lang.Library {
	return lang.Library{
		Name: "optionality",
		Functions: []*lang.Function{
			lang.NewFunction("none",
				func(*lang.Context, lang.Args) (lang.Value, error) {
					return lang.None{}, nil
				},
				lang.Doc("Returns None.")),
			lang.NewFunction("isnone",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(lang.IsNone(args.Get("value"))), nil
				},
				lang.Doc("Reports whether value is None."),
				lang.Param("value", lang.KindDynamic)),
			lang.NewFunction("otherwise",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					if v := args.Get("value"); !lang.IsNone(v) {
						return v, nil
					}

					return args.Get("fallback"), nil
				},
				lang.Doc("Returns value, or fallback if value is None."),
				lang.Param("value", lang.KindDynamic),
				lang.Param("fallback", lang.KindDynamic)),
			lang.NewFunction("ifpresent", invokeIfPresent,
				lang.Doc("Maps value through a lambda unless it is None."),
				lang.Param("value", lang.KindDynamic),
				lang.Param("mapping", lang.KindLambda)),
			lang.NewFunction("takeif", invokeTakeIf,
				lang.Doc("Returns value if the condition holds for it, None otherwise."),
				lang.Param("value", lang.KindDynamic),
				lang.Param("condition", lang.KindLambda)),
		},
	}
}

func invokeIfPresent(c *lang.Context, args lang.Args) (lang.Value, error) {
	v := args.Get("value")
	if lang.IsNone(v) {
		return lang.None{}, nil
	}

	return args.Lambda("mapping").Invoke(c, v)
}

func invokeTakeIf(c *lang.Context, args lang.Args) (lang.Value, error) {
	v := args.Get("value")

	ok, err := test(c, args.Lambda("condition"), v)
	if err != nil {
		return nil, err
	}

	if !ok {
		return lang.None{}, nil
	}

	return v, nil
}

// test invokes a predicate lambda and coerces its result to a boolean.
func test(c *lang.Context, l *lang.Lambda, args ...lang.Value) (bool, error) {
	result, err := l.Invoke(c, args...)
	if err != nil {
		return false, err
	}

	b, err := c.Coerce(result, lang.KindBoolean)
	if err != nil {
		return false, err
	}

	return bool(b.(lang.Boolean)), nil
}
