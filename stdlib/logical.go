package stdlib

import "github.com/ardnew/dotcall/lang"

// Logical returns the comparison and boolean functions.
func Logical() lang.Library {
	return lang.Library{
		Name: "logical",
		Functions: []*lang.Function{
			lang.NewFunction("islower",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(args.Number("a") < args.Number("than")), nil
				},
				lang.Doc("Reports whether a < than."),
				lang.Param("a", lang.KindNumber),
				lang.Param("than", lang.KindNumber)),
			lang.NewFunction("isgreater",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(args.Number("a") > args.Number("than")), nil
				},
				lang.Doc("Reports whether a > than."),
				lang.Param("a", lang.KindNumber),
				lang.Param("than", lang.KindNumber)),
			lang.NewFunction("isequal",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(lang.Equal(args.Get("a"), args.Get("to"))), nil
				},
				lang.Doc("Reports whether two values have the same textual form."),
				lang.Param("a", lang.KindDynamic),
				lang.Param("to", lang.KindDynamic)),
			lang.NewFunction("not",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(!args.Bool("value")), nil
				},
				lang.Doc("Negates a boolean."),
				lang.Param("value", lang.KindBoolean)),
			lang.NewFunction("and",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(args.Bool("a") && args.Bool("b")), nil
				},
				lang.Doc("Reports whether both a and b are true."),
				lang.Param("a", lang.KindBoolean),
				lang.Param("b", lang.KindBoolean)),
			lang.NewFunction("or",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Boolean(args.Bool("a") || args.Bool("b")), nil
				},
				lang.Doc("Reports whether a or b is true."),
				lang.Param("a", lang.KindBoolean),
				lang.Param("b", lang.KindBoolean)),
		},
	}
}
