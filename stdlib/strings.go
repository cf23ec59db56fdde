package stdlib

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/dotcall/lang"
)

// Strings returns the text functions.
func Strings() lang.Library {
	return lang.Library{
		Name: "string",
		Functions: []*lang.Function{
			stringFunc("string", "Converts value to a string.",
				func(s string) lang.Value { return lang.String(s) }),
			lang.NewFunction("concatenate",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					if !args.Bool("if") {
						return lang.String(args.Text("a")), nil
					}

					return lang.String(args.Text("a") + args.Text("with")), nil
				},
				lang.Doc("Appends with to a if the condition holds."),
				lang.Param("a", lang.KindString),
				lang.Param("with", lang.KindString),
				lang.Param("if", lang.KindBoolean, lang.Optional(lang.Boolean(true)))),
			stringFunc("uppercase", "Converts text to upper case.",
				func(s string) lang.Value { return lang.String(strings.ToUpper(s)) }),
			stringFunc("lowercase", "Converts text to lower case.",
				func(s string) lang.Value { return lang.String(strings.ToLower(s)) }),
			stringFunc("capitalize", "Converts the first letter of text to upper case.",
				func(s string) lang.Value { return lang.String(capitalize(s)) }),
			stringFunc("isempty", "Reports whether text is empty.",
				func(s string) lang.Value { return lang.Boolean(s == "") }),
			stringFunc("isnotempty", "Reports whether text is not empty.",
				func(s string) lang.Value { return lang.Boolean(s != "") }),
		},
	}
}

func stringFunc(name, doc string, op func(string) lang.Value) *lang.Function {
	return lang.NewFunction(name,
		func(_ *lang.Context, args lang.Args) (lang.Value, error) {
			return op(args.Text("value")), nil
		},
		lang.Doc(doc),
		lang.Param("value", lang.KindString))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
