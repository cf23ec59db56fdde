package stdlib

import (
	"cmp"
	"slices"

	"github.com/ardnew/dotcall/lang"
)

// Collections returns the collection, pair and dictionary functions.
// Collection indices start at 1.
func Collections() lang.Library {
	return lang.Library{
		Name: "collection",
		Functions: []*lang.Function{
			lang.NewFunction("collection",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return args.Collection("items"), nil
				},
				lang.Doc("Creates a collection from a list or a range."),
				lang.Param("items", lang.KindCollection)),
			lang.NewFunction("pair",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Pair{First: args.Get("first"), Second: args.Get("second")}, nil
				},
				lang.Doc("Creates a pair of two values."),
				lang.Param("first", lang.KindDynamic),
				lang.Param("second", lang.KindDynamic)),
			element("first", "Returns the first element of a collection.",
				func(lang.Collection) int { return 0 }),
			element("second", "Returns the second element of a collection.",
				func(lang.Collection) int { return 1 }),
			element("last", "Returns the last element of a collection.",
				func(c lang.Collection) int { return len(c) - 1 }),
			lang.NewFunction("getat", invokeGetAt,
				lang.Doc("Returns the element at a 1-based index, or orelse if out of bounds."),
				lang.Param("from", lang.KindCollection),
				lang.Param("index", lang.KindNumber),
				lang.Param("orelse", lang.KindDynamic, lang.Optional(nil))),
			lang.NewFunction("size",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Number(len(args.Collection("of"))), nil
				},
				lang.Doc("Returns the number of elements of a collection."),
				lang.Param("of", lang.KindCollection)),
			lang.NewFunction("sumall", invokeSumAll,
				lang.Doc("Returns the sum of all the numbers of a collection."),
				lang.Param("from", lang.KindCollection)),
			lang.NewFunction("reversed",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					out := slices.Clone(args.Collection("from"))
					slices.Reverse(out)

					return out, nil
				},
				lang.Doc("Returns the elements of a collection in reverse order."),
				lang.Param("from", lang.KindCollection)),
			lang.NewFunction("sorted", invokeSorted,
				lang.Doc("Sorts a collection, optionally by the key a lambda returns."),
				lang.Param("from", lang.KindCollection),
				lang.Param("by", lang.KindLambda, lang.Optional(nil))),
			lang.NewFunction("distinct",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					var out lang.Collection
					for _, v := range args.Collection("from") {
						if !slices.ContainsFunc(out, func(e lang.Value) bool { return lang.Equal(e, v) }) {
							out = append(out, v)
						}
					}

					return out, nil
				},
				lang.Doc("Removes duplicate elements from a collection."),
				lang.Param("from", lang.KindCollection)),
			lang.NewFunction("dictionary",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return args.Get("entries"), nil
				},
				lang.Doc("Creates a dictionary from a list of key: value entries."),
				lang.Param("entries", lang.KindDictionary)),
			lang.NewFunction("get", invokeGet,
				lang.Doc("Returns the value of key in a dictionary, or orelse if absent."),
				lang.Param("key", lang.KindString),
				lang.Param("from", lang.KindDictionary),
				lang.Param("orelse", lang.KindDynamic, lang.Optional(nil))),
		},
	}
}

func element(name, doc string, index func(lang.Collection) int) *lang.Function {
	return lang.NewFunction(name,
		func(_ *lang.Context, args lang.Args) (lang.Value, error) {
			c := args.Collection("from")

			i := index(c)
			if i < 0 || i >= len(c) {
				return lang.None{}, nil
			}

			return c[i], nil
		},
		lang.Doc(doc),
		lang.Param("from", lang.KindCollection))
}

func invokeGetAt(_ *lang.Context, args lang.Args) (lang.Value, error) {
	c, i := args.Collection("from"), args.Int("index")-1
	if i < 0 || i >= len(c) {
		return args.Get("orelse"), nil
	}

	return c[i], nil
}

func invokeSumAll(c *lang.Context, args lang.Args) (lang.Value, error) {
	var sum lang.Number

	for _, v := range args.Collection("from") {
		n, err := c.Coerce(v, lang.KindNumber)
		if err != nil {
			return nil, err
		}

		sum += n.(lang.Number)
	}

	return sum, nil
}

func invokeSorted(c *lang.Context, args lang.Args) (lang.Value, error) {
	items := args.Collection("from")

	keys := make([]lang.Value, len(items))
	for i, v := range items {
		keys[i] = v

		if by := args.Lambda("by"); by != nil {
			k, err := by.Invoke(c, v)
			if err != nil {
				return nil, err
			}

			keys[i] = k
		}
	}

	// Compare numerically only if every key is a number.
	numbers := make([]lang.Number, len(keys))
	numeric := true

	for i, k := range keys {
		n, err := c.Coerce(k, lang.KindNumber)
		if err != nil {
			numeric = false

			break
		}

		numbers[i] = n.(lang.Number)
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		if numeric {
			return cmp.Compare(numbers[a], numbers[b])
		}

		return cmp.Compare(keys[a].String(), keys[b].String())
	})

	out := make(lang.Collection, len(items))
	for i, idx := range order {
		out[i] = items[idx]
	}

	return out, nil
}

func invokeGet(_ *lang.Context, args lang.Args) (lang.Value, error) {
	d, ok := args.Get("from").(*lang.Dictionary)
	if !ok {
		return args.Get("orelse"), nil
	}

	if v, ok := d.Get(args.Text("key")); ok {
		return v, nil
	}

	return args.Get("orelse"), nil
}
