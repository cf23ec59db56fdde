package lang

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

// ParseNumber parses an integer or floating point number.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if !numberPattern.MatchString(s) {
		return 0, ErrNotNumeric.Wrapf("%s", s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNotNumeric.Wrapf("%s", s)
	}

	return Number(f), nil
}

// ParseBoolean parses true/yes and false/no, ignoring case.
func ParseBoolean(s string) (Boolean, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	}

	return false, ErrNotBoolean.Wrapf("%s", strings.TrimSpace(s))
}

// textOf returns the text a value can be parsed from.
func textOf(v Value) (string, bool) {
	switch v := v.(type) {
	case Dynamic, String, Number, Boolean:
		return v.String(), true
	case Content:
		return PlainText(v...), true
	}

	return "", false
}

// isRaw reports whether v is unevaluated source text.
func isRaw(v Value) bool {
	d, ok := v.(Dynamic)

	return ok && d.held == nil
}

// Coerce converts v to a value of kind k. Dynamic values defer to the value
// they hold; raw text is parsed according to k. Content and lambdas built
// from text are evaluated in the scope of c.
func (c *Context) Coerce(v Value, k Kind) (Value, error) {
	if v == nil {
		v = None{}
	}

	if k == KindDynamic {
		return Hold(v), nil
	}

	raw := isRaw(v)
	v = Unwrap(v)

	if v.Kind() == k {
		return v, nil
	}

	switch k {
	case KindString:
		if _, ok := v.(Void); ok {
			return String(""), nil
		}

		return String(v.String()), nil

	case KindNumber:
		return parseWith(v, ErrNotNumeric, ParseNumber)

	case KindBoolean:
		return parseWith(v, ErrNotBoolean, ParseBoolean)

	case KindContent:
		return c.toContent(v, raw)

	case KindCollection:
		return c.toCollection(v)

	case KindDictionary:
		return c.toDictionary(v)

	case KindPair:
		if col, ok := v.(Collection); ok && len(col) == 2 {
			return Pair{First: col[0], Second: col[1]}, nil
		}

		return nil, ErrNotPair.Wrapf("%s", v)

	case KindLambda:
		if text, ok := textOf(v); ok {
			return c.NewLambda(text), nil
		}

		return nil, ErrNotLambda.Wrapf("%s", v)

	case KindSize:
		return parseWith(v, ErrInvalidSize, ParseSize)

	case KindSizes:
		if s, ok := v.(Size); ok {
			return Sizes{s, s, s, s}, nil
		}

		return parseWith(v, ErrInvalidSizes, ParseSizes)

	case KindColor:
		return parseWith(v, ErrInvalidColor, ParseColor)

	case KindRange:
		return parseWith(v, ErrInvalidRange, ParseRange)

	case KindEnum:
		return nil, ErrNoSuchElement.Wrapf("'%s'", v)
	}

	return nil, ErrMismatchingArgumentType.Wrapf(
		"expected %s, found %s", k, v.Kind(),
	)
}

// coerceParam converts v for parameter p.
func (c *Context) coerceParam(v Value, p *Parameter) (Value, error) {
	if p.Kind != KindEnum {
		return c.Coerce(v, p.Kind)
	}

	if e, ok := Unwrap(v).(Enum); ok && slices.Contains(p.Enum, e.Name) {
		return e, nil
	}

	text, ok := textOf(Unwrap(v))
	if !ok {
		return nil, ErrNoSuchElement.Wrapf("'%s'", v)
	}

	return ParseEnum(text, p.Enum)
}

func parseWith[T Value](v Value, fail *Error, parse func(string) (T, error)) (Value, error) {
	text, ok := textOf(v)
	if !ok {
		return nil, fail.Wrapf("%s", v)
	}

	return parse(text)
}

func (c *Context) toContent(v Value, raw bool) (Value, error) {
	switch v := v.(type) {
	case Void:
		return Content{}, nil
	case Dynamic:
		if raw {
			return c.Markdown(v.Text)
		}
	case Collection:
		list := &List{Items: make([][]Node, 0, len(v))}

		for _, item := range v {
			content, err := c.toContent(Unwrap(item), isRaw(item))
			if err != nil {
				return nil, err
			}

			list.Items = append(list.Items, content.(Content))
		}

		return Content{list}, nil
	case *Lambda:
		return nil, ErrNotContent.Wrapf("%s", v)
	}

	return Content{&Text{Value: v.String()}}, nil
}

func (c *Context) toCollection(v Value) (Value, error) {
	switch v := v.(type) {
	case *Dictionary:
		return v.Pairs(), nil
	case Range:
		return v.Collection()
	case Pair:
		return Collection{v.First, v.Second}, nil
	case Dynamic, String, Content:
		text, _ := textOf(v)
		text = strings.TrimSpace(text)

		if r, err := ParseRange(text); err == nil {
			return r.Collection()
		}

		if items, ok := parseList(text); ok {
			return items.collection(), nil
		}

		if strings.HasPrefix(text, ".") {
			result, err := c.EvalText(text)
			if err != nil {
				return nil, err
			}

			if !isRaw(result) {
				return c.Coerce(result, KindCollection)
			}
		}
	}

	return nil, ErrNotIterable.Wrapf("%s", v)
}

func (c *Context) toDictionary(v Value) (Value, error) {
	switch v := v.(type) {
	case Collection:
		d := NewDictionary()

		for _, item := range v {
			pair, ok := Unwrap(item).(Pair)
			if !ok {
				return nil, ErrNotDictionary.Wrapf("%s", v)
			}

			d.Set(pair.First.String(), pair.Second)
		}

		return d, nil
	case Dynamic, String, Content:
		text, _ := textOf(v)
		if items, ok := parseList(strings.TrimSpace(text)); ok {
			if d, ok := items.dictionary(); ok {
				return d, nil
			}
		}
	}

	return nil, ErrNotDictionary.Wrapf("%s", v)
}
