package lang

import (
	"iter"
	"math"
	"strconv"
	"strings"
)

// Value is the closed set of values produced and consumed by function calls.
type Value interface {
	// Kind identifies the variant.
	Kind() Kind
	// String returns the textual form used when a value is stringified or
	// concatenated with text.
	String() string
	value()
}

// String is a text value.
type String string

// Number is a numeric value. Integral numbers display without a fraction.
type Number float64

// Boolean is a truth value.
type Boolean bool

// Content is a fragment of the document tree.
type Content []Node

// Collection is an ordered sequence of values.
type Collection []Value

// Pair associates two values.
type Pair struct {
	First, Second Value
}

// Void is the result of calls that produce no content.
type Void struct{}

// None is the absence of a value, e.g. an omitted optional parameter.
type None struct{}

// Dynamic is an unresolved value: either raw argument text or a value whose
// eventual type depends on where it is used. Dynamic values are converted
// on demand by [Context.Coerce].
type Dynamic struct {
	Text string
	held Value
}

// NewDynamic returns a Dynamic holding raw text.
func NewDynamic(text string) Dynamic { return Dynamic{Text: text} }

// Hold returns a Dynamic deferring to an already-typed value. Holding a
// Dynamic returns it unchanged.
func Hold(v Value) Dynamic {
	if d, ok := v.(Dynamic); ok {
		return d
	}

	return Dynamic{Text: v.String(), held: v}
}

// Held returns the typed value behind d, if any.
func (d Dynamic) Held() (Value, bool) { return d.held, d.held != nil }

func (String) Kind() Kind     { return KindString }
func (Number) Kind() Kind     { return KindNumber }
func (Boolean) Kind() Kind    { return KindBoolean }
func (Content) Kind() Kind    { return KindContent }
func (Collection) Kind() Kind { return KindCollection }
func (Pair) Kind() Kind       { return KindPair }
func (Void) Kind() Kind       { return KindVoid }
func (None) Kind() Kind       { return KindNone }
func (Dynamic) Kind() Kind    { return KindDynamic }

func (s String) String() string { return string(s) }

func (n Number) String() string {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsInteger reports whether n has no fractional part.
func (n Number) IsInteger() bool {
	return float64(n) == math.Trunc(float64(n))
}

func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

func (c Content) String() string { return PlainText(c...) }

func (c Collection) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = v.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (p Pair) String() string {
	return "(" + p.First.String() + ", " + p.Second.String() + ")"
}

func (Void) String() string { return "" }
func (None) String() string { return "None" }

func (d Dynamic) String() string {
	if d.held != nil {
		return d.held.String()
	}

	return d.Text
}

func (String) value()     {}
func (Number) value()     {}
func (Boolean) value()    {}
func (Content) value()    {}
func (Collection) value() {}
func (Pair) value()       {}
func (Void) value()       {}
func (None) value()       {}
func (Dynamic) value()    {}

// Dictionary is a string-keyed map that preserves insertion order.
type Dictionary struct {
	keys  []string
	items map[string]Value
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{items: make(map[string]Value)}
}

// Set associates key with v, keeping the original position of an existing
// key.
func (d *Dictionary) Set(key string, v Value) {
	if _, ok := d.items[key]; !ok {
		d.keys = append(d.keys, key)
	}

	d.items[key] = v
}

// Get returns the value associated with key.
func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.items[key]

	return v, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []string { return append([]string(nil), d.keys...) }

// All returns an iterator over the entries in insertion order.
func (d *Dictionary) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range d.keys {
			if !yield(k, d.items[k]) {
				return
			}
		}
	}
}

// Pairs returns the entries as a collection of key/value pairs.
func (d *Dictionary) Pairs() Collection {
	out := make(Collection, 0, len(d.keys))
	for k, v := range d.All() {
		out = append(out, Pair{First: String(k), Second: v})
	}

	return out
}

func (*Dictionary) Kind() Kind { return KindDictionary }

func (d *Dictionary) String() string {
	parts := make([]string, 0, len(d.keys))
	for k, v := range d.All() {
		parts = append(parts, k+": "+v.String())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func (*Dictionary) value() {}

// Unwrap returns the typed value behind a Dynamic, or v itself.
func Unwrap(v Value) Value {
	if d, ok := v.(Dynamic); ok && d.held != nil {
		return d.held
	}

	return v
}

// IsNone reports whether v is, or holds, [None].
func IsNone(v Value) bool {
	if v == nil {
		return true
	}

	_, ok := Unwrap(v).(None)

	return ok
}

// Equal reports whether a and b are the same variant with the same textual
// form. Dynamic values compare by their text.
func Equal(a, b Value) bool {
	a, b = Unwrap(a), Unwrap(b)
	if a.Kind() != b.Kind() {
		_, da := a.(Dynamic)
		_, db := b.(Dynamic)

		if !da && !db {
			return false
		}
	}

	return a.String() == b.String()
}

// Native converts v into plain Go values suitable for encoding: strings,
// float64 or int64 numbers (int64 only within the exact float64 range), bools, slices, and maps.
func Native(v Value) any {
	switch v := Unwrap(v).(type) {
	case nil, None, Void:
		return nil
	case Number:
		if v.IsInteger() && math.Abs(float64(v)) < 1<<53 {
			return int64(v)
		}

		return float64(v)
	case Boolean:
		return bool(v)
	case Collection:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Native(e)
		}

		return out
	case Pair:
		return []any{Native(v.First), Native(v.Second)}
	case *Dictionary:
		out := make(map[string]any, v.Len())
		for k, e := range v.All() {
			out[k] = Native(e)
		}

		return out
	case Content:
		return NodesToMap(v)
	default:
		return v.String()
	}
}
