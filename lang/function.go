package lang

import (
	"slices"
	"strings"
)

// Invoker runs a function with its bound arguments.
type Invoker func(c *Context, args Args) (Value, error)

// Validator inspects a call before its arguments are bound. A non-nil
// error rejects the call.
type Validator func(c *Context, call *CallDescription) error

// Function describes a callable: its parameters, restrictions, and body.
type Function struct {
	Name       string
	Doc        string
	Params     []Parameter
	Validators []Validator
	Only       []DocumentType // Document types the function is limited to
	Not        []DocumentType // Document types the function is excluded from
	Invoke     Invoker
	user       bool
}

// Parameter is a formal parameter of a [Function].
type Parameter struct {
	Name     string
	Display  string // Shown instead of the kind in signatures
	Kind     Kind
	Index    int
	Default  Value // Used when an optional parameter is not bound
	Enum     []string
	Optional bool
	Body     bool // Receives the body argument
	Inject   bool // Bound to the call context, never to an argument
}

// FunctionOption configures a [Function] under construction.
type FunctionOption func(*Function)

// ParamOption configures a [Parameter] under construction.
type ParamOption func(*Parameter)

// NewFunction builds a native function descriptor.
func NewFunction(name string, invoke Invoker, opts ...FunctionOption) *Function {
	fn := &Function{Name: name, Invoke: invoke}
	for _, opt := range opts {
		opt(fn)
	}

	for i := range fn.Params {
		fn.Params[i].Index = i
	}

	return fn
}

// Param declares the next parameter.
func Param(name string, kind Kind, opts ...ParamOption) FunctionOption {
	return func(fn *Function) {
		p := Parameter{Name: name, Kind: kind}
		for _, opt := range opts {
			opt(&p)
		}

		fn.Params = append(fn.Params, p)
	}
}

// Doc sets the one-line description of the function.
func Doc(text string) FunctionOption {
	return func(fn *Function) {
		fn.Doc = text
	}
}

// OnlyFor limits the function to the given document types.
func OnlyFor(types ...DocumentType) FunctionOption {
	return func(fn *Function) {
		fn.Only = append(fn.Only, types...)
	}
}

// NotFor excludes the function from the given document types.
func NotFor(types ...DocumentType) FunctionOption {
	return func(fn *Function) {
		fn.Not = append(fn.Not, types...)
	}
}

// Validate adds a pre-binding validator.
func Validate(v Validator) FunctionOption {
	return func(fn *Function) {
		fn.Validators = append(fn.Validators, v)
	}
}

// Declared marks the function as declared by a document rather than by a
// native library.
func Declared() FunctionOption {
	return func(fn *Function) {
		fn.user = true
	}
}

// Optional marks a parameter optional. An unbound optional parameter takes
// def, or [None] if def is nil.
func Optional(def Value) ParamOption {
	return func(p *Parameter) {
		p.Optional = true
		p.Default = def
	}
}

// AsBody marks the parameter that receives the body argument.
func AsBody() ParamOption {
	return func(p *Parameter) {
		p.Body = true
	}
}

// Injected binds the parameter to the call context.
func Injected() ParamOption {
	return func(p *Parameter) {
		p.Inject = true
	}
}

// OneOf restricts an enum parameter to the given values.
func OneOf(values ...string) ParamOption {
	return func(p *Parameter) {
		p.Kind = KindEnum
		p.Enum = values
	}
}

// Display overrides the type label of the parameter in signatures.
func Display(label string) ParamOption {
	return func(p *Parameter) {
		p.Display = label
	}
}

// UserDefined reports whether fn was declared in a document.
func (fn *Function) UserDefined() bool { return fn.user }

// Param returns the parameter named name.
func (fn *Function) Param(name string) (*Parameter, bool) {
	for i := range fn.Params {
		if fn.Params[i].Name == name && !fn.Params[i].Inject {
			return &fn.Params[i], true
		}
	}

	return nil, false
}

// Signature returns the display signature, e.g. sum(Number a, Number b).
func (fn *Function) Signature() string {
	parts := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		if !p.Inject {
			parts = append(parts, p.String())
		}
	}

	return fn.Name + "(" + strings.Join(parts, ", ") + ")"
}

// allows reports whether fn may be called in a document of type t.
func (fn *Function) allows(t DocumentType) bool {
	if len(fn.Only) > 0 && !slices.Contains(fn.Only, t) {
		return false
	}

	return !slices.Contains(fn.Not, t)
}

func (p Parameter) String() string {
	label := p.Display
	if label == "" {
		label = p.Kind.String()
	}

	if p.Optional {
		label += "?"
	}

	return label + " " + p.Name
}

// Args holds the coerced values bound to a function's parameters, indexed
// like [Function.Params].
type Args struct {
	fn     *Function
	values []Value
}

// Get returns the value bound to the named parameter.
func (a Args) Get(name string) Value {
	if p, ok := a.fn.Param(name); ok {
		return a.values[p.Index]
	}

	return None{}
}

// At returns the value bound to the i-th parameter.
func (a Args) At(i int) Value {
	if i < 0 || i >= len(a.values) || a.values[i] == nil {
		return None{}
	}

	return a.values[i]
}

// Values returns the bound values in parameter order.
func (a Args) Values() []Value { return a.values }

// Has reports whether the named parameter holds a value other than None.
func (a Args) Has(name string) bool { return !IsNone(a.Get(name)) }

// Text returns the text bound to name.
func (a Args) Text(name string) string {
	if s, ok := a.Get(name).(String); ok {
		return string(s)
	}

	return ""
}

// Number returns the number bound to name.
func (a Args) Number(name string) float64 {
	if n, ok := a.Get(name).(Number); ok {
		return float64(n)
	}

	return 0
}

// Int returns the number bound to name, truncated.
func (a Args) Int(name string) int { return int(a.Number(name)) }

// Bool returns the boolean bound to name.
func (a Args) Bool(name string) bool {
	b, ok := a.Get(name).(Boolean)

	return ok && bool(b)
}

// Lambda returns the lambda bound to name.
func (a Args) Lambda(name string) *Lambda {
	l, _ := a.Get(name).(*Lambda)

	return l
}

// Collection returns the collection bound to name.
func (a Args) Collection(name string) Collection {
	c, _ := a.Get(name).(Collection)

	return c
}

// Content returns the document content bound to name.
func (a Args) Content(name string) Content {
	c, _ := a.Get(name).(Content)

	return c
}

// Enum returns the enum member bound to name.
func (a Args) Enum(name string) Enum {
	e, _ := a.Get(name).(Enum)

	return e
}
