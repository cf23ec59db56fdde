package lang

import "strings"

// Position is a location in source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// CallDescription is a parsed function call: a name, its arguments, and an
// optional chained call. It is immutable once parsed.
type CallDescription struct {
	Name      string
	Arguments []CallArgument
	Body      *CallArgument    // Indented block after the call, if any
	Next      *CallDescription // Call that receives this call's result
	Source    string           // Source text of the whole chain
	Pos       Position
}

// CallArgument is a single argument of a call.
type CallArgument struct {
	Name  string // Empty for positional arguments
	Raw   string // Text as written, after de-indentation
	Value Expr
	Body  bool
}

// Named reports whether the argument was given as name:{value}.
func (a CallArgument) Named() bool { return a.Name != "" }

// Chain returns the calls of the chain starting at c, in execution order.
func (c *CallDescription) Chain() []*CallDescription {
	var out []*CallDescription
	for cur := c; cur != nil; cur = cur.Next {
		out = append(out, cur)
	}

	return out
}

// Literals returns the arguments of c as written, body last.
func (c *CallDescription) Literals() []string {
	out := make([]string, 0, len(c.Arguments)+1)
	for _, a := range c.Arguments {
		out = append(out, a.Raw)
	}

	if c.Body != nil {
		out = append(out, c.Body.Raw)
	}

	return out
}

func (c *CallDescription) String() string {
	if c.Source != "" {
		return c.Source
	}

	var b strings.Builder

	for i, cur := range c.Chain() {
		if i == 0 {
			b.WriteByte('.')
		} else {
			b.WriteString("::")
		}

		b.WriteString(cur.Name)

		for _, a := range cur.Arguments {
			b.WriteByte(' ')

			if a.Named() {
				b.WriteString(a.Name + ":")
			}

			b.WriteString("{" + a.Raw + "}")
		}
	}

	return b.String()
}

// Expr is an argument expression: literal text, a nested call, a lambda
// literal, a constant, or a composition of these.
type Expr interface {
	expr()
}

// Literal is text whose type is decided when it is coerced.
type Literal string

// LambdaLiteral is the text of a lambda forced with the @lambda prefix.
type LambdaLiteral string

// Const is an already evaluated value, e.g. the result of the previous call
// in a chain.
type Const struct {
	Value Value
}

// Compose concatenates the values of its parts in order.
type Compose []Expr

func (Literal) expr()          {}
func (LambdaLiteral) expr()    {}
func (Const) expr()            {}
func (Compose) expr()          {}
func (*CallDescription) expr() {}
