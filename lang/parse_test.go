package lang

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCall(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		allowBody bool
		chain     []string // Names of the chained calls
		args      []string // Raw arguments of the first call
		named     []string // Argument names of the first call
		body      string
		consumed  int
	}{
		{
			name:     "no arguments",
			input:    ".pi",
			chain:    []string{"pi"},
			named:    []string{},
			consumed: 3,
		},
		{
			name:     "positional",
			input:    ".sum {2} {3}",
			chain:    []string{"sum"},
			args:     []string{"2", "3"},
			named:    []string{"", ""},
			consumed: 12,
		},
		{
			name:     "named",
			input:    ".multiply {2} by:{3} rest",
			chain:    []string{"multiply"},
			args:     []string{"2", "3"},
			named:    []string{"", "by"},
			consumed: 20,
		},
		{
			name:     "chain",
			input:    ".sum {2} {1}::subtract {1}::negate",
			chain:    []string{"sum", "subtract", "negate"},
			args:     []string{"2", "1"},
			named:    []string{"", ""},
			consumed: 34,
		},
		{
			name:     "digit identifier",
			input:    ".1",
			chain:    []string{"1"},
			named:    []string{},
			consumed: 2,
		},
		{
			name:     "nested braces",
			input:    ".f {.g {x}}",
			chain:    []string{"f"},
			args:     []string{".g {x}"},
			named:    []string{""},
			consumed: 11,
		},
		{
			name:     "escaped brace",
			input:    `.f {a \} b}`,
			chain:    []string{"f"},
			args:     []string{`a \} b`},
			named:    []string{""},
			consumed: 11,
		},
		{
			name:     "multiline argument",
			input:    ".f {\n    - a\n      - b\n    }",
			chain:    []string{"f"},
			args:     []string{"- a\n  - b"},
			named:    []string{""},
			consumed: 28,
		},
		{
			name:      "body",
			input:     ".box {Title}\n  line one\n\n  line two\nafter",
			allowBody: true,
			chain:     []string{"box"},
			args:      []string{"Title"},
			named:     []string{""},
			body:      "line one\n\nline two",
			consumed:  36,
		},
		{
			name:      "blank line before body",
			input:     ".a {x}\n\n  body",
			allowBody: true,
			chain:     []string{"a"},
			args:      []string{"x"},
			named:     []string{""},
			body:      "body",
			consumed:  14,
		},
		{
			name:      "blank line before unindented text",
			input:     ".a {x}\n\nbody",
			allowBody: true,
			chain:     []string{"a"},
			args:      []string{"x"},
			named:     []string{""},
			consumed:  6,
		},
		{
			name:      "body on last call of chain",
			input:     ".a::b\n\tx",
			allowBody: true,
			chain:     []string{"a", "b"},
			named:     []string{},
			consumed:  8,
		},
		{
			name:      "unindented line is not a body",
			input:     ".a\nb",
			allowBody: true,
			chain:     []string{"a"},
			named:     []string{},
			consumed:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, n, err := ParseCall(tt.input, tt.allowBody)
			if err != nil {
				t.Fatalf("ParseCall(%q) error: %v", tt.input, err)
			}

			if n != tt.consumed {
				t.Errorf("consumed %d bytes, want %d", n, tt.consumed)
			}

			var names []string
			for _, c := range call.Chain() {
				names = append(names, c.Name)
			}

			if !reflect.DeepEqual(names, tt.chain) {
				t.Errorf("chain = %v, want %v", names, tt.chain)
			}

			var raw []string

			named := []string{}

			for _, a := range call.Arguments {
				raw = append(raw, a.Raw)
				named = append(named, a.Name)
			}

			if !reflect.DeepEqual(raw, tt.args) {
				t.Errorf("args = %q, want %q", raw, tt.args)
			}

			if !reflect.DeepEqual(named, tt.named) {
				t.Errorf("names = %q, want %q", named, tt.named)
			}

			var body string

			chain := call.Chain()
			if b := chain[len(chain)-1].Body; b != nil {
				body = b.Raw
			}

			if tt.name == "body on last call of chain" {
				if call.Body != nil || call.Next.Body == nil || call.Next.Body.Raw != "x" {
					t.Errorf("body not attached to the last call")
				}

				return
			}

			if body != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestParseCall_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing marker", "sum {1}"},
		{"missing name", ". {1}"},
		{"unterminated argument", ".sum {1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCall(tt.input, false)
			if !errors.Is(err, ErrParse) {
				t.Errorf("ParseCall(%q) error = %v, want %v", tt.input, err, ErrParse)
			}
		})
	}
}

func TestParseCall_Source(t *testing.T) {
	call, _, err := ParseCall(".a {1}::b\n  body\n", true)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range call.Chain() {
		if c.Source != ".a {1}::b\n  body" {
			t.Errorf("%s: source = %q", c.Name, c.Source)
		}

		if c.Pos.Line != 1 || c.Pos.Column != 1 {
			t.Errorf("%s: position = %+v", c.Name, c.Pos)
		}
	}
}

func TestParseExpression(t *testing.T) {
	call := func(name string) *CallDescription { return &CallDescription{Name: name} }

	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{"literal", "hello", Literal("hello")},
		{"empty", "", Literal("")},
		{"call", ".f", call("f")},
		{"compose", "a .f b", Compose{Literal("a "), call("f"), Literal(" b")}},
		{"glued to word", "word.f", Literal("word.f")},
		{"escaped marker", `\.f`, Literal(".f")},
		{"escaped braces", `\{x\}`, Literal("{x}")},
		{"after symbol", "(.f)", Compose{Literal("("), call("f"), Literal(")")}},
		{"comment", "a<!-- hidden -->b", Literal("ab")},
		{"lambda", "@lambda x: .x", LambdaLiteral("x: .x")},
		{"not a lambda prefix", "@lambdas", Literal("@lambdas")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExpression(tt.input)
			if !sameExpr(got, tt.want) {
				t.Errorf("ParseExpression(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// sameExpr compares expressions by shape, calls by name only.
func sameExpr(a, b Expr) bool {
	switch a := a.(type) {
	case *CallDescription:
		c, ok := b.(*CallDescription)

		return ok && a.Name == c.Name
	case Compose:
		c, ok := b.(Compose)
		if !ok || len(a) != len(c) {
			return false
		}

		for i := range a {
			if !sameExpr(a[i], c[i]) {
				return false
			}
		}

		return true
	}

	return reflect.DeepEqual(a, b)
}

func TestTrimIndent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "  x", "x"},
		{"common indent", "    a\n      b\n    c", "a\n  b\nc"},
		{"blank edges", "\n  a\n  b\n", "a\nb"},
		{"inner blank", "  a\n\n  b", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimIndent(tt.input); got != tt.want {
				t.Errorf("trimIndent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
