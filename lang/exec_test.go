package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// testFunctions returns natives exercising the binding and execution paths.
func testFunctions() []*Function {
	return []*Function{
		NewFunction("sum",
			func(_ *Context, args Args) (Value, error) {
				return Number(args.Number("a") + args.Number("b")), nil
			},
			Param("a", KindNumber),
			Param("b", KindNumber)),
		NewFunction("concat",
			func(_ *Context, args Args) (Value, error) {
				return String(args.Text("a") + args.Text("b")), nil
			},
			Param("a", KindString),
			Param("b", KindString, Optional(String("!")))),
		NewFunction("echo",
			func(_ *Context, args Args) (Value, error) { return args.Get("value"), nil },
			Param("value", KindDynamic)),
		NewFunction("fail",
			func(*Context, Args) (Value, error) { return nil, errors.New("boom") }),
		NewFunction("recurse",
			func(c *Context, _ Args) (Value, error) { return c.EvalText(".recurse") }),
		NewFunction("note",
			func(*Context, Args) (Value, error) { return String("noted"), nil },
			OnlyFor(DocumentSlides)),
		NewFunction("guarded",
			func(*Context, Args) (Value, error) { return Void{}, nil },
			Validate(func(*Context, *CallDescription) error {
				return errors.New("not here")
			})),
		NewFunction("depth",
			func(c *Context, args Args) (Value, error) {
				return Number(args.Number("x") + float64(c.depth)), nil
			},
			Param("ctx", KindDynamic, Injected()),
			Param("x", KindNumber)),
	}
}

func newTestContext(opts ...Option) *Context {
	opts = append([]Option{WithFunctions(testFunctions()...)}, opts...)

	return NewEnv(opts...).Root(context.Background())
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"positional", ".sum {1} {2}", "3"},
		{"named", ".sum b:{1} a:{2}", "3"},
		{"mixed", ".sum {1} b:{2}", "3"},
		{"chain", ".sum {1} {2}::sum {3}", "6"},
		{"nested", ".sum {.sum {1} {2}} {3}", "6"},
		{"body", ".sum {1}\n  2", "3"},
		{"optional default", ".concat {hi}", "hi!"},
		{"optional bound", ".concat {hi} {?}", "hi?"},
		{"string from number", ".concat {.sum {1} {1}}", "2!"},
		{"injected parameter", ".depth {4}", "5"},
		{"compose text", "a .sum {1} {1} b", "a 2 b"},
		{"dynamic passthrough", ".echo {x .sum {1} {1}}", "x 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := newTestContext().EvalText(tt.input)
			if err != nil {
				t.Fatalf("EvalText(%q) error: %v", tt.input, err)
			}

			if v.String() != tt.want {
				t.Errorf("EvalText(%q) = %q, want %q", tt.input, v.String(), tt.want)
			}
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  *Error
		cause error
	}{
		{"missing argument", ".sum {1}", ErrInvalidArgumentCount, nil},
		{"too many arguments", ".sum {1} {2} {3}", ErrInvalidArgumentCount, nil},
		{"unnamed after named", ".sum a:{1} {2}", ErrUnnamedArgumentAfterNamed, nil},
		{"already bound", ".sum {1} a:{2}", ErrParameterAlreadyBound, nil},
		{"unknown parameter", ".sum {1} c:{2}", ErrUnresolvedParameter, nil},
		{"type mismatch", ".sum {1} {x}", ErrMismatchingArgumentType, ErrNotNumeric},
		{"ambiguous body", ".sum\n  1", ErrInvalidArgumentCount, nil},
		{"body after all bound", ".sum {1} {2}\n  3", ErrInvalidArgumentCount, nil},
		{"unresolved", ".nothing", ErrUnresolvedReference, nil},
		{"runtime", ".fail", ErrFunctionCallRuntime, nil},
		{"validator", ".guarded", ErrInvalidFunctionCall, nil},
		{"document type", ".note", ErrInvalidFunctionCall, ErrDocumentType},
		{"injected is not named", ".depth ctx:{1} x:{2}", ErrUnresolvedParameter, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestContext().EvalText(tt.input)
			if err == nil {
				t.Fatalf("EvalText(%q) succeeded, want %v", tt.input, tt.kind)
			}

			var ce *CallError
			if !errors.As(err, &ce) {
				t.Fatalf("error %v is %T, want *CallError", err, err)
			}

			if ce.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", ce.Kind, tt.kind)
			}

			if !errors.Is(err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.kind)
			}

			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.cause)
			}
		})
	}
}

func TestExecute_ErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "type mismatch",
			input: ".sum {1} {x}",
			want:  "Cannot call function sum(Number a, Number b) with arguments (1, x): Not a numeric value: x",
		},
		{
			name:  "unresolved with suggestion",
			input: ".summ {1}",
			want:  "Unresolved reference: summ (did you mean sum?)",
		},
		{
			name:  "runtime",
			input: ".fail",
			want:  "boom",
		},
		{
			name:  "nested failure passes through",
			input: ".sum {.fail} {1}",
			want:  "boom",
		},
		{
			name:  "optional signature",
			input: ".concat",
			want: "Cannot call function concat(String a, String? b) with arguments (): " +
				"invalid argument count: missing argument for parameter 'a'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestContext().EvalText(tt.input)
			if err == nil {
				t.Fatalf("EvalText(%q) succeeded", tt.input)
			}

			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestExecute_NestedErrorKeepsInnermostCall(t *testing.T) {
	_, err := newTestContext().EvalText(".sum {.fail} {1}")

	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not a *CallError", err)
	}

	if ce.Name != "fail" || ce.Source != ".fail" {
		t.Errorf("innermost call = %s (%q), want fail", ce.Name, ce.Source)
	}
}

func TestExecute_MaxDepth(t *testing.T) {
	_, err := newTestContext(WithMaxDepth(5)).EvalText(".recurse")
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("error = %v, want %v", err, ErrMaxDepthExceeded)
	}

	if !strings.Contains(err.Error(), "5 nested calls") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestExecute_DocumentType(t *testing.T) {
	v, err := newTestContext(WithDocumentType(DocumentSlides)).EvalText(".note")
	if err != nil {
		t.Fatal(err)
	}

	if v.String() != "noted" {
		t.Errorf("got %q, want %q", v.String(), "noted")
	}
}

func TestSignature(t *testing.T) {
	fns := testFunctions()

	want := map[string]string{
		"sum":    "sum(Number a, Number b)",
		"concat": "concat(String a, String? b)",
		"echo":   "echo(Dynamic value)",
		"fail":   "fail()",
		"depth":  "depth(Number x)",
	}

	for _, fn := range fns {
		if w, ok := want[fn.Name]; ok && fn.Signature() != w {
			t.Errorf("Signature() = %q, want %q", fn.Signature(), w)
		}
	}
}

func TestCompose(t *testing.T) {
	text := func(s string) *Text { return &Text{Value: s} }

	tests := []struct {
		name  string
		parts []Value
		want  string
		kind  Kind
	}{
		{"single", []Value{Number(1)}, "1", KindNumber},
		{"void skipped", []Value{NewDynamic("a"), Void{}}, "a", KindDynamic},
		{"leading void", []Value{Void{}, Number(2)}, "2", KindNumber},
		{"text", []Value{Number(1), NewDynamic("2")}, "12", KindDynamic},
		{"booleans", []Value{Boolean(true), Boolean(false)}, "false", KindBoolean},
		{"boolean and text", []Value{Boolean(true), NewDynamic("!")}, "true!", KindDynamic},
		{"collection absorbs", []Value{Collection{Number(1)}, Number(2)}, "[1, 2]", KindCollection},
		{"absorbed by collection", []Value{Number(0), Collection{Number(1)}}, "[0, 1]", KindCollection},
		{"collections", []Value{Collection{Number(1)}, Collection{Number(2)}}, "[1, 2]", KindCollection},
		{"content", []Value{Content{text("a")}, NewDynamic("b")}, "ab", KindContent},
		{"held boolean", []Value{Hold(Boolean(true)), Boolean(true)}, "true", KindBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc Value
			for _, v := range tt.parts {
				acc = compose(acc, v)
			}

			if acc.String() != tt.want {
				t.Errorf("compose = %q, want %q", acc.String(), tt.want)
			}

			if acc.Kind() != tt.kind {
				t.Errorf("kind = %v, want %v", acc.Kind(), tt.kind)
			}
		})
	}
}

func TestEval_EmptyCompose(t *testing.T) {
	v, err := newTestContext().Eval(Compose{})
	if err != nil {
		t.Fatal(err)
	}

	if v.String() != "" {
		t.Errorf("got %q, want empty", v.String())
	}
}
