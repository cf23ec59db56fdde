package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Execute runs a call chain and returns the result of its last call. Each
// call after the first receives the previous result as its first
// positional argument.
func (c *Context) Execute(call *CallDescription) (Value, error) {
	var (
		result Value
		prev   *CallArgument
	)

	for _, cur := range call.Chain() {
		args := cur.Arguments
		if prev != nil {
			args = append([]CallArgument{*prev}, args...)
		}

		v, err := c.executeOne(cur, args)
		if err != nil {
			return nil, err
		}

		result = v
		prev = &CallArgument{Raw: v.String(), Value: Const{Value: v}}
	}

	return result, nil
}

// executeOne resolves, validates, binds and invokes a single call.
func (c *Context) executeOne(call *CallDescription, args []CallArgument) (Value, error) {
	fail := func(fn *Function, kind *Error, cause error) *CallError {
		ce := &CallError{
			Name:      call.Name,
			Source:    call.Source,
			Arguments: literals(call, args),
			Kind:      kind,
			Cause:     cause,
		}

		if fn != nil {
			ce.Signature = fn.Signature()
		}

		c.env.logger.DebugContext(c.ctx, "call failed",
			slog.Any("error", ce),
			slog.Int("depth", c.depth))

		return ce
	}

	if c.depth >= c.env.maxDepth {
		return nil, fail(nil, ErrMaxDepthExceeded,
			ErrMaxDepthExceeded.Wrapf("%d nested calls at .%s", c.env.maxDepth, call.Name))
	}

	fn, ok := c.Lookup(call.Name)
	if !ok {
		ce := fail(nil, ErrUnresolvedReference, nil)
		ce.Suggestions = Suggest(call.Name, c.visibleNames(), 3)

		return nil, ce
	}

	c.env.logger.TraceContext(c.ctx, "execute",
		slog.String("function", fn.Name),
		slog.Int("scope", int(c.scope)),
		slog.Int("depth", c.depth))

	for _, validate := range fn.Validators {
		if err := validate(c, call); err != nil {
			return nil, fail(fn, ErrInvalidFunctionCall, err)
		}
	}

	if !fn.allows(c.env.docType) {
		return nil, fail(fn, ErrInvalidFunctionCall, ErrDocumentType.Wrapf(
			"%s is not available in %s documents", fn.Name, c.env.docType,
		))
	}

	inner := &Context{ctx: c.ctx, env: c.env, scope: c.scope, depth: c.depth + 1}

	bound, err := inner.bind(fn, call, args)
	if err != nil {
		var ce *CallError
		if errors.As(err, &ce) {
			return nil, ce
		}

		return nil, fail(fn, kindOf(err), err)
	}

	v, err := fn.Invoke(inner, bound)
	if err != nil {
		var ce *CallError
		if errors.As(err, &ce) {
			return nil, ce
		}

		return nil, fail(fn, ErrFunctionCallRuntime, err)
	}

	if v == nil {
		v = Void{}
	}

	return v, nil
}

// kindOf returns the taxonomy sentinel matched by err.
func kindOf(err error) *Error {
	for _, kind := range []*Error{
		ErrUnnamedArgumentAfterNamed,
		ErrParameterAlreadyBound,
		ErrUnresolvedParameter,
		ErrInvalidArgumentCount,
		ErrMismatchingArgumentType,
		ErrInvalidLambdaArgumentCount,
		ErrMaxDepthExceeded,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return ErrInvalidFunctionCall
}

func literals(call *CallDescription, args []CallArgument) []string {
	out := make([]string, 0, len(args)+1)
	for _, a := range args {
		out = append(out, a.Raw)
	}

	if call.Body != nil {
		out = append(out, call.Body.Raw)
	}

	return out
}

// visibleNames lists the names resolvable from the current scope.
func (c *Context) visibleNames() []string {
	seen := make(map[string]struct{})

	var names []string

	add := func(f *frame) {
		for name := range f.funcs {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}

	for cur := c.scope; cur != noScope; cur = c.env.frames[cur].parent {
		add(&c.env.frames[cur])

		if caller := c.env.frames[cur].caller; caller != noScope {
			add(&c.env.frames[caller])
		}
	}

	return names
}

// Eval evaluates an argument expression.
func (c *Context) Eval(e Expr) (Value, error) {
	switch e := e.(type) {
	case nil:
		return Void{}, nil
	case Literal:
		return NewDynamic(string(e)), nil
	case LambdaLiteral:
		return c.NewLambda(string(e)), nil
	case Const:
		return e.Value, nil
	case *CallDescription:
		return c.Execute(e)
	case Compose:
		var acc Value

		for _, part := range e {
			v, err := c.Eval(part)
			if err != nil {
				return nil, err
			}

			acc = compose(acc, v)
		}

		if acc == nil {
			return NewDynamic(""), nil
		}

		return acc, nil
	}

	return nil, ErrInvalidFunctionCall.Wrapf("unknown expression %T", e)
}

// EvalText parses text as an expression and evaluates it.
func (c *Context) EvalText(text string) (Value, error) {
	return c.Eval(parseExpression(text))
}

// compose appends next to acc following the concatenation rules: void is
// skipped, content absorbs everything, collections absorb single values,
// booleans combine with AND, and anything else concatenates as text.
func compose(acc, next Value) Value {
	if acc == nil {
		return next
	}

	a, b := Unwrap(acc), Unwrap(next)

	if _, ok := b.(Void); ok {
		return acc
	}

	if _, ok := a.(Void); ok {
		return next
	}

	_, ac := a.(Content)
	_, bc := b.(Content)

	if ac || bc {
		return append(append(Content{}, asNodes(a)...), asNodes(b)...)
	}

	ca, aIsCol := a.(Collection)
	cb, bIsCol := b.(Collection)

	switch {
	case aIsCol && bIsCol:
		return append(append(Collection{}, ca...), cb...)
	case aIsCol:
		return append(append(Collection{}, ca...), next)
	case bIsCol:
		return append(Collection{acc}, cb...)
	}

	ba, aIsBool := a.(Boolean)
	bb, bIsBool := b.(Boolean)

	if aIsBool && bIsBool {
		return ba && bb
	}

	var s strings.Builder

	s.WriteString(acc.String())
	s.WriteString(next.String())

	return NewDynamic(s.String())
}

// asNodes converts a value into inline document content.
func asNodes(v Value) []Node {
	switch v := v.(type) {
	case Content:
		return v
	case Void:
		return nil
	}

	return []Node{&Text{Value: v.String()}}
}
