package lang

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Lambda is an invocable body with a closure over the scope it was created
// in. A lambda with no declared parameters receives its arguments as the
// implicit functions .1, .2 and so on.
type Lambda struct {
	Params   []LambdaParam
	Body     string
	env      *Env
	scope    Scope
	explicit bool
}

// LambdaParam is a declared lambda parameter. A trailing '?' in the
// declaration marks it optional.
type LambdaParam struct {
	Name     string
	Optional bool
}

var lambdaHeader = regexp.MustCompile(`^\s*(?:\w+\??[ \t]*)*$`)

// ParseLambda splits lambda text into its parameter header and body. The
// header is a list of names ending with ':', e.g. "x y?: body".
func ParseLambda(text string) (params []LambdaParam, body string, explicit bool) {
	idx := strings.IndexByte(text, ':')
	if idx < 0 {
		return nil, text, false
	}

	if next := byteAt(text, idx+1); next == ':' || next == '{' {
		return nil, text, false
	}

	head := text[:idx]
	if !lambdaHeader.MatchString(head) {
		return nil, text, false
	}

	for _, field := range strings.Fields(head) {
		name, optional := strings.CutSuffix(field, "?")
		params = append(params, LambdaParam{Name: name, Optional: optional})
	}

	return params, strings.TrimLeft(text[idx+1:], " \t\r\n"), true
}

// NewLambda creates a lambda from text, capturing the current scope.
func (c *Context) NewLambda(text string) *Lambda {
	params, body, explicit := ParseLambda(text)

	return &Lambda{
		Params:   params,
		Body:     body,
		explicit: explicit,
		env:      c.env,
		scope:    c.capture(),
	}
}

// Explicit reports whether the lambda declares its parameters.
func (l *Lambda) Explicit() bool { return l.explicit }

// Arity returns the minimum and maximum number of arguments accepted by an
// explicit lambda.
func (l *Lambda) Arity() (minArgs, maxArgs int) {
	for _, p := range l.Params {
		if !p.Optional {
			minArgs++
		}
	}

	return minArgs, len(l.Params)
}

// Invoke evaluates the body in a new scope derived from the captured one.
// Each argument is visible as a zero-argument function named after its
// parameter. Changes the body makes to enclosing scopes persist.
func (l *Lambda) Invoke(c *Context, args ...Value) (Value, error) {
	if l.explicit && len(args) == 1 && len(l.Params) > 1 {
		args = destructure(args[0])
	}

	if l.explicit {
		minArgs, maxArgs := l.Arity()
		if len(args) < minArgs || len(args) > maxArgs {
			return nil, ErrInvalidLambdaArgumentCount.Wrapf(
				"expected %s arguments, found %d", arityText(minArgs, maxArgs), len(args),
			)
		}
	}

	if c.depth >= l.env.maxDepth {
		return nil, ErrMaxDepthExceeded.Wrapf("%d", l.env.maxDepth)
	}

	inner := &Context{
		ctx:   c.ctx,
		env:   l.env,
		scope: l.env.fork(l.scope, c.scope),
		depth: c.depth + 1,
	}
	defer inner.Release()

	if l.explicit {
		for i, p := range l.Params {
			var v Value = None{}
			if i < len(args) {
				v = args[i]
			}

			inner.Define(constant(p.Name, v))
		}
	} else {
		for i, v := range args {
			inner.Define(constant(strconv.Itoa(i+1), v))
		}
	}

	l.env.logger.TraceContext(c.ctx, "invoke lambda",
		slog.Int("args", len(args)),
		slog.Int("scope", int(inner.scope)),
		slog.Int("depth", inner.depth))

	return inner.EvalText(l.Body)
}

func (*Lambda) Kind() Kind { return KindLambda }

func (l *Lambda) String() string {
	if !l.explicit {
		return lambdaPrefix + " " + l.Body
	}

	names := make([]string, len(l.Params))
	for i, p := range l.Params {
		names[i] = p.Name
		if p.Optional {
			names[i] += "?"
		}
	}

	return lambdaPrefix + " " + strings.Join(names, " ") + ": " + l.Body
}

func (*Lambda) value() {}

// constant returns a zero-parameter function yielding v.
func constant(name string, v Value) *Function {
	held := Hold(v)

	return &Function{
		Name:   name,
		Invoke: func(*Context, Args) (Value, error) { return held, nil },
		user:   true,
	}
}

// destructure spreads a pair or collection over several parameters.
func destructure(v Value) []Value {
	switch v := Unwrap(v).(type) {
	case Pair:
		return []Value{v.First, v.Second}
	case Collection:
		return v
	}

	return []Value{v}
}

func arityText(minArgs, maxArgs int) string {
	if minArgs == maxArgs {
		return strconv.Itoa(minArgs)
	}

	return strconv.Itoa(minArgs) + "-" + strconv.Itoa(maxArgs)
}
