package lang

import (
	"errors"
	"log/slog"
)

// binding pairs a parameter with the argument bound to it.
type binding struct {
	arg   *CallArgument
	value Value // Pre-evaluated value, e.g. a chained result
}

// bind matches the arguments of call against the parameters of fn and
// returns the coerced values. Positional arguments bind by index, named
// arguments by name, and the body argument to the parameter marked for it
// or else to the only parameter left unbound. Nothing is evaluated until
// every argument has found its parameter.
func (c *Context) bind(fn *Function, call *CallDescription, args []CallArgument) (Args, error) {
	bound := make([]*binding, len(fn.Params))

	// Indices of the parameters that arguments may target.
	visible := make([]int, 0, len(fn.Params))
	for i, p := range fn.Params {
		if !p.Inject {
			visible = append(visible, i)
		}
	}

	named := false

	for i := range args {
		arg := &args[i]

		if !arg.Named() {
			if named {
				return Args{}, ErrUnnamedArgumentAfterNamed.Wrapf("%s", arg.Raw)
			}

			continue
		}

		named = true
	}

	position := 0

	for i := range args {
		arg := &args[i]

		var idx int

		if arg.Named() {
			p, ok := fn.Param(arg.Name)
			if !ok {
				return Args{}, ErrUnresolvedParameter.Wrapf("%s", arg.Name)
			}

			idx = p.Index
		} else {
			if position >= len(visible) {
				return Args{}, ErrInvalidArgumentCount.Wrapf(
					"too many arguments: expected at most %d", len(visible),
				)
			}

			idx = visible[position]
			position++
		}

		if bound[idx] != nil {
			return Args{}, ErrParameterAlreadyBound.Wrapf("%s", fn.Params[idx].Name)
		}

		b := &binding{arg: arg}
		if k, ok := arg.Value.(Const); ok {
			b.value = k.Value
		}

		bound[idx] = b
	}

	if call.Body != nil {
		idx, err := bodyTarget(fn, bound)
		if err != nil {
			return Args{}, err
		}

		bound[idx] = &binding{arg: call.Body, value: NewDynamic(call.Body.Raw)}
	}

	values := make([]Value, len(fn.Params))

	for i := range fn.Params {
		p := &fn.Params[i]

		switch {
		case p.Inject:
			values[i] = Void{}

			continue

		case bound[i] != nil:

		case p.Optional:
			values[i] = p.Default
			if values[i] == nil {
				values[i] = None{}
			}

			continue

		default:
			return Args{}, ErrInvalidArgumentCount.Wrapf(
				"missing argument for parameter '%s'", p.Name,
			)
		}

		v, err := c.argumentValue(bound[i], p)
		if err != nil {
			return Args{}, err
		}

		if p.Optional && IsNone(v) {
			values[i] = None{}

			continue
		}

		coerced, err := c.coerceParam(v, p)
		if err != nil {
			var ce *CallError
			if errors.As(err, &ce) {
				return Args{}, ce
			}

			return Args{}, ErrMismatchingArgumentType.Wrap(err)
		}

		values[i] = coerced
	}

	c.env.logger.TraceContext(c.ctx, "bind",
		slog.String("function", fn.Name),
		slog.Int("arguments", len(args)),
		slog.Bool("body", call.Body != nil))

	return Args{fn: fn, values: values}, nil
}

// bodyTarget returns the index of the parameter receiving the body.
func bodyTarget(fn *Function, bound []*binding) (int, error) {
	for i, p := range fn.Params {
		if p.Body {
			if bound[i] != nil {
				return 0, ErrParameterAlreadyBound.Wrapf("%s", p.Name)
			}

			return i, nil
		}
	}

	target := -1

	for i, p := range fn.Params {
		if p.Inject || bound[i] != nil {
			continue
		}

		if target >= 0 {
			return 0, ErrInvalidArgumentCount.Wrapf(
				"body argument is ambiguous between '%s' and '%s'",
				fn.Params[target].Name, p.Name,
			)
		}

		target = i
	}

	if target < 0 {
		return 0, ErrInvalidArgumentCount.Wrapf(
			"no parameter left for the body argument",
		)
	}

	return target, nil
}

// argumentValue evaluates a bound argument for p. Body arguments stay raw
// text. Content and lambda parameters read inline arguments as source text
// so that calls inside them run in the scope that consumes them.
func (c *Context) argumentValue(b *binding, p *Parameter) (Value, error) {
	if b.value != nil {
		return b.value, nil
	}

	if b.arg.Body {
		return NewDynamic(b.arg.Raw), nil
	}

	switch p.Kind {
	case KindLambda:
		if l, ok := b.arg.Value.(LambdaLiteral); ok {
			return c.NewLambda(string(l)), nil
		}

		return NewDynamic(commentPattern.ReplaceAllString(b.arg.Raw, "")), nil

	case KindContent:
		return NewDynamic(b.arg.Raw), nil
	}

	return c.Eval(b.arg.Value)
}
