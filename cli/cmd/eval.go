package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/dotcall/lang"
	"github.com/ardnew/dotcall/log"
)

// Eval evaluates a single call expression and prints the resulting value.
type Eval struct {
	Engine `embed:""`

	Format string `default:"native" enum:"native,json,yaml" help:"Output format of the value" short:"F"`
	Indent int    `default:"2"                              help:"Indent width of JSON and YAML output"`

	Expression []string `arg:"" help:"Call expression, e.g. '.sum {1} {2}'" name:"expression"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	expr := strings.TrimSpace(strings.Join(e.Expression, " "))
	if expr == "" {
		return ErrNoExpression
	}

	format, err := lang.ParseFormat(e.Format)
	if err != nil {
		return err
	}

	env, err := e.newEnv(ctx)
	if err != nil {
		return err
	}

	v, err := env.Root(ctx).EvalText(expr)
	if err != nil {
		return ErrEvaluate.Wrap(err).With(slog.String("expression", expr))
	}

	log.DebugContext(ctx, "evaluated",
		slog.String("expression", expr),
		slog.String("kind", v.Kind().String()))

	if err := lang.FormatValue(ctx, outputFrom(ctx), v, format, e.Indent); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
