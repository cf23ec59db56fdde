package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/dotcall/lang"
	"github.com/ardnew/dotcall/log"
)

// Compile expands every call in the input documents and renders the result.
type Compile struct {
	Engine `embed:""`

	Format string `default:"text" enum:"text,html,json,yaml" help:"Output format" short:"F"`
	Indent int    `default:"2"                               help:"Indent width of JSON and YAML output"`
	Output string `help:"Write output to file instead of stdout" placeholder:"FILE" short:"o"`

	Files []string `arg:"" help:"Input document(s) or '-' for stdin" name:"file" optional:""`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := lang.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	env, err := c.newEnv(ctx)
	if err != nil {
		return err
	}

	srcs, err := openSources(ctx, c.Files)
	if err != nil {
		return err
	}
	defer srcs.Close()

	doc, err := env.ParseReader(ctx, srcs)
	if err != nil {
		return ErrReadSource.Wrap(err).With(slog.Any("sources", srcs.Names()))
	}

	out, err := env.Root(ctx).Compile(doc)
	if err != nil {
		return ErrCompile.Wrap(err).With(slog.Any("sources", srcs.Names()))
	}

	failed := 0

	for n := range lang.Walk(out.Children...) {
		if _, ok := n.(*lang.ErrorBox); ok {
			failed++
		}
	}

	log.InfoContext(ctx, "compiled",
		slog.Any("sources", srcs.Names()),
		slog.String("doctype", out.Type.String()),
		slog.Int("nodes", len(out.Children)),
		slog.Int("errors", failed))

	return c.write(ctx, func(w io.Writer) error {
		return out.Render(ctx, w, format, c.Indent)
	})
}

// write calls render with the output file, or the command output if no file
// was given.
func (c *Compile) write(ctx context.Context, render func(io.Writer) error) error {
	if c.Output == "" {
		if err := render(outputFrom(ctx)); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", c.Output))
	}

	if err := render(f); err != nil {
		f.Close()

		return ErrWriteOutput.Wrap(err).With(slog.String("file", c.Output))
	}

	return f.Close()
}
