package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dotcall/lang"
)

// Functions lists the signatures of the registered functions.
type Functions struct {
	Engine `embed:""`

	Doc bool `help:"Include the description of each function" negatable:"" default:"true"`

	Pattern string `arg:"" help:"Fuzzy filter on function names" optional:""`
}

// Run executes the functions command.
func (f *Functions) Run(ctx context.Context) error {
	env, err := f.newEnv(ctx)
	if err != nil {
		return err
	}

	fns := filterFunctions(env.Functions(), f.Pattern)

	width := 0
	for _, fn := range fns {
		width = max(width, len(fn.Signature()))
	}

	w := outputFrom(ctx)

	for _, fn := range fns {
		line := fn.Signature()
		if f.Doc && fn.Doc != "" {
			line = fmt.Sprintf("%-*s  %s", width, line, fn.Doc)
		}

		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// filterFunctions returns the functions whose names fuzzy-match pattern,
// best match first. An empty pattern keeps every function in name order.
func filterFunctions(fns []*lang.Function, pattern string) []*lang.Function {
	if pattern == "" {
		return fns
	}

	names := make([]string, len(fns))
	for i, fn := range fns {
		names[i] = fn.Name
	}

	matches := fuzzy.Find(pattern, names)

	out := make([]*lang.Function, len(matches))
	for i, m := range matches {
		out[i] = fns[m.Index]
	}

	return out
}
