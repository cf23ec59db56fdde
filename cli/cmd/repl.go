package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/dotcall/cli/cmd/repl"
	"github.com/ardnew/dotcall/log"
	"github.com/ardnew/dotcall/pkg"
)

// Repl starts an interactive session evaluating call expressions.
type Repl struct {
	Engine `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := r.newEnv(ctx)
	if err != nil {
		return err
	}

	cacheDir := kongVar(ctx, CacheIdentifier, pkg.CacheDir())
	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		log.WarnContext(ctx, "history disabled",
			slog.String("cache_dir", cacheDir),
			slog.String("error", err.Error()))

		cacheDir = ""
	}

	return repl.Run(ctx, env, cacheDir, log.Default())
}
