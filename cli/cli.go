package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotcall/cli/cmd"
	"github.com/ardnew/dotcall/pkg"
	"github.com/ardnew/dotcall/profile"
)

// CLI is the top-level command-line interface for dotcall.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Compile   cmd.Compile   `cmd:"" default:"withargs" help:"Compile documents (default command)"`
	Eval      cmd.Eval      `cmd:""                    help:"Evaluate a call expression"`
	Functions cmd.Functions `cmd:""                    help:"List function signatures"`
	Repl      cmd.Repl      `cmd:""                    help:"Start an interactive session"`
	Init      cmd.Init      `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the dotcall CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	groups := []kong.Group{cli.Log.group()}
	if profile.Enabled {
		groups = append(groups, cli.Pprof.group())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath("config.json")),
		kong.Configuration(resolveYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
