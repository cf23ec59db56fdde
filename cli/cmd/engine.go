package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/dotcall/lang"
	"github.com/ardnew/dotcall/log"
	"github.com/ardnew/dotcall/pkg"
	"github.com/ardnew/dotcall/stdlib"
)

// libraryExts are the extensions of files loaded from a library directory.
var libraryExts = []string{".qd", ".md"}

// Engine holds the flags shared by every command that evaluates calls.
type Engine struct {
	Lib      []string `help:"Library file or directory loaded before the input (repeatable)" placeholder:"PATH" short:"L"`
	Doctype  string   `default:"plain" enum:"plain,paged,slides,docs" help:"Initial document type"`
	MaxDepth int      `default:"100"                                  help:"Maximum nesting depth of calls"`
	Strict   bool     `help:"Abort on the first failed call instead of rendering an error box"`
}

// searchPath returns the library search path: the --lib entries followed by
// the entries of the path environment variable, without duplicates.
func (e Engine) searchPath() []string {
	// The last prefix item leads the result.
	lib := slices.Clone(e.Lib)
	slices.Reverse(lib)

	merged := mung.Make(
		mung.WithSubjectItems(filepath.SplitList(os.Getenv(pkg.Env("path")))...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(lib...),
	).String()

	var out []string

	for _, dir := range filepath.SplitList(merged) {
		if dir != "" && !slices.Contains(out, dir) {
			out = append(out, dir)
		}
	}

	return out
}

// newEnv returns an environment with the standard library and every library
// on the search path loaded.
func (e Engine) newEnv(ctx context.Context) (*lang.Env, error) {
	opts := []lang.Option{
		stdlib.Option(),
		lang.WithStrict(e.Strict),
		lang.WithLogger(log.Default()),
	}

	if e.Doctype != "" {
		t, err := lang.ParseDocumentType(e.Doctype)
		if err != nil {
			return nil, err
		}

		opts = append(opts, lang.WithDocumentType(t))
	}

	if e.MaxDepth > 0 {
		opts = append(opts, lang.WithMaxDepth(e.MaxDepth))
	}

	env := lang.NewEnv(opts...)

	for _, path := range e.searchPath() {
		if err := loadLibrary(ctx, env, path); err != nil {
			return nil, err
		}
	}

	return env, nil
}

// loadLibrary compiles the file at path, or every library file in the
// directory at path, in the root scope of env so that its definitions are
// visible to the input. A missing path is skipped.
func loadLibrary(ctx context.Context, env *lang.Env, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		log.WarnContext(ctx, "library not found",
			slog.String("library", path),
			slog.String("error", err.Error()))

		return nil
	}

	if !info.IsDir() {
		return loadLibraryFile(ctx, env, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return ErrLoadLibrary.Wrap(err).With(slog.String("library", path))
	}

	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(libraryExts, filepath.Ext(entry.Name())) {
			continue
		}

		if err := loadLibraryFile(ctx, env, filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

func loadLibraryFile(ctx context.Context, env *lang.Env, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return ErrLoadLibrary.Wrap(err).With(slog.String("library", path))
	}
	defer f.Close()

	doc, err := env.ParseReader(ctx, f)
	if err != nil {
		return ErrLoadLibrary.Wrap(err).With(slog.String("library", path))
	}

	if _, err := env.Root(ctx).Compile(doc); err != nil {
		return ErrLoadLibrary.Wrap(err).With(slog.String("library", path))
	}

	log.DebugContext(ctx, "library loaded",
		slog.String("library", path),
		slog.Int("functions", len(env.Names())))

	return nil
}
