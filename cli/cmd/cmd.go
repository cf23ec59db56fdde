package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// kongVar returns the kong variable named key, or fallback if the command
// is not running under kong.
func kongVar(ctx context.Context, key, fallback string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if v, ok := ktx.Model.Vars()[key]; ok {
			return v
		}
	}

	return fallback
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

type inputKey struct{}

// WithInput returns a new context.Context whose commands read "-" from r
// instead of standard input.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// sources reads a list of input files as a single document.
type sources struct {
	io.Reader

	names []string
	files []*os.File
}

// Close closes every opened file.
func (s *sources) Close() error {
	var first error

	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// Names returns the sources in reading order.
func (s *sources) Names() []string { return s.names }

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the given files for reading as one document. Files are
// separated by blank lines so that a paragraph never spans two files.
//
// Duplicate files are read once, resolving symlinks and comparing device/
// inode pairs. All occurrences of "-" are replaced with a single stdin reader
// placed last. No files at all means stdin. A file that cannot be opened is
// an error.
func openSources(ctx context.Context, files []string) (*sources, error) {
	if len(files) == 0 {
		files = []string{stdinSource}
	}

	srcs := new(sources)
	seen := make(map[any]struct{})
	hasStdin := false

	var readers []io.Reader

	for _, file := range files {
		if file == stdinSource {
			hasStdin = true

			continue
		}

		f, id, err := openFile(file)
		if err != nil {
			srcs.Close()

			return nil, ErrReadSource.Wrap(err).With(sourceAttr(file))
		}

		if _, dup := seen[id]; dup {
			f.Close()

			continue
		}

		seen[id] = struct{}{}

		srcs.names = append(srcs.names, file)
		srcs.files = append(srcs.files, f)
		readers = append(readers, f)
	}

	if hasStdin {
		srcs.names = append(srcs.names, stdinSource)
		readers = append(readers, inputFrom(ctx))
	}

	joined := make([]io.Reader, 0, 2*len(readers))
	for i, r := range readers {
		if i > 0 {
			joined = append(joined, strings.NewReader("\n\n"))
		}

		joined = append(joined, r)
	}

	srcs.Reader = io.MultiReader(joined...)

	return srcs, nil
}

// openFile opens path and returns a key identifying the underlying file.
func openFile(path string) (*os.File, any, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	if info.IsDir() {
		f.Close()

		return nil, nil, ErrIsDirectory
	}

	if key, ok := makeFileKey(info); ok {
		return f, key, nil
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		abs = resolved
	}

	return f, abs, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
