package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/dotcall/pkg"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func readSources(t *testing.T, ctx context.Context, files ...string) (string, []string) {
	t.Helper()

	srcs, err := openSources(ctx, files)
	require.NoError(t, err)

	defer srcs.Close()

	data, err := io.ReadAll(srcs)
	require.NoError(t, err)

	return string(data), srcs.Names()
}

func TestOpenSources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.qd", "alpha")
	b := writeFile(t, dir, "b.qd", "beta")

	link := filepath.Join(dir, "link.qd")
	require.NoError(t, os.Symlink(a, link))

	rel, err := filepath.Rel(mustGetwd(t), a)
	require.NoError(t, err)

	ctx := WithInput(context.Background(), strings.NewReader("stdin"))

	tests := []struct {
		name      string
		files     []string
		wantText  string
		wantNames []string
	}{
		{"no files reads stdin", nil, "stdin", []string{"-"}},
		{"single file", []string{a}, "alpha", []string{a}},
		{"files joined by blank line", []string{a, b}, "alpha\n\nbeta", []string{a, b}},
		{"duplicate path", []string{a, b, a}, "alpha\n\nbeta", []string{a, b}},
		{"relative and absolute", []string{rel, a}, "alpha", []string{rel}},
		{"symlink", []string{a, link}, "alpha", []string{a}},
		{"stdin last", []string{"-", b}, "beta\n\nstdin", []string{b, "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithInput(ctx, strings.NewReader("stdin"))

			text, names := readSources(t, ctx, tt.files...)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantNames, names)
		})
	}

	t.Run("repeated stdin collapsed", func(t *testing.T) {
		ctx := WithInput(ctx, strings.NewReader("once"))

		text, names := readSources(t, ctx, "-", a, "-")
		assert.Equal(t, "alpha\n\nonce", text)
		assert.Equal(t, []string{a, "-"}, names)
	})
}

func TestOpenSources_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.qd", "alpha")

	_, err := openSources(context.Background(), []string{a, filepath.Join(dir, "missing.qd")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadSource)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = openSources(context.Background(), []string{dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadSource)
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	return wd
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := ErrCompile.Wrap(cause)

	assert.ErrorIs(t, err, ErrCompile)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEvaluate)
	assert.Equal(t, "compile document: boom", err.Error())
}

func TestEngine_SearchPath(t *testing.T) {
	t.Setenv(pkg.Env("path"), "")
	assert.Empty(t, Engine{}.searchPath())

	t.Setenv(pkg.Env("path"), strings.Join([]string{"/env/one", "/lib/a"}, string(os.PathListSeparator)))

	got := Engine{Lib: []string{"/lib/a", "/lib/b"}}.searchPath()
	assert.ElementsMatch(t, []string{"/lib/a", "/lib/b", "/env/one"}, got)
	assert.Equal(t, []string{"/lib/a", "/lib/b"}, got[:2])

	got = Engine{Lib: []string{"/lib/c", "/lib/b", "/lib/a"}}.searchPath()
	assert.Equal(t, []string{"/lib/c", "/lib/b", "/lib/a"}, got[:3])
}

func testEngine(t *testing.T, libs ...string) Engine {
	t.Helper()
	t.Setenv(pkg.Env("path"), "")

	return Engine{Lib: libs, Doctype: "plain", MaxDepth: 100}
}

func TestEngine_Libraries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "answer.qd", ".var {answer} {42}\n")
	writeFile(t, dir, "greet.md", ".function {greet}\n  to:\n  Hello .to\n")
	writeFile(t, dir, "notes.txt", ".var {ignored} {1}\n")

	single := writeFile(t, t.TempDir(), "pi.qd", ".var {tau} {6.28}\n")

	env, err := testEngine(t, dir, single, filepath.Join(dir, "missing")).newEnv(context.Background())
	require.NoError(t, err)

	names := env.Names()
	assert.Contains(t, names, "answer")
	assert.Contains(t, names, "greet")
	assert.Contains(t, names, "tau")
	assert.NotContains(t, names, "ignored")

	v, err := env.Root(context.Background()).EvalText(".answer")
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())
}

func TestEngine_StrictLibrary(t *testing.T) {
	lib := writeFile(t, t.TempDir(), "bad.qd", ".nosuchfunction\n")

	e := testEngine(t, lib)
	e.Strict = true

	_, err := e.newEnv(context.Background())
	assert.ErrorIs(t, err, ErrLoadLibrary)

	e.Strict = false

	_, err = e.newEnv(context.Background())
	assert.NoError(t, err)
}

func TestCompile_Run(t *testing.T) {
	src := writeFile(t, t.TempDir(), "doc.qd", "Total: .sum {2} {3}\n")

	tests := []struct {
		format string
		want   string
	}{
		{"text", "Total: 5"},
		{"html", "<p>Total: 5</p>"},
		{"json", `"type": "paragraph"`},
		{"yaml", "type: plain"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer

			c := &Compile{Engine: testEngine(t), Format: tt.format, Indent: 2, Files: []string{src}}
			require.NoError(t, c.Run(WithOutput(context.Background(), &out)))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestCompile_OutputFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")

	ctx := WithInput(context.Background(), strings.NewReader(".sum {1} {1}\n"))

	c := &Compile{Engine: testEngine(t), Format: "text", Output: dst}
	require.NoError(t, c.Run(ctx))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2")
}

func TestCompile_StrictFailure(t *testing.T) {
	e := testEngine(t)
	e.Strict = true

	ctx := WithInput(context.Background(), strings.NewReader(".sum {2} {a}\n"))

	var out bytes.Buffer

	err := (&Compile{Engine: e, Format: "text"}).Run(WithOutput(ctx, &out))
	assert.ErrorIs(t, err, ErrCompile)
	assert.Empty(t, out.String())
}

func TestEval_Run(t *testing.T) {
	tests := []struct {
		name       string
		expression []string
		format     string
		want       string
	}{
		{"native", []string{".sum", "{2}", "{3}"}, "native", "5"},
		{"json", []string{".sum {2} {3}"}, "json", "5"},
		{"text", []string{"hello"}, "native", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			e := &Eval{Engine: testEngine(t), Format: tt.format, Indent: 2, Expression: tt.expression}
			require.NoError(t, e.Run(WithOutput(context.Background(), &out)))
			assert.Equal(t, tt.want, strings.TrimSpace(out.String()))
		})
	}
}

func TestEval_Errors(t *testing.T) {
	e := &Eval{Engine: testEngine(t), Format: "native", Expression: []string{"  "}}
	assert.ErrorIs(t, e.Run(context.Background()), ErrNoExpression)

	e.Expression = []string{".nosuchfunction"}
	assert.ErrorIs(t, e.Run(context.Background()), ErrEvaluate)
}

func TestFunctions_Run(t *testing.T) {
	var out bytes.Buffer

	f := &Functions{Engine: testEngine(t), Doc: true, Pattern: "subtract"}
	require.NoError(t, f.Run(WithOutput(context.Background(), &out)))

	first, _, _ := strings.Cut(out.String(), "\n")
	assert.True(t, strings.HasPrefix(first, "subtract(Number a, Number b)"), first)
	assert.Contains(t, first, "Returns a - b.")

	out.Reset()

	f = &Functions{Engine: testEngine(t), Doc: false}
	require.NoError(t, f.Run(WithOutput(context.Background(), &out)))
	assert.Contains(t, out.String(), "sum(Number a, Number b)\n")
	assert.NotContains(t, out.String(), "Returns a + b.")
}
