package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/dotcall/lang"
	"github.com/ardnew/dotcall/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-compile-retry loop.
// It writes the session's scratch document to a temp file, opens the user's
// editor, and compiles the result into the session environment. When the
// document fails to compile the user is prompted to re-edit; declining exits
// the program.
type editCommand struct {
	root    *lang.Context
	ctxFunc func() context.Context
	logger  log.Logger
	source  string // Scratch document; updated on success
	output  string // Rendered text of the compiled document
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-compile-retry loop. An emptied document cancels the
// edit and leaves source unchanged. If the user declines to re-edit, it
// returns [ErrEditDeclined].
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "dotcall-repl-*.qd")
	if err != nil {
		return err
	}

	path := f.Name()

	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	content := c.source

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		output, compileErr := c.compile(ctx, content)

		c.logger.TraceContext(
			ctx,
			"editor compile attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", compileErr == nil),
		)

		if compileErr == nil {
			c.source, c.output = content, output

			return nil
		}

		fmt.Fprintf(c.stderr, "\nCompile error: %s\n", compileErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// compile expands content in the session's root scope, so that functions
// it declares remain callable from the prompt. A document containing a
// failed call is reported as an error.
func (c *editCommand) compile(ctx context.Context, content string) (string, error) {
	doc, err := c.root.Compile(c.root.Env().ParseString(ctx, content))
	if err != nil {
		return "", err
	}

	for n := range lang.Walk(doc.Children...) {
		if box, ok := n.(*lang.ErrorBox); ok {
			return "", errors.New(box.Title + ": " + box.Message)
		}
	}

	return lang.RenderText(doc.Children...), nil
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	if editor == "" {
		editor = defaultEditor
	}

	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
