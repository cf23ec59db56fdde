package lang

import (
	"errors"
	"strconv"
	"strings"
)

// errorBox builds the node shown in place of a failed call.
func (c *Context) errorBox(call *CallDescription, err error) *ErrorBox {
	name := call.Name

	// Report the innermost failing call when the error came from a nested
	// argument.
	var ce *CallError
	if errors.As(err, &ce) && ce.Name != "" {
		name = ce.Name
	}

	source := call.Source
	if ce != nil && ce.Source != "" {
		source = ce.Source
	}

	snippet, hidden := foldLines(source, c.env.snippetLines)

	return &ErrorBox{
		Err:     err,
		Title:   "Error: " + name,
		Message: err.Error(),
		Snippet: snippet,
		Hidden:  hidden,
	}
}

// foldLines splits text into lines and keeps at most limit of them. It
// returns the kept lines and the number of lines dropped.
func foldLines(text string, limit int) ([]string, int) {
	if text == "" {
		return nil, 0
	}

	lines := strings.Split(text, "\n")
	if limit <= 0 || len(lines) <= limit {
		return lines, 0
	}

	return lines[:limit], len(lines) - limit
}

// FoldMarker returns the line appended to a folded snippet.
func (b *ErrorBox) FoldMarker() string {
	if b.Hidden == 0 {
		return ""
	}

	return "... (" + strconv.Itoa(b.Hidden) + " more lines)"
}
