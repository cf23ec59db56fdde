package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/dotcall/lang"
)

// Styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// callSite is the innermost call whose argument list surrounds the cursor.
type callSite struct {
	name     string
	argName  string // Named argument being written, if any
	argIndex int    // Positional arguments completed before the cursor
	inCall   bool
}

// openCall tracks a call while scanning the input.
type openCall struct {
	name    string
	pending string // Argument name read before its opening brace
	named   string // Name of the argument currently open
	depth   int    // Brace depth the call was written at
	args    int
	inArg   bool
}

// detectCall scans input up to cursor and returns the innermost call whose
// arguments are still being written. Literal text after a call's last
// argument ends that call.
func detectCall(input string, cursor int) callSite {
	s := input[:min(max(cursor, 0), len(input))]

	var stack []openCall

	depth := 0

	top := func() *openCall {
		if len(stack) == 0 {
			return nil
		}

		return &stack[len(stack)-1]
	}

	// between reports whether the top call is open at the current depth and
	// waiting for its next argument.
	between := func() bool {
		t := top()

		return t != nil && t.depth == depth && !t.inArg
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '\\':
			i++

		case c == '.' && (i == 0 || canPrecedeCall(s[i-1])) && identAt(s, i+1) > i+1:
			j := identAt(s, i+1)

			if between() {
				stack = stack[:len(stack)-1]
			}

			stack = append(stack, openCall{name: s[i+1 : j], depth: depth})
			i = j - 1

		case c == '{':
			if between() {
				t := top()
				t.inArg, t.named, t.pending = true, t.pending, ""
			}

			depth++

		case c == '}':
			if depth > 0 {
				depth--
			}

			for len(stack) > 0 && top().depth > depth {
				stack = stack[:len(stack)-1]
			}

			if t := top(); t != nil && t.depth == depth && t.inArg {
				if t.named == "" {
					t.args++
				}

				t.inArg, t.named = false, ""
			}

		case !between():

		case c == ' ' || c == '\t' || c == '\n':

		case strings.HasPrefix(s[i:], "::"):
			j := identAt(s, i+2)
			if j == i+2 {
				// The chained name is still being typed.
				if j == len(s) {
					i = j

					break
				}

				stack = stack[:len(stack)-1]

				break
			}

			stack[len(stack)-1] = openCall{name: s[i+2 : j], depth: depth}
			i = j - 1

		default:
			j := identAt(s, i)

			switch {
			case j > i && j < len(s) && s[j] == ':':
				top().pending = s[i:j]
				i = j
			case j > i && j == len(s):
				// Possibly an argument name still being typed.
				i = j
			default:
				stack = stack[:len(stack)-1]
			}
		}
	}

	t := top()
	if t == nil {
		return callSite{}
	}

	site := callSite{name: t.name, argIndex: t.args, inCall: true}
	if t.inArg {
		site.argName = t.named
	} else {
		site.argName = t.pending
	}

	return site
}

// identAt returns the end of the identifier starting at i, or i if there is
// none. Identifiers are either alphanumeric starting with a letter, or all
// digits.
func identAt(s string, i int) int {
	if i >= len(s) {
		return i
	}

	j := i

	switch {
	case isLetter(s[i]):
		for j < len(s) && (isLetter(s[j]) || isDigit(s[j])) {
			j++
		}
	case isDigit(s[i]):
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}

	return j
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func canPrecedeCall(c byte) bool { return markerMayFollow(rune(c)) }

// visibleParams returns the parameters of fn that arguments may bind.
func visibleParams(fn *lang.Function) []lang.Parameter {
	params := make([]lang.Parameter, 0, len(fn.Params))

	for _, p := range fn.Params {
		if !p.Inject {
			params = append(params, p)
		}
	}

	return params
}

// currentParam returns the index into params of the parameter the call site
// is writing, or -1.
func currentParam(params []lang.Parameter, site callSite) int {
	if site.argName != "" {
		for i, p := range params {
			if p.Name == site.argName {
				return i
			}
		}

		return -1
	}

	if site.argIndex < len(params) {
		return site.argIndex
	}

	return -1
}

// renderSignatureHint renders the signature of fn with the parameter at the
// call site highlighted, followed by its doc string.
func renderSignatureHint(fn *lang.Function, site callSite) string {
	params := visibleParams(fn)
	current := currentParam(params, site)

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(fn.Name))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == current {
			b.WriteString(currentParamStyle.Render(p.String()))
		} else {
			b.WriteString(signatureStyle.Render(p.String()))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	if fn.Doc != "" {
		b.WriteString(hintStyle.Render("  " + fn.Doc))
	}

	return b.String()
}
