package lang

import (
	"regexp"
	"sort"
	"strings"
)

// ParseCall parses the call chain at the start of s, which must begin with
// the call marker '.'. It returns the call and the number of bytes consumed.
// When allowBody is set, an indented block following the call line is
// attached to the last call of the chain as its body argument.
func ParseCall(s string, allowBody bool) (*CallDescription, int, error) {
	p := newParser(s)

	call, err := p.parseCall(allowBody)
	if err != nil {
		return nil, 0, err
	}

	return call, p.pos, nil
}

// ParseExpression splits argument text into literal runs and calls.
func ParseExpression(s string) Expr { return parseExpression(s) }

// parser scans call syntax over a source string. Offsets are byte indices;
// lines and columns are derived on demand.
type parser struct {
	src        string
	pos        int
	lineStarts []int
}

func newParser(s string) *parser { return &parser{src: s} }

// parseCall parses: '.' Call ('::' Call)* Body?
func (p *parser) parseCall(allowBody bool) (*CallDescription, error) {
	start := p.pos
	pos := p.position()

	if !p.expect('.') {
		return nil, ErrParse.WithPosition(pos).Wrapf("expected '.'")
	}

	first, err := p.parseSingle()
	if err != nil {
		return nil, err
	}

	last := first

	for p.peekN(2) == "::" && isIdentStart(p.at(p.pos+2)) {
		p.pos += 2

		next, err := p.parseSingle()
		if err != nil {
			return nil, err
		}

		last.Next = next
		last = next
	}

	if allowBody {
		last.Body = p.parseBody()
	}

	source := strings.TrimRight(p.src[start:p.pos], "\n")
	for _, c := range first.Chain() {
		c.Source = source
		c.Pos = pos
	}

	return first, nil
}

// parseSingle parses: Identifier Argument*
func (p *parser) parseSingle() (*CallDescription, error) {
	pos := p.position()

	name := p.scanIdentifier()
	if name == "" {
		return nil, ErrParse.WithPosition(pos).Wrapf("expected function name")
	}

	call := &CallDescription{Name: name}

	for {
		mark := p.pos

		p.skipBlank()

		var argName string

		if isIdentStart(p.peek()) {
			id := p.scanIdentifier()
			if p.peekN(2) != ":{" {
				p.pos = mark

				break
			}

			argName = id
			p.advance()
		}

		if p.peek() != '{' {
			p.pos = mark

			break
		}

		raw, err := p.scanBraced()
		if err != nil {
			return nil, err
		}

		value := strings.TrimSpace(trimIndent(raw))
		call.Arguments = append(call.Arguments, CallArgument{
			Name:  argName,
			Raw:   value,
			Value: parseExpression(value),
		})
	}

	return call, nil
}

// parseBody scans the lines following the call line. Blank lines are
// included tentatively; the first non-blank line must be indented by two
// spaces or a tab, and the body ends before the first non-blank line that
// is not indented.
func (p *parser) parseBody() *CallArgument {
	mark := p.pos

	p.skipBlank()

	if p.eof() || p.peek() != '\n' {
		p.pos = mark

		return nil
	}

	begin := p.pos + 1
	end := begin
	found := false

	for i := begin; i < len(p.src); {
		lineEnd := strings.IndexByte(p.src[i:], '\n')
		if lineEnd < 0 {
			lineEnd = len(p.src)
		} else {
			lineEnd += i
		}

		line := p.src[i:lineEnd]
		if !isBlank(line) {
			if !strings.HasPrefix(line, "  ") && !strings.HasPrefix(line, "\t") {
				break
			}

			found = true
		}

		i = min(lineEnd+1, len(p.src))
		end = i
	}

	if !found {
		p.pos = mark

		return nil
	}

	p.pos = end
	raw := strings.TrimRight(trimIndent(p.src[begin:end]), " \t\r\n")

	return &CallArgument{Raw: raw, Value: Literal(raw), Body: true}
}

// scanBraced consumes a balanced {...} group and returns its content.
// Escaped braces do not count towards nesting.
func (p *parser) scanBraced() (string, error) {
	pos := p.position()
	start := p.pos + 1
	depth := 0

	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			if next := p.at(i + 1); next == '{' || next == '}' {
				i++
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos = i + 1

				return p.src[start:i], nil
			}
		}
	}

	return "", ErrParse.WithPosition(pos).Wrapf("unterminated argument")
}

// scanIdentifier consumes [a-zA-Z][a-zA-Z0-9]* or [0-9]+.
func (p *parser) scanIdentifier() string {
	start := p.pos

	switch c := p.peek(); {
	case isLetter(c):
		for isLetter(p.peek()) || isDigit(p.peek()) {
			p.advance()
		}
	case isDigit(c):
		for isDigit(p.peek()) {
			p.advance()
		}
	}

	return p.src[start:p.pos]
}

// Helper methods

func (p *parser) at(i int) byte {
	if i < 0 || i >= len(p.src) {
		return 0
	}

	return p.src[i]
}

func (p *parser) peek() byte { return p.at(p.pos) }

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.src) {
		return p.src[p.pos:]
	}

	return p.src[p.pos : p.pos+n]
}

func (p *parser) advance() {
	if !p.eof() {
		p.pos++
	}
}

func (p *parser) expect(ch byte) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) skipBlank() {
	for c := p.peek(); c == ' ' || c == '\t'; c = p.peek() {
		p.advance()
	}
}

func (p *parser) position() Position {
	if p.lineStarts == nil {
		p.lineStarts = []int{0}
		for i := range len(p.src) {
			if p.src[i] == '\n' {
				p.lineStarts = append(p.lineStarts, i+1)
			}
		}
	}

	line := sort.SearchInts(p.lineStarts, p.pos+1) - 1

	return Position{
		Offset: p.pos,
		Line:   line + 1,
		Column: p.pos - p.lineStarts[line] + 1,
	}
}

// Character classification

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool { return isLetter(c) || isDigit(c) }

// canPrecedeCall reports whether a call marker may follow c. Calls cannot
// be glued to words, numbers, other dots, or escapes.
func canPrecedeCall(c byte) bool {
	return !isLetter(c) && !isDigit(c) && c != '.' && c != '\\'
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// trimIndent removes the first and last lines if blank and the common
// leading whitespace of the remaining non-blank lines.
func trimIndent(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && isBlank(lines[0]) {
		lines = lines[1:]
	}

	if len(lines) > 1 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	indent := -1

	for _, line := range lines {
		if isBlank(line) {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		switch {
		case isBlank(line):
			lines[i] = ""
		case indent > 0:
			lines[i] = line[indent:]
		}
	}

	return strings.Join(lines, "\n")
}

var (
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	unescaper      = strings.NewReplacer(`\{`, "{", `\}`, "}", `\.`, ".")
)

// lambdaPrefix forces argument text to be read as a lambda.
const lambdaPrefix = "@lambda"

// parseExpression converts argument text into an expression. A single
// literal or call stands alone; mixed content becomes a composition.
func parseExpression(s string) Expr {
	s = commentPattern.ReplaceAllString(s, "")

	if rest, ok := strings.CutPrefix(s, lambdaPrefix); ok &&
		(rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n') {
		return LambdaLiteral(strings.TrimSpace(rest))
	}

	parts := scanCalls(s, true)

	switch len(parts) {
	case 0:
		return Literal("")
	case 1:
		return parts[0]
	}

	return Compose(parts)
}

// scanCalls splits text into literal runs and calls. Calls that start a
// line and end it may take an indented body when blockBodies is set.
func scanCalls(s string, blockBodies bool) []Expr {
	var (
		parts []Expr
		text  strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, Literal(unescaper.Replace(text.String())))
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			text.WriteString(s[i : i+2])
			i += 2

			continue
		}

		if s[i] == '.' && isIdentStart(byteAt(s, i+1)) &&
			(i == 0 || canPrecedeCall(s[i-1])) {
			p := newParser(s)
			p.pos = i

			call, err := p.parseCall(blockBodies && startsLine(s, i))
			if err == nil {
				flush()

				parts = append(parts, call)
				i = p.pos

				continue
			}
		}

		text.WriteByte(s[i])
		i++
	}

	flush()

	return parts
}

// startsLine reports whether only up to three spaces precede offset i on its
// line.
func startsLine(s string, i int) bool {
	lineStart := strings.LastIndexByte(s[:i], '\n') + 1

	return i-lineStart <= 3 && isBlank(s[lineStart:i])
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}

	return s[i]
}
