package lang

import (
	"regexp"
	"strings"
)

var (
	fencePattern   = regexp.MustCompile("^ {0,3}(```+|~~~+)[ \t]*([^ \t`]*)")
	headingPattern = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?[ \t]*#*[ \t]*$`)
	blankSeparator = regexp.MustCompile(`\n[ \t]*\n`)
)

// ParseDocument scans Markdown source into a document tree. Calls are left
// as [CallNode] placeholders for the expander. A call that starts a line
// and ends it is a block call and may take an indented body; other calls
// are inline within their paragraph.
func ParseDocument(src string) *Document {
	s := &scanner{src: strings.ReplaceAll(src, "\r\n", "\n")}
	s.scan()

	return &Document{Children: s.out}
}

type scanner struct {
	src  string
	pos  int
	out  []Node
	para []string
}

// line returns the line starting at the current offset, without its
// newline, and the offset of the next line.
func (s *scanner) line() (string, int) {
	end := strings.IndexByte(s.src[s.pos:], '\n')
	if end < 0 {
		return s.src[s.pos:], len(s.src)
	}

	return s.src[s.pos : s.pos+end], s.pos + end + 1
}

func (s *scanner) scan() {
	for s.pos < len(s.src) {
		line, next := s.line()

		switch {
		case isBlank(line):
			s.flush()
			s.pos = next

		case fencePattern.MatchString(line):
			s.flush()
			s.fence(line, next)

		case headingPattern.MatchString(line):
			s.flush()

			m := headingPattern.FindStringSubmatch(line)
			s.out = append(s.out, &Heading{Level: len(m[1]), Children: inlineNodes(m[2])})
			s.pos = next

		case s.blockCall(line):

		case len(s.para) == 0 && listMarker.MatchString(line):
			s.list()

		default:
			s.para = append(s.para, strings.TrimSpace(line))
			s.pos = next
		}
	}

	s.flush()
}

// flush closes the pending paragraph.
func (s *scanner) flush() {
	if len(s.para) == 0 {
		return
	}

	if nodes := inlineNodes(strings.Join(s.para, "\n")); len(nodes) > 0 {
		s.out = append(s.out, &Paragraph{Children: nodes})
	}

	s.para = s.para[:0]
}

func (s *scanner) fence(line string, next int) {
	m := fencePattern.FindStringSubmatch(line)
	marker := m[1]

	var code []string

	s.pos = next
	for s.pos < len(s.src) {
		l, n := s.line()
		s.pos = n

		if strings.HasPrefix(strings.TrimSpace(l), marker) {
			break
		}

		code = append(code, l)
	}

	s.out = append(s.out, &CodeBlock{Lang: m[2], Code: strings.Join(code, "\n")})
}

// blockCall consumes a call occupying whole lines. It reports false, and
// consumes nothing, if line does not hold one.
func (s *scanner) blockCall(line string) bool {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	if indent > 3 || byteAt(line, indent) != '.' || !isIdentStart(byteAt(line, indent+1)) {
		return false
	}

	p := newParser(s.src)
	p.pos = s.pos + indent

	call, err := p.parseCall(true)
	if err != nil {
		return false
	}

	if call.chainBody() == nil {
		rest, _, _ := strings.Cut(s.src[p.pos:], "\n")
		if !isBlank(rest) {
			return false
		}

		p.pos += len(rest)
		if p.pos < len(s.src) {
			p.pos++
		}
	}

	s.flush()
	s.out = append(s.out, &CallNode{Call: call, Block: true})
	s.pos = p.pos

	return true
}

// list consumes a Markdown list and the lines that continue it.
func (s *scanner) list() {
	start := s.pos

	for s.pos < len(s.src) {
		line, next := s.line()
		if isBlank(line) {
			break
		}

		if s.pos != start && !listMarker.MatchString(line) &&
			!strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			break
		}

		s.pos = next
	}

	text := s.src[start:s.pos]

	items, ok := parseList(text)
	if !ok {
		s.para = append(s.para, strings.TrimSpace(text))

		return
	}

	s.out = append(s.out, items.node(orderedMarker(text)))
}

var orderedPattern = regexp.MustCompile(`^[ \t]*\d+[.)]`)

func orderedMarker(text string) bool { return orderedPattern.MatchString(text) }

// node converts parsed list items into a document list.
func (items listItems) node(ordered bool) *List {
	l := &List{Ordered: ordered, Items: make([][]Node, 0, len(items))}

	for _, item := range items {
		nodes := inlineNodes(item.text)
		if len(item.children) > 0 {
			nodes = append(nodes, item.children.node(ordered))
		}

		l.Items = append(l.Items, nodes)
	}

	return l
}

// chainBody returns the body attached to the chain, if any.
func (c *CallDescription) chainBody() *CallArgument {
	for cur := c; cur != nil; cur = cur.Next {
		if cur.Body != nil {
			return cur.Body
		}
	}

	return nil
}

// inlineNodes splits paragraph text into text runs and inline calls.
func inlineNodes(text string) []Node {
	var nodes []Node

	for _, part := range scanCalls(text, false) {
		switch part := part.(type) {
		case Literal:
			nodes = append(nodes, &Text{Value: string(part)})
		case *CallDescription:
			nodes = append(nodes, &CallNode{Call: part})
		}
	}

	return nodes
}

// textBlocks converts plain text into paragraphs separated at blank lines.
// The text is not scanned for calls.
func textBlocks(text string) []Node {
	var out []Node

	for _, block := range blankSeparator.Split(text, -1) {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, &Paragraph{Children: []Node{&Text{Value: block}}})
		}
	}

	return out
}

// Markdown parses text as Markdown and expands its calls in the scope of
// c. Content consisting of a single paragraph is returned as its inline
// children.
func (c *Context) Markdown(text string) (Content, error) {
	doc := ParseDocument(text)

	nodes, err := c.Expand(doc.Children)
	c.forget(doc.Children)

	if err != nil {
		return nil, err
	}

	if len(nodes) == 1 {
		if p, ok := nodes[0].(*Paragraph); ok {
			return Content(p.Children), nil
		}
	}

	return Content(nodes), nil
}
