package lang

import (
	"iter"
	"strings"
)

// Node is an element of the document tree.
type Node interface {
	node()
}

// Text is a run of literal text.
type Text struct {
	Value string
}

// Paragraph is a block of inline content.
type Paragraph struct {
	Children []Node
}

// Heading is a section title of the given level (1-6).
type Heading struct {
	Level    int
	Children []Node
}

// CodeBlock is verbatim text. Calls inside it are never expanded.
type CodeBlock struct {
	Lang string
	Code string
}

// List is a bulleted or numbered list. Each item is a sequence of nodes.
type List struct {
	Ordered bool
	Items   [][]Node
}

// Box is a titled container.
type Box struct {
	Title    string
	Type     string
	Style    string // Inline CSS declarations
	Children []Node
}

// Container groups content under a class name, e.g. speaker notes.
type Container struct {
	Class    string
	Style    string
	Children []Node
}

// PageBreak forces a new page or slide.
type PageBreak struct{}

// Inline wraps block content produced by an inline call so it stays inside
// the surrounding paragraph.
type Inline struct {
	Children []Node
}

// CallNode is a call placeholder. The expander replaces it with the content
// the call produces.
type CallNode struct {
	Call  *CallDescription
	Block bool
}

// ErrorBox is rendered in place of a call that failed.
type ErrorBox struct {
	Err     error
	Title   string
	Message string
	Snippet []string
	Hidden  int // Source lines folded away after Snippet
}

func (*Text) node()      {}
func (*Paragraph) node() {}
func (*Heading) node()   {}
func (*CodeBlock) node() {}
func (*List) node()      {}
func (*Box) node()       {}
func (*Container) node() {}
func (*PageBreak) node() {}
func (*Inline) node()    {}
func (*CallNode) node()  {}
func (*ErrorBox) node()  {}

// Document is the root of a document tree.
type Document struct {
	Children []Node
	Type     DocumentType
}

// isBlock reports whether n cannot appear inside a paragraph.
func isBlock(n Node) bool {
	switch n := n.(type) {
	case *Text, *Inline:
		return false
	case *CallNode:
		return n.Block
	default:
		return true
	}
}

// children returns the direct children of n.
func children(n Node) []Node {
	switch n := n.(type) {
	case *Paragraph:
		return n.Children
	case *Heading:
		return n.Children
	case *Box:
		return n.Children
	case *Container:
		return n.Children
	case *Inline:
		return n.Children
	case *List:
		var out []Node
		for _, item := range n.Items {
			out = append(out, item...)
		}

		return out
	}

	return nil
}

// Walk returns a pre-order iterator over nodes and all their descendants.
func Walk(nodes ...Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var walk func([]Node) bool

		walk = func(ns []Node) bool {
			for _, n := range ns {
				if !yield(n) || !walk(children(n)) {
					return false
				}
			}

			return true
		}

		walk(nodes)
	}
}

// PlainText returns the text of nodes without any markup. Blocks are
// separated by blank lines, except inside an [Inline] wrapper.
func PlainText(nodes ...Node) string {
	var b strings.Builder

	writePlain(&b, nodes, false)

	return strings.TrimRight(b.String(), "\n")
}

func writePlain(b *strings.Builder, nodes []Node, inline bool) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			b.WriteString(n.Value)
		case *CodeBlock:
			b.WriteString(n.Code)
		case *ErrorBox:
			b.WriteString(n.Title + ": " + n.Message)
		case *CallNode:
			b.WriteString(n.Call.Source)
		case *List:
			for _, item := range n.Items {
				b.WriteString("- ")
				writePlain(b, item, true)
				b.WriteString("\n")
			}
		case *Inline:
			writePlain(b, n.Children, true)
		case *PageBreak:
		default:
			writePlain(b, children(n), inline)
		}

		if !inline && isBlock(n) {
			b.WriteString("\n\n")
		}
	}
}

// NodesToMap converts nodes into plain maps and slices for encoding.
func NodesToMap(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeToMap(n))
	}

	return out
}

func nodeToMap(n Node) map[string]any {
	switch n := n.(type) {
	case *Text:
		return map[string]any{"type": "text", "value": n.Value}
	case *Paragraph:
		return map[string]any{"type": "paragraph", "children": NodesToMap(n.Children)}
	case *Heading:
		return map[string]any{
			"type": "heading", "level": n.Level, "children": NodesToMap(n.Children),
		}
	case *CodeBlock:
		return map[string]any{"type": "code", "lang": n.Lang, "code": n.Code}
	case *List:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = NodesToMap(item)
		}

		return map[string]any{"type": "list", "ordered": n.Ordered, "items": items}
	case *Box:
		return map[string]any{
			"type": "box", "title": n.Title, "kind": n.Type,
			"style": n.Style, "children": NodesToMap(n.Children),
		}
	case *Container:
		return map[string]any{
			"type": "container", "class": n.Class, "style": n.Style,
			"children": NodesToMap(n.Children),
		}
	case *PageBreak:
		return map[string]any{"type": "pagebreak"}
	case *Inline:
		return map[string]any{"type": "inline", "children": NodesToMap(n.Children)}
	case *CallNode:
		return map[string]any{"type": "call", "source": n.Call.Source}
	case *ErrorBox:
		return map[string]any{
			"type": "error", "title": n.Title, "message": n.Message,
			"snippet": n.Snippet, "hidden": n.Hidden,
		}
	}

	return map[string]any{"type": "unknown"}
}

// ToMap converts the document into plain maps and slices for encoding.
func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"type":     d.Type.String(),
		"children": NodesToMap(d.Children),
	}
}
