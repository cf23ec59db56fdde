package lang

import (
	"log/slog"
	"strings"
)

// Compile expands every call of doc and returns the resulting document.
// The input document is not modified, so a parsed document may be compiled
// any number of times.
func (c *Context) Compile(doc *Document) (*Document, error) {
	nodes, err := c.Expand(doc.Children)
	if err != nil {
		return nil, err
	}

	return &Document{Children: nodes, Type: c.env.docType}, nil
}

// Expand replaces the call placeholders in nodes with the content their
// calls produce. A failed call becomes an [ErrorBox], or aborts expansion
// with its error in strict mode. Each placeholder is executed at most once
// per environment.
func (c *Context) Expand(nodes []Node) ([]Node, error) {
	out := make([]Node, 0, len(nodes))

	for _, n := range nodes {
		expanded, err := c.expandNode(n)
		if err != nil {
			return nil, err
		}

		out = append(out, expanded...)
	}

	return out, nil
}

func (c *Context) expandNode(n Node) ([]Node, error) {
	switch n := n.(type) {
	case *CallNode:
		return c.expandCall(n)

	case *Paragraph:
		kids, err := c.expandInline(n.Children)
		if err != nil {
			return nil, err
		}

		if len(kids) == 0 {
			return nil, nil
		}

		return []Node{&Paragraph{Children: kids}}, nil

	case *Heading:
		kids, err := c.expandInline(n.Children)
		if err != nil {
			return nil, err
		}

		return []Node{&Heading{Level: n.Level, Children: kids}}, nil

	case *Box:
		kids, err := c.Expand(n.Children)
		if err != nil {
			return nil, err
		}

		return []Node{&Box{Title: n.Title, Type: n.Type, Style: n.Style, Children: kids}}, nil

	case *Container:
		kids, err := c.Expand(n.Children)
		if err != nil {
			return nil, err
		}

		return []Node{&Container{Class: n.Class, Style: n.Style, Children: kids}}, nil

	case *Inline:
		kids, err := c.expandInline(n.Children)
		if err != nil {
			return nil, err
		}

		return []Node{&Inline{Children: kids}}, nil

	case *List:
		l := &List{Ordered: n.Ordered, Items: make([][]Node, len(n.Items))}

		for i, item := range n.Items {
			kids, err := c.expandInline(item)
			if err != nil {
				return nil, err
			}

			l.Items[i] = kids
		}

		return []Node{l}, nil
	}

	return []Node{n}, nil
}

// expandInline expands nodes that live inside a paragraph. Block content
// produced by inline calls is wrapped so that it stays in place.
func (c *Context) expandInline(nodes []Node) ([]Node, error) {
	out := make([]Node, 0, len(nodes))

	for _, n := range nodes {
		expanded, err := c.expandNode(n)
		if err != nil {
			return nil, err
		}

		out = append(out, expanded...)
	}

	return out, nil
}

func (c *Context) expandCall(n *CallNode) ([]Node, error) {
	if nodes, ok := c.env.expanded[n]; ok {
		return nodes, nil
	}

	nodes, err := c.runCall(n)
	if err != nil {
		return nil, err
	}

	c.env.expanded[n] = nodes

	return nodes, nil
}

// forget drops the memoized results of the placeholders in nodes. Content
// parsed for a single invocation is never visited again.
func (c *Context) forget(nodes []Node) {
	for n := range Walk(nodes...) {
		if call, ok := n.(*CallNode); ok {
			delete(c.env.expanded, call)
		}
	}
}

func (c *Context) runCall(n *CallNode) ([]Node, error) {
	v, err := c.Execute(n.Call)
	if err != nil {
		if c.env.strict {
			return nil, err
		}

		c.env.logger.WarnContext(c.ctx, "call failed",
			slog.String("call", n.Call.Name),
			slog.Int("line", n.Call.Pos.Line),
			slog.String("error", err.Error()))

		box := c.errorBox(n.Call, err)
		if n.Block {
			return []Node{box}, nil
		}

		return []Node{&Inline{Children: []Node{box}}}, nil
	}

	if n.Block {
		return blockNodes(v), nil
	}

	return inlineContent(v), nil
}

// ToNodes converts a call result into document content.
func ToNodes(v Value, block bool) []Node {
	if block {
		return blockNodes(v)
	}

	return inlineContent(v)
}

// blockNodes converts the result of a block call. Raw text becomes
// paragraphs; it is not scanned for further calls.
func blockNodes(v Value) []Node {
	switch v := Unwrap(v).(type) {
	case Void:
		return nil
	case Content:
		if hasBlock(v) {
			return v
		}

		if len(v) == 0 {
			return nil
		}

		return []Node{&Paragraph{Children: v}}
	case Collection:
		var out []Node
		for _, e := range v {
			out = append(out, blockNodes(e)...)
		}

		return out
	}

	return textBlocks(v.String())
}

// inlineContent converts the result of an inline call. Content holding a
// single paragraph is unwrapped; other block content is kept in an
// [Inline] wrapper.
func inlineContent(v Value) []Node {
	switch v := Unwrap(v).(type) {
	case Void:
		return nil
	case Content:
		if len(v) == 1 {
			if p, ok := v[0].(*Paragraph); ok {
				return p.Children
			}
		}

		if hasBlock(v) {
			return []Node{&Inline{Children: v}}
		}

		return v
	}

	text := v.String()
	if text == "" {
		return nil
	}

	return []Node{&Text{Value: strings.TrimSpace(text)}}
}

func hasBlock(nodes []Node) bool {
	for _, n := range nodes {
		if isBlock(n) {
			return true
		}
	}

	return false
}
