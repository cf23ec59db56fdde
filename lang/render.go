package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
)

// Format selects an output representation.
type Format string

// Output formats. Documents render as text, HTML, JSON or YAML; single
// values print natively, or as JSON or YAML.
const (
	FormatText   Format = "text"
	FormatHTML   Format = "html"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatNative Format = "native"
)

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatHTML, FormatJSON, FormatYAML, FormatNative:
		return f, nil
	}

	return "", ErrNoSuchElement.Wrapf("'%s' among values [text, html, json, yaml, native]", s)
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	boxTitleStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
	errorTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorSnippetStyle = lipgloss.NewStyle().Faint(true)
)

// Render writes doc to w in format f. Indent applies to JSON and YAML.
func (d *Document) Render(ctx context.Context, w io.Writer, f Format, indent int) error {
	switch f {
	case FormatText, FormatNative:
		_, err := io.WriteString(w, RenderText(d.Children...))

		return err

	case FormatHTML:
		_, err := io.WriteString(w, RenderHTML(d.Children...))

		return err

	case FormatJSON:
		return writeJSON(w, d.ToMap(), indent)

	case FormatYAML:
		return writeYAML(ctx, w, d.ToMap(), indent)
	}

	return ErrNoSuchElement.Wrapf("'%s'", f)
}

// FormatValue writes v to w in format f.
func FormatValue(ctx context.Context, w io.Writer, v Value, f Format, indent int) error {
	switch f {
	case FormatNative, FormatText:
		if c, ok := Unwrap(v).(Content); ok {
			_, err := io.WriteString(w, RenderText(c...))

			return err
		}

		_, err := fmt.Fprintln(w, v.String())

		return err

	case FormatHTML:
		if c, ok := Unwrap(v).(Content); ok {
			_, err := io.WriteString(w, RenderHTML(c...))

			return err
		}

		_, err := fmt.Fprintln(w, html.EscapeString(v.String()))

		return err

	case FormatJSON:
		return writeJSON(w, Native(v), indent)

	case FormatYAML:
		return writeYAML(ctx, w, Native(v), indent)
	}

	return ErrNoSuchElement.Wrapf("'%s'", f)
}

func writeJSON(w io.Writer, data any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(data, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(data)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

func writeYAML(ctx context.Context, w io.Writer, data any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, data, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// RenderText renders nodes as Markdown-like text. Boxes and error boxes
// are drawn with borders.
func RenderText(nodes ...Node) string {
	var b strings.Builder

	writeText(&b, nodes, "")

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeText(b *strings.Builder, nodes []Node, indent string) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			b.WriteString(n.Value)

		case *Inline:
			writeText(b, n.Children, indent)

		case *CallNode:
			b.WriteString(n.Call.Source)

		case *Paragraph:
			writeText(b, n.Children, indent)
			b.WriteString("\n\n")

		case *Heading:
			b.WriteString(strings.Repeat("#", n.Level) + " ")
			writeText(b, n.Children, indent)
			b.WriteString("\n\n")

		case *CodeBlock:
			b.WriteString("```" + n.Lang + "\n" + n.Code + "\n```\n\n")

		case *List:
			for i, item := range n.Items {
				marker := "- "
				if n.Ordered {
					marker = fmt.Sprintf("%d. ", i+1)
				}

				b.WriteString(indent + marker)

				for _, child := range item {
					if nested, ok := child.(*List); ok {
						b.WriteString("\n")
						writeText(b, []Node{nested}, indent+"  ")

						continue
					}

					writeText(b, []Node{child}, indent)
				}

				b.WriteString("\n")
			}

			if indent == "" {
				b.WriteString("\n")
			}

		case *Box:
			var inner strings.Builder
			if n.Title != "" {
				inner.WriteString(boxTitleStyle.Render(n.Title) + "\n\n")
			}

			writeText(&inner, n.Children, "")
			b.WriteString(boxStyle.Render(strings.TrimRight(inner.String(), "\n")))
			b.WriteString("\n\n")

		case *Container:
			writeText(b, n.Children, indent)

		case *PageBreak:
			b.WriteString("---\n\n")

		case *ErrorBox:
			b.WriteString(renderErrorBox(n))
			b.WriteString("\n\n")
		}
	}
}

func renderErrorBox(n *ErrorBox) string {
	lines := []string{errorTitleStyle.Render(n.Title), "", n.Message}

	if len(n.Snippet) > 0 {
		lines = append(lines, "")
		for _, l := range n.Snippet {
			lines = append(lines, errorSnippetStyle.Render(l))
		}

		if m := n.FoldMarker(); m != "" {
			lines = append(lines, errorSnippetStyle.Render(m))
		}
	}

	return errorStyle.Render(strings.Join(lines, "\n"))
}

// RenderHTML renders nodes as an HTML fragment.
func RenderHTML(nodes ...Node) string {
	var b strings.Builder

	writeHTML(&b, nodes)

	return b.String()
}

func writeHTML(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			b.WriteString(html.EscapeString(n.Value))

		case *Inline:
			b.WriteString(`<span class="inline">`)
			writeHTML(b, n.Children)
			b.WriteString("</span>")

		case *CallNode:
			b.WriteString(html.EscapeString(n.Call.Source))

		case *Paragraph:
			b.WriteString("<p>")
			writeHTML(b, n.Children)
			b.WriteString("</p>\n")

		case *Heading:
			fmt.Fprintf(b, "<h%d>", n.Level)
			writeHTML(b, n.Children)
			fmt.Fprintf(b, "</h%d>\n", n.Level)

		case *CodeBlock:
			b.WriteString("<pre><code")
			if n.Lang != "" {
				b.WriteString(` class="language-` + html.EscapeString(n.Lang) + `"`)
			}

			b.WriteString(">" + html.EscapeString(n.Code) + "</code></pre>\n")

		case *List:
			tag := "ul"
			if n.Ordered {
				tag = "ol"
			}

			b.WriteString("<" + tag + ">\n")

			for _, item := range n.Items {
				b.WriteString("<li>")
				writeHTML(b, item)
				b.WriteString("</li>\n")
			}

			b.WriteString("</" + tag + ">\n")

		case *Box:
			class := "box"
			if n.Type != "" {
				class += " " + n.Type
			}

			b.WriteString(`<div class="` + html.EscapeString(class) + `"` + styleAttr(n.Style) + ">")

			if n.Title != "" {
				b.WriteString(`<div class="box-title">` + html.EscapeString(n.Title) + "</div>")
			}

			writeHTML(b, n.Children)
			b.WriteString("</div>\n")

		case *Container:
			b.WriteString(`<div class="` + html.EscapeString(n.Class) + `"` + styleAttr(n.Style) + ">")
			writeHTML(b, n.Children)
			b.WriteString("</div>\n")

		case *PageBreak:
			b.WriteString(`<div class="page-break"></div>` + "\n")

		case *ErrorBox:
			b.WriteString(`<div class="box error">`)
			b.WriteString(`<div class="box-title">` + html.EscapeString(n.Title) + "</div>")
			b.WriteString("<p>" + html.EscapeString(n.Message) + "</p>")

			if len(n.Snippet) > 0 {
				snippet := strings.Join(n.Snippet, "\n")
				if m := n.FoldMarker(); m != "" {
					snippet += "\n" + m
				}

				b.WriteString("<pre><code>" + html.EscapeString(snippet) + "</code></pre>")
			}

			b.WriteString("</div>\n")
		}
	}
}

func styleAttr(style string) string {
	if style == "" {
		return ""
	}

	return ` style="` + html.EscapeString(style) + `"`
}
