package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCompile(t *testing.T) {
	content := func(nodes ...Node) Value { return Content(nodes) }
	text := func(s string) *Text { return &Text{Value: s} }

	natives := []*Function{
		NewFunction("text", func(*Context, Args) (Value, error) {
			return String("first\n\nsecond"), nil
		}),
		NewFunction("para", func(*Context, Args) (Value, error) {
			return content(&Paragraph{Children: []Node{text("in paragraph")}}), nil
		}),
		NewFunction("box", func(_ *Context, args Args) (Value, error) {
			return content(&Box{Title: "T", Children: args.Content("body")}), nil
		}, Param("body", KindContent, AsBody())),
		NewFunction("nothing", func(*Context, Args) (Value, error) { return Void{}, nil }),
		NewFunction("items", func(*Context, Args) (Value, error) {
			return Collection{String("a"), content(&Box{Title: "b"})}, nil
		}),
		NewFunction("spaced", func(*Context, Args) (Value, error) { return String("  x  "), nil }),
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"block text", ".text", `p[text("first")] p[text("second")]`},
		{"inline text", "a .spaced b", `p[text("a ") text("x") text(" b")]`},
		{"block paragraph", ".para", `p[text("in paragraph")]`},
		{"inline paragraph unwrapped", "a .para", `p[text("a ") text("in paragraph")]`},
		{"block content", ".box\n  hello .sum {1} {1}", `box(T)[text("hello ") text("2")]`},
		{"inline block content", "see .box {x}", `p[text("see ") inline[box(T)[text("x")]]]`},
		{"void", ".nothing\n\nafter", `p[text("after")]`},
		{"inline void", "a .nothing b", `p[text("a ") text(" b")]`},
		{"collection", ".items", `p[text("a")] box(b)[]`},
		{"list item", "- .sum {2} {2}", `list[item[text("4")]]`},
		{"heading", "# .sum {1} {2}", `h1[text("3")]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(WithFunctions(natives...))

			doc, err := c.Compile(ParseDocument(tt.input))
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}

			if got := describe(doc.Children); got != tt.want {
				t.Errorf("Compile(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompile_ErrorBox(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		title string
	}{
		{"block", ".fail", `error(Error: fail)`, "Error: fail"},
		{"inline", "x .fail y", `p[text("x ") inline[error(Error: fail)] text(" y")]`, "Error: fail"},
		{"nested", ".sum {.missing} {1}", `error(Error: missing)`, "Error: missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newTestContext().Compile(ParseDocument(tt.input))
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}

			if got := describe(doc.Children); got != tt.want {
				t.Errorf("Compile(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}

			for n := range Walk(doc.Children...) {
				if box, ok := n.(*ErrorBox); ok && box.Title != tt.title {
					t.Errorf("title = %q, want %q", box.Title, tt.title)
				}
			}
		})
	}
}

func TestCompile_Strict(t *testing.T) {
	_, err := newTestContext(WithStrict(true)).Compile(ParseDocument("ok\n\n.fail\n"))
	if !errors.Is(err, ErrFunctionCallRuntime) {
		t.Fatalf("error = %v, want %v", err, ErrFunctionCallRuntime)
	}

	env := NewEnv(WithStrict(true))
	if !env.Strict() {
		t.Error("Strict() = false, want true")
	}
}

func TestCompile_Memoized(t *testing.T) {
	calls := 0
	counter := NewFunction("count", func(*Context, Args) (Value, error) {
		calls++

		return Number(calls), nil
	})

	doc := ParseDocument(".count")
	env := NewEnv(WithFunctions(counter))
	c := env.Root(context.Background())

	for range 3 {
		out, err := c.Compile(doc)
		if err != nil {
			t.Fatal(err)
		}

		if PlainText(out.Children...) != "1" {
			t.Errorf("output = %q, want 1", PlainText(out.Children...))
		}
	}

	if calls != 1 {
		t.Errorf("count called %d times in one environment, want 1", calls)
	}

	if _, err := NewEnv(WithFunctions(counter)).Root(context.Background()).Compile(doc); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("count called %d times across environments, want 2", calls)
	}

	if doc.Children[0].(*CallNode).Call.Name != "count" {
		t.Error("source document was modified")
	}
}

func TestMarkdown_NotMemoized(t *testing.T) {
	c := newTestContext()

	for range 3 {
		content, err := c.Markdown("sum: .sum {1} {2}\n\n.sum {3} {4}")
		if err != nil {
			t.Fatal(err)
		}

		if got := PlainText(content...); got != "sum: 3\n\n7" {
			t.Errorf("Markdown = %q, want %q", got, "sum: 3\n\n7")
		}
	}

	if n := len(c.env.expanded); n != 0 {
		t.Errorf("%d placeholders retained after Markdown, want 0", n)
	}

	if _, err := c.Compile(ParseDocument(".sum {1} {1}")); err != nil {
		t.Fatal(err)
	}

	if n := len(c.env.expanded); n != 1 {
		t.Errorf("%d placeholders retained after Compile, want 1", n)
	}
}

func TestErrorBox_Snippet(t *testing.T) {
	var b strings.Builder

	b.WriteString(".fail\n")

	for i := range 12 {
		b.WriteString("  line ")
		b.WriteByte(byte('a' + i))
		b.WriteString("\n")
	}

	doc, err := newTestContext().Compile(ParseDocument(b.String()))
	if err != nil {
		t.Fatal(err)
	}

	box, ok := doc.Children[0].(*ErrorBox)
	if !ok {
		t.Fatalf("got %s, want an error box", describe(doc.Children))
	}

	if len(box.Snippet) != 10 || box.Snippet[0] != ".fail" || box.Snippet[9] != "  line i" {
		t.Errorf("snippet = %q", box.Snippet)
	}

	if box.FoldMarker() != "... (3 more lines)" {
		t.Errorf("FoldMarker() = %q", box.FoldMarker())
	}

	doc, _ = newTestContext(WithSnippetLines(0)).Compile(ParseDocument(b.String()))
	if box := doc.Children[0].(*ErrorBox); len(box.Snippet) != 13 || box.FoldMarker() != "" {
		t.Errorf("unlimited snippet has %d lines, marker %q", len(box.Snippet), box.FoldMarker())
	}
}

func TestToNodes(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		block bool
		want  string
	}{
		{"block number", Number(3), true, `p[text("3")]`},
		{"inline number", Number(3), false, `text("3")`},
		{"inline empty", String(""), false, ``},
		{"held", Hold(String("x")), true, `p[text("x")]`},
		{"inline content", Content{&Text{Value: "a"}}, false, `text("a")`},
		{"block inline content", Content{&Text{Value: "a"}}, true, `p[text("a")]`},
		{"block pagebreak", Content{&PageBreak{}}, true, `pagebreak`},
		{"inline pagebreak", Content{&PageBreak{}}, false, `inline[pagebreak]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(ToNodes(tt.value, tt.block)); got != tt.want {
				t.Errorf("ToNodes = %s, want %s", got, tt.want)
			}
		})
	}
}
