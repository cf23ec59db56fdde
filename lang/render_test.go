package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func compileTest(t *testing.T, src string) *Document {
	t.Helper()

	doc, err := newTestContext().Compile(ParseDocument(src))
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", src, err)
	}

	return doc
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  string
	}{
		{
			name:  "escaped text",
			nodes: []Node{&Paragraph{Children: []Node{&Text{Value: "a < b & c"}}}},
			want:  "<p>a &lt; b &amp; c</p>\n",
		},
		{
			name:  "code",
			nodes: []Node{&CodeBlock{Lang: "go", Code: "x := <-ch"}},
			want:  "<pre><code class=\"language-go\">x := &lt;-ch</code></pre>\n",
		},
		{
			name:  "ordered list",
			nodes: []Node{&List{Ordered: true, Items: [][]Node{{&Text{Value: "a"}}}}},
			want:  "<ol>\n<li>a</li>\n</ol>\n",
		},
		{
			name: "box",
			nodes: []Node{&Box{
				Title: "Note", Type: "tip", Style: "padding: 1px",
				Children: []Node{&Text{Value: "x"}},
			}},
			want: `<div class="box tip" style="padding: 1px"><div class="box-title">Note</div>x</div>` + "\n",
		},
		{
			name:  "container",
			nodes: []Node{&Container{Class: "speaker-note", Children: []Node{&Text{Value: "n"}}}},
			want:  `<div class="speaker-note">n</div>` + "\n",
		},
		{
			name:  "page break",
			nodes: []Node{&PageBreak{}},
			want:  `<div class="page-break"></div>` + "\n",
		},
		{
			name: "error box",
			nodes: []Node{&ErrorBox{
				Title: "Error: f", Message: "bad <input>",
				Snippet: []string{".f {<}"}, Hidden: 2,
			}},
			want: `<div class="box error"><div class="box-title">Error: f</div>` +
				`<p>bad &lt;input&gt;</p><pre><code>.f {&lt;}` + "\n" +
				`... (2 more lines)</code></pre></div>` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderHTML(tt.nodes...); got != tt.want {
				t.Errorf("RenderHTML\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestDocument_Render(t *testing.T) {
	doc := compileTest(t, "# T\n\nHello .sum {1} {2}\n\n- a\n- b")
	ctx := context.Background()

	var buf bytes.Buffer
	if err := doc.Render(ctx, &buf, FormatHTML, 0); err != nil {
		t.Fatal(err)
	}

	wantHTML := "<h1>T</h1>\n<p>Hello 3</p>\n<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"
	if buf.String() != wantHTML {
		t.Errorf("html = %q, want %q", buf.String(), wantHTML)
	}

	buf.Reset()

	if err := doc.Render(ctx, &buf, FormatText, 0); err != nil {
		t.Fatal(err)
	}

	wantText := "# T\n\nHello 3\n\n- a\n- b\n"
	if buf.String() != wantText {
		t.Errorf("text = %q, want %q", buf.String(), wantText)
	}

	buf.Reset()

	if err := doc.Render(ctx, &buf, FormatJSON, 2); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Type     string           `json:"type"`
		Children []map[string]any `json:"children"`
	}

	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}

	if decoded.Type != "plain" || len(decoded.Children) != 3 {
		t.Fatalf("decoded = %+v", decoded)
	}

	for i, want := range []string{"heading", "paragraph", "list"} {
		if decoded.Children[i]["type"] != want {
			t.Errorf("children[%d].type = %v, want %s", i, decoded.Children[i]["type"], want)
		}
	}

	buf.Reset()

	if err := doc.Render(ctx, &buf, FormatYAML, 2); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "type: plain") {
		t.Errorf("yaml = %q", buf.String())
	}

	if err := doc.Render(ctx, &buf, Format("pdf"), 0); !errors.Is(err, ErrNoSuchElement) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestRenderText_Boxes(t *testing.T) {
	out := RenderText(
		&Box{Title: "Heads up", Children: []Node{&Paragraph{Children: []Node{&Text{Value: "inside"}}}}},
		&ErrorBox{Title: "Error: sum", Message: "Not a numeric value: a", Snippet: []string{".sum {a}"}},
	)

	for _, want := range []string{"Heads up", "inside", "Error: sum", "Not a numeric value: a", ".sum {a}"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderText output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatValue(t *testing.T) {
	d := NewDictionary()
	d.Set("a", Number(1))

	tests := []struct {
		name   string
		value  Value
		format Format
		indent int
		want   string
	}{
		{"native number", Number(3), FormatNative, 0, "3\n"},
		{"native collection", Collection{Number(1), String("a")}, FormatNative, 0, "[1, a]\n"},
		{"native content", Content{&Paragraph{Children: []Node{&Text{Value: "x"}}}}, FormatNative, 0, "x\n"},
		{"json collection", Collection{Number(1), String("a")}, FormatJSON, 0, "[1,\"a\"]\n"},
		{"json fraction", Number(0.5), FormatJSON, 0, "0.5\n"},
		{"json large integer", Number(1e30), FormatJSON, 0, "1e+30\n"},
		{"json negative large integer", Number(-1e20), FormatJSON, 0, "-100000000000000000000\n"},
		{"json largest exact integer", Number(1<<53 - 1), FormatJSON, 0, "9007199254740991\n"},
		{"json none", None{}, FormatJSON, 0, "null\n"},
		{"json pair", Pair{Boolean(true), String("b")}, FormatJSON, 0, "[true,\"b\"]\n"},
		{"json dictionary", d, FormatJSON, 2, "{\n  \"a\": 1\n}\n"},
		{"yaml dictionary", d, FormatYAML, 2, "a: 1\n"},
		{"html text", String("<x>"), FormatHTML, 0, "&lt;x&gt;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := FormatValue(context.Background(), &buf, tt.value, tt.format, tt.indent); err != nil {
				t.Fatal(err)
			}

			if buf.String() != tt.want {
				t.Errorf("FormatValue = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "HTML", " json ", "yaml", "native"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}
	}

	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrNoSuchElement) {
		t.Errorf("ParseFormat(pdf) error = %v, want %v", err, ErrNoSuchElement)
	}
}
