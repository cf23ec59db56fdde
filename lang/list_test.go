package lang

import "testing"

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // Collection form, empty if not a list
	}{
		{"flat", "- 1\n- 2", "[1, 2]"},
		{"star markers", "* a\n* b", "[a, b]"},
		{"numbered", "1. a\n2) b", "[a, b]"},
		{"nested becomes pair", "- a\n  - b\n  - c", "[(a, [b, c])]"},
		{"compact nesting", "- - a\n  - b", "[[a, b]]"},
		{"colon item", "- :\n  - x", "[[x]]"},
		{"continuation", "- a\n  continued", "[a\ncontinued]"},
		{"blank lines", "- a\n\n- b", "[a, b]"},
		{"not a list", "text", ""},
		{"leading text", "text\n- a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, ok := parseList(tt.input)
			if tt.want == "" {
				if ok {
					t.Fatalf("parseList(%q) succeeded, want failure", tt.input)
				}

				return
			}

			if !ok {
				t.Fatalf("parseList(%q) failed", tt.input)
			}

			if got := items.collection().String(); got != tt.want {
				t.Errorf("collection = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestListDictionary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"flat", "- a: 1\n- b: two words", "{a: 1, b: two words}", true},
		{"nested", "- a: 1\n- b:\n  - x: 2", "{a: 1, b: {x: 2}}", true},
		{"nested collection", "- k\n  - 1\n  - 2", "{k: [1, 2]}", true},
		{"missing colon", "- a", "", false},
		{"empty key", "- : 1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, ok := parseList(tt.input)
			if !ok {
				t.Fatalf("parseList(%q) failed", tt.input)
			}

			d, ok := items.dictionary()
			if ok != tt.ok {
				t.Fatalf("dictionary ok = %v, want %v", ok, tt.ok)
			}

			if ok && d.String() != tt.want {
				t.Errorf("dictionary = %s, want %s", d.String(), tt.want)
			}
		})
	}
}
