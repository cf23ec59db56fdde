package lang

import (
	"slices"
	"testing"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		candidates []string
		limit      int
		want       []string // Every entry must be suggested
		count      int
	}{
		{"typo", "summ", []string{"sum", "multiply", "divide"}, 3, []string{"sum"}, 1},
		{"prefix", "su", []string{"sum", "subtract", "divide"}, 3, []string{"sum", "subtract"}, 2},
		{"subsequence", "fech", []string{"foreach", "filter"}, 3, []string{"foreach"}, 1},
		{"limit", "a", []string{"ab", "ac", "ad", "ae"}, 2, nil, 2},
		{"exact name excluded", "sum", []string{"sum"}, 3, nil, 0},
		{"nothing close", "xyz", []string{"sum", "pow"}, 3, nil, 0},
		{"no candidates", "sum", nil, 3, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.input, tt.candidates, tt.limit)

			if len(got) != tt.count {
				t.Errorf("Suggest(%q) = %v, want %d suggestions", tt.input, got, tt.count)
			}

			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("Suggest(%q) = %v, missing %q", tt.input, got, w)
				}
			}
		})
	}
}
