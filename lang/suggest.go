package lang

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// Suggest returns up to limit names from candidates that resemble name,
// best match first. If nothing matches name as a whole, names sharing its
// leading characters are tried.
func Suggest(name string, candidates []string, limit int) []string {
	slices.Sort(candidates)

	for n := len(name); n > 0; n = min(n-1, 2) {
		matches := fuzzy.Find(name[:n], candidates)
		if len(matches) == 0 {
			if n <= 2 {
				break
			}

			continue
		}

		out := make([]string, 0, min(limit, len(matches)))
		for _, m := range matches {
			if len(out) == limit {
				break
			}

			if m.Str != name {
				out = append(out, m.Str)
			}
		}

		return out
	}

	return nil
}
