package lang

import (
	"regexp"
	"strings"
)

// listItem is an entry of a Markdown list: its text and nested items.
type listItem struct {
	text     string
	children listItems
}

type listItems []*listItem

var listMarker = regexp.MustCompile(`^([ \t]*)(?:[-*+]|\d+[.)])(?:[ \t]+|$)`)

// parseList parses a Markdown bullet or numbered list. Nesting follows
// indentation. It reports false if text is not entirely a list.
func parseList(text string) (listItems, bool) {
	type level struct {
		indent int
		items  *listItems
	}

	var (
		root  listItems
		stack = []level{{indent: -1, items: &root}}
		last  *listItem
	)

	for _, line := range strings.Split(text, "\n") {
		if isBlank(line) {
			continue
		}

		m := listMarker.FindStringSubmatch(line)
		if m == nil {
			// Continuation of the previous item.
			if last == nil {
				return nil, false
			}

			last.text += "\n" + strings.TrimSpace(line)

			continue
		}

		indent := len(strings.ReplaceAll(m[1], "\t", "    "))
		for len(stack) > 1 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		item := &listItem{text: strings.TrimSpace(line[len(m[0]):])}
		top := stack[len(stack)-1].items
		*top = append(*top, item)
		stack = append(stack, level{indent: indent, items: &item.children})
		last = item
	}

	return root, len(root) > 0
}

// collection converts the list to values. Leaves are Dynamic. An item
// holding only a nested list becomes a nested collection; an item with
// both text and a nested list becomes a pair of the two.
func (items listItems) collection() Collection {
	out := make(Collection, 0, len(items))

	for _, item := range items {
		text := item.text

		// Compact nesting: "- - a" is an item whose text is itself a list.
		if nested, ok := parseList(text); ok && listMarker.MatchString(text) {
			out = append(out, append(nested, item.children...).collection())

			continue
		}

		switch {
		case len(item.children) == 0:
			out = append(out, NewDynamic(text))
		case text == "" || text == ":":
			out = append(out, item.children.collection())
		default:
			out = append(out, Pair{
				First:  NewDynamic(text),
				Second: item.children.collection(),
			})
		}
	}

	return out
}

// dictionary converts a list of "key: value" items, or "key" items with a
// nested list, into a dictionary.
func (items listItems) dictionary() (*Dictionary, bool) {
	d := NewDictionary()

	for _, item := range items {
		if len(item.children) > 0 {
			key := strings.TrimSuffix(item.text, ":")
			if key == "" {
				return nil, false
			}

			if nested, ok := item.children.dictionary(); ok {
				d.Set(key, nested)
			} else {
				d.Set(key, item.children.collection())
			}

			continue
		}

		key, value, ok := strings.Cut(item.text, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, false
		}

		d.Set(strings.TrimSpace(key), NewDynamic(strings.TrimSpace(value)))
	}

	return d, true
}
