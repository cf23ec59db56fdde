package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag values from a
// YAML document.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// The document is converted as follows:
//   - Top-level keys name flags, with hyphens or underscores
//   - Nested mappings are flattened by joining keys with a hyphen, so that
//     a "log" mapping with a "level" key configures --log-level
//   - Sequences become comma-separated lists
//   - Numbers and booleans are passed as their text form
//
// Example config file:
//
//	log:
//	  level: debug
//	  format: json
//	strict: true
//	lib:
//	  - ~/.local/share/dotcall
//
// Command-line flags override config file values. An empty document
// configures nothing.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	values := make(config)
	values.flatten("", doc)

	return values, nil
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]string

func (r config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if nested, ok := value.(map[string]any); ok {
			r.flatten(name, nested)

			continue
		}

		r[name] = scalar(value)
	}
}

// scalar returns the text form of a YAML value as Kong expects to parse it.
func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = scalar(item)
		}

		return strings.Join(items, ",")
	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return value, nil
	}

	// Not found; Kong uses defaults.
	return nil, nil
}
