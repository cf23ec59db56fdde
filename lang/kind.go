package lang

//go:generate go tool stringer --linecomment --type Kind,DocumentType --output kind_string.go

import "strings"

// Kind identifies a [Value] variant. Parameters declare the Kind their
// argument is coerced to.
type Kind uint8

const (
	KindDynamic    Kind = iota // Dynamic
	KindString                 // String
	KindNumber                 // Number
	KindBoolean                // Boolean
	KindContent                // MarkdownContent
	KindCollection             // Iterable
	KindDictionary             // Dictionary
	KindPair                   // Pair
	KindLambda                 // Lambda
	KindVoid                   // Void
	KindNone                   // None
	KindSize                   // Size
	KindSizes                  // Sizes
	KindColor                  // Color
	KindRange                  // Range
	KindEnum                   // Enum
)

// DocumentType is the kind of document being compiled. Native functions may
// restrict the document types they are valid for.
type DocumentType uint8

const (
	DocumentPlain  DocumentType = iota // plain
	DocumentPaged                      // paged
	DocumentSlides                     // slides
	DocumentDocs                       // docs
)

// DocumentTypes lists every document type in declaration order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentPlain,
		DocumentPaged,
		DocumentSlides,
		DocumentDocs,
	}
}

// ParseDocumentType returns the document type named s, ignoring case.
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range DocumentTypes() {
		if t.String() == s {
			return t, nil
		}
	}

	names := make([]string, 0, 4)
	for _, t := range DocumentTypes() {
		names = append(names, t.String())
	}

	return DocumentPlain, ErrNoSuchElement.Wrapf(
		"'%s' among values [%s]", s, strings.Join(names, ", "),
	)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DocumentType) UnmarshalText(text []byte) error {
	v, err := ParseDocumentType(string(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}
