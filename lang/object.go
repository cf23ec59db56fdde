package lang

import (
	"regexp"
	"strconv"
	"strings"
)

// SizeUnit is the unit of measurement of a [Size].
type SizeUnit uint8

const (
	Pixel SizeUnit = iota
	Point
	Centimeter
	Millimeter
	Inch
	Percentage
)

var sizeUnitSymbol = [...]string{"px", "pt", "cm", "mm", "in", "%"}

func (u SizeUnit) String() string {
	if int(u) < len(sizeUnitSymbol) {
		return sizeUnitSymbol[u]
	}

	return "px"
}

// Size is a magnitude with a unit, e.g. 10px or 2.5cm.
type Size struct {
	Value float64
	Unit  SizeUnit
}

var sizePattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)(px|pt|cm|mm|in|%)?$`)

// ParseSize parses a size. A bare number is measured in pixels.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)

	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return Size{}, ErrInvalidSize.Wrapf("%s", s)
	}

	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, ErrInvalidSize.Wrapf("%s", s)
	}

	size := Size{Value: f}

	for i, sym := range sizeUnitSymbol {
		if sym == m[2] {
			size.Unit = SizeUnit(i)
		}
	}

	return size, nil
}

func (Size) Kind() Kind { return KindSize }

func (s Size) String() string { return Number(s.Value).String() + s.Unit.String() }

func (Size) value() {}

// Sizes holds one size per side of a box.
type Sizes struct {
	Top, Right, Bottom, Left Size
}

// ParseSizes parses one, two, or four space-separated sizes: all sides,
// vertical and horizontal, or top right bottom left.
func ParseSizes(s string) (Sizes, error) {
	fields := strings.Fields(s)

	parts := make([]Size, len(fields))
	for i, f := range fields {
		size, err := ParseSize(f)
		if err != nil {
			return Sizes{}, ErrInvalidSizes.Wrap(err)
		}

		parts[i] = size
	}

	switch len(parts) {
	case 1:
		return Sizes{parts[0], parts[0], parts[0], parts[0]}, nil
	case 2:
		return Sizes{parts[0], parts[1], parts[0], parts[1]}, nil
	case 4:
		return Sizes{parts[0], parts[1], parts[2], parts[3]}, nil
	}

	return Sizes{}, ErrInvalidSizes.Wrapf("%s", s)
}

func (Sizes) Kind() Kind { return KindSizes }

func (s Sizes) String() string {
	return strings.Join([]string{
		s.Top.String(), s.Right.String(), s.Bottom.String(), s.Left.String(),
	}, " ")
}

func (Sizes) value() {}

// Range is an inclusive integer interval. Either bound may be open.
type Range struct {
	Start, End       int
	HasStart, HasEnd bool
}

var rangePattern = regexp.MustCompile(`^(\d+)?\.\.(\d+)?$`)

// ParseRange parses a range in the form a..b, ..b, a.. or ...
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)

	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return Range{}, ErrInvalidRange.Wrapf("%s", s)
	}

	var r Range

	if m[1] != "" {
		r.Start, _ = strconv.Atoi(m[1])
		r.HasStart = true
	}

	if m[2] != "" {
		r.End, _ = strconv.Atoi(m[2])
		r.HasEnd = true
	}

	return r, nil
}

// Collection expands the range into its numbers. An open start begins at 1;
// an open end cannot be expanded.
func (r Range) Collection() (Collection, error) {
	if !r.HasEnd {
		return nil, ErrNotIterable.Wrapf("open range %s", r)
	}

	start := 1
	if r.HasStart {
		start = r.Start
	}

	if r.End < start {
		return Collection{}, nil
	}

	out := make(Collection, 0, r.End-start+1)
	for i := start; i <= r.End; i++ {
		out = append(out, Number(i))
	}

	return out, nil
}

func (Range) Kind() Kind { return KindRange }

func (r Range) String() string {
	var b strings.Builder

	if r.HasStart {
		b.WriteString(strconv.Itoa(r.Start))
	}

	b.WriteString("..")

	if r.HasEnd {
		b.WriteString(strconv.Itoa(r.End))
	}

	return b.String()
}

func (Range) value() {}

// Enum is a member of a fixed set of named values.
type Enum struct {
	Name  string
	Index int
}

// ParseEnum matches s against values ignoring case, underscores and
// hyphens.
func ParseEnum(s string, values []string) (Enum, error) {
	key := normalizeEnum(s)
	for i, v := range values {
		if normalizeEnum(v) == key {
			return Enum{Name: v, Index: i}, nil
		}
	}

	return Enum{}, ErrNoSuchElement.Wrapf(
		"'%s' among values [%s]", strings.TrimSpace(s), strings.Join(values, ", "),
	)
}

func normalizeEnum(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}

		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

func (Enum) Kind() Kind { return KindEnum }

func (e Enum) String() string { return strings.ToLower(e.Name) }

func (Enum) value() {}
