package lang

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with an alpha channel in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

var colorFuncPattern = regexp.MustCompile(`^(rgba|rgb|hsl|hsv)\((.*)\)$`)

// ParseColor parses a color in hexadecimal (#RRGGBB or #RGB), named, rgb(),
// rgba(), hsl() or hsv() notation. Hue wraps modulo 360; saturation,
// lightness and value are percentages.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, ErrInvalidColor.Wrapf("%s", s)
		}

		return fromColorful(c, 1), nil
	}

	if s == "transparent" {
		return Color{}, nil
	}

	if hex, ok := namedColors[s]; ok {
		c, _ := colorful.Hex(hex)

		return fromColorful(c, 1), nil
	}

	m := colorFuncPattern.FindStringSubmatch(strings.ReplaceAll(s, " ", ""))
	if m == nil {
		return Color{}, ErrInvalidColor.Wrapf("%s", s)
	}

	args := strings.Split(m[2], ",")

	want := 3
	if m[1] == "rgba" {
		want = 4
	}

	if len(args) != want {
		return Color{}, ErrInvalidColor.Wrapf(
			"%s expects %d components: %s", m[1], want, s,
		)
	}

	switch m[1] {
	case "rgb", "rgba":
		var ch [3]uint8

		for i := range ch {
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 || n > 255 {
				return Color{}, ErrInvalidColor.Wrapf(
					"channel %q out of range [0, 255] in %s", args[i], s,
				)
			}

			ch[i] = uint8(n)
		}

		alpha := 1.0

		if want == 4 {
			a, err := strconv.ParseFloat(args[3], 64)
			if err != nil || a < 0 || a > 1 {
				return Color{}, ErrInvalidColor.Wrapf(
					"alpha %q out of range [0, 1] in %s", args[3], s,
				)
			}

			alpha = a
		}

		return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil

	default:
		h, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Color{}, ErrInvalidColor.Wrapf("hue %q in %s", args[0], s)
		}

		h = math.Mod(h, 360)
		if h < 0 {
			h += 360
		}

		var pct [2]float64

		for i := range pct {
			v, err := strconv.ParseFloat(strings.TrimSuffix(args[i+1], "%"), 64)
			if err != nil || v < 0 || v > 100 {
				return Color{}, ErrInvalidColor.Wrapf(
					"component %q out of range [0, 100] in %s", args[i+1], s,
				)
			}

			pct[i] = v / 100
		}

		if m[1] == "hsl" {
			return fromColorful(colorful.Hsl(h, pct[0], pct[1]), 1), nil
		}

		return fromColorful(colorful.Hsv(h, pct[0], pct[1]), 1), nil
	}
}

func fromColorful(c colorful.Color, alpha float64) Color {
	r, g, b := c.Clamped().RGB255()

	return Color{R: r, G: g, B: b, A: alpha}
}

// Hex returns the #rrggbb form of c, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (Color) Kind() Kind { return KindColor }

func (c Color) String() string {
	if c.A >= 1 {
		return c.Hex()
	}

	return fmt.Sprintf(
		"rgba(%d, %d, %d, %s)",
		c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64),
	)
}

func (Color) value() {}

var namedColors = map[string]string{
	"aqua":       "#00ffff",
	"black":      "#000000",
	"blue":       "#0000ff",
	"brown":      "#a52a2a",
	"crimson":    "#dc143c",
	"cyan":       "#00ffff",
	"darkblue":   "#00008b",
	"darkgray":   "#a9a9a9",
	"darkgreen":  "#006400",
	"darkred":    "#8b0000",
	"fuchsia":    "#ff00ff",
	"gold":       "#ffd700",
	"gray":       "#808080",
	"green":      "#008000",
	"grey":       "#808080",
	"indigo":     "#4b0082",
	"ivory":      "#fffff0",
	"khaki":      "#f0e68c",
	"lavender":   "#e6e6fa",
	"lightblue":  "#add8e6",
	"lightgray":  "#d3d3d3",
	"lightgreen": "#90ee90",
	"lime":       "#00ff00",
	"magenta":    "#ff00ff",
	"maroon":     "#800000",
	"navy":       "#000080",
	"olive":      "#808000",
	"orange":     "#ffa500",
	"orchid":     "#da70d6",
	"pink":       "#ffc0cb",
	"purple":     "#800080",
	"red":        "#ff0000",
	"salmon":     "#fa8072",
	"silver":     "#c0c0c0",
	"skyblue":    "#87ceeb",
	"steelblue":  "#4682b4",
	"tan":        "#d2b48c",
	"teal":       "#008080",
	"tomato":     "#ff6347",
	"turquoise":  "#40e0d0",
	"violet":     "#ee82ee",
	"white":      "#ffffff",
	"yellow":     "#ffff00",
}
