package color

import (
	"fmt"
	"math"
	"strings"
)

// Notation selects a text rendering of a color.
type Notation int

const (
	NotationHex Notation = iota
	NotationRGB
	NotationOKLCH
	NotationOKLAB
)

var notationNames = []string{"hex", "rgb", "oklch", "oklab"}

func (n Notation) String() string {
	if n < 0 || int(n) >= len(notationNames) {
		return fmt.Sprintf("Notation(%d)", int(n))
	}
	return notationNames[n]
}

// ParseNotation returns the notation with the given name.
func ParseNotation(name string) (Notation, error) {
	for i, n := range notationNames {
		if strings.EqualFold(name, n) {
			return Notation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color format %q (want one of %s)", name, strings.Join(notationNames, ", "))
}

// Format renders c in the given notation.
func (c Color) Format(n Notation) string {
	switch n {
	case NotationRGB:
		return c.RGB()
	case NotationOKLCH:
		return c.OKLCH()
	case NotationOKLAB:
		return c.OKLAB()
	default:
		return c.Hex()
	}
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
// Translucent colors get a trailing alpha byte.
func (c Color) Hex() string {
	r, g, b := c.RGB255()
	if c.Alpha < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, alphaByte(c.Alpha))
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// HexBare returns the color as a hex string without leading #, e.g. "eb6f92".
func (c Color) HexBare() string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	r, g, b := c.RGB255()
	if c.Alpha < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trim(c.Alpha, 3))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// OKLCH returns the color as a CSS oklch() string, e.g. "oklch(0.628 0.2577 29.23)".
func (c Color) OKLCH() string {
	return fmt.Sprintf("oklch(%s %s %s%s)", trim(c.L, 4), trim(c.C, 4), trim(c.H, 2), alphaSuffix(c.Alpha))
}

// OKLAB returns the color as a CSS oklab() string.
func (c Color) OKLAB() string {
	l, a, b := c.OKLab()
	return fmt.Sprintf("oklab(%s %s %s%s)", trim(l, 4), trim(a, 4), trim(b, 4), alphaSuffix(c.Alpha))
}

func alphaSuffix(a float64) string {
	if a >= 1 {
		return ""
	}
	return " / " + trim(a, 3)
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, a)) * 255))
}

// trim formats v with at most prec decimals and no trailing zeros.
func trim(v float64, prec int) string {
	s := fmt.Sprintf("%.*f", prec, v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
