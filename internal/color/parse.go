package color

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseError reports a string that is not a recognised color.
type ParseError struct {
	Input string
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid color %q: %s: %v", e.Input, e.Msg, e.Err)
	}
	return fmt.Sprintf("invalid color %q: %s", e.Input, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	number = `([-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:e[-+]?[0-9]+)?%?)`
	sep    = `\s*[,\s]\s*`
	alpha  = `(?:\s*[,/]\s*` + number + `)?`

	rgbPattern   = regexp.MustCompile(`^rgba?\(\s*` + number + sep + number + sep + number + alpha + `\s*\)$`)
	oklchPattern = regexp.MustCompile(`^oklch\(\s*` + number + `\s+` + number + `\s+` + number + `(?:deg)?` + alpha + `\s*\)$`)
	oklabPattern = regexp.MustCompile(`^oklab\(\s*` + number + `\s+` + number + `\s+` + number + alpha + `\s*\)$`)
)

// Parse parses a CSS-style color string. Supported forms are hex
// (#rgb, #rrggbb, #rrggbbaa, with or without the #), rgb()/rgba(),
// oklch() and oklab().
func Parse(s string) (Color, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(in, "rgb"):
		return parseRGB(s, in)
	case strings.HasPrefix(in, "oklch"):
		return parseOKLCH(s, in)
	case strings.HasPrefix(in, "oklab"):
		return parseOKLAB(s, in)
	default:
		return ParseHex(s)
	}
}

// ParseHex parses a hex color string like "#eb6f92" into a Color.
// A trailing pair of digits in the 8-digit form is the alpha channel.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	a := 1.0
	switch len(digits) {
	case 3, 6:
	case 8:
		v, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return Color{}, &ParseError{Input: s, Msg: "bad alpha digits", Err: err}
		}
		a = float64(v) / 255
		digits = digits[:6]
	default:
		return Color{}, &ParseError{Input: s, Msg: "must be 3, 6 or 8 hex digits"}
	}

	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return Color{}, &ParseError{Input: s, Msg: "invalid hex digit"}
		}
	}

	rgb, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, &ParseError{Input: s, Msg: "bad hex color", Err: err}
	}
	c := fromColorful(rgb)
	c.Alpha = a
	return c, nil
}

func parseRGB(orig, in string) (Color, error) {
	m := rgbPattern.FindStringSubmatch(in)
	if m == nil {
		return Color{}, &ParseError{Input: orig, Msg: "expected rgb(r, g, b) or rgba(r, g, b, a)"}
	}
	var ch [3]float64
	for i := range ch {
		v, err := parseNumber(m[i+1], 255)
		if err != nil {
			return Color{}, &ParseError{Input: orig, Msg: "bad channel", Err: err}
		}
		if v < 0 || v > 255 {
			return Color{}, &ParseError{Input: orig, Msg: "channel out of range 0-255"}
		}
		ch[i] = v / 255
	}
	a, err := parseAlpha(m[4])
	if err != nil {
		return Color{}, &ParseError{Input: orig, Msg: "bad alpha", Err: err}
	}
	c := fromColorful(colorful.Color{R: ch[0], G: ch[1], B: ch[2]})
	c.Alpha = a
	return c, nil
}

func parseOKLCH(orig, in string) (Color, error) {
	m := oklchPattern.FindStringSubmatch(in)
	if m == nil {
		return Color{}, &ParseError{Input: orig, Msg: "expected oklch(L C H [/ alpha])"}
	}
	l, err := parseNumber(m[1], 1)
	if err != nil {
		return Color{}, &ParseError{Input: orig, Msg: "bad lightness", Err: err}
	}
	c, err := parseNumber(m[2], 0.4)
	if err != nil {
		return Color{}, &ParseError{Input: orig, Msg: "bad chroma", Err: err}
	}
	h, err := parseNumber(m[3], 1)
	if err != nil {
		return Color{}, &ParseError{Input: orig, Msg: "bad hue", Err: err}
	}
	a, err := parseAlpha(m[4])
	if err != nil {
		return Color{}, &ParseError{Input: orig, Msg: "bad alpha", Err: err}
	}
	if c < 0 {
		return Color{}, &ParseError{Input: orig, Msg: "chroma must not be negative"}
	}
	return Color{L: l, C: c, H: normalizeHue(h), Alpha: a}, nil
}

func parseOKLAB(orig, in string) (Color, error) {
	m := oklabPattern.FindStringSubmatch(in)
	if m == nil {
		return Color{}, &ParseError{Input: orig, Msg: "expected oklab(L a b [/ alpha])"}
	}
	var v [3]float64
	scales := [3]float64{1, 0.4, 0.4}
	for i := range v {
		f, err := parseNumber(m[i+1], scales[i])
		if err != nil {
			return Color{}, &ParseError{Input: orig, Msg: "bad component", Err: err}
		}
		v[i] = f
	}
	a, err := parseAlpha(m[4])
	if err != nil {
		return Color{}, &ParseError{Input: orig, Msg: "bad alpha", Err: err}
	}
	c := FromOKLab(v[0], v[1], v[2])
	c.Alpha = a
	return c, nil
}

// parseNumber parses a plain number or a percentage, where 100% maps to
// full.
func parseNumber(s string, full float64) (float64, error) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		return v / 100 * full, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseAlpha(s string) (float64, error) {
	if s == "" {
		return 1, nil
	}
	a, err := parseNumber(s, 1)
	if err != nil {
		return 0, err
	}
	if a < 0 || a > 1 {
		return 0, fmt.Errorf("alpha %v out of range 0-1", a)
	}
	return a, nil
}
