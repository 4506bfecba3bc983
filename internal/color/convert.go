package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// achromatic is the chroma below which a color is treated as neutral gray.
const achromatic = 1e-7

// XYZ returns the CIE XYZ tristimulus value of c on a 0-100 scale,
// relative to the D65 white. Out-of-gamut colors are converted without
// clamping.
func (c Color) XYZ() (x, y, z float64) {
	x, y, z = colorful.LinearRgbToXyz(c.linearRGB())
	return x * 100, y * 100, z * 100
}

// FromXYZ converts a D65 tristimulus value on a 0-100 scale to an opaque
// OKLCH color.
func FromXYZ(x, y, z float64) Color {
	return fromLinearRGB(colorful.XyzToLinearRgb(x/100, y/100, z/100))
}

// WhiteXYZ returns the tristimulus value of sRGB white, the reference
// white of XYZ and FromXYZ.
func WhiteXYZ() (x, y, z float64) {
	x, y, z = colorful.LinearRgbToXyz(1, 1, 1)
	return x * 100, y * 100, z * 100
}

// OKLab returns the Cartesian OKLAB components of c.
func (c Color) OKLab() (l, a, b float64) {
	s, co := math.Sincos(c.H * math.Pi / 180)
	return c.L, c.C * co, c.C * s
}

// FromOKLab converts OKLAB components to an opaque OKLCH color.
func FromOKLab(l, a, b float64) Color {
	c := math.Hypot(a, b)
	h := 0.0
	if c >= achromatic {
		h = normalizeHue(math.Atan2(b, a) * 180 / math.Pi)
	} else {
		c = 0
	}
	return Color{L: l, C: c, H: h, Alpha: 1}
}

// FromRGB converts 8-bit sRGB channels to an opaque color.
func FromRGB(r, g, b uint8) Color {
	return fromColorful(colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255})
}

// SRGB returns the gamma-encoded sRGB channels of c in [0, 1] for colors
// inside the gamut. Channels of out-of-gamut colors fall outside that range.
func (c Color) SRGB() (r, g, b float64) {
	col := c.colorful()
	return col.R, col.G, col.B
}

// RGB255 returns the 8-bit sRGB channels of c, clipped to the gamut.
func (c Color) RGB255() (r, g, b uint8) {
	return c.colorful().Clamped().RGB255()
}

func (c Color) colorful() colorful.Color {
	return colorful.LinearRgb(c.linearRGB())
}

func fromColorful(col colorful.Color) Color {
	return fromLinearRGB(col.LinearRgb())
}

// linearRGB and fromLinearRGB map between OKLAB and linear sRGB and are
// inverses of each other.
func (c Color) linearRGB() (r, g, b float64) {
	l, a, bb := c.OKLab()
	l_ := l + 0.3963377774*a + 0.2158037573*bb
	m_ := l - 0.1055613458*a - 0.0638541728*bb
	s_ := l - 0.0894841775*a - 1.2914855480*bb

	lc, mc, sc := l_*l_*l_, m_*m_*m_, s_*s_*s_

	r = 4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g = -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	b = -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc
	return r, g, b
}

func fromLinearRGB(r, g, b float64) Color {
	l_ := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m_ := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s_ := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return FromOKLab(
		0.2104542553*l_+0.7936177850*m_-0.0040720468*s_,
		1.9779984951*l_-2.4285922050*m_+0.4505937099*s_,
		0.0259040371*l_+0.7827717662*m_-0.8086757660*s_,
	)
}

// normalizeHue maps an angle in degrees into [0, 360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
