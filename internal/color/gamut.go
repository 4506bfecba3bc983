package color

import (
	"fmt"
	"math"
)

// MaxChroma is the largest chroma Clamp lets through before the sRGB
// gamut search.
const MaxChroma = 0.5

// gamutEpsilon absorbs conversion noise at the edges of the sRGB cube.
const gamutEpsilon = 1e-6

// GamutError reports a color that cannot be mapped into sRGB.
type GamutError struct {
	Color Color
	Msg   string
}

func (e *GamutError) Error() string {
	return fmt.Sprintf("gamut clamp %s: %s", e.Color, e.Msg)
}

// InGamut reports whether c is displayable in sRGB.
func (c Color) InGamut() bool {
	if !c.finite() {
		return false
	}
	r, g, b := c.SRGB()
	for _, v := range []float64{r, g, b} {
		if v < -gamutEpsilon || v > 1+gamutEpsilon {
			return false
		}
	}
	return true
}

// Clamp maps c to a displayable sRGB color. Lightness is clamped to
// [0, 1], chroma to [0, MaxChroma] and the hue normalised to [0, 360).
// If the result is still outside sRGB, chroma is reduced at constant
// lightness and hue until it fits. The returned color is always opaque.
func Clamp(c Color) (Color, error) {
	if !c.finite() {
		return Color{}, &GamutError{Color: c, Msg: "components must be finite"}
	}
	out := Color{
		L:     math.Min(1, math.Max(0, c.L)),
		C:     math.Min(MaxChroma, math.Max(0, c.C)),
		H:     normalizeHue(c.H),
		Alpha: 1,
	}
	if out.InGamut() {
		return out, nil
	}

	lo, hi := 0.0, out.C
	for range 40 {
		mid := (lo + hi) / 2
		if (Color{L: out.L, C: mid, H: out.H, Alpha: 1}).InGamut() {
			lo = mid
		} else {
			hi = mid
		}
	}
	out.C = lo
	if !out.InGamut() {
		return Color{}, &GamutError{Color: c, Msg: "no displayable chroma at this lightness"}
	}
	return out, nil
}
