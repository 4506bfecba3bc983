package color

import "math"

// Lighten returns c with its OKLCH lightness raised by amount, capped at 1.
func Lighten(c Color, amount float64) Color {
	c.L = math.Min(1, c.L+amount)
	return c
}

// Darken returns c with its OKLCH lightness lowered by amount, floored at 0.
func Darken(c Color, amount float64) Color {
	c.L = math.Max(0, c.L-amount)
	return c
}

// Mix blends a toward b in OKLAB. A weight of 0 returns a, 1 returns b.
func Mix(a, b Color, weight float64) Color {
	weight = math.Min(1, math.Max(0, weight))
	l1, a1, b1 := a.OKLab()
	l2, a2, b2 := b.OKLab()

	out := FromOKLab(
		l1+(l2-l1)*weight,
		a1+(a2-a1)*weight,
		b1+(b2-b1)*weight,
	)
	out.Alpha = a.Alpha + (b.Alpha-a.Alpha)*weight
	return out
}
