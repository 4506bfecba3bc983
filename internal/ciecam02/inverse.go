package ciecam02

import "math"

// Inverse recovers the tristimulus value that produces the lightness,
// chroma and hue in jch when viewed under vc. It is the algebraic inverse
// of Forward for the same white point and viewing conditions.
func Inverse(jch JCh, white XYZ, vc ViewingConditions) (XYZ, error) {
	const op = "inverse"
	if !finite(jch.J, jch.C, jch.H, white.X, white.Y, white.Z) {
		return XYZ{}, &TransformError{Op: op, Stage: "input", Msg: "correlates must be finite"}
	}
	if jch.J < 0 || jch.C < 0 {
		return XYZ{}, &TransformError{Op: op, Stage: "input", Msg: "lightness and chroma must not be negative"}
	}

	h := normalizeHue(jch.H)
	hRad := h * math.Pi / 180
	hSin, hCos := math.Sincos(hRad)

	A := vc.Aw * math.Pow(jch.J/100, 1/(vc.Surround.C*vc.Z))

	t := 0.0
	if jch.C > 0 {
		if jch.J == 0 {
			return XYZ{}, &TransformError{Op: op, Stage: "chroma", Msg: "non-zero chroma at zero lightness"}
		}
		t = math.Pow(jch.C/(math.Sqrt(jch.J/100)*math.Pow(1.64-math.Pow(0.29, vc.N), 0.73)), 1/0.9)
	}

	et := eccentricity(h)
	p1 := (50000.0 / 13.0) * vc.Surround.Nc * vc.Ncb * et
	p2 := A/vc.Nbb + 0.305

	denom := 23*p1 + 11*t*hCos + 108*t*hSin
	gamma := 23 * p2 * t / denom
	if !finite(gamma) || denom == 0 {
		return XYZ{}, &TransformError{Op: op, Stage: "opponent", Msg: "degenerate hue/chroma combination"}
	}
	a := gamma * hCos
	b := gamma * hSin

	ra := Vec3{
		(460*p2 + 451*a + 288*b) / 1403,
		(460*p2 - 891*a - 261*b) / 1403,
		(460*p2 - 220*a - 6300*b) / 1403,
	}

	rgbP := decompress(ra, vc.Fl)
	if !finite(rgbP[0], rgbP[1], rgbP[2]) {
		return XYZ{}, &TransformError{Op: op, Stage: "compression", Msg: "cone response out of range"}
	}

	rgbW := cat02.Mul(white.vec())
	gains := adaptationFactors(rgbW, white.Y, vc.D)
	rgb := unadapt(hpeToCAT02.Mul(rgbP), gains)

	xyz := xyzFromVec(cat02Inv.Mul(rgb))
	if !finite(xyz.X, xyz.Y, xyz.Z) {
		return XYZ{}, &TransformError{Op: op, Stage: "adaptation", Msg: "tristimulus value is not finite"}
	}
	return xyz, nil
}
