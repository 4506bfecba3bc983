package ciecam02

import "math"

// Appearance holds the CIECAM02 appearance correlates of a stimulus.
type Appearance struct {
	J float64 // lightness, 0-100
	C float64 // chroma
	H float64 // hue angle in degrees, [0, 360)
	M float64 // colorfulness
	S float64 // saturation
	Q float64 // brightness

	// HueQuadrature is the hue composition H on the 0-400 red-yellow-green-blue
	// scale.
	HueQuadrature float64
}

// JCh is the subset of correlates consumed by Inverse.
type JCh struct {
	J, C, H float64
}

// JCh returns the lightness, chroma and hue of a.
func (a Appearance) JCh() JCh {
	return JCh{J: a.J, C: a.C, H: a.H}
}

// Forward computes the appearance correlates of xyz viewed under vc,
// relative to the reference white.
func Forward(xyz, white XYZ, vc ViewingConditions) (Appearance, error) {
	const op = "forward"
	if !finite(xyz.X, xyz.Y, xyz.Z, white.X, white.Y, white.Z) {
		return Appearance{}, &TransformError{Op: op, Stage: "input", Msg: "tristimulus values must be finite"}
	}

	// Chromatic adaptation.
	rgbW := cat02.Mul(white.vec())
	gains := adaptationFactors(rgbW, white.Y, vc.D)
	rgbC := adapt(cat02.Mul(xyz.vec()), gains)

	// Cone responses and compression.
	ra := compress(cat02ToHPE.Mul(rgbC), vc.Fl)
	if !finite(ra[0], ra[1], ra[2]) {
		return Appearance{}, &TransformError{Op: op, Stage: "compression", Msg: "cone response is not finite"}
	}

	// Opponent dimensions.
	a := ra[0] - 12*ra[1]/11 + ra[2]/11
	b := (ra[0] + ra[1] - 2*ra[2]) / 9

	h := normalizeHue(math.Atan2(b, a) * 180 / math.Pi)
	et := eccentricity(h)

	A := achromaticResponse(ra, vc.Nbb)
	if A < 0 && A > -1e-9 {
		// rounding noise around black
		A = 0
	}
	J := 100 * math.Pow(A/vc.Aw, vc.Surround.C*vc.Z)
	if !finite(J) {
		return Appearance{}, &TransformError{Op: op, Stage: "lightness", Msg: "achromatic response is negative"}
	}
	Q := (4 / vc.Surround.C) * math.Sqrt(J/100) * (vc.Aw + 4) * vc.FlRoot

	t := (50000.0 / 13.0) * vc.Surround.Nc * vc.Ncb * et * math.Hypot(a, b) /
		(ra[0] + ra[1] + 21*ra[2]/20)
	C := math.Pow(t, 0.9) * math.Sqrt(J/100) * math.Pow(1.64-math.Pow(0.29, vc.N), 0.73)
	M := C * vc.FlRoot
	s := 0.0
	if Q > 0 {
		s = 100 * math.Sqrt(M/Q)
	}

	if !finite(t, C, M, s, Q) {
		return Appearance{}, &TransformError{Op: op, Stage: "chroma", Msg: "chromatic correlates are not finite"}
	}

	return Appearance{
		J:             J,
		C:             C,
		H:             h,
		M:             M,
		S:             s,
		Q:             Q,
		HueQuadrature: hueQuadrature(h),
	}, nil
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

// shiftHue moves hues below the first unique hue up by 360° so that every
// hue lands inside the quadrature table.
func shiftHue(h float64) float64 {
	if h < uniqueHues[0].hue {
		return h + 360
	}
	return h
}

// eccentricity returns the eccentricity factor et for hue h in degrees.
func eccentricity(h float64) float64 {
	hp := shiftHue(h)
	return 0.25 * (math.Cos(hp*math.Pi/180+2) + 3.8)
}

// hueQuadrature interpolates hue composition between the two unique hues
// that bracket h.
func hueQuadrature(h float64) float64 {
	hp := shiftHue(h)
	i := 0
	for i < len(uniqueHues)-2 && hp >= uniqueHues[i+1].hue {
		i++
	}
	lo, hi := uniqueHues[i], uniqueHues[i+1]
	p := (hp - lo.hue) / lo.eccentricity
	q := (hi.hue - hp) / hi.eccentricity
	return lo.quadrature + 100*p/(p+q)
}
