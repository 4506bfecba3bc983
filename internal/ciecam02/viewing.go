package ciecam02

import "math"

// ViewingConditions holds the parameters under which a color is perceived,
// together with everything derived from them. Values are immutable; build
// them with NewViewingConditions.
type ViewingConditions struct {
	// La is the adapting luminance in cd/m².
	La float64
	// Yb is the relative luminance of the background.
	Yb       float64
	Surround Surround

	K      float64
	Fl     float64 // luminance-level adaptation factor
	FlRoot float64 // Fl^0.25
	N      float64 // Yb / Yw
	Nbb    float64 // brightness induction factor
	Ncb    float64 // chromatic induction factor, equal to Nbb
	Z      float64 // base exponential nonlinearity
	D      float64 // degree of adaptation, in [0, 1]
	Aw     float64 // achromatic response to white

	// WhiteAdapted holds the cone responses to the white point after
	// D-weighted von Kries adaptation.
	WhiteAdapted Vec3
}

// NewViewingConditions derives viewing conditions from the adapting
// luminance la, the background relative luminance yb, the reference white
// and the surround. It fails with a *ComputationError when la, yb or
// white.Y is not positive.
func NewViewingConditions(la, yb float64, white XYZ, s Surround) (ViewingConditions, error) {
	const op = "viewing conditions"
	switch {
	case !finite(la, yb, white.X, white.Y, white.Z):
		return ViewingConditions{}, &ComputationError{Op: op, Msg: "inputs must be finite"}
	case la <= 0:
		return ViewingConditions{}, &ComputationError{Op: op, Msg: "adapting luminance must be positive"}
	case yb <= 0:
		return ViewingConditions{}, &ComputationError{Op: op, Msg: "background luminance must be positive"}
	case white.Y <= 0:
		return ViewingConditions{}, &ComputationError{Op: op, Msg: "white point luminance must be positive"}
	}

	la5 := 5 * la
	k := 1 / (la5 + 1)
	k4 := k * k * k * k
	k4m1 := 1 - k4
	fl := 0.2*k4*la5 + 0.1*k4m1*k4m1*math.Cbrt(la5)

	n := yb / white.Y
	nbb := 0.725 * math.Pow(n, -0.2)
	z := 1.48 + math.Sqrt(n)

	d := s.F * (1 - (1/3.6)*math.Exp((-la-42)/92))
	d = max(0, min(1, d))

	vc := ViewingConditions{
		La:       la,
		Yb:       yb,
		Surround: s,
		K:        k,
		Fl:       fl,
		FlRoot:   math.Pow(fl, 0.25),
		N:        n,
		Nbb:      nbb,
		Ncb:      nbb,
		Z:        z,
		D:        d,
	}

	rgbW := cat02.Mul(white.vec())
	vc.WhiteAdapted = adapt(rgbW, adaptationFactors(rgbW, white.Y, d))

	aw := compress(cat02ToHPE.Mul(vc.WhiteAdapted), fl)
	vc.Aw = achromaticResponse(aw, nbb)

	if !finite(vc.Fl, vc.FlRoot, vc.Nbb, vc.Z, vc.Aw, vc.WhiteAdapted[0], vc.WhiteAdapted[1], vc.WhiteAdapted[2]) {
		return ViewingConditions{}, &ComputationError{Op: op, Msg: "derived parameters are not finite"}
	}
	if vc.Aw <= 0 {
		return ViewingConditions{}, &ComputationError{Op: op, Msg: "achromatic response to white must be positive"}
	}
	return vc, nil
}

// adaptationFactors returns the per-channel von Kries gains Yw·D/Rw + 1 - D
// for the white point cone responses rgbW.
func adaptationFactors(rgbW Vec3, yw, d float64) Vec3 {
	return Vec3{
		yw*d/rgbW[0] + 1 - d,
		yw*d/rgbW[1] + 1 - d,
		yw*d/rgbW[2] + 1 - d,
	}
}

func adapt(rgb, gains Vec3) Vec3 {
	return Vec3{rgb[0] * gains[0], rgb[1] * gains[1], rgb[2] * gains[2]}
}

func unadapt(rgb, gains Vec3) Vec3 {
	return Vec3{rgb[0] / gains[0], rgb[1] / gains[1], rgb[2] / gains[2]}
}

// compress applies the signed post-adaptation nonlinear response
// compression to each HPE component.
func compress(v Vec3, fl float64) Vec3 {
	var r Vec3
	for i, c := range v {
		x := math.Pow(fl*math.Abs(c)/100, 0.42)
		r[i] = math.Copysign(400*x/(x+27.13), c) + 0.1
	}
	return r
}

// decompress inverts compress. Components whose magnitude leaves the
// compressed range of (-399.9, 400.1) produce NaN.
func decompress(v Vec3, fl float64) Vec3 {
	var r Vec3
	for i, c := range v {
		d := c - 0.1
		ad := math.Abs(d)
		if ad >= 400 {
			r[i] = math.NaN()
			continue
		}
		base := 27.13 * ad / (400 - ad)
		r[i] = math.Copysign((100/fl)*math.Pow(base, 1/0.42), d)
	}
	return r
}

func achromaticResponse(ra Vec3, nbb float64) float64 {
	return (2*ra[0] + ra[1] + ra[2]/20 - 0.305) * nbb
}
