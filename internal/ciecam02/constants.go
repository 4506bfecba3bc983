package ciecam02

import "fmt"

// XYZ is a CIE tristimulus value on a 0-100 scale, where Y = 100 is the
// luminance of the reference white.
type XYZ struct {
	X, Y, Z float64
}

func (v XYZ) vec() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func xyzFromVec(v Vec3) XYZ {
	return XYZ{X: v[0], Y: v[1], Z: v[2]}
}

// D65 is the CIE standard illuminant D65 reference white (2° observer).
var D65 = XYZ{X: 95.047, Y: 100, Z: 108.883}

// Surround holds the surround-dependent parameters of the model:
// F (degree of adaptation factor), C (impact of surround) and
// Nc (chromatic induction factor).
type Surround struct {
	Name string
	F    float64
	C    float64
	Nc   float64
}

// The three CIECAM02 surround presets. No other combinations are valid.
var (
	Average = Surround{Name: "average", F: 1.0, C: 0.69, Nc: 1.0}
	Dim     = Surround{Name: "dim", F: 0.9, C: 0.59, Nc: 0.95}
	Dark    = Surround{Name: "dark", F: 0.8, C: 0.525, Nc: 0.8}
)

// Surrounds lists the presets in order of decreasing surround luminance.
var Surrounds = []Surround{Average, Dim, Dark}

// ParseSurround returns the preset with the given name.
func ParseSurround(name string) (Surround, error) {
	for _, s := range Surrounds {
		if s.Name == name {
			return s, nil
		}
	}
	return Surround{}, fmt.Errorf("unknown surround %q (valid: average, dim, dark)", name)
}

func (s Surround) String() string {
	return s.Name
}

// CAT02 chromatic adaptation transform and its inverse.
var (
	cat02 = Mat3{
		{0.7328, 0.4296, -0.1624},
		{-0.7036, 1.6975, 0.0061},
		{0.0030, 0.0136, 0.9834},
	}
	cat02Inv = Mat3{
		{1.096124, -0.278869, 0.182745},
		{0.454369, 0.473533, 0.072098},
		{-0.009628, -0.005698, 1.015326},
	}
)

// Hunt-Pointer-Estévez cone fundamentals and their inverse.
var (
	hpe = Mat3{
		{0.38971, 0.68898, -0.07868},
		{-0.22981, 1.18340, 0.04641},
		{0.0, 0.0, 1.0},
	}
	hpeInv = Mat3{
		{1.910197, -1.112124, 0.201908},
		{0.370950, 0.629054, -0.000008},
		{0.0, 0.0, 1.0},
	}
)

// Combined maps between adapted cone space and HPE space.
var (
	cat02ToHPE = hpe.MulMat(cat02Inv)
	hpeToCAT02 = cat02.MulMat(hpeInv)
)

// hueSegment is one control point of the hue quadrature table.
type hueSegment struct {
	hue          float64
	eccentricity float64
	quadrature   float64
}

// uniqueHues are red, yellow, green, blue and red again, shifted by 360°
// so that hues below 20.14° fall into the last segment.
var uniqueHues = []hueSegment{
	{hue: 20.14, eccentricity: 0.8, quadrature: 0},
	{hue: 90.00, eccentricity: 0.7, quadrature: 100},
	{hue: 164.25, eccentricity: 1.0, quadrature: 200},
	{hue: 237.53, eccentricity: 1.2, quadrature: 300},
	{hue: 380.14, eccentricity: 0.8, quadrature: 400},
}
