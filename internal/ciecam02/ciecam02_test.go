package ciecam02

import (
	"errors"
	"math"
	"testing"
)

func expect(t *testing.T, name string, want, got, tol float64) {
	t.Helper()
	if math.Abs(want-got) > tol {
		t.Errorf("%s = %f, want %f (tol %g)", name, got, want, tol)
	}
}

func mustConditions(t *testing.T, la, yb float64, white XYZ, s Surround) ViewingConditions {
	t.Helper()
	vc, err := NewViewingConditions(la, yb, white, s)
	if err != nil {
		t.Fatalf("NewViewingConditions(%v, %v) error: %v", la, yb, err)
	}
	return vc
}

func TestNewViewingConditions(t *testing.T) {
	vc := mustConditions(t, 318.31, 20, XYZ{95.05, 100, 108.88}, Average)

	expect(t, "N", 0.2, vc.N, 1e-12)
	expect(t, "Fl", 1.16754, vc.Fl, 1e-4)
	expect(t, "Nbb", 1.000304, vc.Nbb, 1e-5)
	expect(t, "Ncb", vc.Nbb, vc.Ncb, 0)
	expect(t, "Z", 1.927213, vc.Z, 1e-5)
	expect(t, "D", 0.994468, vc.D, 1e-5)
	expect(t, "FlRoot", math.Pow(vc.Fl, 0.25), vc.FlRoot, 1e-12)
	if vc.Aw <= 0 {
		t.Errorf("Aw = %f, want positive", vc.Aw)
	}
}

func TestNewViewingConditions_DegreeOfAdaptationClamped(t *testing.T) {
	for _, s := range Surrounds {
		t.Run(s.Name, func(t *testing.T) {
			for _, la := range []float64{0.001, 1, 64, 1e6} {
				vc := mustConditions(t, la, 20, D65, s)
				if vc.D < 0 || vc.D > 1 {
					t.Errorf("La=%v: D = %f, want within [0, 1]", la, vc.D)
				}
			}
		})
	}
}

func TestNewViewingConditions_Errors(t *testing.T) {
	tests := []struct {
		name  string
		la    float64
		yb    float64
		white XYZ
	}{
		{"zero adapting luminance", 0, 20, D65},
		{"negative adapting luminance", -1, 20, D65},
		{"zero background", 64, 0, D65},
		{"negative background", 64, -5, D65},
		{"zero white luminance", 64, 20, XYZ{95, 0, 108}},
		{"NaN luminance", math.NaN(), 20, D65},
		{"infinite background", 64, math.Inf(1), D65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewViewingConditions(tt.la, tt.yb, tt.white, Average)
			var ce *ComputationError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *ComputationError", err)
			}
		})
	}
}

func TestParseSurround(t *testing.T) {
	tests := []struct {
		name    string
		want    Surround
		wantErr bool
	}{
		{"average", Average, false},
		{"dim", Dim, false},
		{"dark", Dark, false},
		{"bright", Surround{}, true},
		{"", Surround{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSurround(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSurround(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSurround(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

// Reference values from the colour-science CIECAM02 documentation example.
func TestForward_ReferenceVector(t *testing.T) {
	white := XYZ{95.05, 100, 108.88}
	vc := mustConditions(t, 318.31, 20, white, Average)

	got, err := Forward(XYZ{19.01, 20.00, 21.78}, white, vc)
	if err != nil {
		t.Fatalf("Forward() error: %v", err)
	}

	expect(t, "J", 41.731091, got.J, 1e-3)
	expect(t, "C", 0.104707, got.C, 1e-3)
	expect(t, "h", 219.048432, got.H, 1e-3)
	expect(t, "Q", 195.371325, got.Q, 1e-2)
	expect(t, "M", 0.108842, got.M, 1e-3)
	expect(t, "s", 2.360305, got.S, 2e-2)
	expect(t, "H", 278.060735, got.HueQuadrature, 1e-3)
}

func TestForwardInverse_Roundtrip(t *testing.T) {
	samples := []XYZ{
		{19.31, 23.93, 10.14},
		{41.24, 21.26, 1.93},
		{35.76, 71.52, 11.92},
		{18.05, 7.22, 95.05},
		{95.047, 100, 108.883},
		{50, 50, 50},
		{1, 1, 1},
		{5, 2, 40},
		{0.5, 0.8, 0.3},
		{77, 93, 12},
	}

	for _, yb := range []float64{10, 20, 50, 100} {
		vc := mustConditions(t, 64, yb, D65, Average)
		for _, xyz := range samples {
			app, err := Forward(xyz, D65, vc)
			if err != nil {
				t.Fatalf("Yb=%v Forward(%+v) error: %v", yb, xyz, err)
			}
			got, err := Inverse(app.JCh(), D65, vc)
			if err != nil {
				t.Fatalf("Yb=%v Inverse(%+v) error: %v", yb, app.JCh(), err)
			}
			expect(t, "X", xyz.X, got.X, 0.1)
			expect(t, "Y", xyz.Y, got.Y, 0.1)
			expect(t, "Z", xyz.Z, got.Z, 0.1)
		}
	}
}

func TestForwardInverse_RoundtripSurrounds(t *testing.T) {
	xyz := XYZ{19.31, 23.93, 10.14}
	for _, s := range Surrounds {
		t.Run(s.Name, func(t *testing.T) {
			vc := mustConditions(t, 64, 20, D65, s)
			app, err := Forward(xyz, D65, vc)
			if err != nil {
				t.Fatalf("Forward() error: %v", err)
			}
			got, err := Inverse(app.JCh(), D65, vc)
			if err != nil {
				t.Fatalf("Inverse() error: %v", err)
			}
			expect(t, "X", xyz.X, got.X, 0.1)
			expect(t, "Y", xyz.Y, got.Y, 0.1)
			expect(t, "Z", xyz.Z, got.Z, 0.1)
		})
	}
}

func TestForward_ConcreteScenario(t *testing.T) {
	vc := mustConditions(t, 64, 20, D65, Average)
	xyz := XYZ{X: 19.31, Y: 23.93, Z: 10.14}

	app, err := Forward(xyz, D65, vc)
	if err != nil {
		t.Fatalf("Forward() error: %v", err)
	}
	if app.J <= 0 || app.J >= 100 {
		t.Errorf("J = %f, want within (0, 100)", app.J)
	}
	if app.C <= 0 {
		t.Errorf("C = %f, want positive", app.C)
	}
	if app.H < 0 || app.H >= 360 {
		t.Errorf("h = %f, want within [0, 360)", app.H)
	}

	got, err := Inverse(JCh{J: app.J, C: app.C, H: app.H}, D65, vc)
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}
	expect(t, "X", 19.31, got.X, 0.1)
	expect(t, "Y", 23.93, got.Y, 0.1)
	expect(t, "Z", 10.14, got.Z, 0.1)
}

func TestForward_WhiteInvariance(t *testing.T) {
	for _, la := range []float64{64, 200} {
		for _, yb := range []float64{10, 20, 50, 100} {
			vc := mustConditions(t, la, yb, D65, Average)
			app, err := Forward(D65, D65, vc)
			if err != nil {
				t.Fatalf("La=%v Yb=%v Forward(white) error: %v", la, yb, err)
			}
			expect(t, "J", 100, app.J, 1)
			if app.C >= 3 {
				t.Errorf("La=%v Yb=%v: C = %f, want < 3", la, yb, app.C)
			}
		}
	}
}

func TestForward_BlackInvariance(t *testing.T) {
	for _, s := range Surrounds {
		for _, yb := range []float64{10, 20, 50, 100} {
			vc := mustConditions(t, 64, yb, D65, s)
			app, err := Forward(XYZ{}, D65, vc)
			if err != nil {
				t.Fatalf("%s Yb=%v Forward(black) error: %v", s.Name, yb, err)
			}
			expect(t, "J", 0, app.J, 1)
			if app.C > 1 {
				t.Errorf("%s Yb=%v: C = %f, want near zero for black", s.Name, yb, app.C)
			}
		}
	}
}

func TestInverse_Black(t *testing.T) {
	vc := mustConditions(t, 64, 20, D65, Average)
	got, err := Inverse(JCh{}, D65, vc)
	if err != nil {
		t.Fatalf("Inverse(black) error: %v", err)
	}
	expect(t, "X", 0, got.X, 1e-6)
	expect(t, "Y", 0, got.Y, 1e-6)
	expect(t, "Z", 0, got.Z, 1e-6)
}

func TestForward_BackgroundSensitivity(t *testing.T) {
	xyz := XYZ{19.31, 23.93, 10.14}
	light := mustConditions(t, 64, 100, D65, Average)
	dark := mustConditions(t, 64, 10, D65, Average)

	onLight, err := Forward(xyz, D65, light)
	if err != nil {
		t.Fatal(err)
	}
	onDark, err := Forward(xyz, D65, dark)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(onLight.J-onDark.J) <= 0.1 {
		t.Errorf("J on Yb=100 (%f) and Yb=10 (%f) should differ by more than 0.1", onLight.J, onDark.J)
	}
	if onDark.J <= onLight.J {
		t.Errorf("J on dark background (%f) should exceed J on light background (%f)", onDark.J, onLight.J)
	}
}

func TestForward_Achromatic(t *testing.T) {
	vc := mustConditions(t, 64, 20, D65, Average)
	gray := XYZ{D65.X * 0.2, D65.Y * 0.2, D65.Z * 0.2}

	app, err := Forward(gray, D65, vc)
	if err != nil {
		t.Fatalf("Forward(gray) error: %v", err)
	}
	if app.H < 0 || app.H >= 360 {
		t.Errorf("h = %f, want within [0, 360)", app.H)
	}
	if app.C >= 3 {
		t.Errorf("C = %f, want near zero for a neutral gray", app.C)
	}
	if app.HueQuadrature < 0 || app.HueQuadrature >= 400 {
		t.Errorf("H = %f, want within [0, 400)", app.HueQuadrature)
	}
}

func TestForward_Errors(t *testing.T) {
	vc := mustConditions(t, 64, 20, D65, Average)
	tests := []struct {
		name string
		xyz  XYZ
	}{
		{"NaN", XYZ{math.NaN(), 10, 10}},
		{"infinite", XYZ{10, math.Inf(1), 10}},
		{"negative luminance", XYZ{-50, -50, -50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Forward(tt.xyz, D65, vc)
			var te *TransformError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v, want *TransformError", err)
			}
		})
	}
}

func TestInverse_Errors(t *testing.T) {
	vc := mustConditions(t, 64, 20, D65, Average)
	tests := []struct {
		name string
		jch  JCh
	}{
		{"NaN lightness", JCh{J: math.NaN(), C: 10, H: 90}},
		{"negative chroma", JCh{J: 50, C: -1, H: 90}},
		{"chroma at zero lightness", JCh{J: 0, C: 20, H: 90}},
		{"cone response out of range", JCh{J: 1e6, C: 0, H: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inverse(tt.jch, D65, vc)
			var te *TransformError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v, want *TransformError", err)
			}
		})
	}
}

func TestHueQuadrature(t *testing.T) {
	tests := []struct {
		h    float64
		want float64
	}{
		{20.14, 0},
		{90, 100},
		{164.25, 200},
		{237.53, 300},
	}

	for _, tt := range tests {
		expect(t, "H", tt.want, hueQuadrature(tt.h), 1e-9)
	}

	// Hues below the first unique hue wrap into the blue-red segment.
	got := hueQuadrature(10)
	if got <= 300 || got >= 400 {
		t.Errorf("hueQuadrature(10) = %f, want within (300, 400)", got)
	}
	if hueQuadrature(0) >= hueQuadrature(10) {
		t.Errorf("hueQuadrature should increase from 0° to 10°")
	}
}

func TestEccentricity(t *testing.T) {
	for h := 0.0; h < 360; h += 15 {
		et := eccentricity(h)
		if et < 0.7 || et > 1.2 {
			t.Errorf("eccentricity(%v) = %f, want within [0.7, 1.2]", h, et)
		}
	}
	// Hues just below and above the 360° seam agree.
	expect(t, "et seam", eccentricity(359.999), eccentricity(0), 1e-4)
}

func TestNormalizeHue(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-90, 270},
		{360, 0},
		{725, 5},
		{-360, 0},
	}
	for _, tt := range tests {
		expect(t, "hue", tt.want, normalizeHue(tt.in), 1e-9)
	}
}

func TestMat3_InversePairs(t *testing.T) {
	pairs := []struct {
		name string
		m, n Mat3
	}{
		{"cat02", cat02, cat02Inv},
		{"hpe", hpe, hpeInv},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			id := p.m.MulMat(p.n)
			for i := range 3 {
				for j := range 3 {
					want := 0.0
					if i == j {
						want = 1
					}
					expect(t, "element", want, id[i][j], 1e-4)
				}
			}
		})
	}
}
