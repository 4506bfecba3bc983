package color

import (
	"errors"
	"math"
	"testing"
)

func TestXYZ_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		x, y, z float64
	}{
		{"white", "#ffffff", 95.046, 100, 108.906},
		{"black", "#000000", 0, 0, 0},
		{"red", "#ff0000", 41.24, 21.26, 1.93},
		{"mid gray", "#808080", 20.52, 21.59, 23.51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.hex)
			if err != nil {
				t.Fatal(err)
			}
			x, y, z := c.XYZ()
			if math.Abs(x-tt.x) > 0.01 || math.Abs(y-tt.y) > 0.01 || math.Abs(z-tt.z) > 0.01 {
				t.Errorf("XYZ() = (%.3f, %.3f, %.3f), want (%.3f, %.3f, %.3f)", x, y, z, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestWhiteXYZ(t *testing.T) {
	white, err := Parse("#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	x, y, z := white.XYZ()
	wx, wy, wz := WhiteXYZ()
	if math.Abs(x-wx) > 1e-6 || math.Abs(y-wy) > 1e-6 || math.Abs(z-wz) > 1e-6 {
		t.Errorf("#ffffff XYZ() = (%f, %f, %f), want WhiteXYZ() = (%f, %f, %f)", x, y, z, wx, wy, wz)
	}
	if math.Abs(wy-100) > 1e-9 {
		t.Errorf("WhiteXYZ() Y = %f, want 100", wy)
	}
}

func TestXYZ_Roundtrip(t *testing.T) {
	colors := []Color{
		New(0.628, 0.2577, 29.23),
		New(0.52, 0.17, 142.5),
		New(0.45, 0.31, 264),
		New(0.9, 0.05, 90),
		// outside sRGB; conversion must not clip
		New(0.7, 0.4, 150),
	}

	for _, c := range colors {
		t.Run(c.String(), func(t *testing.T) {
			got := FromXYZ(c.XYZ())
			if !near(got, c, 1e-5) {
				t.Errorf("FromXYZ(XYZ()) = %+v, want %+v", got, c)
			}
		})
	}
}

func TestOKLCH_KnownColors(t *testing.T) {
	tests := []struct {
		name       string
		hex        string
		wantL      float64
		wantC      float64
		wantH      float64
		achromatic bool
	}{
		{name: "black", hex: "#000000", achromatic: true},
		{name: "white", hex: "#ffffff", wantL: 1, achromatic: true},
		{name: "red", hex: "#ff0000", wantL: 0.6279, wantC: 0.2577, wantH: 29.23},
		{name: "green (0,128,0)", hex: "#008000", wantL: 0.5196, wantC: 0.1766, wantH: 142.50},
		{name: "blue", hex: "#0000ff", wantL: 0.4520, wantC: 0.3132, wantH: 264.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.hex)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(c.L-tt.wantL) > 0.01 {
				t.Errorf("L = %f, want %f", c.L, tt.wantL)
			}
			if math.Abs(c.C-tt.wantC) > 0.01 {
				t.Errorf("C = %f, want %f", c.C, tt.wantC)
			}
			if !tt.achromatic && math.Abs(c.H-tt.wantH) > 0.6 {
				t.Errorf("H = %f, want %f", c.H, tt.wantH)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	red, _ := Parse("#eb6f92")
	tests := []struct {
		name     string
		color    Color
		notation Notation
		want     string
	}{
		{"hex", red, NotationHex, "#eb6f92"},
		{"rgb", red, NotationRGB, "rgb(235, 111, 146)"},
		{"rgba", Color{L: red.L, C: red.C, H: red.H, Alpha: 0.5}, NotationRGB, "rgba(235, 111, 146, 0.5)"},
		{"oklch", New(0.628, 0.2577, 29.23), NotationOKLCH, "oklch(0.628 0.2577 29.23)"},
		{"oklch alpha", Color{L: 0.5, C: 0.1, H: 120, Alpha: 0.25}, NotationOKLCH, "oklch(0.5 0.1 120 / 0.25)"},
		{"oklab", New(0.5, 0, 0), NotationOKLAB, "oklab(0.5 0 0)"},
		{"oklab axis", New(0.5, 0.1, 0), NotationOKLAB, "oklab(0.5 0.1 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Format(tt.notation); got != tt.want {
				t.Errorf("Format(%s) = %q, want %q", tt.notation, got, tt.want)
			}
		})
	}
}

func TestFormatParses(t *testing.T) {
	c := New(0.62, 0.17, 255)
	for _, n := range []Notation{NotationHex, NotationRGB, NotationOKLCH, NotationOKLAB} {
		t.Run(n.String(), func(t *testing.T) {
			s := c.Format(n)
			back, err := Parse(s)
			if err != nil {
				t.Fatalf("Parse(%q): %v", s, err)
			}
			r1, g1, b1 := back.RGB255()
			r2, g2, b2 := c.RGB255()
			if absDiff(r1, r2) > 1 || absDiff(g1, g2) > 1 || absDiff(b1, b2) > 1 {
				t.Errorf("Parse(%q).Hex() = %s, want %s", s, back.Hex(), c.Hex())
			}
		})
	}
}

func TestParseNotation(t *testing.T) {
	for _, name := range []string{"hex", "rgb", "oklch", "OKLAB"} {
		if _, err := ParseNotation(name); err != nil {
			t.Errorf("ParseNotation(%q): %v", name, err)
		}
	}
	if _, err := ParseNotation("hsl"); err == nil {
		t.Error("ParseNotation(hsl) succeeded, want error")
	}
	if got, _ := ParseNotation("oklch"); got != NotationOKLCH {
		t.Errorf("ParseNotation(oklch) = %v", got)
	}
}

func TestClamp(t *testing.T) {
	inGamut, _ := Parse("#eb6f92")
	translucent := inGamut
	translucent.Alpha = 0.4

	tests := []struct {
		name  string
		input Color
		check func(t *testing.T, got Color)
	}{
		{"in gamut unchanged", inGamut, func(t *testing.T, got Color) {
			if !near(got, inGamut, 1e-12) {
				t.Errorf("got %+v, want %+v", got, inGamut)
			}
		}},
		{"alpha reset", translucent, func(t *testing.T, got Color) {
			if got.Alpha != 1 {
				t.Errorf("Alpha = %v, want 1", got.Alpha)
			}
		}},
		{"chroma reduced into gamut", New(0.7, 0.4, 150), func(t *testing.T, got Color) {
			if got.C >= 0.4 || got.C <= 0 {
				t.Errorf("C = %v, want in (0, 0.4)", got.C)
			}
			if got.L != 0.7 || got.H != 150 {
				t.Errorf("lightness or hue moved: %+v", got)
			}
		}},
		{"lightness above 1", New(1.5, 0.1, 30), func(t *testing.T, got Color) {
			if got.L != 1 {
				t.Errorf("L = %v, want 1", got.L)
			}
		}},
		{"negative lightness", New(-0.2, 0.1, 30), func(t *testing.T, got Color) {
			if got.L != 0 {
				t.Errorf("L = %v, want 0", got.L)
			}
		}},
		{"negative hue", New(0.5, 0.05, -30), func(t *testing.T, got Color) {
			if math.Abs(got.H-330) > 1e-9 {
				t.Errorf("H = %v, want 330", got.H)
			}
		}},
		{"huge chroma", New(0.5, 2, 200), func(t *testing.T, got Color) {
			if got.C > MaxChroma {
				t.Errorf("C = %v, want <= %v", got.C, MaxChroma)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clamp(tt.input)
			if err != nil {
				t.Fatalf("Clamp: %v", err)
			}
			if !got.InGamut() {
				t.Errorf("Clamp(%v) = %v, not in gamut", tt.input, got)
			}
			if got.L < 0 || got.L > 1 || got.C < 0 || got.C > MaxChroma || got.H < 0 || got.H >= 360 || got.Alpha != 1 {
				t.Errorf("Clamp(%v) = %+v violates bounds", tt.input, got)
			}
			tt.check(t, got)
		})
	}
}

func TestClampNonFinite(t *testing.T) {
	for _, c := range []Color{New(math.NaN(), 0, 0), New(0.5, math.Inf(1), 0), New(0.5, 0.1, math.NaN())} {
		_, err := Clamp(c)
		var ge *GamutError
		if !errors.As(err, &ge) {
			t.Errorf("Clamp(%+v) error = %v, want *GamutError", c, err)
		}
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
