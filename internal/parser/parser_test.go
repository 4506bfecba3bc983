package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"

	"github.com/jsvensson/paletteshift/internal/ciecam02"
)

const sampleHCL = `
meta {
  name   = "Docs on dark"
  author = "Test Author"
}

viewing {
  adapting_luminance = 80
  surround           = "dim"
}

background {
  source = "#ffffff"
  target = "#1e1e2e"
}

palette {
  text   = "#333333"
  accent = "oklch(0.62 0.17 255)"
  muted  = lighten(palette.text, 0.2)

  ui {
    color  = "#f0f0f0"
    border = palette.ui.color
    shadow = mix(palette.text, palette.ui, 0.5)
  }

  link = palette.accent
}
`

func writeTempHCL(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustParse(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Parse([]byte(content), "test.hcl")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func lookupHex(t *testing.T, doc *Document, path ...string) string {
	t.Helper()
	c, err := doc.Palette.Lookup(path)
	if err != nil {
		t.Fatalf("Lookup(%v) error: %v", path, err)
	}
	return c.Hex()
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile(writeTempHCL(t, sampleHCL))
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if doc.Meta.Name != "Docs on dark" {
		t.Errorf("Meta.Name = %q, want %q", doc.Meta.Name, "Docs on dark")
	}
	if doc.Meta.Author != "Test Author" {
		t.Errorf("Meta.Author = %q, want %q", doc.Meta.Author, "Test Author")
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.hcl"))
	if err == nil || !strings.Contains(err.Error(), "reading palette file") {
		t.Errorf("ParseFile(missing) error = %v", err)
	}
}

func TestParseViewing(t *testing.T) {
	doc := mustParse(t, sampleHCL)
	if doc.Viewing.AdaptingLuminance != 80 {
		t.Errorf("AdaptingLuminance = %v, want 80", doc.Viewing.AdaptingLuminance)
	}
	if doc.Viewing.Surround != ciecam02.Dim {
		t.Errorf("Surround = %v, want dim", doc.Viewing.Surround)
	}

	comp := doc.Compensator()
	if comp.AdaptingLuminance != 80 || comp.Surround != ciecam02.Dim {
		t.Errorf("Compensator() = %+v, want La 80 and dim surround", comp)
	}
}

func TestParseViewingDefaults(t *testing.T) {
	doc := mustParse(t, `
background {
  source = "#ffffff"
  target = "#000000"
}
palette {
  a = "#123456"
}
`)
	if doc.Viewing.AdaptingLuminance != 64 {
		t.Errorf("AdaptingLuminance = %v, want 64", doc.Viewing.AdaptingLuminance)
	}
	if doc.Viewing.Surround != ciecam02.Average {
		t.Errorf("Surround = %v, want average", doc.Viewing.Surround)
	}
}

func TestParseBackground(t *testing.T) {
	doc := mustParse(t, sampleHCL)
	if doc.Background.Source == nil || doc.Background.Source.Hex() != "#ffffff" {
		t.Errorf("Background.Source = %v, want #ffffff", doc.Background.Source)
	}
	if doc.Background.Target == nil || doc.Background.Target.Hex() != "#1e1e2e" {
		t.Errorf("Background.Target = %v, want #1e1e2e", doc.Background.Target)
	}
}

func TestParsePalette(t *testing.T) {
	doc := mustParse(t, sampleHCL)

	tests := []struct {
		path []string
		want string
	}{
		{[]string{"text"}, "#333333"},
		{[]string{"ui"}, "#f0f0f0"},
		{[]string{"ui", "border"}, "#f0f0f0"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.path, "."), func(t *testing.T) {
			if got := lookupHex(t, doc, tt.path...); got != tt.want {
				t.Errorf("palette.%s = %s, want %s", strings.Join(tt.path, "."), got, tt.want)
			}
		})
	}

	accent, _ := doc.Palette.Lookup([]string{"accent"})
	link, _ := doc.Palette.Lookup([]string{"link"})
	if accent != link {
		t.Errorf("link = %+v, want reference to accent %+v", link, accent)
	}
	if accent.L != 0.62 || accent.C != 0.17 || accent.H != 255 {
		t.Errorf("accent = %+v, want exact oklch(0.62 0.17 255)", accent)
	}

	if doc.Palette.Len() != 7 {
		t.Errorf("Palette.Len() = %d, want 7", doc.Palette.Len())
	}
}

func TestParseFunctions(t *testing.T) {
	doc := mustParse(t, sampleHCL)

	text, _ := doc.Palette.Lookup([]string{"text"})
	muted, _ := doc.Palette.Lookup([]string{"muted"})
	if d := muted.L - text.L; d < 0.199 || d > 0.201 {
		t.Errorf("muted.L - text.L = %f, want 0.2", d)
	}

	ui, _ := doc.Palette.Lookup([]string{"ui"})
	shadow, _ := doc.Palette.Lookup([]string{"ui", "shadow"})
	if shadow.L <= text.L || shadow.L >= ui.L {
		t.Errorf("shadow.L = %f, want between %f and %f", shadow.L, text.L, ui.L)
	}
}

func TestParseCompensateFunction(t *testing.T) {
	doc := mustParse(t, `
background {
  source = "#ffffff"
  target = "#000000"
}
palette {
  gray    = "#808080"
  on_dark = compensate(palette.gray, background.source, background.target)
  same    = compensate(palette.gray, "#ffffff", "#ffffff")
}
`)
	gray, _ := doc.Palette.Lookup([]string{"gray"})
	onDark, _ := doc.Palette.Lookup([]string{"on_dark"})
	if onDark.L >= gray.L {
		t.Errorf("on_dark.L = %f, want below %f", onDark.L, gray.L)
	}
	if got := lookupHex(t, doc, "same"); got != "#808080" {
		t.Errorf("same = %s, want #808080", got)
	}
}

func TestParseSymbolsAndColors(t *testing.T) {
	doc := mustParse(t, sampleHCL)

	for _, sym := range []string{"palette.text", "palette.ui", "palette.ui.border", "background.source"} {
		if _, ok := doc.Symbols[sym]; !ok {
			t.Errorf("Symbols missing %q", sym)
		}
	}
	if rng := doc.Symbols["palette.text"]; rng.Start.Line != 18 {
		t.Errorf("palette.text defined on line %d, want 18", rng.Start.Line)
	}

	var refs, literals int
	for _, loc := range doc.Colors {
		if loc.IsRef {
			refs++
		} else {
			literals++
		}
	}
	// border and link are references; lighten and mix calls are not.
	if refs != 2 {
		t.Errorf("references = %d, want 2", refs)
	}
	if literals != 7 {
		t.Errorf("literals = %d, want 7", literals)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "syntax error",
			input:   `palette {`,
			wantMsg: "",
		},
		{
			name:    "missing background",
			input:   `palette { a = "#ffffff" }`,
			wantMsg: "missing required background block",
		},
		{
			name: "missing palette",
			input: `background {
  source = "#ffffff"
  target = "#000000"
}`,
			wantMsg: "missing required palette block",
		},
		{
			name: "missing target",
			input: `background {
  source = "#ffffff"
}
palette { a = "#ffffff" }`,
			wantMsg: "missing target",
		},
		{
			name: "invalid color",
			input: `background {
  source = "#ffffff"
  target = "#000000"
}
palette { a = "#gggggg" }`,
			wantMsg: "invalid color",
		},
		{
			name: "forward reference",
			input: `background {
  source = "#ffffff"
  target = "#000000"
}
palette {
  a = palette.b
  b = "#ffffff"
}`,
			wantMsg: "",
		},
		{
			name: "namespace reference",
			input: `background {
  source = "#ffffff"
  target = "#000000"
}
palette {
  group {
    x = "#ffffff"
  }
  a = palette.group
}`,
			wantMsg: "no 'color' attribute",
		},
		{
			name: "unknown surround",
			input: `viewing { surround = "bright" }
background {
  source = "#ffffff"
  target = "#000000"
}
palette { a = "#ffffff" }`,
			wantMsg: "unknown surround",
		},
		{
			name: "non-positive luminance",
			input: `viewing { adapting_luminance = 0 }
background {
  source = "#ffffff"
  target = "#000000"
}
palette { a = "#ffffff" }`,
			wantMsg: "adapting_luminance must be positive",
		},
		{
			name: "unknown block",
			input: `theme { a = "#ffffff" }
background {
  source = "#ffffff"
  target = "#000000"
}
palette { a = "#ffffff" }`,
			wantMsg: "unknown block",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), "test.hcl")
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestAnalyzeCollectsAllErrors(t *testing.T) {
	doc, diags := Analyze([]byte(`background {
  source = "#ffffff"
  target = "#000000"
}
palette {
  a = "#nothex"
  b = "#123456"
  c = palette.missing
}`), "test.hcl")

	if got := len(errorsOnly(diags)); got != 2 {
		t.Fatalf("got %d errors, want 2: %v", got, diags)
	}
	if _, err := doc.Palette.Lookup([]string{"b"}); err != nil {
		t.Errorf("valid entry b not decoded: %v", err)
	}
	for _, d := range diags {
		if d.Subject == nil {
			t.Errorf("diagnostic %q has no range", d.Summary)
		}
	}
}

func errorsOnly(diags hcl.Diagnostics) hcl.Diagnostics {
	var out hcl.Diagnostics
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			out = append(out, d)
		}
	}
	return out
}
