// Package parser decodes palette documents written in HCL.
package parser

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/paletteshift/internal/ciecam02"
	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/compensate"
)

// Document is a decoded palette document.
type Document struct {
	Meta       Meta
	Viewing    Viewing
	Background Background
	Palette    *color.Node

	// Symbols maps dot paths ("palette.ui.border") to their definitions.
	Symbols map[string]hcl.Range
	// Colors lists every resolved color value in source order of evaluation.
	Colors []ColorLocation
}

// Meta holds document metadata.
type Meta struct {
	Name        string `hcl:"name,optional"`
	Author      string `hcl:"author,optional"`
	Description string `hcl:"description,optional"`
}

// Viewing holds the viewing environment the palette is compensated for.
type Viewing struct {
	AdaptingLuminance float64
	Surround          ciecam02.Surround
}

// Background holds the backgrounds the palette moves between. Either may
// be nil when the document does not define it.
type Background struct {
	Source *color.Color
	Target *color.Color
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Path  string
	Range hcl.Range
	Color color.Color
	IsRef bool // true if this is a reference (not a literal or function call)
}

type viewingBlock struct {
	AdaptingLuminance *float64 `hcl:"adapting_luminance,optional"`
	Surround          *string  `hcl:"surround,optional"`
}

// Compensator returns a compensator configured for the document's viewing
// environment.
func (d *Document) Compensator() *compensate.Compensator {
	comp := compensate.New()
	comp.AdaptingLuminance = d.Viewing.AdaptingLuminance
	comp.Surround = d.Viewing.Surround
	return comp
}

// ParseFile reads and decodes the palette document at path.
func ParseFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes a palette document and fails on the first batch of
// errors. A document without both backgrounds is an error.
func Parse(src []byte, filename string) (*Document, error) {
	doc, diags := Analyze(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", filename, diags)
	}
	return doc, nil
}

// Analyze decodes as much of a palette document as it can and reports
// every problem as a diagnostic instead of stopping at the first. The
// returned document is never nil.
func Analyze(src []byte, filename string) (*Document, hcl.Diagnostics) {
	doc := &Document{
		Viewing: Viewing{
			AdaptingLuminance: compensate.DefaultAdaptingLuminance,
			Surround:          ciecam02.Average,
		},
		Palette: &color.Node{},
		Symbols: make(map[string]hcl.Range),
	}

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return doc, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return doc, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "internal error: parsed body is not *hclsyntax.Body",
		})
	}

	a := &analyzer{doc: doc}
	for name, attr := range body.Attributes {
		a.errorf(attr.SrcRange, "unexpected attribute %q at top level", name)
	}

	var backgroundBlock, paletteBlock *hclsyntax.Block
	for _, block := range body.Blocks {
		switch block.Type {
		case "meta":
			a.diags = a.diags.Extend(gohcl.DecodeBody(block.Body, nil, &doc.Meta))
		case "viewing":
			a.decodeViewing(block)
		case "background":
			backgroundBlock = block
		case "palette":
			paletteBlock = block
		default:
			a.errorf(block.DefRange(), "unknown block %q (valid: meta, viewing, background, palette)", block.Type)
		}
	}

	a.funcs = Functions(doc.Compensator())

	start := hcl.Range{Filename: filename, Start: hcl.InitialPos, End: hcl.InitialPos}
	if backgroundBlock == nil {
		a.errorf(start, "missing required background block")
	} else {
		a.decodeBackground(backgroundBlock)
	}

	if paletteBlock == nil {
		a.errorf(start, "missing required palette block")
	} else {
		a.decodePalette(paletteBlock.Body, doc.Palette, "palette")
	}

	return doc, append(diags, a.diags...)
}

type analyzer struct {
	doc   *Document
	funcs map[string]function.Function
	diags hcl.Diagnostics
}

func (a *analyzer) errorf(rng hcl.Range, format string, args ...any) {
	r := rng
	a.diags = append(a.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf(format, args...),
		Subject:  &r,
	})
}

func (a *analyzer) decodeViewing(block *hclsyntax.Block) {
	var v viewingBlock
	diags := gohcl.DecodeBody(block.Body, nil, &v)
	a.diags = a.diags.Extend(diags)
	if diags.HasErrors() {
		return
	}

	if v.AdaptingLuminance != nil {
		if *v.AdaptingLuminance <= 0 {
			a.errorf(block.Body.Attributes["adapting_luminance"].SrcRange, "adapting_luminance must be positive")
		} else {
			a.doc.Viewing.AdaptingLuminance = *v.AdaptingLuminance
		}
	}
	if v.Surround != nil {
		s, err := ciecam02.ParseSurround(*v.Surround)
		if err != nil {
			a.errorf(block.Body.Attributes["surround"].SrcRange, "%s", err)
		} else {
			a.doc.Viewing.Surround = s
		}
	}
}

func (a *analyzer) decodeBackground(block *hclsyntax.Block) {
	for name, attr := range block.Body.Attributes {
		if name != "source" && name != "target" {
			a.errorf(attr.SrcRange, "unknown attribute %q in background (valid: source, target)", name)
		}
	}
	for _, b := range block.Body.Blocks {
		a.errorf(b.DefRange(), "unexpected block %q in background", b.Type)
	}

	ctx := BuildEvalContext(&color.Node{}, Background{}, a.funcs)
	for _, name := range []string{"source", "target"} {
		attr, ok := block.Body.Attributes[name]
		if !ok {
			a.errorf(block.DefRange(), "background block is missing %s", name)
			continue
		}
		c, ok := a.evalColor(attr, ctx, "background."+name)
		if !ok {
			continue
		}
		a.doc.Symbols["background."+name] = attr.SrcRange
		if name == "source" {
			a.doc.Background.Source = &c
		} else {
			a.doc.Background.Target = &c
		}
	}
}

// evalColor evaluates attr to a color and records its location. Failures
// are reported as diagnostics on the attribute.
func (a *analyzer) evalColor(attr *hclsyntax.Attribute, ctx *hcl.EvalContext, path string) (color.Color, bool) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		for _, d := range diags {
			if d.Subject == nil {
				rng := attr.SrcRange
				d.Subject = &rng
			}
		}
		a.diags = append(a.diags, diags...)
		return color.Color{}, false
	}

	s, err := ResolveColor(val)
	if err != nil {
		a.errorf(attr.SrcRange, "%s: %s", path, err)
		return color.Color{}, false
	}
	c, err := color.Parse(s)
	if err != nil {
		a.errorf(attr.Expr.Range(), "%s: %s", path, err)
		return color.Color{}, false
	}

	a.doc.Colors = append(a.doc.Colors, ColorLocation{
		Path:  path,
		Range: attr.Expr.Range(),
		Color: c,
		IsRef: isReferenceExpr(attr.Expr),
	})
	return c, true
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.base) rather than a literal value.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr, *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}
