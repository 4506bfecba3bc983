package lsp

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/parser"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "paletteshift"

// AnalysisResult holds all information produced by analyzing a palette document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Document    *parser.Document
	Symbols     map[string]protocol.Range // "palette.base", "background.source" -> definition range
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Path  string
	Range protocol.Range
	Color color.Color
	IsRef bool // true if this is a reference (not a literal or function call)

	// Compensated is the color moved onto the target background. It is nil
	// outside the palette, when a background is missing, or when
	// compensation failed.
	Compensated *color.Color
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses a palette document from memory and produces diagnostics,
// a symbol table and color locations. It collects all errors rather than
// stopping at the first, then compensates every palette color it could
// resolve and reports the ones that fail as warnings.
func Analyze(filename, content string) *AnalysisResult {
	doc, diags := parser.Analyze([]byte(content), filename)

	result := &AnalysisResult{
		Document: doc,
		Symbols:  make(map[string]protocol.Range, len(doc.Symbols)),
		Colors:   make([]ColorLocation, 0, len(doc.Colors)),
	}
	for _, d := range diags {
		result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
	}
	for path, rng := range doc.Symbols {
		result.Symbols[path] = hclRangeToLSP(rng)
	}
	for _, loc := range doc.Colors {
		result.Colors = append(result.Colors, ColorLocation{
			Path:  loc.Path,
			Range: hclRangeToLSP(loc.Range),
			Color: loc.Color,
			IsRef: loc.IsRef,
		})
	}

	result.compensate()
	return result
}

func (r *AnalysisResult) compensate() {
	bg := r.Document.Background
	if bg.Source == nil || bg.Target == nil {
		return
	}

	var idx []int
	var colors []color.Color
	for i, loc := range r.Colors {
		if loc.Path == "palette" || strings.HasPrefix(loc.Path, "palette.") {
			idx = append(idx, i)
			colors = append(colors, loc.Color)
		}
	}

	results := r.Document.Compensator().CompensateEach(context.Background(), colors, *bg.Source, *bg.Target)
	for j, res := range results {
		loc := &r.Colors[idx[j]]
		if res.Err != nil {
			r.addWarning(loc.Range, fmt.Sprintf("%s cannot be compensated: %s", loc.Path, res.Err))
			continue
		}
		c := res.Color
		loc.Compensated = &c
	}
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng protocol.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// HasErrors reports whether any diagnostic is an error.
func (r *AnalysisResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity != nil && *d.Severity == DiagError {
			return true
		}
	}
	return false
}

func strPtr(s string) *string {
	return &s
}
