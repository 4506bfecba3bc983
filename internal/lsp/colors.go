package lsp

import (
	"math"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/paletteshift/internal/color"
)

// colorToLSP converts a color to the protocol's 0.0-1.0 sRGB channels,
// clipped to the gamut.
func colorToLSP(c color.Color) protocol.Color {
	r, g, b := c.RGB255()
	return protocol.Color{
		Red:   float32(r) / 255.0,
		Green: float32(g) / 255.0,
		Blue:  float32(b) / 255.0,
		Alpha: float32(c.Alpha),
	}
}

// colorFromLSP converts a protocol color back to a color.
func colorFromLSP(pc protocol.Color) color.Color {
	channel := func(v float32) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
	}
	c := color.FromRGB(channel(pc.Red), channel(pc.Green), channel(pc.Blue))
	c.Alpha = math.Max(0, math.Min(1, float64(pc.Alpha)))
	return c
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// presentationNotations are offered in this order by the color picker.
var presentationNotations = []color.Notation{color.NotationHex, color.NotationRGB, color.NotationOKLCH}

// colorPresentation produces color presentation options for a given color and range.
// Only quoted literals are rewritten. References and function calls get no
// presentations, so picking a color never replaces them with a literal.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !strings.HasPrefix(text, "\"") {
		return []protocol.ColorPresentation{}
	}

	c := colorFromLSP(params.Color)
	out := make([]protocol.ColorPresentation, 0, len(presentationNotations))
	for _, n := range presentationNotations {
		label := c.Format(n)
		out = append(out, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: "\"" + label + "\"",
			},
		})
	}
	return out
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.getResult(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
