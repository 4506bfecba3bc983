package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	endLine = min(endLine, len(lines)-1)

	clip := func(line string, char uint32) int {
		return min(int(char), len(line))
	}

	if startLine == endLine {
		line := lines[startLine]
		start, end := clip(line, r.Start.Character), clip(line, r.End.Character)
		if start > end {
			return ""
		}
		return line[start:end]
	}

	parts := []string{lines[startLine][clip(lines[startLine], r.Start.Character):]}
	parts = append(parts, lines[startLine+1:endLine]...)
	parts = append(parts, lines[endLine][:clip(lines[endLine], r.End.Character)])
	return strings.Join(parts, "\n")
}

// hover produces a Hover response for the given cursor position. It shows
// the color under the cursor, its appearance against the source
// background and, for palette entries, the compensated color.
// Returns nil if no color is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		var b strings.Builder
		title := cl.Path
		if cl.IsRef {
			title = extractText(content, cl.Range)
		}
		fmt.Fprintf(&b, "**%s**\n\n`%s` · `%s` · `%s`", title, cl.Color.Hex(), cl.Color.RGB(), cl.Color.OKLCH())

		bg := result.Document.Background
		if bg.Source != nil {
			if a, err := result.Document.Compensator().Inspect(cl.Color, *bg.Source); err == nil {
				fmt.Fprintf(&b, "\n\nOn `%s`: J %.1f · C %.1f · h %.1f", bg.Source.Hex(), a.J, a.C, a.H)
			}
		}
		if cl.Compensated != nil && bg.Target != nil {
			fmt.Fprintf(&b, "\n\nOn `%s`: `%s` · `%s`", bg.Target.Hex(), cl.Compensated.Hex(), cl.Compensated.OKLCH())
		}

		rng := cl.Range
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: b.String(),
			},
			Range: &rng,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
