package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// referenceRoots are the variables palette expressions can reference.
var referenceRoots = map[string]bool{
	"palette":    true,
	"background": true,
}

// refAtCursor extracts the reference path up to the cursor position.
// For example, if cursor is on "ui" in "palette.ui.border", it returns
// "palette.ui". Returns "" if the cursor is not on a reference.
func refAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}

	word := line[start:end]
	parts := strings.Split(word, ".")
	if !referenceRoots[parts[0]] || len(parts) < 2 {
		return ""
	}

	// Keep every segment that starts at or before the cursor.
	cursorInWord := col - start
	var resultParts []string
	offset := 0
	for _, part := range parts {
		if offset > cursorInWord {
			break
		}
		resultParts = append(resultParts, part)
		offset += len(part) + 1
	}
	return strings.Join(resultParts, ".")
}

// isIdentChar returns true if the byte is a valid identifier character
// (letter, digit, underscore, or dot for dotted paths).
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '.'
}

// definition returns the definition location for a reference at the given
// cursor position, or nil if the cursor is not on a known reference.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}

	ref := refAtCursor(lines[pos.Line], pos.Character)
	if ref == "" {
		return nil
	}

	symRange, ok := result.Symbols[ref]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	if loc := definition(result, content, uri, params.Position); loc != nil {
		return loc, nil
	}
	return nil, nil
}
