package lsp

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/paletteshift/internal/color"
)

// Semantic token types, in legend order.
var semanticTokenTypes = []string{
	"keyword",   // 0: block names (meta, viewing, background, palette, groups)
	"property",  // 1: attribute names and reference segments
	"namespace", // 2: the palette and background roots of references
	"string",    // 3: color literals
	"function",  // 4: lighten(), darken(), mix(), compensate()
	"number",    // 5: numeric literals
}

// Semantic token modifiers (bit flags)
var semanticTokenModifiers = []string{
	"declaration", // bit 0: defining a new symbol
}

const (
	tokenKeyword uint32 = iota
	tokenProperty
	tokenNamespace
	tokenString
	tokenFunction
	tokenNumber
)

const modDeclaration uint32 = 1

// SemanticToken represents a single token with its metadata
type SemanticToken struct {
	Line      uint32 // 0-based line number
	StartChar uint32 // 0-based character offset
	Length    uint32
	Type      uint32 // index into semanticTokenTypes
	Modifiers uint32 // bit flags
}

// encodeTokens converts tokens to LSP format (5 integers per token)
// Uses delta encoding for line numbers and character positions
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevChar uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, tok.Type, tok.Modifiers)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// semanticTokensFull generates semantic tokens for the entire document content
func semanticTokensFull(content string) []uint32 {
	file, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.InitialPos)
	if diags.HasErrors() {
		return []uint32{}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return []uint32{}
	}

	return encodeTokens(extractTokensFromBody(body, nil))
}

// tokenAt builds a token for a single-line range.
func tokenAt(rng hcl.Range, typ, mods uint32) SemanticToken {
	return SemanticToken{
		Line:      uint32(rng.Start.Line - 1),
		StartChar: uint32(rng.Start.Column - 1),
		Length:    uint32(rng.End.Column - rng.Start.Column),
		Type:      typ,
		Modifiers: mods,
	}
}

func extractTokensFromBody(body *hclsyntax.Body, tokens []SemanticToken) []SemanticToken {
	for _, block := range body.Blocks {
		tokens = append(tokens, tokenAt(block.TypeRange, tokenKeyword, 0))
		tokens = extractTokensFromBody(block.Body, tokens)
	}

	for _, attr := range body.Attributes {
		tokens = append(tokens, tokenAt(attr.NameRange, tokenProperty, modDeclaration))
		tokens = extractTokensFromExpr(attr.Expr, tokens)
	}

	return tokens
}

func extractTokensFromExpr(expr hclsyntax.Expression, tokens []SemanticToken) []SemanticToken {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() || e.SrcRange.Start.Line != e.SrcRange.End.Line {
			return tokens
		}
		val, diags := e.Value(nil)
		if diags.HasErrors() || !val.IsKnown() || val.IsNull() {
			return tokens
		}
		if _, err := color.Parse(val.AsString()); err == nil {
			tokens = append(tokens, tokenAt(e.SrcRange, tokenString, 0))
		}
	case *hclsyntax.LiteralValueExpr:
		if e.Val.Type().FriendlyName() == "number" {
			tokens = append(tokens, tokenAt(e.SrcRange, tokenNumber, 0))
		}
	case *hclsyntax.ScopeTraversalExpr:
		tokens = extractTokensFromTraversal(e.Traversal, tokens)
	case *hclsyntax.FunctionCallExpr:
		tokens = append(tokens, tokenAt(e.NameRange, tokenFunction, 0))
		for _, arg := range e.Args {
			tokens = extractTokensFromExpr(arg, tokens)
		}
	case *hclsyntax.RelativeTraversalExpr:
		tokens = extractTokensFromExpr(e.Source, tokens)
	}
	return tokens
}

// extractTokensFromTraversal handles references like palette.ui.border.
func extractTokensFromTraversal(traversal hcl.Traversal, tokens []SemanticToken) []SemanticToken {
	if len(traversal) == 0 {
		return tokens
	}
	root, ok := traversal[0].(hcl.TraverseRoot)
	if !ok || !referenceRoots[root.Name] {
		return tokens
	}

	tokens = append(tokens, tokenAt(root.SrcRange, tokenNamespace, 0))
	for _, step := range traversal[1:] {
		if attr, ok := step.(hcl.TraverseAttr); ok {
			// The step range includes the leading dot.
			rng := attr.SrcRange
			rng.Start.Column = rng.End.Column - len(attr.Name)
			tokens = append(tokens, tokenAt(rng, tokenProperty, 0))
		}
	}
	return tokens
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full requests.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokensFull(content)}, nil
}
