package lsp

import (
	"sort"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/paletteshift/internal/ciecam02"
	"github.com/jsvensson/paletteshift/internal/color"
)

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot       blockContext = iota
	contextMeta                    // inside meta {}
	contextViewing                 // inside viewing {}
	contextBackground              // inside background {}
	contextPalette                 // inside palette {} or one of its groups
)

// topLevelBlocks are the valid top-level block names.
var topLevelBlocks = []string{"meta", "viewing", "background", "palette"}

// blockAttributes are the attributes each fixed-schema block accepts.
var blockAttributes = map[blockContext][]string{
	contextMeta:       {"name", "author", "description"},
	contextViewing:    {"adapting_luminance", "surround"},
	contextBackground: {"source", "target"},
}

// paletteFunctions are offered at value positions.
var paletteFunctions = []struct {
	name, signature, snippet string
}{
	{"lighten", "lighten(color, amount)", "lighten(${1:color}, ${2:0.1})"},
	{"darken", "darken(color, amount)", "darken(${1:color}, ${2:0.1})"},
	{"mix", "mix(a, b, t)", "mix(${1:a}, ${2:b}, ${3:0.5})"},
	{"compensate", "compensate(color, source, target)", "compensate(${1:color}, ${2:background.source}, ${3:background.target})"},
}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	textBeforeCursor := line[:min(int(pos.Character), len(line))]

	if items := tryReferenceCompletion(result, textBeforeCursor); items != nil {
		return items
	}

	ctx := determineBlockContext(lines, int(pos.Line))

	if isValuePosition(textBeforeCursor) {
		if ctx == contextViewing && attributeBeforeCursor(textBeforeCursor) == "surround" {
			return surroundCompletions()
		}
		return valueCompletions()
	}

	switch ctx {
	case contextRoot:
		return topLevelCompletions()
	case contextMeta, contextViewing, contextBackground:
		return attributeCompletions(blockAttributes[ctx], findDefinedAttributes(lines, int(pos.Line)))
	}
	return nil
}

// tryReferenceCompletion completes the path after "palette." or
// "background." at the end of the text before the cursor.
func tryReferenceCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	end := len(textBeforeCursor)
	start := end
	for start > 0 && isIdentChar(textBeforeCursor[start-1]) {
		start--
	}
	word := textBeforeCursor[start:end]

	root, path, ok := strings.Cut(word, ".")
	if !ok {
		return nil
	}

	// Everything up to the last dot selects the node; the rest is a partial
	// name the client filters.
	var segments []string
	if i := strings.LastIndex(path, "."); i >= 0 {
		segments = strings.Split(path[:i], ".")
	}

	switch root {
	case "background":
		if len(segments) > 0 {
			return nil
		}
		return attributeCompletions([]string{"source", "target"}, nil)
	case "palette":
		if result == nil || result.Document == nil {
			return nil
		}
		node := result.Document.Palette
		for _, seg := range segments {
			child, ok := node.Children[seg]
			if !ok {
				return nil
			}
			node = child
		}
		if len(node.Children) == 0 {
			return nil
		}
		return nodeChildrenToCompletionItems(node)
	}
	return nil
}

// nodeChildrenToCompletionItems converts a node's children into completion
// items sorted by name.
func nodeChildrenToCompletionItems(node *color.Node) []protocol.CompletionItem {
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		child := node.Children[name]
		item := protocol.CompletionItem{
			Label: name,
			Kind:  completionKindPtr(protocol.CompletionItemKindColor),
		}
		switch {
		case len(child.Children) > 0:
			item.Kind = completionKindPtr(protocol.CompletionItemKindModule)
			item.Detail = strPtr("color group")
		case child.Color != nil:
			item.Detail = strPtr(child.Color.Hex())
		}
		items = append(items, item)
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	return strings.TrimSpace(trimmed[eqIdx+1:]) == ""
}

func attributeBeforeCursor(textBeforeCursor string) string {
	name, _, _ := strings.Cut(textBeforeCursor, "=")
	return strings.TrimSpace(name)
}

// valueCompletions returns completion items for a value position: function
// snippets and the referenceable variables.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	items := make([]protocol.CompletionItem, 0, len(paletteFunctions)+2)
	for _, fn := range paletteFunctions {
		items = append(items, protocol.CompletionItem{
			Label:            fn.name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fn.signature),
			InsertText:       strPtr(fn.snippet),
			InsertTextFormat: &snippetFormat,
		})
	}
	for _, root := range []string{"background", "palette"} {
		items = append(items, protocol.CompletionItem{
			Label:      root,
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr(root + " reference"),
			InsertText: strPtr(root + "."),
		})
	}
	return items
}

// surroundCompletions offers the quoted surround names.
func surroundCompletions() []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, s := range ciecam02.Surrounds {
		items = append(items, protocol.CompletionItem{
			Label:      s.String(),
			Kind:       completionKindPtr(protocol.CompletionItemKindEnumMember),
			InsertText: strPtr("\"" + s.String() + "\""),
		})
	}
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// The block name is the first word on the line that opens it.
		if opens > 0 {
			if parts := strings.Fields(line); len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}
		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[0] {
	case "meta":
		return contextMeta
	case "viewing":
		return contextViewing
	case "background":
		return contextBackground
	case "palette":
		return contextPalette
	}
	return contextRoot
}

// attributeCompletions returns the names not yet in defined.
func attributeCompletions(names []string, defined map[string]bool) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, name := range names {
		if defined[name] {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  completionKindPtr(protocol.CompletionItemKindProperty),
		})
	}
	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindSnippet),
			InsertText:       strPtr(name + " {\n  $0\n}"),
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return complete(s.getResult(uri), content, params.Position), nil
}
