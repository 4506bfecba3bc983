// Package format formats palette documents and writes compensated
// palettes back out as documents.
package format

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/paletteshift"
	"github.com/jsvensson/paletteshift/internal/color"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)
var hexLiteral = regexp.MustCompile(`"#[0-9A-Fa-f]{3,8}"`)

// Format takes HCL source content and returns it formatted according to
// HCL canonical style rules. Hex color literals are lowercased.
//
// The formatter works even on partial/invalid HCL, making it suitable
// for use while the user is still typing.
func Format(content string) (string, error) {
	formatted := hclwrite.Format([]byte(content))
	// Collapse multiple consecutive blank lines into a single blank line.
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	// Remove blank lines immediately after opening braces.
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	// Remove blank lines immediately before closing braces.
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	return hexLiteral.ReplaceAllStringFunc(collapsed, strings.ToLower), nil
}

// Palette writes the compensated palette as a new palette document. The
// document's source background is the old target, so applying it again to
// the same target leaves it unchanged.
func Palette(res *paletteshift.Result, n color.Notation) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	meta := root.AppendNewBlock("meta", nil).Body()
	if res.Meta.Name != "" {
		meta.SetAttributeValue("name", cty.StringVal(res.Meta.Name))
	}
	if res.Meta.Author != "" {
		meta.SetAttributeValue("author", cty.StringVal(res.Meta.Author))
	}
	meta.SetAttributeValue("description", cty.StringVal(
		fmt.Sprintf("Compensated from %s to %s", res.Source.Hex(), res.Target.Hex())))
	root.AppendNewline()

	bg := root.AppendNewBlock("background", nil).Body()
	bg.SetAttributeValue("source", cty.StringVal(res.Target.Format(n)))
	bg.SetAttributeValue("target", cty.StringVal(res.Target.Format(n)))
	root.AppendNewline()

	palette := root.AppendNewBlock("palette", nil).Body()
	writeNode(palette, res.Compensated, n)

	return hclwrite.Format(f.Bytes())
}

func writeNode(body *hclwrite.Body, node *color.Node, n color.Notation) {
	if node == nil {
		return
	}
	if node.Color != nil {
		body.SetAttributeValue("color", cty.StringVal(node.Color.Format(n)))
	}

	keys := make([]string, 0, len(node.Children))
	for k := range node.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		child := node.Children[k]
		if len(child.Children) == 0 {
			if child.Color != nil {
				body.SetAttributeValue(k, cty.StringVal(child.Color.Format(n)))
			}
			continue
		}
		writeNode(body.AppendNewBlock(k, nil).Body(), child, n)
	}
}
