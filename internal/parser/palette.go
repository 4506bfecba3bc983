package parser

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/jsvensson/paletteshift/internal/color"
)

// paletteItem represents an attribute or block in source order.
type paletteItem struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

// decodePalette walks a palette body in source order so later entries can
// reference earlier ones. Supported forms:
//   - direct colors: key = "#hex"
//   - groups: key { sub = ... }
//   - groups with their own color: key { color = "#hex"; sub = ... }
func (a *analyzer) decodePalette(body *hclsyntax.Body, node *color.Node, prefix string) {
	var items []paletteItem
	for _, attr := range body.Attributes {
		items = append(items, paletteItem{pos: attr.SrcRange.Start, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, paletteItem{pos: block.DefRange().Start, block: block})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].pos.Byte < items[j].pos.Byte
	})

	for _, item := range items {
		if item.block != nil {
			if len(item.block.Labels) > 0 {
				a.errorf(item.block.DefRange(), "palette group %q must not have labels", item.block.Type)
				continue
			}
			if node.Children == nil {
				node.Children = make(map[string]*color.Node)
			}
			if _, dup := node.Children[item.block.Type]; dup {
				a.errorf(item.block.DefRange(), "duplicate palette entry %s.%s", prefix, item.block.Type)
				continue
			}
			child := &color.Node{Children: make(map[string]*color.Node)}
			node.Children[item.block.Type] = child
			path := prefix + "." + item.block.Type
			a.doc.Symbols[path] = item.block.DefRange()
			a.decodePalette(item.block.Body, child, path)
			continue
		}

		name := item.attr.Name
		path := prefix + "." + name
		if name == "color" {
			path = prefix
		} else {
			if _, dup := node.Children[name]; dup {
				a.errorf(item.attr.SrcRange, "duplicate palette entry %s", path)
				continue
			}
			a.doc.Symbols[path] = item.attr.SrcRange
		}

		// Rebuild the context so the entry sees everything defined above it.
		ctx := BuildEvalContext(a.doc.Palette, a.doc.Background, a.funcs)
		c, ok := a.evalColor(item.attr, ctx, path)
		if !ok {
			continue
		}

		if name == "color" {
			node.Color = &c
			continue
		}
		if node.Children == nil {
			node.Children = make(map[string]*color.Node)
		}
		node.Children[name] = &color.Node{Color: &c}
	}
}
