// Package paletteshift compensates color palettes for a change of
// background, so that every color keeps its appearance.
package paletteshift

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/compensate"
	"github.com/jsvensson/paletteshift/internal/parser"
)

// Document is a loaded palette document, ready to be applied.
type Document struct {
	Meta    Meta
	Source  color.Color
	Target  color.Color
	Palette *color.Node

	doc *parser.Document
}

// Meta holds document metadata.
type Meta struct {
	Name        string
	Author      string
	Description string
}

// Result is a compensated palette.
type Result struct {
	Meta        Meta
	Source      color.Color
	Target      color.Color
	Original    *color.Node
	Compensated *color.Node

	// Entries lists every palette color in sorted dot-path order.
	Entries []Entry
}

// Entry is one compensated palette color.
type Entry struct {
	Path        string
	Original    color.Color
	Compensated color.Color
}

// Load parses an HCL palette document.
func Load(path string) (*Document, error) {
	doc, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return fromParsed(doc), nil
}

// LoadBytes parses an in-memory palette document.
func LoadBytes(src []byte, filename string) (*Document, error) {
	doc, err := parser.Parse(src, filename)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return fromParsed(doc), nil
}

func fromParsed(doc *parser.Document) *Document {
	return &Document{
		Meta: Meta{
			Name:        doc.Meta.Name,
			Author:      doc.Meta.Author,
			Description: doc.Meta.Description,
		},
		Source:  *doc.Background.Source,
		Target:  *doc.Background.Target,
		Palette: doc.Palette,
		doc:     doc,
	}
}

// Compensator returns a compensator for the document's viewing block.
func (d *Document) Compensator() *compensate.Compensator {
	return d.doc.Compensator()
}

// Apply compensates every palette color from the source to the target
// background. A nil comp uses the document's own viewing settings. The
// first failing color aborts the whole palette.
func (d *Document) Apply(ctx context.Context, comp *compensate.Compensator) (*Result, error) {
	if comp == nil {
		comp = d.Compensator()
	}

	var paths [][]string
	var colors []color.Color
	err := d.Palette.Walk(func(path []string, c color.Color) error {
		paths = append(paths, path)
		colors = append(colors, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	shifted, err := comp.CompensateBatch(ctx, colors, d.Source, d.Target)
	if err != nil {
		return nil, fmt.Errorf("compensating palette: %w", err)
	}

	res := &Result{
		Meta:        d.Meta,
		Source:      d.Source,
		Target:      d.Target,
		Original:    d.Palette,
		Compensated: &color.Node{},
		Entries:     make([]Entry, len(colors)),
	}
	for i, path := range paths {
		res.Compensated.Set(path, shifted[i])
		res.Entries[i] = Entry{
			Path:        strings.Join(path, "."),
			Original:    colors[i],
			Compensated: shifted[i],
		}
	}
	return res, nil
}
