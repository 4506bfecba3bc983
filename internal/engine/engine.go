// Package engine renders Go templates against a compensated palette.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/paletteshift"
	"github.com/jsvensson/paletteshift/internal/color"
)

// Engine loads and executes Go templates against a compensated palette.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given result, and writes output files.
func (e *Engine) Run(res *paletteshift.Result) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(res)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Meta     paletteshift.Meta
	Source   color.Color
	Target   color.Color
	Palette  *color.Node // compensated
	Original *color.Node
	Entries  []paletteshift.Entry
	FuncMap  template.FuncMap
}

func buildTemplateData(res *paletteshift.Result) templateData {
	// resolve accepts either a color or a dot path such as "palette.text".
	resolve := func(v any) (color.Color, error) {
		switch v := v.(type) {
		case color.Color:
			return v, nil
		case *color.Color:
			if v == nil {
				return color.Color{}, fmt.Errorf("nil color")
			}
			return *v, nil
		case string:
			return res.Lookup(v)
		default:
			return color.Color{}, fmt.Errorf("expected color or path string, got %T", v)
		}
	}
	format := func(f func(color.Color) string) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := resolve(v)
			if err != nil {
				return "", err
			}
			return f(c), nil
		}
	}

	return templateData{
		Meta:     res.Meta,
		Source:   res.Source,
		Target:   res.Target,
		Palette:  res.Compensated,
		Original: res.Original,
		Entries:  res.Entries,
		FuncMap: template.FuncMap{
			"hex":     format(color.Color.Hex),
			"hexBare": format(color.Color.HexBare),
			"rgb":     format(color.Color.RGB),
			"oklch":   format(color.Color.OKLCH),
			"oklab":   format(color.Color.OKLAB),
			"shifted": func(path string) (color.Color, error) {
				return res.Lookup("palette." + path)
			},
			"original": func(path string) (color.Color, error) {
				return res.Lookup("original." + path)
			},
		},
	}
}
