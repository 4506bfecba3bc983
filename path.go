package paletteshift

import (
	"fmt"
	"strings"

	"github.com/jsvensson/paletteshift/internal/color"
)

// Lookup resolves a dot-notation path to a color of the result.
// Supported paths:
//   - palette.<name>...   the compensated color
//   - original.<name>...  the color as written in the document
//   - background.source, background.target
func (r *Result) Lookup(path string) (color.Color, error) {
	parts := strings.Split(path, ".")
	if len(parts) < 2 {
		return color.Color{}, fmt.Errorf("invalid path %q: must be block.name format", path)
	}

	block, rest := parts[0], parts[1:]
	switch block {
	case "palette":
		c, err := r.Compensated.Lookup(rest)
		if err != nil {
			return color.Color{}, fmt.Errorf("%s: %w", path, err)
		}
		return c, nil

	case "original":
		c, err := r.Original.Lookup(rest)
		if err != nil {
			return color.Color{}, fmt.Errorf("%s: %w", path, err)
		}
		return c, nil

	case "background":
		if len(rest) != 1 {
			return color.Color{}, fmt.Errorf("background paths must be single-level: %s", path)
		}
		switch rest[0] {
		case "source":
			return r.Source, nil
		case "target":
			return r.Target, nil
		}
		return color.Color{}, fmt.Errorf("unknown background %q (valid: source, target)", rest[0])

	default:
		return color.Color{}, fmt.Errorf("unknown block %q (valid: palette, original, background)", block)
	}
}
