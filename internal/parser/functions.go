package parser

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/compensate"
)

// ResolveColor extracts a color string from a cty.Value.
// If the value is a string, return it directly.
// If the value is an object, extract the "color" key.
func ResolveColor(val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("color value is null or unknown")
	}
	if val.Type() == cty.String {
		return val.AsString(), nil
	}
	if val.Type().IsObjectType() {
		if val.Type().HasAttribute("color") {
			colorVal := val.GetAttr("color")
			if colorVal.Type() == cty.String {
				return colorVal.AsString(), nil
			}
		}
		return "", fmt.Errorf("object has no 'color' attribute; reference a specific child or add a color attribute")
	}
	return "", fmt.Errorf("expected string or object with color attribute, got %s", val.Type().FriendlyName())
}

// NodeToCty converts a color.Node to a cty.Value for HCL evaluation context.
// Leaf nodes (no children) become cty.StringVal.
// Nodes with children become cty.ObjectVal, with "color" as a sibling key if the node has its own color.
// Colors are rendered losslessly as oklch() so references do not quantize.
func NodeToCty(node *color.Node) cty.Value {
	if node.Children == nil {
		if node.Color != nil {
			return cty.StringVal(node.Color.String())
		}
		return cty.EmptyObjectVal
	}

	vals := make(map[string]cty.Value, len(node.Children)+1)
	if node.Color != nil {
		vals["color"] = cty.StringVal(node.Color.String())
	}

	keys := make([]string, 0, len(node.Children))
	for k := range node.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		vals[k] = NodeToCty(node.Children[k])
	}
	return cty.ObjectVal(vals)
}

func colorArg(v cty.Value, name string) (color.Color, error) {
	s, err := ResolveColor(v)
	if err != nil {
		return color.Color{}, fmt.Errorf("%s: %w", name, err)
	}
	c, err := color.Parse(s)
	if err != nil {
		return color.Color{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

func numberArg(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// MakeLightenFunc creates an HCL function that raises OKLCH lightness.
// Usage: lighten("#hex", 0.1) or lighten(palette.color, 0.1)
func MakeLightenFunc() function.Function {
	return lightnessFunc("Raises the OKLCH lightness of a color by the given amount (0.0 to 1.0)", color.Lighten)
}

// MakeDarkenFunc creates an HCL function that lowers OKLCH lightness.
// Usage: darken("#hex", 0.1) or darken(palette.color, 0.1)
func MakeDarkenFunc() function.Function {
	return lightnessFunc("Lowers the OKLCH lightness of a color by the given amount (0.0 to 1.0)", color.Darken)
}

func lightnessFunc(desc string, apply func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{Name: "color", Type: cty.DynamicPseudoType},
			{Name: "amount", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := colorArg(args[0], "color")
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(apply(c, numberArg(args[1])).String()), nil
		},
	})
}

// MakeMixFunc creates an HCL function that blends two colors in OKLAB.
// Usage: mix(palette.a, palette.b, 0.5)
func MakeMixFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Blends two colors in OKLAB; a weight of 0 gives the first color, 1 the second",
		Params: []function.Parameter{
			{Name: "a", Type: cty.DynamicPseudoType},
			{Name: "b", Type: cty.DynamicPseudoType},
			{Name: "weight", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			a, err := colorArg(args[0], "a")
			if err != nil {
				return cty.NilVal, err
			}
			b, err := colorArg(args[1], "b")
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(color.Mix(a, b, numberArg(args[2])).String()), nil
		},
	})
}

// MakeCompensateFunc creates an HCL function that returns the color that
// looks on the second background the way the first argument looks on the
// first background.
// Usage: compensate(palette.accent, background.source, background.target)
func MakeCompensateFunc(comp *compensate.Compensator) function.Function {
	return function.New(&function.Spec{
		Description: "Compensates a color for a change of background",
		Params: []function.Parameter{
			{Name: "color", Type: cty.DynamicPseudoType},
			{Name: "from", Type: cty.DynamicPseudoType},
			{Name: "to", Type: cty.DynamicPseudoType},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := colorArg(args[0], "color")
			if err != nil {
				return cty.NilVal, err
			}
			from, err := colorArg(args[1], "from")
			if err != nil {
				return cty.NilVal, err
			}
			to, err := colorArg(args[2], "to")
			if err != nil {
				return cty.NilVal, err
			}
			out, err := comp.Compensate(c, from, to)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(out.String()), nil
		},
	})
}

// Functions returns the functions available to palette expressions.
func Functions(comp *compensate.Compensator) map[string]function.Function {
	return map[string]function.Function{
		"lighten":    MakeLightenFunc(),
		"darken":     MakeDarkenFunc(),
		"mix":        MakeMixFunc(),
		"compensate": MakeCompensateFunc(comp),
	}
}

// BuildEvalContext creates an HCL evaluation context with palette and
// background variables and the color functions.
func BuildEvalContext(palette *color.Node, bg Background, funcs map[string]function.Function) *hcl.EvalContext {
	bgVals := map[string]cty.Value{}
	if bg.Source != nil {
		bgVals["source"] = cty.StringVal(bg.Source.String())
	}
	if bg.Target != nil {
		bgVals["target"] = cty.StringVal(bg.Target.String())
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette":    NodeToCty(palette),
			"background": cty.ObjectVal(bgVals),
		},
		Functions: funcs,
	}
}
