package color

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Color is an OKLCH color with alpha. L is lightness in [0, 1], C is chroma
// (>= 0, about 0.37 at the edge of sRGB) and H is the hue angle in degrees.
// L, C, H and Alpha are the source of truth; all output formats are derived
// from them.
type Color struct {
	L, C, H float64
	Alpha   float64
}

// New returns an opaque color from OKLCH components.
func New(l, c, h float64) Color {
	return Color{L: l, C: c, H: h, Alpha: 1}
}

// String returns a lossless oklch() representation that Parse accepts.
func (c Color) String() string {
	var b strings.Builder
	b.WriteString("oklch(")
	b.WriteString(strconv.FormatFloat(c.L, 'g', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(c.C, 'g', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(c.H, 'g', -1, 64))
	if c.Alpha < 1 {
		b.WriteString(" / ")
		b.WriteString(strconv.FormatFloat(c.Alpha, 'g', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}

func (c Color) finite() bool {
	for _, v := range []float64{c.L, c.C, c.H, c.Alpha} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Node represents a palette entry that can be both a color and a namespace.
// Color is nil for namespace-only nodes (groups without a color attribute).
// Children is nil for leaf nodes (flat color attributes).
type Node struct {
	Color    *Color
	Children map[string]*Node
}

// Lookup resolves a dot-path (as segments) to a Color.
// Returns an error if the path is not found or the target node has no color.
func (n *Node) Lookup(path []string) (Color, error) {
	current := n
	for _, part := range path {
		if current.Children == nil {
			return Color{}, fmt.Errorf("path not found: %s is a leaf, cannot traverse further", part)
		}
		child, ok := current.Children[part]
		if !ok {
			return Color{}, fmt.Errorf("path not found: %q does not exist", part)
		}
		current = child
	}
	if current.Color == nil {
		return Color{}, fmt.Errorf("path is a group, not a color; add a color attribute or reference a specific child")
	}
	return *current.Color, nil
}

// Set stores c at path, creating intermediate groups as needed.
func (n *Node) Set(path []string, c Color) {
	current := n
	for _, part := range path {
		if current.Children == nil {
			current.Children = make(map[string]*Node)
		}
		child, ok := current.Children[part]
		if !ok {
			child = &Node{}
			current.Children[part] = child
		}
		current = child
	}
	current.Color = &c
}

// Walk visits every color in the tree depth-first, a node's own color
// before its children, children in sorted key order. Walking stops at the
// first error fn returns.
func (n *Node) Walk(fn func(path []string, c Color) error) error {
	return n.walk(nil, fn)
}

func (n *Node) walk(prefix []string, fn func(path []string, c Color) error) error {
	if n.Color != nil {
		if err := fn(prefix, *n.Color); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := append(append([]string(nil), prefix...), k)
		if err := n.Children[k].walk(path, fn); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of colors in the tree.
func (n *Node) Len() int {
	count := 0
	_ = n.Walk(func([]string, Color) error {
		count++
		return nil
	})
	return count
}
