// Package dtcg exports compensated palettes as Design Tokens Community
// Group (DTCG) JSON.
package dtcg

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jsvensson/paletteshift"
	"github.com/jsvensson/paletteshift/internal/color"
)

// Token is a single DTCG color token.
type Token struct {
	Type       string     `json:"$type"`
	Value      string     `json:"$value"`
	Extensions Extensions `json:"$extensions"`
}

// Extensions carries the uncompensated color alongside the token.
type Extensions struct {
	Paletteshift Origin `json:"paletteshift"`
}

// Origin records where a compensated token came from.
type Origin struct {
	Original string `json:"original"`
}

// Group is a DTCG group. Keys starting with "$" are group properties,
// everything else is a nested Group or Token.
type Group map[string]any

// Build converts a compensated result into a DTCG token tree. A palette
// group that carries its own color gets it as a "color" token.
func Build(res *paletteshift.Result) Group {
	root := Group{
		"$description": fmt.Sprintf("%s compensated from %s to %s",
			name(res.Meta), res.Source.Hex(), res.Target.Hex()),
	}
	for _, e := range res.Entries {
		path := strings.Split(e.Path, ".")
		g := root
		for _, p := range path[:len(path)-1] {
			child, ok := g[p].(Group)
			if !ok {
				child = Group{}
				if tok, isToken := g[p].(Token); isToken {
					child["color"] = tok
				}
				g[p] = child
			}
			g = child
		}

		leaf := path[len(path)-1]
		tok := newToken(e.Original, e.Compensated)
		if existing, ok := g[leaf].(Group); ok {
			existing["color"] = tok
			continue
		}
		g[leaf] = tok
	}
	return root
}

// Marshal renders the result as indented DTCG JSON.
func Marshal(res *paletteshift.Result) ([]byte, error) {
	data, err := json.MarshalIndent(Build(res), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding design tokens: %w", err)
	}
	return append(data, '\n'), nil
}

func newToken(original, compensated color.Color) Token {
	return Token{
		Type:       "color",
		Value:      compensated.Hex(),
		Extensions: Extensions{Paletteshift: Origin{Original: original.Hex()}},
	}
}

func name(m paletteshift.Meta) string {
	if m.Name == "" {
		return "palette"
	}
	return m.Name
}
