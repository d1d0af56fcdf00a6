// Package render turns deck plans into artifacts: wireframe SVGs for
// visual review, JSON documents for downstream tooling, and Graphviz
// node-link diagrams of the deck structure.
//
// All renderers are pure functions of the plan. They never mutate it and
// are safe to call concurrently.
package render

import (
	"github.com/mkessler/deckplan/pkg/errors"
)

// Format identifies an output artifact format.
type Format string

// Supported artifact formats.
const (
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatPNG  Format = "png"
)

// ValidFormats lists every supported format, in display order.
func ValidFormats() []Format {
	return []Format{FormatSVG, FormatJSON, FormatDOT, FormatPNG}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSVG, FormatJSON, FormatDOT, FormatPNG:
		return Format(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (valid: svg, json, dot, png)", s)
}
