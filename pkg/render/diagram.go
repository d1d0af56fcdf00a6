package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/errors"
)

// DiagramOptions configures deck structure diagrams.
type DiagramOptions struct {
	// Detailed includes box geometry in node labels. When false only
	// kinds and counts are shown.
	Detailed bool
}

// ToDOT converts a deck plan to Graphviz DOT format: the deck as root,
// one node per slide, one node per generated box. The resulting string
// renders with [RenderDiagram].
//
// Slides that fell back to a blank canvas are drawn with dashed outlines.
func ToDOT(p *compose.DeckPlan, opts DiagramOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deck {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	deckLabel := p.Template
	if deckLabel == "" {
		deckLabel = "blank canvas"
	}
	fmt.Fprintf(&buf, "  \"deck\" [label=%q, fillcolor=lightyellow];\n", fmt.Sprintf("%s\n%d slides", deckLabel, len(p.Slides)))

	for _, s := range p.Slides {
		slideID := fmt.Sprintf("slide-%d", s.Index)
		attrs := []string{fmt.Sprintf("label=%q", slideLabel(s))}
		if s.FellBack {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", slideID, strings.Join(attrs, ", "))
		fmt.Fprintf(&buf, "  \"deck\" -> %q;\n", slideID)

		for j, b := range s.Boxes {
			boxID := fmt.Sprintf("%s-box-%d", slideID, j)
			fmt.Fprintf(&buf, "  %q [label=%q, fontsize=11];\n", boxID, boxLabel(b, opts.Detailed))
			fmt.Fprintf(&buf, "  %q -> %q;\n", slideID, boxID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func slideLabel(s compose.SlidePlan) string {
	title := s.Title
	if title == "" {
		title = fmt.Sprintf("slide %d", s.Index)
	}
	return fmt.Sprintf("%s\n%s", title, s.Pattern)
}

func boxLabel(b deck.ElementBox, detailed bool) string {
	if detailed {
		return fmt.Sprintf("%s\n%.2f,%.2f %.2fx%.2f",
			b.Kind, b.Bounds.Left, b.Bounds.Top, b.Bounds.Width, b.Bounds.Height)
	}
	return string(b.Kind)
}

// RenderDiagram renders a DOT diagram to SVG or PNG using Graphviz.
func RenderDiagram(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "diagram format must be svg or png, got %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render diagram")
	}
	return buf.Bytes(), nil
}
