package render

import (
	"bytes"
	"fmt"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Pixels per inch when projecting plan coordinates onto the SVG canvas.
const defaultScale = 96.0

// Vertical gap between stacked slides, in pixels.
const slideGap = 24.0

// boxFill maps box kinds to wireframe fill colors.
var boxFill = map[deck.BoxKind]string{
	deck.BoxTitle:   "#dbeafe",
	deck.BoxContent: "#dcfce7",
	deck.BoxImage:   "#fef3c7",
	deck.BoxChart:   "#fce7f3",
	deck.BoxTable:   "#ede9fe",
}

// SVGOption configures wireframe rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale    float64
	labels   bool
	grid     bool
	branding bool
	slide    int
}

// WithScale sets the pixels-per-inch projection. The default is 96.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithLabels annotates every box with its kind name.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithGrid draws a one-inch reference grid behind each slide.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

// WithBranding draws the preserved branding elements hatched grey, so the
// wireframe shows what the generated boxes are steering around.
func WithBranding() SVGOption { return func(r *svgRenderer) { r.branding = true } }

// WithSlide restricts output to a single slide index.
func WithSlide(index int) SVGOption { return func(r *svgRenderer) { r.slide = index } }

// RenderSVG draws the plan as a stacked wireframe: one rectangle per
// slide, safe areas dashed, generated boxes filled by kind. The output is
// a review artifact, not a finished deck.
func RenderSVG(p *compose.DeckPlan, opts ...SVGOption) []byte {
	r := svgRenderer{scale: defaultScale, slide: -1}
	for _, opt := range opts {
		opt(&r)
	}

	slides := p.Slides
	if r.slide >= 0 && r.slide < len(slides) {
		slides = slides[r.slide : r.slide+1]
	}

	slideW := p.Canvas.Width * r.scale
	slideH := p.Canvas.Height * r.scale
	totalH := float64(len(slides))*(slideH+slideGap) - slideGap
	if totalH < 0 {
		totalH = 0
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		slideW, totalH, slideW, totalH)
	buf.WriteString(`<defs><pattern id="hatch" width="6" height="6" patternTransform="rotate(45)" patternUnits="userSpaceOnUse">` +
		`<line x1="0" y1="0" x2="0" y2="6" stroke="#9ca3af" stroke-width="1"/></pattern></defs>` + "\n")

	offsetY := 0.0
	for _, s := range slides {
		r.renderSlide(&buf, p.Canvas, s, offsetY)
		offsetY += slideH + slideGap
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderSlide(buf *bytes.Buffer, canvas geometry.Rect, s compose.SlidePlan, offsetY float64) {
	w, h := canvas.Width*r.scale, canvas.Height*r.scale

	fmt.Fprintf(buf, `<g transform="translate(0 %.1f)">`+"\n", offsetY)
	fmt.Fprintf(buf, `<rect x="0" y="0" width="%.1f" height="%.1f" fill="white" stroke="#111827" stroke-width="1.5"/>`+"\n", w, h)

	if r.grid {
		r.renderGrid(buf, canvas)
	}
	if r.branding {
		for _, e := range s.Branding {
			r.renderRect(buf, e.Bounds, "url(#hatch)", "#9ca3af", "")
		}
	}

	if s.SafeArea.Usable {
		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#16a34a" stroke-width="1" stroke-dasharray="6 4"/>`+"\n",
			s.SafeArea.Area.Left*r.scale, s.SafeArea.Area.Top*r.scale,
			s.SafeArea.Area.Width*r.scale, s.SafeArea.Area.Height*r.scale)
	}

	for _, b := range s.Boxes {
		fill, ok := boxFill[b.Kind]
		if !ok {
			fill = "#f3f4f6"
		}
		label := ""
		if r.labels {
			label = string(b.Kind)
		}
		r.renderRect(buf, b.Bounds, fill, "#374151", label)
	}

	if s.Title != "" {
		fmt.Fprintf(buf, `<text x="6" y="14" font-size="12" font-family="sans-serif" fill="#6b7280">%d. %s</text>`+"\n",
			s.Index, escapeText(s.Title))
	}

	buf.WriteString("</g>\n")
}

func (r *svgRenderer) renderGrid(buf *bytes.Buffer, canvas geometry.Rect) {
	for x := 1.0; x < canvas.Width; x++ {
		fmt.Fprintf(buf, `<line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#e5e7eb" stroke-width="0.5"/>`+"\n",
			x*r.scale, x*r.scale, canvas.Height*r.scale)
	}
	for y := 1.0; y < canvas.Height; y++ {
		fmt.Fprintf(buf, `<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e5e7eb" stroke-width="0.5"/>`+"\n",
			y*r.scale, canvas.Width*r.scale, y*r.scale)
	}
}

func (r *svgRenderer) renderRect(buf *bytes.Buffer, bounds geometry.Rect, fill, stroke, label string) {
	x, y := bounds.Left*r.scale, bounds.Top*r.scale
	w, h := bounds.Width*r.scale, bounds.Height*r.scale
	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, w, h, fill, stroke)
	if label != "" {
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-size="11" font-family="sans-serif" fill="#374151">%s</text>`+"\n",
			x+4, y+14, escapeText(label))
	}
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
