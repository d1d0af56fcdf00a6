package layout

import (
	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Generate produces the ordered box list for one pattern inside the target
// rectangle. Every returned box lies within the target; boxes for
// two_column and grid are additionally pairwise non-overlapping.
//
// Failures are scoped to this one call: a capacity overflow on grid or an
// out-of-range custom rectangle returns an error and no boxes.
func Generate(target geometry.Rect, pattern Pattern, params Params, items []deck.ContentItem, cfg Config) ([]deck.ElementBox, error) {
	if target.IsDegenerate() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "target rectangle has no area: %gx%g", target.Width, target.Height)
	}

	switch pattern {
	case PatternSingle:
		return generateSingle(target, items, cfg), nil
	case PatternTwoColumn:
		return generateTwoColumn(target, params, items, cfg), nil
	case PatternGrid:
		return generateGrid(target, params, items, cfg)
	case PatternImageText:
		return generateImageText(target, params, items, cfg), nil
	case PatternStack:
		return generateStack(target, params, items, cfg), nil
	case PatternCustom:
		return generateCustom(target, params, items)
	default:
		return nil, errors.New(errors.ErrCodeInvalidPattern, "unknown layout pattern: %q", pattern)
	}
}

// splitTitle peels the title item (if any) off the item list and returns
// the title band, the remaining content area, and the remaining items.
// Every pattern except custom places the title band on top.
func splitTitle(target geometry.Rect, items []deck.ContentItem, cfg Config) (deck.ElementBox, geometry.Rect, []deck.ContentItem) {
	titleH := cfg.TitleRatio * target.Height
	gutter := cfg.GutterRatio * target.Width

	title := deck.ElementBox{
		Kind:   deck.BoxTitle,
		Bounds: geometry.NewRect(target.Left, target.Top, target.Width, titleH),
	}

	rest := items
	for i, it := range items {
		if it.Kind == deck.BoxTitle {
			title.Payload = it.Payload
			rest = append(append([]deck.ContentItem{}, items[:i]...), items[i+1:]...)
			break
		}
	}

	contentTop := target.Top + titleH + gutter
	contentH := target.Bottom() - contentTop
	if contentH < 0 {
		contentH = 0
	}
	content := geometry.NewRect(target.Left, contentTop, target.Width, contentH)
	return title, content, rest
}

// boxKind maps a content item to the kind of box that will hold it.
func boxKind(it deck.ContentItem) deck.BoxKind {
	if it.Kind == "" || it.Kind == deck.BoxTitle {
		return deck.BoxContent
	}
	return it.Kind
}

func generateSingle(target geometry.Rect, items []deck.ContentItem, cfg Config) []deck.ElementBox {
	title, content, rest := splitTitle(target, items, cfg)

	body := deck.ElementBox{Kind: deck.BoxContent, Bounds: content}
	if len(rest) > 0 {
		body.Kind = boxKind(rest[0])
		body.Payload = rest[0].Payload
	}
	return []deck.ElementBox{title, body}
}

func generateTwoColumn(target geometry.Rect, params Params, items []deck.ContentItem, cfg Config) []deck.ElementBox {
	title, content, rest := splitTitle(target, items, cfg)

	ratio := clampRatio(params.Ratio)
	gutter := cfg.GutterRatio * target.Width
	avail := content.Width - gutter
	if avail < 0 {
		avail = 0
	}
	leftW := ratio * avail
	rightW := avail - leftW

	left := deck.ElementBox{
		Kind:   deck.BoxContent,
		Bounds: geometry.NewRect(content.Left, content.Top, leftW, content.Height),
	}
	right := deck.ElementBox{
		Kind:   deck.BoxContent,
		Bounds: geometry.NewRect(content.Left+leftW+gutter, content.Top, rightW, content.Height),
	}
	if len(rest) > 0 {
		left.Kind = boxKind(rest[0])
		left.Payload = rest[0].Payload
	}
	if len(rest) > 1 {
		right.Kind = boxKind(rest[1])
		right.Payload = rest[1].Payload
	}
	return []deck.ElementBox{title, left, right}
}

func generateGrid(target geometry.Rect, params Params, items []deck.ContentItem, cfg Config) ([]deck.ElementBox, error) {
	title, content, rest := splitTitle(target, items, cfg)

	rows, cols := params.Rows, params.Cols
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if len(rest) > rows*cols {
		return nil, errors.New(errors.ErrCodeLayoutCapacity,
			"%d items exceed %dx%d grid capacity of %d", len(rest), rows, cols, rows*cols)
	}

	out := []deck.ElementBox{title}
	if len(rest) == 0 {
		return out, nil
	}

	gutter := cfg.GutterRatio * target.Width
	cellW := (content.Width - float64(cols-1)*gutter) / float64(cols)
	cellH := (content.Height - float64(rows-1)*gutter) / float64(rows)
	if cellW < 0 {
		cellW = 0
	}
	if cellH < 0 {
		cellH = 0
	}

	// Row-major fill; trailing cells beyond the item count are omitted,
	// never stretched.
	for i, it := range rest {
		row := i / cols
		col := i % cols
		out = append(out, deck.ElementBox{
			Kind: boxKind(it),
			Bounds: geometry.NewRect(
				content.Left+float64(col)*(cellW+gutter),
				content.Top+float64(row)*(cellH+gutter),
				cellW,
				cellH,
			),
			Payload: it.Payload,
		})
	}
	return out, nil
}

func generateImageText(target geometry.Rect, params Params, items []deck.ContentItem, cfg Config) []deck.ElementBox {
	title, content, rest := splitTitle(target, items, cfg)
	if len(rest) == 0 {
		return []deck.ElementBox{title}
	}

	share := cfg.imageShare(params.ImageSize)
	gutter := cfg.GutterRatio * target.Width
	avail := content.Width - gutter
	if avail < 0 {
		avail = 0
	}
	imgW := share * avail
	txtW := avail - imgW

	var imgLeft, txtLeft float64
	if params.ImageSide == SideRight {
		txtLeft = content.Left
		imgLeft = content.Left + txtW + gutter
	} else {
		imgLeft = content.Left
		txtLeft = content.Left + imgW + gutter
	}

	img := deck.ElementBox{
		Kind:   deck.BoxImage,
		Bounds: geometry.NewRect(imgLeft, content.Top, imgW, content.Height),
	}
	txt := deck.ElementBox{
		Kind:   deck.BoxContent,
		Bounds: geometry.NewRect(txtLeft, content.Top, txtW, content.Height),
	}

	for _, it := range rest {
		if it.Kind == deck.BoxImage && img.Payload == "" {
			img.Payload = it.Payload
		} else if txt.Payload == "" {
			txt.Kind = boxKind(it)
			txt.Payload = it.Payload
		}
	}
	return []deck.ElementBox{title, img, txt}
}

func generateStack(target geometry.Rect, params Params, items []deck.ContentItem, cfg Config) []deck.ElementBox {
	title, content, rest := splitTitle(target, items, cfg)
	if len(rest) == 0 {
		return []deck.ElementBox{title}
	}

	weights := params.Weights
	if len(weights) != len(rest) {
		weights = make([]float64, len(rest))
		for i := range weights {
			weights[i] = 1
		}
	}
	var sum float64
	for i, w := range weights {
		if w <= 0 {
			w = 1
			weights[i] = w
		}
		sum += w
	}

	gutter := cfg.GutterRatio * target.Width
	avail := content.Height - float64(len(rest)-1)*gutter
	if avail < 0 {
		avail = 0
	}

	out := []deck.ElementBox{title}
	top := content.Top
	for i, it := range rest {
		h := weights[i] / sum * avail
		out = append(out, deck.ElementBox{
			Kind:    boxKind(it),
			Bounds:  geometry.NewRect(content.Left, top, content.Width, h),
			Payload: it.Payload,
		})
		top += h + gutter
	}
	return out
}

func generateCustom(target geometry.Rect, params Params, items []deck.ContentItem) ([]deck.ElementBox, error) {
	unit := geometry.NewRect(0, 0, 1, 1)
	for i, frac := range params.Boxes {
		if frac.Width < 0 || frac.Height < 0 || !unit.Contains(frac) {
			return nil, errors.New(errors.ErrCodeCustomOutOfBounds,
				"custom box %d (left %g, top %g, width %g, height %g) leaves the unit rectangle",
				i, frac.Left, frac.Top, frac.Width, frac.Height)
		}
	}

	out := make([]deck.ElementBox, 0, len(params.Boxes))
	for i, frac := range params.Boxes {
		box := deck.ElementBox{
			Kind:   deck.BoxContent,
			Bounds: target.Scale(frac),
		}
		if i < len(items) {
			box.Kind = boxKind(items[i])
			box.Payload = items[i].Payload
			if items[i].Kind == deck.BoxTitle {
				box.Kind = deck.BoxTitle
			}
		}
		out = append(out, box)
	}
	return out, nil
}
