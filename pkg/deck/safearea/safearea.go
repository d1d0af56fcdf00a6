// Package safearea computes the rectangle on a slide canvas where new
// content can be placed without colliding with branding or decoration.
//
// The calculator starts from the canvas inset by a fixed margin and shrinks
// the candidate rectangle edge by edge until it clears every obstacle. When
// shrinking would leave the candidate below a minimum usable size, it falls
// back to a horizontal band decomposition, and finally to a zero-area
// rectangle at the canvas center with the Usable flag cleared. It never
// fails: degenerate results are reported through the flag so the caller can
// decide between a blank-canvas fallback and a per-slide layout error.
package safearea

import (
	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Config holds the safe-area tuning constants.
type Config struct {
	// Margin is the inset (inches) from every canvas edge before any
	// obstacle is considered.
	Margin float64 `toml:"margin"`

	// Clearance is the extra gap (inches) kept between the safe area and
	// any obstacle it was shrunk away from.
	Clearance float64 `toml:"clearance"`

	// MinWidth and MinHeight are the smallest usable safe-area dimensions.
	// A candidate below either triggers the band fallback.
	MinWidth  float64 `toml:"min_width"`
	MinHeight float64 `toml:"min_height"`
}

// DefaultConfig returns the documented default tuning constants.
func DefaultConfig() Config {
	return Config{
		Margin:    0.5,
		Clearance: 0.2,
		MinWidth:  2.0,
		MinHeight: 1.5,
	}
}

// Result is the outcome of one safe-area computation. When Usable is false
// Area is a zero-size rectangle at the canvas center and the caller must
// treat layout on this canvas as failed rather than place content there.
type Result struct {
	Area   geometry.Rect `json:"area" bson:"area"`
	Usable bool          `json:"usable" bson:"usable"`
}

// Compute derives the safe area for the given canvas and obstacle set.
// Obstacles are the elements classified branding or decoration; content
// elements must not be passed here since they are allowed to be replaced.
func Compute(canvas geometry.Rect, obstacles []deck.Element, cfg Config) Result {
	if canvas.IsDegenerate() {
		return Result{Area: canvas.ZeroAt()}
	}

	blocked := expandObstacles(canvas, obstacles, cfg.Clearance)

	candidate := canvas.Inset(cfg.Margin)
	if r, ok := shrinkPast(candidate, blocked, cfg); ok {
		return Result{Area: r, Usable: true}
	}

	if r, ok := largestBand(canvas.Inset(cfg.Margin), blocked, cfg); ok {
		return Result{Area: r, Usable: true}
	}

	return Result{Area: canvas.ZeroAt()}
}

// expandObstacles clamps each obstacle's geometry and grows it by the
// clearance, dropping anything degenerate or entirely off-canvas.
func expandObstacles(canvas geometry.Rect, obstacles []deck.Element, clearance float64) []geometry.Rect {
	var out []geometry.Rect
	for _, o := range obstacles {
		b := o.Bounds.Clamp()
		if b.IsDegenerate() {
			continue
		}
		grown := b.Inset(-clearance)
		if !grown.Intersects(canvas) {
			continue
		}
		out = append(out, grown)
	}
	return out
}

// shrinkPast moves candidate edges inward until no obstacle intersects,
// or reports failure once the candidate drops below the minimum size.
//
// For each blocking obstacle the edge requiring the smallest inward move
// is chosen. On a tie the vertical edges win: persistent branding sits
// overwhelmingly in top and bottom bands, so giving up height first keeps
// the full content width available.
func shrinkPast(candidate geometry.Rect, blocked []geometry.Rect, cfg Config) (geometry.Rect, bool) {
	// Each pass clears at least one obstacle for good (the candidate only
	// shrinks), so the obstacle count bounds the loop.
	for range blocked {
		ob, found := firstBlocking(candidate, blocked)
		if !found {
			break
		}

		next, ok := shrinkOnce(candidate, ob)
		if !ok {
			return geometry.Rect{}, false
		}
		candidate = next
	}

	if _, found := firstBlocking(candidate, blocked); found {
		return geometry.Rect{}, false
	}
	if candidate.Width < cfg.MinWidth || candidate.Height < cfg.MinHeight {
		return geometry.Rect{}, false
	}
	return candidate, true
}

func firstBlocking(candidate geometry.Rect, blocked []geometry.Rect) (geometry.Rect, bool) {
	for _, b := range blocked {
		if candidate.Intersects(b) {
			return b, true
		}
	}
	return geometry.Rect{}, false
}

// shrinkOnce moves one candidate edge just past the obstacle. Moves are
// ranked by displacement; an impossible move (the edge would cross its
// opposite) is skipped. Ordering of the candidates implements the vertical
// tie-break.
func shrinkOnce(candidate, ob geometry.Rect) (geometry.Rect, bool) {
	type move struct {
		shift float64
		apply geometry.Rect
	}

	var moves []move

	if top := ob.Bottom(); top > candidate.Top && top < candidate.Bottom() {
		moves = append(moves, move{
			shift: top - candidate.Top,
			apply: geometry.NewRect(candidate.Left, top, candidate.Width, candidate.Bottom()-top),
		})
	}
	if bottom := ob.Top; bottom < candidate.Bottom() && bottom > candidate.Top {
		moves = append(moves, move{
			shift: candidate.Bottom() - bottom,
			apply: geometry.NewRect(candidate.Left, candidate.Top, candidate.Width, bottom-candidate.Top),
		})
	}
	if left := ob.Right(); left > candidate.Left && left < candidate.Right() {
		moves = append(moves, move{
			shift: left - candidate.Left,
			apply: geometry.NewRect(left, candidate.Top, candidate.Right()-left, candidate.Height),
		})
	}
	if right := ob.Left; right < candidate.Right() && right > candidate.Left {
		moves = append(moves, move{
			shift: candidate.Right() - right,
			apply: geometry.NewRect(candidate.Left, candidate.Top, right-candidate.Left, candidate.Height),
		})
	}

	if len(moves) == 0 {
		// The obstacle spans the whole candidate in both axes.
		return geometry.Rect{}, false
	}

	best := moves[0]
	for _, m := range moves[1:] {
		if m.shift < best.shift {
			best = m
		}
	}
	return best.apply, true
}

// largestBand evaluates the horizontal bands above all obstacles, between
// the topmost and bottommost obstacles, and below all obstacles, returning
// the largest one that meets the minimum size and clears every obstacle.
// A full maximal-rectangle search is deliberately not attempted.
func largestBand(inset geometry.Rect, blocked []geometry.Rect, cfg Config) (geometry.Rect, bool) {
	if len(blocked) == 0 {
		return geometry.Rect{}, false
	}

	minTop := blocked[0].Top
	maxBottom := blocked[0].Bottom()
	topmostBottom := blocked[0].Bottom()
	bottommostTop := blocked[0].Top
	for _, b := range blocked[1:] {
		if b.Top < minTop {
			minTop = b.Top
			topmostBottom = b.Bottom()
		}
		if b.Bottom() > maxBottom {
			maxBottom = b.Bottom()
			bottommostTop = b.Top
		}
	}

	bands := []geometry.Rect{
		geometry.NewRect(inset.Left, inset.Top, inset.Width, minTop-inset.Top),
		geometry.NewRect(inset.Left, topmostBottom, inset.Width, bottommostTop-topmostBottom),
		geometry.NewRect(inset.Left, maxBottom, inset.Width, inset.Bottom()-maxBottom),
	}

	var best geometry.Rect
	found := false
	for _, band := range bands {
		if band.Width < cfg.MinWidth || band.Height < cfg.MinHeight {
			continue
		}
		if _, hit := firstBlocking(band, blocked); hit {
			continue
		}
		if !found || band.Area() > best.Area() {
			best = band
			found = true
		}
	}
	return best, found
}
