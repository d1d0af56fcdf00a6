package layout

import (
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Region names a conventional sub-rectangle of a target area. Regions are
// a convenience for callers assembling custom layouts by hand: each maps
// to a fractional rectangle usable directly in Params.Boxes.
type Region string

// Named regions.
const (
	RegionFull        Region = "full"
	RegionTopHalf     Region = "top_half"
	RegionBottomHalf  Region = "bottom_half"
	RegionLeftHalf    Region = "left_half"
	RegionRightHalf   Region = "right_half"
	RegionTopLeft     Region = "top_left"
	RegionTopRight    Region = "top_right"
	RegionBottomLeft  Region = "bottom_left"
	RegionBottomRight Region = "bottom_right"
	RegionCenter      Region = "center"
)

var regionFractions = map[Region]geometry.Rect{
	RegionFull:        geometry.NewRect(0, 0, 1, 1),
	RegionTopHalf:     geometry.NewRect(0, 0, 1, 0.5),
	RegionBottomHalf:  geometry.NewRect(0, 0.5, 1, 0.5),
	RegionLeftHalf:    geometry.NewRect(0, 0, 0.5, 1),
	RegionRightHalf:   geometry.NewRect(0.5, 0, 0.5, 1),
	RegionTopLeft:     geometry.NewRect(0, 0, 0.5, 0.5),
	RegionTopRight:    geometry.NewRect(0.5, 0, 0.5, 0.5),
	RegionBottomLeft:  geometry.NewRect(0, 0.5, 0.5, 0.5),
	RegionBottomRight: geometry.NewRect(0.5, 0.5, 0.5, 0.5),
	RegionCenter:      geometry.NewRect(0.25, 0.25, 0.5, 0.5),
}

// ParseRegion converts a string into a Region.
func ParseRegion(s string) (Region, error) {
	if _, ok := regionFractions[Region(s)]; !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown region: %q", s)
	}
	return Region(s), nil
}

// Fraction returns the region's fractional rectangle within the unit
// square. Unknown regions return the full rectangle.
func (r Region) Fraction() geometry.Rect {
	if frac, ok := regionFractions[r]; ok {
		return frac
	}
	return regionFractions[RegionFull]
}

// Rect maps the region into absolute coordinates within target.
func (r Region) Rect(target geometry.Rect) geometry.Rect {
	return target.Scale(r.Fraction())
}
