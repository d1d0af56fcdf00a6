// Package deck defines the shared domain types for slide-deck planning:
// template elements, their classifications, positioned content boxes, and
// the canvas they live on.
//
// The types here are the canonical serialization format used across the
// CLI, the HTTP API, caching, and storage. Geometry is expressed in inches
// with the origin at the top-left corner of the slide.
//
// Subpackages implement the layout engine itself:
//
//   - [github.com/mkessler/deckplan/pkg/deck/classify] labels template
//     elements as branding, content, or decoration.
//   - [github.com/mkessler/deckplan/pkg/deck/safearea] computes the
//     rectangle where new content may be placed.
//   - [github.com/mkessler/deckplan/pkg/deck/layout] subdivides a target
//     rectangle into positioned boxes for a requested pattern.
//   - [github.com/mkessler/deckplan/pkg/deck/compose] combines the above
//     into a per-slide plan.
package deck
