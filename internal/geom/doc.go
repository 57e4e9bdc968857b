// Package geom provides the small set of 2-D primitives shared by the
// simulation, synthesis and rendering packages.
//
//   - [Point]: a position or vector in surface coordinates
//   - [Extent]: the drawable width and height of a surface
//   - [Rect]: an axis-aligned rectangle, used for visibility tests
//
// Surface coordinates have their origin at the top-left corner, x grows to
// the right and y grows downwards.
package geom
