package geom

import "math"

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64  { return p.Sub(q).Len() }
func (p Point) IsValid() bool         { return !isBad(p.X) && !isBad(p.Y) }

func (p Point) Eq(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func isBad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Extent is a drawable size. Negative dimensions are treated as zero.
type Extent struct {
	Width, Height float64
}

func Ext(w, h float64) Extent { return Extent{Width: w, Height: h}.Normalize() }

func (e Extent) Normalize() Extent {
	if e.Width < 0 || isBad(e.Width) {
		e.Width = 0
	}
	if e.Height < 0 || isBad(e.Height) {
		e.Height = 0
	}
	return e
}

func (e Extent) Area() float64 { return e.Width * e.Height }

// Empty reports whether the extent has zero area.
func (e Extent) Empty() bool { return e.Width <= 0 || e.Height <= 0 }

// Contains reports whether p lies inside the closed box [0,w]x[0,h].
func (e Extent) Contains(p Point) bool {
	return p.X >= 0 && p.X <= e.Width && p.Y >= 0 && p.Y <= e.Height
}

// Clamp moves p into the closed box [0,w]x[0,h].
func (e Extent) Clamp(p Point) Point {
	return Point{Clamp(p.X, 0, e.Width), Clamp(p.Y, 0, e.Height)}
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersects reports whether two rectangles overlap with non-zero area.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
