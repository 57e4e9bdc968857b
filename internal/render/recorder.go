package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ambient/internal/geom"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpFill
	OpLine
	OpCircle
)

type Op struct {
	Kind   OpKind
	Points int
	Alpha  float64
	Color  colorful.Color
}

// Recorder is a Surface that records draw calls instead of painting. It
// is used by tests and by hosts that only need statistics.
type Recorder struct {
	Extent  geom.Extent
	Ops     []Op
	Resizes int
	Down    bool
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{Extent: geom.Ext(float64(w), float64(h))}
}

func (r *Recorder) Size() geom.Extent { return r.Extent }
func (r *Recorder) Ready() bool       { return !r.Down }

func (r *Recorder) Resize(w, h int) {
	r.Extent = geom.Ext(float64(w), float64(h))
	r.Resizes++
}

func (r *Recorder) Clear(bg colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: bg, Alpha: 1})
}

func (r *Recorder) FillPath(pts []geom.Point, fill Fill) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Points: len(pts), Alpha: fill.Alpha, Color: fill.Color})
}

func (r *Recorder) Line(a, b geom.Point, width float64, c colorful.Color, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: 2, Alpha: alpha, Color: c})
}

func (r *Recorder) Circle(center geom.Point, radius float64, c colorful.Color, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: 1, Alpha: alpha, Color: c})
}

// Frames counts Clear calls, one per drawn frame.
func (r *Recorder) Frames() int { return r.Count(OpClear) }

func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
