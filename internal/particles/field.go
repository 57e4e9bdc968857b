package particles

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/palette"
)

const epsilon = 1e-9

// Particle is one point of the field. Its identity is its index in the
// collection; Color never changes after creation.
type Particle struct {
	Pos, Origin, Vel geom.Point

	BaseRadius float64
	MaxRadius  float64
	Radius     float64
	Opacity    float64

	Color  colorful.Color
	Active bool
}

func (p Particle) Speed() float64 { return p.Vel.Len() }

type Field struct {
	params  Params
	rng     *rand.Rand
	pal     palette.Palette
	extent  geom.Extent
	parts   []Particle
	pointer geom.Point
	moved   time.Time
	evicted int
}

func NewField(params Params, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{params: params, rng: rng, pal: palette.For(palette.Light)}
}

func (f *Field) Params() Params           { return f.params }
func (f *Field) Len() int                 { return len(f.parts) }
func (f *Field) Extent() geom.Extent      { return f.extent }
func (f *Field) Pointer() geom.Point      { return f.pointer }
func (f *Field) Evicted() int             { return f.evicted }
func (f *Field) At(i int) Particle        { return f.parts[i] }
func (f *Field) Palette() palette.Palette { return f.pal }

// Capacity returns the particle count Initialize yields for an extent.
func (f *Field) Capacity(extent geom.Extent) int {
	extent = extent.Normalize()
	if extent.Empty() || f.params.DensityDivisor <= 0 {
		return 0
	}
	n := int(math.Floor(extent.Area() / f.params.DensityDivisor))
	if n > f.params.MaxParticles {
		n = f.params.MaxParticles
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Initialize replaces the collection with a fresh population spread
// uniformly over extent.
func (f *Field) Initialize(extent geom.Extent, pal palette.Palette) {
	f.extent = extent.Normalize()
	f.pal = pal
	n := f.Capacity(f.extent)
	f.parts = make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		pos := geom.Pt(f.rng.Float64()*f.extent.Width, f.rng.Float64()*f.extent.Height)
		f.parts = append(f.parts, f.newParticle(pos, false))
	}
}

// Reset drops the collection.
func (f *Field) Reset() {
	f.parts = nil
	f.evicted = 0
}

func (f *Field) newParticle(pos geom.Point, active bool) Particle {
	pr := f.params
	base := pr.MinRadius + f.rng.Float64()*(pr.MaxRadius-pr.MinRadius)
	s := pr.InitialSpeed
	p := Particle{
		Pos:        pos,
		Origin:     pos,
		Vel:        geom.Pt(f.rng.Float64()*2*s-s, f.rng.Float64()*2*s-s),
		BaseRadius: base,
		MaxRadius:  base * pr.RadiusGrowth,
		Radius:     base,
		Opacity:    pr.BaseOpacity,
		Color:      f.pickColor(),
		Active:     active,
	}
	if active {
		p.Opacity = geom.Clamp(pr.SpawnOpacity, pr.OpacityFloor, pr.OpacityCeiling)
	}
	return p
}

func (f *Field) pickColor() colorful.Color {
	if len(f.pal.Particles) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return f.pal.Particles[f.rng.Intn(len(f.pal.Particles))]
}

// Spawn inserts a particle at pos. At the population cap the oldest
// particle is evicted first. It reports whether a particle was added.
func (f *Field) Spawn(pos geom.Point, active bool) bool {
	if f.params.MaxParticles <= 0 || f.extent.Empty() {
		return false
	}
	if len(f.parts) >= f.params.MaxParticles {
		n := copy(f.parts, f.parts[1:])
		f.parts = f.parts[:n]
		f.evicted++
	}
	f.parts = append(f.parts, f.newParticle(f.extent.Clamp(pos), active))
	return true
}

// OnPointerMove records the pointer and, with SpawnProbability per call and
// only below the cap, spawns an active particle under it.
func (f *Field) OnPointerMove(pos geom.Point, at time.Time) bool {
	f.pointer = pos
	f.moved = at
	if len(f.parts) >= f.params.MaxParticles {
		return false
	}
	if f.rng.Float64() >= f.params.SpawnProbability {
		return false
	}
	return f.Spawn(pos, true)
}

// PointerActive reports whether the pointer moved within the idle window.
// A zero PointerIdle keeps the pointer active once it has moved.
func (f *Field) PointerActive(now time.Time) bool {
	if f.moved.IsZero() {
		return false
	}
	if f.params.PointerIdle <= 0 {
		return true
	}
	return now.Sub(f.moved) < f.params.PointerIdle
}

// ClearPointer forgets the pointer, e.g. when it leaves the surface.
func (f *Field) ClearPointer() { f.moved = time.Time{} }

// Tick advances every particle by dt nominal frames. A zero-area extent
// makes it a no-op.
func (f *Field) Tick(dt float64, extent geom.Extent, pointerActive bool) {
	extent = extent.Normalize()
	if extent.Empty() || dt <= 0 {
		return
	}
	f.extent = extent
	pr := f.params
	r := pr.InfluenceRadius

	for i := range f.parts {
		p := &f.parts[i]
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))

		d := f.pointer.Sub(p.Pos)
		dist := d.Len()
		if pointerActive && dist < r {
			prox := (r - dist) / r
			if dist > epsilon {
				p.Vel = p.Vel.Add(d.Scale(pr.Attraction * prox * dt / dist))
			}
			k := math.Min(1, pr.GrowRate*prox*dt)
			p.Radius += (p.MaxRadius - p.Radius) * k
			p.Opacity += (pr.OpacityCeiling - p.Opacity) * k
			p.Active = true
		} else {
			p.Vel = p.Vel.Add(p.Origin.Sub(p.Pos).Scale(pr.AnchorPull * dt))
			k := math.Min(1, pr.DecayRate*dt)
			p.Radius += (p.BaseRadius - p.Radius) * k
			p.Opacity += (pr.BaseOpacity - p.Opacity) * k
			p.Active = false
		}

		contain(p, extent)

		if s := p.Vel.Len(); s > pr.MaxSpeed {
			p.Vel = p.Vel.Scale(pr.MaxSpeed / s)
		}
		p.Vel = p.Vel.Scale(math.Pow(pr.Damping, dt))

		p.Radius = geom.Clamp(p.Radius, p.BaseRadius, p.MaxRadius)
		p.Opacity = geom.Clamp(p.Opacity, pr.OpacityFloor, pr.OpacityCeiling)
	}
}

// contain reflects the velocity on any axis where the particle left the
// box so it points back inside, then clamps the position.
func contain(p *Particle, e geom.Extent) {
	if p.Pos.X < 0 {
		p.Vel.X = math.Abs(p.Vel.X)
	} else if p.Pos.X > e.Width {
		p.Vel.X = -math.Abs(p.Vel.X)
	}
	if p.Pos.Y < 0 {
		p.Vel.Y = math.Abs(p.Vel.Y)
	} else if p.Pos.Y > e.Height {
		p.Vel.Y = -math.Abs(p.Vel.Y)
	}
	p.Pos = e.Clamp(p.Pos)
}

// Snapshot appends a copy of the collection to dst.
func (f *Field) Snapshot(dst []Particle) []Particle {
	return append(dst[:0], f.parts...)
}

func (f *Field) ActiveCount() int {
	n := 0
	for i := range f.parts {
		if f.parts[i].Active {
			n++
		}
	}
	return n
}
