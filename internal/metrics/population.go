package metrics

// Population tracks the peak particle count.
type Population struct {
	name string
	peak int
}

func NewPopulation() *Population { return &Population{name: "population"} }

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(s FrameStats) {
	if s.Particles > p.peak {
		p.peak = s.Particles
	}
}

func (p *Population) Value() float64 { return float64(p.peak) }
func (p *Population) Reset()         { p.peak = 0 }

// EdgeLoad is the mean number of drawn edges per visible frame.
type EdgeLoad struct {
	name    string
	sum     float64
	samples int
}

func NewEdgeLoad() *EdgeLoad { return &EdgeLoad{name: "edge_load"} }

func (e *EdgeLoad) Name() string { return e.name }

func (e *EdgeLoad) Observe(s FrameStats) {
	if !s.Visible {
		return
	}
	e.sum += float64(s.Edges)
	e.samples++
}

func (e *EdgeLoad) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *EdgeLoad) Reset() {
	e.sum = 0
	e.samples = 0
}

// ActiveRatio reports the share of particles currently under pointer
// influence, as of the last visible frame.
type ActiveRatio struct {
	name  string
	ratio float64
}

func NewActiveRatio() *ActiveRatio { return &ActiveRatio{name: "active_ratio"} }

func (a *ActiveRatio) Name() string { return a.name }

func (a *ActiveRatio) Observe(s FrameStats) {
	if !s.Visible {
		return
	}
	if s.Particles == 0 {
		a.ratio = 0
		return
	}
	a.ratio = float64(s.Active) / float64(s.Particles)
}

func (a *ActiveRatio) Value() float64 { return a.ratio }
func (a *ActiveRatio) Reset()         { a.ratio = 0 }
