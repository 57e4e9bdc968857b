package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/ambient/internal/metrics"
)

// Report summarises a headless run.
type Report struct {
	Theme     string                     `json:"theme"`
	Seed      int64                      `json:"seed"`
	Width     int                        `json:"width"`
	Height    int                        `json:"height"`
	MaxFPS    float64                    `json:"max_fps"`
	Steps     int                        `json:"steps"`
	Times     []float64                  `json:"times"`
	Frames    []ReportFrame              `json:"frames"`
	Metrics   map[string]float64         `json:"metrics"`
	Summaries map[string]metrics.Summary `json:"summaries,omitempty"`
	Evicted   int                        `json:"evicted"`
	Executed  uint64                     `json:"executed"`
	Skipped   uint64                     `json:"skipped"`
}

type ReportFrame struct {
	Particles int  `json:"particles"`
	Active    int  `json:"active"`
	Edges     int  `json:"edges"`
	Visible   bool `json:"visible"`
	Drawn     bool `json:"drawn"`
}

// OnFrame appends one frame, so a Report can be added as an engine
// observer.
func (r *Report) OnFrame(s metrics.FrameStats) {
	r.Times = append(r.Times, s.Time)
	r.Frames = append(r.Frames, ReportFrame{
		Particles: s.Particles,
		Active:    s.Active,
		Edges:     s.Edges,
		Visible:   s.Visible,
		Drawn:     s.Drawn,
	})
	r.Steps = len(r.Frames)
}

// Summarize fills Summaries from the recorded frames.
func (r *Report) Summarize() {
	n := len(r.Frames)
	parts, active, edges := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, f := range r.Frames {
		parts[i] = float64(f.Particles)
		active[i] = float64(f.Active)
		edges[i] = float64(f.Edges)
	}
	r.Summaries = map[string]metrics.Summary{
		"particles": metrics.Summarize(parts),
		"active":    metrics.Summarize(active),
		"edges":     metrics.Summarize(edges),
	}
}

func WriteReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveReport writes r to path, or to stdout when path is "-".
func SaveReport(path string, r *Report) error {
	if path == "-" {
		return WriteReport(os.Stdout, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
