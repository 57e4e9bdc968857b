// Package automation replays scripted host input against an engine so
// headless renders can show pointer, scroll and theme reactions.
package automation

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/palette"
	"gopkg.in/yaml.v3"
)

var ErrUnknownEvent = errors.New("automation: unknown event kind")

type Kind string

const (
	Pointer Kind = "pointer"
	Sweep   Kind = "sweep"
	Wander  Kind = "wander"
	Leave   Kind = "leave"
	Scroll  Kind = "scroll"
	Resize  Kind = "resize"
	Theme   Kind = "theme"
)

// Target is the host input surface a script drives.
type Target interface {
	OnPointerMove(x, y float64)
	OnPointerLeave()
	OnScroll(offset float64)
	OnResize(ext geom.Extent)
	OnThemeChange(m palette.Mode)
}

// Script is a timeline of host events keyed by frame number.
type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Frames      int     `yaml:"frames"`
	Events      []Event `yaml:"events"`
}

// Event fires at Frame. A sweep moves the pointer from (X,Y) to (ToX,ToY)
// over Duration frames, one move per frame. A wander drifts the pointer
// around (X,Y) on Perlin noise, within roughly Radius, for Duration frames.
type Event struct {
	Frame    int     `yaml:"frame"`
	Kind     Kind    `yaml:"kind"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ToX      float64 `yaml:"to_x"`
	ToY      float64 `yaml:"to_y"`
	Duration int     `yaml:"duration"`
	Radius   float64 `yaml:"radius"`
	Seed     int64   `yaml:"seed"`
	Offset   float64 `yaml:"offset"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mode     string  `yaml:"mode"`
}

const (
	wanderAlpha  = 2
	wanderBeta   = 2
	wanderOctave = 3
	wanderStep   = 0.05
)

// wanderAt is the pointer position k frames into a wander event.
func wanderAt(ev Event, k int) geom.Point {
	noise := perlin.NewPerlin(wanderAlpha, wanderBeta, wanderOctave, ev.Seed)
	u := float64(k)*wanderStep + 0.5
	return geom.Pt(ev.X+ev.Radius*noise.Noise2D(u, 0.25), ev.Y+ev.Radius*noise.Noise2D(u, 7.75))
}

func (ev Event) spans() bool { return ev.Kind == Sweep || ev.Kind == Wander }

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].Frame < s.Events[j].Frame })
	return &s, nil
}

func (s *Script) Validate() error {
	for i, ev := range s.Events {
		if ev.Frame < 0 {
			return fmt.Errorf("event %d: negative frame %d", i+1, ev.Frame)
		}
		switch ev.Kind {
		case Pointer, Leave, Scroll:
		case Sweep, Wander:
			if ev.Duration <= 0 {
				return fmt.Errorf("event %d: %s needs a positive duration", i+1, ev.Kind)
			}
			if ev.Radius < 0 {
				return fmt.Errorf("event %d: negative radius %g", i+1, ev.Radius)
			}
		case Resize:
			if ev.Width < 0 || ev.Height < 0 {
				return fmt.Errorf("event %d: negative size %gx%g", i+1, ev.Width, ev.Height)
			}
		case Theme:
			if _, err := palette.ParseMode(ev.Mode); err != nil {
				return fmt.Errorf("event %d: %w", i+1, err)
			}
		default:
			return fmt.Errorf("event %d: %w %q", i+1, ErrUnknownEvent, ev.Kind)
		}
	}
	return nil
}

// Length is the number of frames the script wants rendered: Frames when
// set, else one past its last event.
func (s *Script) Length() int {
	if s.Frames > 0 {
		return s.Frames
	}
	n := 0
	for _, ev := range s.Events {
		end := ev.Frame + 1
		if ev.spans() {
			end = ev.Frame + ev.Duration + 1
		}
		n = max(n, end)
	}
	return n
}

// Apply sends every event due at frame to t and returns how many were
// sent.
func (s *Script) Apply(frame int, t Target) int {
	sent := 0
	for _, ev := range s.Events {
		if ev.spans() {
			k := frame - ev.Frame
			if k < 0 || k > ev.Duration {
				continue
			}
			if ev.Kind == Wander {
				p := wanderAt(ev, k)
				t.OnPointerMove(p.X, p.Y)
			} else {
				u := float64(k) / float64(ev.Duration)
				t.OnPointerMove(ev.X+(ev.ToX-ev.X)*u, ev.Y+(ev.ToY-ev.Y)*u)
			}
			sent++
			continue
		}
		if ev.Frame != frame {
			continue
		}
		switch ev.Kind {
		case Pointer:
			t.OnPointerMove(ev.X, ev.Y)
		case Leave:
			t.OnPointerLeave()
		case Scroll:
			t.OnScroll(ev.Offset)
		case Resize:
			t.OnResize(geom.Ext(ev.Width, ev.Height))
		case Theme:
			m, _ := palette.ParseMode(ev.Mode)
			t.OnThemeChange(m)
		}
		sent++
	}
	return sent
}
