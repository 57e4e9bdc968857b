package palette

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"light", Light, false},
		{"DARK", Dark, false},
		{" dark ", Dark, false},
		{"", Light, false},
		{"sepia", Light, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParseMode(%q) err = %v, want ErrUnknownMode", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestForReturnsIndependentCopies(t *testing.T) {
	a := For(Dark)
	a.Particles[0] = a.Highlight
	b := For(Dark)
	if b.Particles[0] == a.Highlight {
		t.Error("For must not share the backing palette slices")
	}
	if len(b.Waves) != 5 || len(b.Particles) != 3 {
		t.Errorf("unexpected dark palette sizes: %d waves, %d particles", len(b.Waves), len(b.Particles))
	}
}

func TestWaveCycles(t *testing.T) {
	p := For(Light)
	for i := 0; i < 12; i++ {
		if p.Wave(i) != p.Waves[i%len(p.Waves)] {
			t.Fatalf("Wave(%d) did not cycle", i)
		}
	}
	if p.Wave(0).Alpha != 0.3 {
		t.Errorf("first light band alpha = %v, want 0.3", p.Wave(0).Alpha)
	}
}

func TestBlendStaysInGamut(t *testing.T) {
	p := For(Dark)
	c := p.Blend(p.Particles[0], p.Particles[2])
	if !c.IsValid() {
		t.Errorf("blended colour out of gamut: %v", c)
	}
	if c == p.Particles[0] || c == p.Particles[2] {
		t.Error("blend should differ from both endpoints")
	}
}

func TestLipglossHex(t *testing.T) {
	p := For(Light)
	if got := string(Lipgloss(p.Particles[0])); got != "#ffb6c1" {
		t.Errorf("Lipgloss = %s, want #ffb6c1", got)
	}
}

func TestMustHex(t *testing.T) {
	c := MustHex("#ff8000")
	if r, g, b := c.RGB255(); r != 255 || g != 128 || b != 0 {
		t.Errorf("MustHex(#ff8000) = %d,%d,%d", r, g, b)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustHex should panic on a malformed literal")
		}
	}()
	MustHex("not-a-colour")
}

func TestPaletteTablesParse(t *testing.T) {
	for _, m := range Modes() {
		p := For(m)
		if p.Background == p.Highlight {
			t.Errorf("%s: background and highlight must differ", m)
		}
		if len(p.Particles) == 0 || len(p.Waves) == 0 {
			t.Errorf("%s: empty palette", m)
		}
	}
}
