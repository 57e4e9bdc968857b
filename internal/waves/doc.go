// Package waves synthesises the layered sinusoidal band field.
//
// Every band's height profile is a pure function of band index, horizontal
// position, global time and scroll offset: a primary sinusoid plus two
// harmonics (1.5x and 0.5x the band frequency), a short ripple term, a slow
// vertical drift and a scroll-driven parallax shift. Amplitude, frequency
// and phase speed are modulated by slow sinusoids of global time, which
// keeps the motion from visibly repeating without storing per-sample state.
//
// All angles are radians. Nothing in this package reads the wall clock or a
// random source, so identical inputs always yield identical paths.
package waves
