// Package particles implements the pointer-reactive particle field.
//
// A [Field] owns a bounded, insertion-ordered collection of [Particle]
// values. Each tick integrates positions, applies pointer attraction inside
// the influence radius, relaxes idle particles towards their origin anchor,
// reflects particles off the drawable edges and bounds their speed.
//
// # Population cap
//
// The connective-edge pass ([Field.Edges]) compares every unordered pair of
// particles and is therefore O(n²). MaxParticles is the deliberate bound on
// that cost: inserts beyond the cap evict the oldest particle first (a FIFO,
// not a priority queue), so rapid pointer motion can never grow the
// per-frame work.
//
// # Thread Safety
//
// Field is NOT safe for concurrent use. The engine serialises ticks and
// input events.
package particles
