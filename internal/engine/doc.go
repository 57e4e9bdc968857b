// Package engine ties the particle field, the wave synthesizer, the
// viewport tracker and the renderer into one explicitly owned instance
// driven by a frame scheduler.
//
// Host input (resize, theme, pointer, scroll) is buffered into a pending
// slot and applied at the start of the next tick, so no input ever lands
// in the middle of a simulation or draw pass. A tick runs entirely under
// the scheduler's lock and then the engine's lock, in that order; engine
// methods never hold the engine lock while calling into the scheduler.
package engine
