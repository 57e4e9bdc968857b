// Package scheduler drives the engine's frame loop.
//
// A [Scheduler] is a two-state machine (Stopped, Running) that keeps exactly
// one callback pending on the host's frame mechanism, a [Waker]. Every
// callback reschedules the next one; callbacks arriving faster than the
// minimum frame interval are skipped without running the tick. Stop cancels
// the pending callback and invalidates any callback already handed to the
// host, so nothing runs after it returns.
//
// Hosts with their own frame loop (Bubble Tea ticks, Ebitengine Update, a
// headless renderer) use a [Queue] and call [Queue.Fire] once per frame.
// Tests do the same with a [ManualClock], which makes every tick explicit.
package scheduler
