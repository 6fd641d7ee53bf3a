// Package fx defines the shared data model of the pointer effects core.
//
// The core is split into small leaf components that all speak in terms of
// the types declared here:
//
//   - [Vec2]: a point or velocity in viewport space
//   - [Rect]: an axis-aligned box with inclusive edges
//   - [Particle]: a fading trail marker with constant velocity
//   - [Ripple]: a fading click marker fixed in place
//   - [Snapshot]: the read-only view handed to render adapters
//
// # Lifetime
//
// Particles and ripples start with Life = 1 and lose a fixed amount per
// tick. [Alive] is the single predicate used to reap them; anything with
// Life <= 0 is dropped and never rendered.
//
// # Thread Safety
//
// None of these types are synchronized. A [Snapshot] is an independent copy
// and can be handed to another goroutine once taken.
package fx
