// Package field owns the live trail particles and click ripples.
//
// Both fields follow the same discipline: a decay timer is started lazily on
// the first insert, every tick rebuilds the contents from one consistent
// snapshot, and the timer stops itself as soon as the field drains. The next
// insert starts it again. Nothing ticks while a field is empty.
//
// Particles are capped: inserting past the cap drops the oldest entries
// immediately. Ripples are bounded only by decay.
package field
