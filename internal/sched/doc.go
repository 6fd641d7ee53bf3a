// Package sched provides a cooperative, virtual-time scheduler for the
// periodic updaters of the effects core.
//
// Every [Timer] fires its callback on a fixed period while running. Time only
// moves when the host calls [Scheduler.Advance] or [Scheduler.AdvanceTo], so
// the same code runs under a terminal frame loop, a wall-clock ticker, or a
// test that steps time by hand.
//
// # Ordering
//
// Due timers fire in deadline order; ties go to the timer created first.
// Callbacks run one at a time and never re-entrantly: an Advance issued from
// inside a callback is ignored. A callback may start or stop any timer,
// including its own.
//
// # Lifecycle
//
// Timers are created stopped. [Timer.Start] and [Timer.Stop] are idempotent,
// so a running timer never ends up scheduled twice.
package sched
