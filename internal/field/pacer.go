package field

import "github.com/san-kum/trailfx/internal/sched"

// pacer ties a field to its decay timer.
type pacer struct {
	timer  *sched.Timer
	closed bool
}

func (p *pacer) wake() {
	if !p.closed {
		p.timer.Start()
	}
}

func (p *pacer) settle(n int) {
	if n == 0 {
		p.timer.Stop()
	}
}

// Active reports whether the decay timer is running.
func (p *pacer) Active() bool { return p.timer.Active() }

// Ticks returns how many scheduled ticks have run.
func (p *pacer) Ticks() uint64 { return p.timer.Fired() }

// Close stops the decay timer for good. Later inserts are still stored but
// never tick.
func (p *pacer) Close() {
	p.closed = true
	p.timer.Stop()
}
