package session_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trailfx/internal/config"
	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/hotzone"
	"github.com/san-kum/trailfx/internal/session"
)

const tick = 16 * time.Millisecond

var _ = Describe("Session", func() {
	var s *session.Session

	BeforeEach(func() {
		s = session.New(config.DefaultConfig())
	})

	AfterEach(func() {
		s.Close()
	})

	Describe("click ripples", func() {
		It("keeps a ripple for 24 ticks and removes it on the 25th", func() {
			s.Click(100, 100)
			ripples := s.Snapshot().Ripples
			Expect(ripples).To(HaveLen(1))
			Expect(ripples[0].Pos).To(Equal(fx.V(100, 100)))
			Expect(ripples[0].Life).To(Equal(1.0))

			for i := 0; i < 24; i++ {
				s.Advance(tick)
			}
			Expect(s.Snapshot().Ripples).To(HaveLen(1))
			Expect(s.Snapshot().Ripples[0].Pos).To(Equal(fx.V(100, 100)))

			s.Advance(tick)
			Expect(s.Snapshot().Ripples).To(BeEmpty())
		})

		It("stops the ripple timer once every ripple is gone", func() {
			s.Click(10, 10)
			Expect(s.Scheduler().Active()).To(Equal(1))
			s.Advance(25 * tick)
			Expect(s.Scheduler().Active()).To(BeZero())
		})
	})

	Describe("hot zone", func() {
		BeforeEach(func() {
			s.Attach(hotzone.Static(fx.R(0, 0, 200, 200)))
		})

		It("engages on the next poll rather than immediately", func() {
			s.Move(150, 150)
			Expect(s.Snapshot().Engaged).To(BeFalse())

			s.Advance(49 * time.Millisecond)
			Expect(s.Snapshot().Engaged).To(BeFalse())

			s.Advance(time.Millisecond)
			Expect(s.Snapshot().Engaged).To(BeTrue())
		})

		It("uses the raw pointer, not the smoothed cursor", func() {
			s.Move(190, 190)
			s.Advance(50 * time.Millisecond)
			Expect(s.Engaged()).To(BeTrue())

			s.Move(210, 210)
			s.Advance(50 * time.Millisecond)
			Expect(s.Snapshot().Cursor.X).To(BeNumerically("<", 200))
			Expect(s.Engaged()).To(BeFalse())
		})

		It("clears the flag on detach", func() {
			s.Move(10, 10)
			s.Advance(50 * time.Millisecond)
			Expect(s.Engaged()).To(BeTrue())

			s.Detach()
			Expect(s.Engaged()).To(BeFalse())
		})
	})

	Describe("teardown", func() {
		It("stops all three timers", func() {
			s.Attach(hotzone.Static(fx.R(0, 0, 10, 10)))
			s.Click(1, 1)
			for i := 0; i < 50; i++ {
				s.Move(float64(i), 1)
			}
			Expect(s.Scheduler().Active()).To(BeNumerically(">=", 2))

			s.Close()
			s.Close()
			Expect(s.Scheduler().Active()).To(BeZero())
			Expect(s.Closed()).To(BeTrue())
		})
	})
})

var _ = Describe("Runner", func() {
	var (
		s        *session.Session
		r        *session.Runner
		cancel   context.CancelFunc
		finished chan error
	)

	BeforeEach(func() {
		s = session.New(config.DefaultConfig())
		r = session.NewRunner(s, 64)
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		finished = make(chan error, 1)
		go func() { finished <- r.Run(ctx) }()
	})

	AfterEach(func() {
		cancel()
		Eventually(finished).Should(Receive(MatchError(context.Canceled)))
	})

	It("publishes ripples and lets them fade in real time", func() {
		Expect(r.Click(100, 100)).To(BeTrue())
		Eventually(func() int { return len(r.Snapshot().Ripples) }).Should(Equal(1))
		Eventually(func() int { return len(r.Snapshot().Ripples) }, 2*time.Second).Should(BeZero())
	})

	It("tracks the pointer", func() {
		r.Move(50, 60)
		Eventually(func() fx.Vec2 { return r.Snapshot().Raw }).Should(Equal(fx.V(50, 60)))
	})

	It("closes the session when cancelled", func() {
		r.Click(1, 1)
		cancel()
		Eventually(r.Done()).Should(BeClosed())
		Expect(s.Closed()).To(BeTrue())
		Expect(s.Scheduler().Active()).To(BeZero())
		Expect(r.Click(2, 2)).To(BeFalse())
	})
})

var _ = Describe("Runner input", func() {
	var (
		s *session.Session
		r *session.Runner
	)

	BeforeEach(func() {
		s = session.New(config.DefaultConfig())
		r = session.NewRunner(s, 1)
	})

	AfterEach(func() {
		s.Close()
	})

	It("drops moves on a full buffer instead of blocking", func() {
		Expect(r.Move(1, 1)).To(BeTrue())
		Expect(r.Move(2, 2)).To(BeFalse())
		Expect(r.Dropped()).To(Equal(uint64(1)))
	})

	Context("after Run has returned", func() {
		BeforeEach(func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(r.Run(ctx)).To(MatchError(context.Canceled))
			Expect(r.Done()).To(BeClosed())
		})

		It("refuses every event even with buffer space left", func() {
			for i := 0; i < 100; i++ {
				Expect(r.Move(float64(i), 0)).To(BeFalse())
				Expect(r.Click(float64(i), 0)).To(BeFalse())
				Expect(r.Detach()).To(BeFalse())
			}
			Expect(r.Dropped()).To(BeZero())
		})

		It("cannot be run again", func() {
			Expect(r.Run(context.Background())).To(MatchError(fx.ErrClosed))
			Expect(s.Closed()).To(BeTrue())
		})
	})
})
