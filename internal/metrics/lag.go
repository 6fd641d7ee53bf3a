package metrics

import "github.com/san-kum/trailfx/internal/fx"

// CursorLag is the mean distance between the raw pointer and the smoothed
// cursor, a measure of how loosely the spring follows.
type CursorLag struct {
	name    string
	sum     float64
	samples int
}

func NewCursorLag() *CursorLag {
	return &CursorLag{
		name: "cursor_lag",
	}
}

func (c *CursorLag) Name() string {
	return c.name
}

func (c *CursorLag) Observe(snap fx.Snapshot) {
	c.sum += snap.Raw.Sub(snap.Cursor).Len()
	c.samples++
}

func (c *CursorLag) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *CursorLag) Reset() {
	c.sum = 0
	c.samples = 0
}
