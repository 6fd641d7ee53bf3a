package viz

import (
	"math"

	"github.com/san-kum/trailfx/internal/fx"
	"github.com/tanema/gween/ease"
)

const cursorRadius = 1.5

// CellToSub maps a terminal cell to the sub-pixel at its center.
func CellToSub(col, row int) fx.Vec2 {
	return fx.V(float64(col*2+1), float64(row*4+2))
}

// RippleRadius eases a ripple out from zero to max as its life runs down.
func RippleRadius(life, max float64) float64 {
	t := float32(1 - life)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return float64(ease.OutQuad(t, 0, float32(max), 1))
}

// CursorScale is the cursor's size multiplier for the engaged state.
func CursorScale(engaged bool, engagedScale float64) float64 {
	if engaged {
		return engagedScale
	}
	return 1
}

// Style carries the render settings that do not come from the snapshot.
type Style struct {
	Theme        Theme
	EngagedScale float64
	RippleRadius float64
	Zone         fx.Rect
	ShowZone     bool
}

// Draw paints one snapshot onto c. Later layers overwrite the color of
// shared cells: zone, ripples, particles, then the cursor on top.
func Draw(c *Canvas, snap fx.Snapshot, st Style) {
	c.Clear()
	th := st.Theme

	if st.ShowZone && !st.Zone.Empty() {
		ink := th.Zone
		if snap.Engaged {
			ink = Fade(th.Engaged, th.Background, 0.5)
		}
		c.DrawRect(px(st.Zone.Min.X), px(st.Zone.Min.Y), px(st.Zone.Max.X), px(st.Zone.Max.Y), ink)
	}

	for _, r := range snap.Ripples {
		ink := Fade(th.Ripple, th.Background, r.Life)
		c.DrawCircle(px(r.Pos.X), px(r.Pos.Y), RippleRadius(r.Life, st.RippleRadius), ink)
	}

	for _, p := range snap.Particles {
		c.Plot(px(p.Pos.X), px(p.Pos.Y), Fade(th.Particle, th.Background, p.Life))
	}

	scale := CursorScale(snap.Engaged, st.EngagedScale)
	cx, cy := px(snap.Cursor.X), px(snap.Cursor.Y)
	ink := th.Cursor(snap.Engaged)
	c.DrawCircle(cx, cy, cursorRadius*scale, ink)
	c.Plot(cx, cy, ink)
}

func px(v float64) int { return int(math.Floor(v)) }
