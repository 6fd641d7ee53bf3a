// Package export writes session frames to files outside the terminal.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/viz"
)

type SVGOptions struct {
	Width, Height float64
	Style         viz.Style
	// Path is an optional cursor trajectory drawn under the frame.
	Path []fx.Vec2
}

// SnapshotToSVG draws one frame as vector shapes. Particle and ripple
// opacity follow their remaining life; ripple radius eases out as in the
// terminal adapter.
func SnapshotToSVG(snap fx.Snapshot, opts SVGOptions) string {
	th := opts.Style.Theme
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, th.Background))

	if z := opts.Style.Zone; opts.Style.ShowZone && !z.Empty() {
		stroke := th.Zone
		if snap.Engaged {
			stroke = th.Engaged
		}
		sb.WriteString(fmt.Sprintf(`<rect class="zone" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-dasharray="4 2"/>
`, z.Min.X, z.Min.Y, z.Width(), z.Height(), stroke))
	}

	if len(opts.Path) > 1 {
		sb.WriteString(pathElement(opts.Path, string(th.Muted)))
	}

	sb.WriteString(fmt.Sprintf("<g class=\"ripples\" fill=\"none\" stroke=\"%s\">\n", th.Ripple))
	for _, r := range snap.Ripples {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" stroke-opacity="%.3f"/>
`, r.Pos.X, r.Pos.Y, viz.RippleRadius(r.Life, opts.Style.RippleRadius), r.Life))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g class=\"particles\" fill=\"%s\">\n", th.Particle))
	for _, p := range snap.Particles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1" fill-opacity="%.3f"/>
`, p.Pos.X, p.Pos.Y, p.Life))
	}
	sb.WriteString("</g>\n")

	scale := viz.CursorScale(snap.Engaged, opts.Style.EngagedScale)
	sb.WriteString(fmt.Sprintf(`<circle class="cursor" cx="%.1f" cy="%.1f" r="%.2f" fill="none" stroke="%s" stroke-width="1.5"/>
`, snap.Cursor.X, snap.Cursor.Y, 4*scale, th.Cursor(snap.Engaged)))

	sb.WriteString("</svg>")
	return sb.String()
}

func pathElement(points []fx.Vec2, stroke string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<path class="trajectory" fill="none" stroke="%s" stroke-width="0.5" d="M`, stroke))
	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	sb.WriteString("\"/>\n")
	return sb.String()
}

// WriteSVG renders snap and writes it to path.
func WriteSVG(path string, snap fx.Snapshot, opts SVGOptions) error {
	return os.WriteFile(path, []byte(SnapshotToSVG(snap, opts)), 0644)
}
