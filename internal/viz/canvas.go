package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of Braille cells. Each cell holds up to eight dots and a
// single foreground color; the last color written to a cell wins.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]lipgloss.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]lipgloss.Color, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Size returns the canvas extent in sub-pixels.
func (c *Canvas) Size() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) { c.Plot(x, y, "") }

// Plot sets a pixel and paints its cell with ink. Empty ink keeps the cell's
// current color.
func (c *Canvas) Plot(x, y int, ink lipgloss.Color) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if ink != "" {
		c.Ink[row][col] = ink
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// IsSet reports whether the pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Plot(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect outlines the box with corners (x0, y0) and (x1, y1).
func (c *Canvas) DrawRect(x0, y0, x1, y1 int, ink lipgloss.Color) {
	c.DrawLine(x0, y0, x1, y0, ink)
	c.DrawLine(x1, y0, x1, y1, ink)
	c.DrawLine(x1, y1, x0, y1, ink)
	c.DrawLine(x0, y1, x0, y0, ink)
}

// DrawCircle outlines a circle with the midpoint algorithm. A radius below one
// sub-pixel plots only the center.
func (c *Canvas) DrawCircle(cx, cy int, r float64, ink lipgloss.Color) {
	ri := int(math.Round(r))
	if ri < 1 {
		c.Plot(cx, cy, ink)
		return
	}
	x, y := ri, 0
	d := 1 - ri
	for x >= y {
		c.Plot(cx+x, cy+y, ink)
		c.Plot(cx+y, cy+x, ink)
		c.Plot(cx-y, cy+x, ink)
		c.Plot(cx-x, cy+y, ink)
		c.Plot(cx-x, cy-y, ink)
		c.Plot(cx-y, cy-x, ink)
		c.Plot(cx+y, cy-x, ink)
		c.Plot(cx+x, cy-y, ink)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// String renders the dots without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the dots with each cell's ink. Runs of cells sharing a color
// are styled together.
func (c *Canvas) Render() string {
	styles := make(map[lipgloss.Color]lipgloss.Style)
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[i][j] == c.Ink[i][start] {
				continue
			}
			run := string(row[start:j])
			ink := c.Ink[i][start]
			if ink == "" {
				b.WriteString(run)
			} else {
				st, ok := styles[ink]
				if !ok {
					st = lipgloss.NewStyle().Foreground(ink)
					styles[ink] = st
				}
				b.WriteString(st.Render(run))
			}
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
